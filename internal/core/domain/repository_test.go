package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_FullName(t *testing.T) {
	r := Repository{Name: "gate-lite", Owner: "minekube"}

	assert.Equal(t, "minekube/gate-lite", r.FullName())
}

func TestRepository_DescriptionOr(t *testing.T) {
	assert.Equal(t, "fallback", Repository{}.DescriptionOr("fallback"))
	assert.Equal(t, "fallback", Repository{Description: StringPtr("")}.DescriptionOr("fallback"))
	assert.Equal(t, "proxy plugin", Repository{Description: StringPtr("proxy plugin")}.DescriptionOr("fallback"))
}

func TestRepository_JSONShape(t *testing.T) {
	t.Run("nil description encodes as null", func(t *testing.T) {
		data, err := json.Marshal(Repository{Name: "ext", Owner: "o", Stars: 3, URL: "https://github.com/o/ext"})

		require.NoError(t, err)
		assert.JSONEq(t,
			`{"name":"ext","owner":"o","description":null,"stars":3,"url":"https://github.com/o/ext"}`,
			string(data))
	})

	t.Run("decodes the cached form", func(t *testing.T) {
		var r Repository
		err := json.Unmarshal([]byte(`{"name":"ext","owner":"o","description":"d","stars":7,"url":"u"}`), &r)

		require.NoError(t, err)
		require.NotNil(t, r.Description)
		assert.Equal(t, "d", *r.Description)
		assert.Equal(t, 7, r.Stars)
	})
}
