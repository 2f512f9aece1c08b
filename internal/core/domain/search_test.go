package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionQuery(t *testing.T) {
	assert.Equal(t, ScopeRepositories, ExtensionQuery.Scope)
	assert.Equal(t, "topic:gate-extension", ExtensionQuery.Terms)
	assert.Equal(t, "stars", ExtensionQuery.Sort)
	assert.Equal(t, "desc", ExtensionQuery.Order)
}

func TestModuleQuery(t *testing.T) {
	assert.Equal(t, ScopeCode, ModuleQuery.Scope)
	assert.Equal(t, "filename:go.mod go.minekube.com in:file", ModuleQuery.Terms)
	assert.Equal(t, "indexed", ModuleQuery.Sort)
	assert.Equal(t, "desc", ModuleQuery.Order)
}

func TestSearchQuery_String(t *testing.T) {
	assert.Equal(t, "repositories:topic:gate-extension sort=stars order=desc", ExtensionQuery.String())
}
