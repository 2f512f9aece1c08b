package github

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: 404, Message: "Not Found", URL: "https://api.github.com/repos/a/b"}

	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Not Found")
	assert.ErrorIs(t, err, domain.ErrUpstreamRequest)
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsUnauthorized(err))
	assert.False(t, IsForbidden(err))
}

func TestRateLimitError(t *testing.T) {
	err := &RateLimitError{ResetAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	assert.Contains(t, err.Error(), "2024-01-01T00:00:00Z")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.ErrorIs(t, err, domain.ErrUpstreamRequest)
	assert.True(t, IsRateLimited(fmt.Errorf("wrapped: %w", err)))
	assert.ErrorIs(t, fmt.Errorf("search code: %w", err), domain.ErrUpstreamRequest)
}

func TestErrorPredicates_PlainError(t *testing.T) {
	err := errors.New("boom")

	assert.False(t, IsNotFound(err))
	assert.False(t, IsRateLimited(err))
	assert.False(t, IsUnauthorized(err))
	assert.False(t, IsForbidden(err))
}
