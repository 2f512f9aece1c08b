package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Authentication Errors.

	// ErrAuthConfiguration indicates the GitHub App identity is not configured.
	// It is fatal for the invocation and never retried.
	ErrAuthConfiguration = errors.New(
		"GitHub App credentials not configured. Need GITHUB_APP_ID and GITHUB_APP_PRIVATE_KEY",
	)

	// ErrAuthProvider indicates the identity provider rejected signing or issuance.
	ErrAuthProvider = errors.New("authentication provider rejected credential request")

	// Upstream Errors.

	// ErrUpstreamRequest indicates a non-success response from the code host.
	ErrUpstreamRequest = errors.New("upstream request failed")

	// ErrRateLimited indicates the upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// Cache Errors.

	// ErrCacheUnavailable indicates the key-value store could not serve a request.
	// Callers recover locally: reads become misses, writes are dropped.
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrStoreClosed indicates the key-value store has been closed.
	ErrStoreClosed = errors.New("store closed")
)
