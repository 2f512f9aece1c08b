// Package github implements the code host adapter for the GitHub REST API.
//
// The adapter serves the discovery pipelines with three read operations
// and one credential exchange:
//
//   - SearchRepositories: repository search (GET /search/repositories)
//   - SearchCode: code search (GET /search/code)
//   - GetRepositoryDetails: single repository lookup (GET /repos/{owner}/{repo})
//   - CreateInstallationToken: App JWT to installation token exchange
//
// Only the first page of each search is requested. Results are converted
// to domain types at this boundary; callers never see go-github types.
//
// # Authentication
//
// Each call carries the bearer token to use. The token is issued and cached
// by the token manager, so the client itself is stateless with respect to
// credentials. The underlying go-github client is rebuilt only when the
// token changes.
//
// # Rate Limiting
//
// The client implements a dual-strategy rate limiting approach:
//
//  1. Proactive throttling: a token bucket limits requests to approximately
//     1.2 requests per second.
//
//  2. Reactive handling: X-RateLimit-* headers are tracked per quota
//     resource (core, search, code_search). When a quota is exhausted the
//     next request waits until its reset time.
//
// # Error Handling
//
// Non-success responses become [APIError], which unwraps to
// [domain.ErrUpstreamRequest]. Primary and secondary rate limit responses
// become [RateLimitError], which unwraps to both [domain.ErrRateLimited]
// and [domain.ErrUpstreamRequest].
package github
