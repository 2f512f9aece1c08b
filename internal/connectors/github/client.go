package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure Client implements the interface.
var _ driven.CodeHost = (*Client)(nil)

// Client wraps the go-github client with rate limiting and error mapping.
// Every call carries the bearer token it should use; the underlying
// go-github client is rebuilt only when the token changes.
type Client struct {
	baseURL     *url.URL
	timeout     time.Duration
	rateLimiter *RateLimiter

	mu      sync.Mutex
	token   string
	current *gh.Client
}

// NewClient creates a new GitHub API client.
func NewClient(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	baseURL, err := parseBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:     baseURL,
		timeout:     cfg.Timeout,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond),
	}, nil
}

// clientFor returns a go-github client authenticating with token.
func (c *Client) clientFor(token string) *gh.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.token == token {
		return c.current
	}

	var hc *http.Client
	if token == "" {
		hc = &http.Client{}
	} else {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(context.Background(), ts)
	}
	hc.Timeout = c.timeout

	client := gh.NewClient(hc)
	if c.baseURL != nil {
		u := *c.baseURL
		client.BaseURL = &u
	}

	c.token = token
	c.current = client
	return client
}

// SearchRepositories runs a repository search and returns the first page of results.
func (c *Client) SearchRepositories(
	ctx context.Context, token string, query domain.SearchQuery,
) ([]domain.Repository, error) {
	if err := c.rateLimiter.Wait(ctx, ResourceSearch); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	logger.Debug("github search: %s", query)
	result, resp, err := c.clientFor(token).Search.Repositories(ctx, query.Terms, searchOptions(query))
	c.updateRateLimitFromResponse(resp, ResourceSearch)
	if err != nil {
		return nil, c.wrapError(err, ResourceSearch, "search repositories")
	}

	repos := make([]domain.Repository, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		if r == nil {
			continue
		}
		repos = append(repos, repositoryFromGitHub(r))
	}
	return repos, nil
}

// SearchCode runs a code search and returns the first page of matches.
func (c *Client) SearchCode(
	ctx context.Context, token string, query domain.SearchQuery,
) ([]domain.CodeMatch, error) {
	if err := c.rateLimiter.Wait(ctx, ResourceCodeSearch); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	logger.Debug("github search: %s", query)
	result, resp, err := c.clientFor(token).Search.Code(ctx, query.Terms, searchOptions(query))
	c.updateRateLimitFromResponse(resp, ResourceCodeSearch)
	if err != nil {
		return nil, c.wrapError(err, ResourceCodeSearch, "search code")
	}

	matches := make([]domain.CodeMatch, 0, len(result.CodeResults))
	for _, cr := range result.CodeResults {
		if cr == nil {
			continue
		}
		matches = append(matches, codeMatchFromGitHub(cr))
	}
	return matches, nil
}

// GetRepositoryDetails fetches a single repository.
func (c *Client) GetRepositoryDetails(
	ctx context.Context, token, owner, name string,
) (*domain.RepositoryDetails, error) {
	if err := c.rateLimiter.Wait(ctx, ResourceCore); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	repository, resp, err := c.clientFor(token).Repositories.Get(ctx, owner, name)
	c.updateRateLimitFromResponse(resp, ResourceCore)
	if err != nil {
		return nil, c.wrapError(err, ResourceCore, "get repo")
	}

	return detailsFromGitHub(repository), nil
}

// CreateInstallationToken exchanges an App JWT for an installation access token.
func (c *Client) CreateInstallationToken(
	ctx context.Context, appJWT string, installationID int64,
) (*domain.Credential, error) {
	if err := c.rateLimiter.Wait(ctx, ResourceCore); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	issuedAt := time.Now()
	tok, resp, err := c.clientFor(appJWT).Apps.CreateInstallationToken(ctx, installationID, nil)
	c.updateRateLimitFromResponse(resp, ResourceCore)
	if err != nil {
		return nil, c.wrapError(err, ResourceCore, "create installation token")
	}
	if tok.GetToken() == "" {
		return nil, fmt.Errorf("create installation token: %w: empty token", domain.ErrUpstreamRequest)
	}

	return installationCredential(tok, issuedAt), nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

func searchOptions(q domain.SearchQuery) *gh.SearchOptions {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = domain.DefaultPerPage
	}
	return &gh.SearchOptions{
		Sort:        q.Sort,
		Order:       q.Order,
		ListOptions: gh.ListOptions{PerPage: perPage},
	}
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response, resource string) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response, resource)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, resource, operation string) error {
	if err == nil {
		return nil
	}

	// Check for primary rate limit error
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	// Check for secondary rate limit error
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Now()
		if abuseErr.RetryAfter != nil {
			resetAt = resetAt.Add(*abuseErr.RetryAfter)
		}
		return &RateLimitError{ResetAt: resetAt}
	}

	// Check for GitHub error response
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		if rl := c.rateLimiter.RateLimitFromResponse(ghErr.Response, resource); rl != nil {
			return rl
		}
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", operation, err)
	}

	return fmt.Errorf("%s: %w: %w", operation, domain.ErrUpstreamRequest, err)
}
