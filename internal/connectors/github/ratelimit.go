package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

const (
	// DefaultRequestsPerSecond is the proactive throttle rate when none is configured.
	DefaultRequestsPerSecond = domain.DefaultRequestsPerSecond

	// MinBufferRatio is the share of a quota held in reserve before waiting for reset.
	// For the 5000/hour core quota this keeps 100 requests back; small search
	// quotas are used down to zero.
	MinBufferRatio = 0.02

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRateResource names the quota a response counted against.
	HeaderRateResource = "X-RateLimit-Resource"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// Quota resources tracked by the rate limiter.
const (
	ResourceCore       = "core"
	ResourceSearch     = "search"
	ResourceCodeSearch = "code_search"
)

// quota is the last observed state of one upstream quota.
type quota struct {
	remaining int
	limit     int
	resetTime time.Time
}

// RateLimiter implements dual-strategy rate limiting for the GitHub API.
// A shared token bucket throttles all requests; reactive state is kept
// per quota resource because search and core limits differ by orders of magnitude.
type RateLimiter struct {
	mu     sync.Mutex
	quotas map[string]*quota
	bucket *rate.Limiter
	now    func() time.Time
}

// NewRateLimiter creates a rate limiter allowing perSecond requests on average.
func NewRateLimiter(perSecond float64) *RateLimiter {
	return &RateLimiter{
		quotas: make(map[string]*quota),
		bucket: rate.NewLimiter(rate.Limit(perSecond), 1),
		now:    time.Now,
	}
}

// Wait blocks until it's safe to make a request against resource.
func (r *RateLimiter) Wait(ctx context.Context, resource string) error {
	// 1. Token bucket (proactive throttling)
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	// 2. Observed quota (reactive)
	wait := r.waitDuration(resource)
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// waitDuration returns how long to hold off before using resource.
func (r *RateLimiter) waitDuration(resource string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.quotas[resource]
	if !ok {
		return 0
	}
	buffer := int(float64(q.limit) * MinBufferRatio)
	now := r.now()
	if q.remaining <= buffer && now.Before(q.resetTime) {
		return q.resetTime.Sub(now)
	}
	return 0
}

// UpdateFromResponse updates quota state from response headers and returns
// the resource the response counted against. fallback names the resource
// when the response does not.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response, fallback string) string {
	if resp == nil {
		return fallback
	}

	resource := resp.Header.Get(HeaderRateResource)
	if resource == "" {
		resource = fallback
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	q, ok := r.quotas[resource]
	if !ok {
		q = &quota{remaining: -1}
	}
	updated := false

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			q.remaining = val
			updated = true
		}
	}
	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			q.limit = val
		}
	}
	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			q.resetTime = time.Unix(val, 0)
		}
	}

	if updated {
		r.quotas[resource] = q
	}
	return resource
}

// RateLimitFromResponse returns a RateLimitError if resp signals rate limiting.
func (r *RateLimiter) RateLimitFromResponse(resp *http.Response, fallback string) *RateLimitError {
	if resp == nil {
		return nil
	}
	resource := r.UpdateFromResponse(resp, fallback)

	remaining, limit, resetTime := r.Status(resource)
	limited := resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && remaining == 0)
	if !limited {
		return nil
	}

	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			resetTime = r.now().Add(time.Duration(seconds) * time.Second)
		}
	}

	return &RateLimitError{
		ResetAt:   resetTime,
		Remaining: remaining,
		Limit:     limit,
	}
}

// Status returns the last observed remaining count, limit and reset time
// for resource. Remaining is -1 when nothing has been observed yet.
func (r *RateLimiter) Status(resource string) (remaining, limit int, reset time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quotas[resource]
	if !ok {
		return -1, 0, time.Time{}
	}
	return q.remaining, q.limit, q.resetTime
}
