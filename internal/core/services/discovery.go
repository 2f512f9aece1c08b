package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driven"
	"github.com/custodia-labs/gate-discovery/internal/core/ports/driving"
	"github.com/custodia-labs/gate-discovery/internal/logger"
)

// Ensure DiscoveryService implements the interface.
var _ driving.DiscoveryService = (*DiscoveryService)(nil)

// DefaultEnrichConcurrency is the number of detail lookups run at once.
const DefaultEnrichConcurrency = 4

// DiscoveryService runs the repository and module search pipelines behind
// the result cache. Each call re-executes in full on a cache miss.
type DiscoveryService struct {
	cache             *ResultCache
	tokens            driven.TokenProvider
	host              driven.CodeHost
	resultTTL         time.Duration
	enrichConcurrency int
}

// NewDiscoveryService creates a discovery service.
func NewDiscoveryService(
	cache *ResultCache,
	tokens driven.TokenProvider,
	host driven.CodeHost,
) *DiscoveryService {
	return &DiscoveryService{
		cache:             cache,
		tokens:            tokens,
		host:              host,
		resultTTL:         domain.DefaultResultTTL,
		enrichConcurrency: DefaultEnrichConcurrency,
	}
}

// SetResultTTL sets how long pipeline results stay cached.
func (s *DiscoveryService) SetResultTTL(ttl time.Duration) {
	if ttl > 0 {
		s.resultTTL = ttl
	}
}

// SetEnrichConcurrency sets how many detail lookups run at once.
// A value of 1 enriches sequentially.
func (s *DiscoveryService) SetEnrichConcurrency(n int) {
	if n > 0 {
		s.enrichConcurrency = n
	}
}

// ListExtensionRepositories returns repositories tagged with the extension topic.
func (s *DiscoveryService) ListExtensionRepositories(ctx context.Context) ([]domain.ExtensionRepository, error) {
	var cached []domain.ExtensionRepository
	if s.cache.Get(ctx, domain.ExtensionCacheKey, &cached) {
		logger.Debug("cache hit: %s (%d repositories)", domain.ExtensionCacheKey, len(cached))
		return cached, nil
	}

	token, err := s.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	repos, err := s.host.SearchRepositories(ctx, token, domain.ExtensionQuery)
	if err != nil {
		return nil, fmt.Errorf("search extension repositories: %w", err)
	}
	if repos == nil {
		repos = []domain.ExtensionRepository{}
	}

	s.cache.Put(ctx, domain.ExtensionCacheKey, repos, s.resultTTL)
	logger.Info("discovered %d extension repositories", len(repos))
	return repos, nil
}

// ListModuleRepositories returns one entry per repository whose go.mod
// matches the module query, in first-occurrence order. Repositories whose
// detail lookup fails are skipped.
func (s *DiscoveryService) ListModuleRepositories(ctx context.Context) ([]domain.ModuleRepository, error) {
	var cached []domain.ModuleRepository
	if s.cache.Get(ctx, domain.ModuleCacheKey, &cached) {
		logger.Debug("cache hit: %s (%d repositories)", domain.ModuleCacheKey, len(cached))
		return cached, nil
	}

	token, err := s.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := s.host.SearchCode(ctx, token, domain.ModuleQuery)
	if err != nil {
		return nil, fmt.Errorf("search go modules: %w", err)
	}

	refs := uniqueRepositories(matches)
	repos := s.enrich(ctx, token, refs)

	// A cancelled request skips every lookup; do not cache that as an empty result.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.cache.Put(ctx, domain.ModuleCacheKey, repos, s.resultTTL)
	logger.Info("discovered %d go module repositories (%d matches, %d skipped)",
		len(repos), len(matches), len(refs)-len(repos))
	return repos, nil
}

// Invalidate drops both cached pipeline results.
func (s *DiscoveryService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, domain.ExtensionCacheKey, domain.ModuleCacheKey)
}

// uniqueRepositories returns the owning repository of each match, keeping
// only the first occurrence of every full name.
func uniqueRepositories(matches []domain.CodeMatch) []domain.RepositoryRef {
	seen := make(map[string]struct{}, len(matches))
	refs := make([]domain.RepositoryRef, 0, len(matches))
	for _, m := range matches {
		name := m.Repository.FullName
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		refs = append(refs, m.Repository)
	}
	return refs
}

// enrich looks up details for every repository with bounded concurrency.
// A failed lookup drops only that repository.
func (s *DiscoveryService) enrich(
	ctx context.Context, token string, refs []domain.RepositoryRef,
) []domain.ModuleRepository {
	slots := make([]*domain.ModuleRepository, len(refs))

	var g errgroup.Group
	g.SetLimit(s.enrichConcurrency)
	for i, ref := range refs {
		g.Go(func() error {
			details, err := s.host.GetRepositoryDetails(ctx, token, ref.Owner, ref.Name)
			if err != nil {
				logger.Warn("skipping %s: repository details: %v", ref.FullName, err)
				return nil
			}
			slots[i] = moduleRepository(ref, details)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	repos := make([]domain.ModuleRepository, 0, len(refs))
	for _, r := range slots {
		if r != nil {
			repos = append(repos, *r)
		}
	}
	return repos
}

// moduleRepository merges a code search reference with its details.
func moduleRepository(ref domain.RepositoryRef, details *domain.RepositoryDetails) *domain.ModuleRepository {
	owner := ref.Owner
	if owner == "" {
		owner = details.Owner
	}
	if owner == "" {
		owner = domain.UnknownOwner
	}

	url := ref.URL
	if url == "" {
		url = details.URL
	}

	description := domain.NoDescription
	if details.Description != nil && *details.Description != "" {
		description = *details.Description
	}

	stars := details.Stars
	if stars < 0 {
		stars = 0
	}

	return &domain.ModuleRepository{
		Name:        ref.Name,
		Owner:       owner,
		Description: domain.StringPtr(description),
		Stars:       stars,
		URL:         url,
	}
}
