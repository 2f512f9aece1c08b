package driven

import (
	"context"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

// CodeHost is the upstream code-hosting search and REST API.
// Every call is authenticated with the supplied bearer token.
type CodeHost interface {
	// SearchRepositories runs a repository search and returns normalised results
	// in upstream order.
	SearchRepositories(ctx context.Context, token string, query domain.SearchQuery) ([]domain.Repository, error)

	// SearchCode runs a code search and returns typed matches in upstream order.
	// Items without an owning repository are dropped.
	SearchCode(ctx context.Context, token string, query domain.SearchQuery) ([]domain.CodeMatch, error)

	// GetRepositoryDetails looks up one repository by owner and name.
	GetRepositoryDetails(ctx context.Context, token, owner, name string) (*domain.RepositoryDetails, error)
}
