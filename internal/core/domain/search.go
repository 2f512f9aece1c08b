package domain

import "time"

// SearchScope selects the upstream search endpoint.
type SearchScope string

// Supported search scopes.
const (
	// ScopeRepositories searches repositories.
	ScopeRepositories SearchScope = "repositories"

	// ScopeCode searches file contents.
	ScopeCode SearchScope = "code"
)

// DefaultPerPage matches the upstream default page size.
const DefaultPerPage = 30

// Cache keys for the discovery pipelines.
const (
	ExtensionCacheKey = "gate-extension-repositories"
	ModuleCacheKey    = "go-module-repositories"
)

// DefaultResultTTL is how long a pipeline result stays cached.
const DefaultResultTTL = time.Hour

// SearchQuery is a static upstream query descriptor.
// It is defined once per pipeline and never user supplied.
type SearchQuery struct {
	Scope   SearchScope
	Terms   string
	Sort    string
	Order   string
	PerPage int
}

// Queries used by the discovery pipelines.
var (
	// ExtensionQuery finds repositories tagged with the extension topic, most starred first.
	ExtensionQuery = SearchQuery{
		Scope:   ScopeRepositories,
		Terms:   "topic:gate-extension",
		Sort:    "stars",
		Order:   "desc",
		PerPage: DefaultPerPage,
	}

	// ModuleQuery finds go.mod files requiring the module, most recently indexed first.
	ModuleQuery = SearchQuery{
		Scope:   ScopeCode,
		Terms:   "filename:go.mod go.minekube.com in:file",
		Sort:    "indexed",
		Order:   "desc",
		PerPage: DefaultPerPage,
	}
)

// String returns a log-friendly form of the query.
func (q SearchQuery) String() string {
	return string(q.Scope) + ":" + q.Terms + " sort=" + q.Sort + " order=" + q.Order
}
