package domain

// Sentinel values substituted during normalisation.
const (
	// UnknownOwner replaces a missing owner login.
	UnknownOwner = "unknown"

	// NoDescription replaces an empty description on enriched module repositories.
	NoDescription = "No description"
)

// Repository is a normalised upstream repository.
// It is immutable once constructed and lives for one response cycle;
// it is persisted only in serialised form inside a cache entry.
type Repository struct {
	// Name is the repository name without the owner.
	Name string `json:"name"`
	// Owner is the owner login, or UnknownOwner.
	Owner string `json:"owner"`
	// Description is nil when the upstream has none.
	Description *string `json:"description"`
	// Stars is the stargazer count. Never negative.
	Stars int `json:"stars"`
	// URL is the repository's HTML URL.
	URL string `json:"url"`
}

// ExtensionRepository is a repository tagged with the extension topic.
type ExtensionRepository = Repository

// ModuleRepository is a repository containing a go.mod that requires the module.
// At most one ModuleRepository exists per FullName within a pipeline run.
type ModuleRepository = Repository

// FullName returns "owner/name".
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// DescriptionOr returns the description, or fallback when it is nil or empty.
func (r Repository) DescriptionOr(fallback string) string {
	if r.Description == nil || *r.Description == "" {
		return fallback
	}
	return *r.Description
}

// RepositoryRef identifies the repository that owns a code search match.
type RepositoryRef struct {
	Owner    string
	Name     string
	FullName string
	URL      string
}

// CodeMatch is one typed item from an upstream code search.
type CodeMatch struct {
	// Path is the matching file path inside the repository.
	Path string
	// Repository is the owning repository.
	Repository RepositoryRef
}

// RepositoryDetails holds the fields fetched by a repository detail lookup.
type RepositoryDetails struct {
	Description *string
	Stars       int
	URL         string
	Owner       string
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
