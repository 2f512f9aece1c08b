package github

import (
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

// repositoryFromGitHub converts a search result to a domain repository.
// A missing owner becomes domain.UnknownOwner; a missing description stays nil.
func repositoryFromGitHub(r *gh.Repository) domain.Repository {
	owner := r.GetOwner().GetLogin()
	if owner == "" {
		owner = domain.UnknownOwner
	}

	var description *string
	if r.Description != nil {
		description = domain.StringPtr(*r.Description)
	}

	return domain.Repository{
		Name:        r.GetName(),
		Owner:       owner,
		Description: description,
		Stars:       r.GetStargazersCount(),
		URL:         r.GetHTMLURL(),
	}
}

// codeMatchFromGitHub converts a code search item to a domain match.
func codeMatchFromGitHub(cr *gh.CodeResult) domain.CodeMatch {
	repo := cr.GetRepository()
	owner := repo.GetOwner().GetLogin()
	fullName := repo.GetFullName()
	if fullName == "" && owner != "" && repo.GetName() != "" {
		fullName = owner + "/" + repo.GetName()
	}

	return domain.CodeMatch{
		Path: cr.GetPath(),
		Repository: domain.RepositoryRef{
			Owner:    owner,
			Name:     repo.GetName(),
			FullName: fullName,
			URL:      repo.GetHTMLURL(),
		},
	}
}

// detailsFromGitHub extracts the enrichment fields of a repository.
func detailsFromGitHub(r *gh.Repository) *domain.RepositoryDetails {
	details := &domain.RepositoryDetails{
		Stars: r.GetStargazersCount(),
		URL:   r.GetHTMLURL(),
		Owner: r.GetOwner().GetLogin(),
	}
	if r.Description != nil {
		details.Description = domain.StringPtr(*r.Description)
	}
	return details
}

// installationCredential converts an installation token response.
// GitHub issues installation tokens for one hour; that is assumed when
// the response carries no expiry.
func installationCredential(tok *gh.InstallationToken, issuedAt time.Time) *domain.Credential {
	expiresAt := tok.GetExpiresAt().Time
	if expiresAt.IsZero() {
		expiresAt = issuedAt.Add(time.Hour)
	}
	return &domain.Credential{
		Token:     tok.GetToken(),
		Kind:      domain.CredentialInstallation,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
}
