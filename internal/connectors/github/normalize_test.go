package github

import (
	"testing"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

func TestRepositoryFromGitHub(t *testing.T) {
	t.Run("copies fields", func(t *testing.T) {
		repo := repositoryFromGitHub(&gh.Repository{
			Name:            gh.Ptr("gate"),
			Owner:           &gh.User{Login: gh.Ptr("minekube")},
			Description:     gh.Ptr("Proxy"),
			StargazersCount: gh.Ptr(900),
			HTMLURL:         gh.Ptr("https://github.com/minekube/gate"),
		})

		assert.Equal(t, "gate", repo.Name)
		assert.Equal(t, "minekube", repo.Owner)
		require.NotNil(t, repo.Description)
		assert.Equal(t, "Proxy", *repo.Description)
		assert.Equal(t, 900, repo.Stars)
		assert.Equal(t, "https://github.com/minekube/gate", repo.URL)
	})

	t.Run("null owner becomes unknown", func(t *testing.T) {
		repo := repositoryFromGitHub(&gh.Repository{Name: gh.Ptr("x")})

		assert.Equal(t, domain.UnknownOwner, repo.Owner)
		assert.Nil(t, repo.Description)
		assert.Zero(t, repo.Stars)
	})

	t.Run("empty description is kept", func(t *testing.T) {
		repo := repositoryFromGitHub(&gh.Repository{Description: gh.Ptr("")})

		require.NotNil(t, repo.Description)
		assert.Empty(t, *repo.Description)
	})
}

func TestCodeMatchFromGitHub(t *testing.T) {
	t.Run("derives full name when missing", func(t *testing.T) {
		m := codeMatchFromGitHub(&gh.CodeResult{
			Path: gh.Ptr("go.mod"),
			Repository: &gh.Repository{
				Name:  gh.Ptr("proxy"),
				Owner: &gh.User{Login: gh.Ptr("alice")},
			},
		})

		assert.Equal(t, "alice/proxy", m.Repository.FullName)
	})

	t.Run("missing repository yields empty ref", func(t *testing.T) {
		m := codeMatchFromGitHub(&gh.CodeResult{Path: gh.Ptr("go.mod")})

		assert.Equal(t, "go.mod", m.Path)
		assert.Empty(t, m.Repository.FullName)
	})
}

func TestInstallationCredential(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("uses response expiry", func(t *testing.T) {
		cred := installationCredential(&gh.InstallationToken{
			Token:     gh.Ptr("ghs_1"),
			ExpiresAt: &gh.Timestamp{Time: issued.Add(50 * time.Minute)},
		}, issued)

		assert.Equal(t, 50*time.Minute, cred.Lifetime())
	})

	t.Run("defaults to one hour", func(t *testing.T) {
		cred := installationCredential(&gh.InstallationToken{Token: gh.Ptr("ghs_1")}, issued)

		assert.Equal(t, time.Hour, cred.Lifetime())
		assert.Equal(t, domain.CredentialInstallation, cred.Kind)
	})
}
