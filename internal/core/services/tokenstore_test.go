package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gate-discovery/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

func TestTokenStore_Key(t *testing.T) {
	kv := memory.NewKVStore()

	assert.Equal(t, "github-jwt-token", NewTokenStore(kv, domain.CredentialApp).Key())
	assert.Equal(t, "github-installation-token", NewTokenStore(kv, domain.CredentialInstallation).Key())
}

func TestTokenStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(memory.NewKVStore(), domain.CredentialInstallation)
	issued := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cred := domain.Credential{
		Token:     "ghs_abc",
		Kind:      domain.CredentialInstallation,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(time.Hour),
	}

	require.NoError(t, store.Save(ctx, cred, 48*time.Minute))
	loaded, err := store.Load(ctx)

	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, cred.Token, loaded.Token)
	assert.Equal(t, cred.Kind, loaded.Kind)
	assert.True(t, cred.ExpiresAt.Equal(loaded.ExpiresAt))
}

func TestTokenStore_LoadEmpty(t *testing.T) {
	store := NewTokenStore(memory.NewKVStore(), domain.CredentialApp)

	loaded, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestTokenStore_SaveRejectsNonPositiveTTL(t *testing.T) {
	store := NewTokenStore(memory.NewKVStore(), domain.CredentialApp)

	err := store.Save(context.Background(), domain.Credential{Token: "t"}, 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTokenStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(memory.NewKVStore(), domain.CredentialApp)
	require.NoError(t, store.Save(ctx, domain.Credential{Token: "t"}, time.Minute))

	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
