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

func TestResultCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewResultCache(memory.NewKVStore())
	original := []domain.Repository{
		{Name: "b", Owner: "o1", Description: domain.StringPtr("second"), Stars: 10, URL: "https://github.com/o1/b"},
		{Name: "a", Owner: "o2", Description: nil, Stars: 3, URL: "https://github.com/o2/a"},
		{Name: "c", Owner: domain.UnknownOwner, Description: domain.StringPtr(""), Stars: 0, URL: ""},
	}

	cache.Put(ctx, "k", original, time.Minute)

	var decoded []domain.Repository
	require.True(t, cache.Get(ctx, "k", &decoded))
	assert.Equal(t, original, decoded, "content and order must survive the round trip")
}

func TestResultCache_EmptySliceRoundTrip(t *testing.T) {
	ctx := context.Background()
	cache := NewResultCache(memory.NewKVStore())

	cache.Put(ctx, "k", []domain.Repository{}, time.Minute)

	var decoded []domain.Repository
	require.True(t, cache.Get(ctx, "k", &decoded))
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestResultCache_Miss(t *testing.T) {
	cache := NewResultCache(memory.NewKVStore())

	var decoded []domain.Repository
	assert.False(t, cache.Get(context.Background(), "missing", &decoded))
}

func TestResultCache_ReadErrorIsMiss(t *testing.T) {
	cache := NewResultCache(&failingKVStore{getErr: errKVDown})

	var decoded []domain.Repository
	assert.False(t, cache.Get(context.Background(), "k", &decoded))
}

func TestResultCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewKVStore()
	require.NoError(t, kv.Put(ctx, "k", "{not an array", time.Minute))
	cache := NewResultCache(kv)

	var decoded []domain.Repository
	assert.False(t, cache.Get(ctx, "k", &decoded))
}

func TestResultCache_WriteErrorIsIgnored(t *testing.T) {
	kv := &failingKVStore{putErr: errKVDown}
	cache := NewResultCache(kv)

	assert.NotPanics(t, func() {
		cache.Put(context.Background(), "k", []domain.Repository{}, time.Minute)
	})
	assert.Equal(t, 1, kv.puts)
}

func TestResultCache_PutUsesTTL(t *testing.T) {
	kv := newRecordingKVStore()
	cache := NewResultCache(kv)

	cache.Put(context.Background(), "k", []string{"x"}, time.Hour)

	assert.Equal(t, time.Hour, kv.ttls["k"])
}

func TestResultCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache := NewResultCache(memory.NewKVStore())
	cache.Put(ctx, "a", []string{"1"}, time.Minute)
	cache.Put(ctx, "b", []string{"2"}, time.Minute)

	require.NoError(t, cache.Invalidate(ctx, "a", "b"))

	var v []string
	assert.False(t, cache.Get(ctx, "a", &v))
	assert.False(t, cache.Get(ctx, "b", &v))
}
