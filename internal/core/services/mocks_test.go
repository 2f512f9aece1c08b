package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

// --- Mock implementations ---

// mockIssuer implements driven.CredentialIssuer for testing.
type mockIssuer struct {
	mu       sync.Mutex
	cred     domain.Credential
	err      error
	calls    int
	lifetime time.Duration
}

func newMockIssuer(token string) *mockIssuer {
	return &mockIssuer{
		cred:     domain.Credential{Token: token, Kind: domain.CredentialApp},
		lifetime: 10 * time.Minute,
	}
}

func (m *mockIssuer) Issue(_ context.Context) (*domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	cred := m.cred
	cred.IssuedAt = time.Now()
	cred.ExpiresAt = cred.IssuedAt.Add(m.lifetime)
	return &cred, nil
}

func (m *mockIssuer) Kind() domain.CredentialKind {
	return domain.CredentialApp
}

func (m *mockIssuer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockTokenProvider implements driven.TokenProvider for testing.
type mockTokenProvider struct {
	mu    sync.Mutex
	token string
	err   error
	calls int
}

func (m *mockTokenProvider) GetToken(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.token, m.err
}

// mockCodeHost implements driven.CodeHost for testing.
type mockCodeHost struct {
	mu sync.Mutex

	repos     []domain.Repository
	searchErr error

	matches []domain.CodeMatch
	codeErr error

	details    map[string]*domain.RepositoryDetails
	detailErrs map[string]error

	repoSearches int
	codeSearches int
	detailCalls  []string
	tokens       []string
}

func (m *mockCodeHost) SearchRepositories(
	_ context.Context, token string, _ domain.SearchQuery,
) ([]domain.Repository, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.repoSearches++
	m.tokens = append(m.tokens, token)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.repos, nil
}

func (m *mockCodeHost) SearchCode(
	_ context.Context, token string, _ domain.SearchQuery,
) ([]domain.CodeMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codeSearches++
	m.tokens = append(m.tokens, token)
	if m.codeErr != nil {
		return nil, m.codeErr
	}
	return m.matches, nil
}

func (m *mockCodeHost) GetRepositoryDetails(
	_ context.Context, _, owner, name string,
) (*domain.RepositoryDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	full := owner + "/" + name
	m.detailCalls = append(m.detailCalls, full)
	if err, ok := m.detailErrs[full]; ok {
		return nil, err
	}
	if d, ok := m.details[full]; ok {
		return d, nil
	}
	return &domain.RepositoryDetails{}, nil
}

// totalCalls returns the number of upstream calls of any kind.
func (m *mockCodeHost) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.repoSearches + m.codeSearches + len(m.detailCalls)
}

// failingKVStore implements driven.KeyValueStore and fails every call.
type failingKVStore struct {
	getErr error
	putErr error
	puts   int
}

var errKVDown = errors.New("kv unavailable")

func (s *failingKVStore) Get(_ context.Context, _ string) (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return "", false, nil
}

func (s *failingKVStore) Put(_ context.Context, _, _ string, _ time.Duration) error {
	s.puts++
	return s.putErr
}

func (s *failingKVStore) Delete(_ context.Context, _ string) error {
	return s.putErr
}

func (s *failingKVStore) Close() error {
	return nil
}

// recordingKVStore wraps a map and records every Put TTL.
type recordingKVStore struct {
	mu     sync.Mutex
	values map[string]string
	ttls   map[string]time.Duration
	gets   int
	puts   int
}

func newRecordingKVStore() *recordingKVStore {
	return &recordingKVStore{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (s *recordingKVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *recordingKVStore) Put(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	s.values[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *recordingKVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.ttls, key)
	return nil
}

func (s *recordingKVStore) Close() error {
	return nil
}
