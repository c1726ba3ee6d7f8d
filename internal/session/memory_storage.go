package session

import (
	"context"
	"sync"
)

// MemoryStorage is a non-durable Storage for tests and redis-less
// development. State does not survive a process restart.
type MemoryStorage struct {
	mu           sync.Mutex
	identity     *Identity
	accessToken  string
	refreshToken string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Identity(_ context.Context) (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return nil, nil
	}
	copied := *m.identity
	return &copied, nil
}

func (m *MemoryStorage) AccessToken(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accessToken, nil
}

func (m *MemoryStorage) RefreshToken(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshToken, nil
}

func (m *MemoryStorage) SaveLogin(_ context.Context, identity *Identity, accessToken, refreshToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *identity
	m.identity = &copied
	m.accessToken = accessToken
	m.refreshToken = refreshToken
	return nil
}

func (m *MemoryStorage) SaveProfile(_ context.Context, identity *Identity, accessToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *identity
	m.identity = &copied
	m.accessToken = accessToken
	return nil
}

func (m *MemoryStorage) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.identity = nil
	m.accessToken = ""
	m.refreshToken = ""
	return nil
}
