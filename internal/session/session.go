// Package session gives each API client that asks for one an
// independent catalog, cloned from the shared base catalog. A client's
// remote-search merges then stay private to its session instead of
// leaking into everyone's recommendations.
package session

import (
	"sync"

	"github.com/google/uuid"

	"bookrec/internal/catalog"
)

type Manager struct {
	mu       sync.RWMutex
	base     *catalog.Catalog
	catalogs map[string]*catalog.Catalog
}

func NewManager(base *catalog.Catalog) *Manager {
	return &Manager{
		base:     base,
		catalogs: make(map[string]*catalog.Catalog),
	}
}

// Create clones the base catalog under a fresh session id.
func (m *Manager) Create() string {
	id := uuid.NewString()
	clone := m.base.Clone()

	m.mu.Lock()
	m.catalogs[id] = clone
	m.mu.Unlock()
	return id
}

// Resolve returns the catalog for the given session id, or the shared
// base catalog when the id is empty or unknown.
func (m *Manager) Resolve(id string) *catalog.Catalog {
	if id == "" {
		return m.base
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.catalogs[id]; ok {
		return c
	}
	return m.base
}

// Drop discards a session's catalog.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	delete(m.catalogs, id)
	m.mu.Unlock()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.catalogs)
}
