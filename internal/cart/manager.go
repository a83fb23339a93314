package cart

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/techsolutions/storefront/internal/events"
)

// DefaultKeyPrefix namespaces persisted carts in the key-value store.
const DefaultKeyPrefix = "storefront:cart:"

// Manager hands out one Store per shopper. Stores are created lazily and
// restored from durable storage on first touch, so a returning shopper sees
// the cart a previous session persisted.
type Manager struct {
	Persist   Persister
	Bus       *events.Bus
	Log       zerolog.Logger
	KeyPrefix string

	mu     sync.Mutex
	stores map[string]*Store
}

func (m *Manager) prefix() string {
	if m == nil || m.KeyPrefix == "" {
		return DefaultKeyPrefix
	}
	return m.KeyPrefix
}

// Ensure returns the store for the given cart id, minting a fresh id when
// none is supplied. The bool reports whether the id already had a store in
// this process.
func (m *Manager) Ensure(ctx context.Context, id string) (*Store, string, bool) {
	if m == nil {
		return nil, "", false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	m.mu.Lock()
	if m.stores == nil {
		m.stores = make(map[string]*Store)
	}
	if store, ok := m.stores[id]; ok {
		m.mu.Unlock()
		return store, id, true
	}
	store := NewStore(m.prefix()+id, m.Persist, m.Bus, m.Log)
	m.stores[id] = store
	m.mu.Unlock()

	store.Restore(ctx)
	return store, id, false
}

// Lookup returns the store for id only if it already exists in this process
// or has a persisted snapshot.
func (m *Manager) Lookup(ctx context.Context, id string) (*Store, bool) {
	if m == nil || strings.TrimSpace(id) == "" {
		return nil, false
	}
	m.mu.Lock()
	store, ok := m.stores[id]
	m.mu.Unlock()
	if ok {
		return store, true
	}
	if m.Persist == nil {
		return nil, false
	}
	if _, found, err := m.Persist.Load(ctx, m.prefix()+id); err != nil || !found {
		return nil, false
	}
	store, _, _ = m.Ensure(ctx, id)
	return store, true
}
