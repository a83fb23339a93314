package cart

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/techsolutions/storefront/internal/events"
	"github.com/techsolutions/storefront/internal/obs"
)

// Persister writes cart snapshots to durable key-value storage and reads
// them back. A missing key is not an error; found reports presence.
type Persister interface {
	Save(ctx context.Context, key string, cart Cart) error
	Load(ctx context.Context, key string) (snapshot Cart, found bool, err error)
	Delete(ctx context.Context, key string) error
}

// Store owns a single Cart value. It is the only writer; consumers read
// snapshots and never mutate lines directly. Every mutation recomputes the
// derived totals, persists the result, and emits a bus event.
type Store struct {
	key     string
	persist Persister
	bus     *events.Bus
	log     zerolog.Logger

	// guards cart and restored; mutations and their persistence writes are
	// serialized so each one observes the latest committed state and the
	// durable snapshot is always the latest committed cart.
	mu       sync.Mutex
	cart     Cart
	restored bool
}

// NewStore constructs a store holding the empty cart.
func NewStore(key string, persist Persister, bus *events.Bus, log zerolog.Logger) *Store {
	return &Store{
		key:     key,
		persist: persist,
		bus:     bus,
		log:     log.With().Str("cart_key", key).Logger(),
		cart:    Empty(),
	}
}

// Key returns the durable-storage key this store writes under.
func (s *Store) Key() string {
	if s == nil {
		return ""
	}
	return s.key
}

// Snapshot returns the current cart value. The returned lines are a copy.
func (s *Store) Snapshot() Cart {
	if s == nil {
		return Empty()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Cart {
	snap := s.cart
	snap.Lines = cloneLines(s.cart.Lines)
	return snap
}

// AddItem merges the entry into the cart: an existing line's quantity grows
// by qty, otherwise a new line is appended. qty below 1 is clamped to 1.
func (s *Store) AddItem(ctx context.Context, entry Entry, qty int) Cart {
	if qty < 1 {
		qty = 1
	}
	return s.mutate(ctx, events.TopicCartUpdated, "add_item", func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID == entry.ID {
				lines[i].Quantity += qty
				return lines
			}
		}
		return append(lines, Line{
			ID:        entry.ID,
			Name:      entry.Name,
			PriceText: entry.PriceText,
			UnitPrice: entry.UnitPrice,
			ImageURL:  entry.ImageURL,
			Kind:      entry.Kind,
			Quantity:  qty,
		})
	})
}

// RemoveItem deletes the line matching id. Removing an unknown id is a
// no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, id int64) Cart {
	return s.mutate(ctx, events.TopicCartUpdated, "remove_item", func(lines []Line) []Line {
		out := lines[:0]
		for _, line := range lines {
			if line.ID != id {
				out = append(out, line)
			}
		}
		return out
	})
}

// UpdateQuantity sets the line's quantity to an absolute value. A quantity
// of zero or below behaves exactly as RemoveItem. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, id int64, qty int) Cart {
	if qty <= 0 {
		return s.RemoveItem(ctx, id)
	}
	return s.mutate(ctx, events.TopicCartUpdated, "update_quantity", func(lines []Line) []Line {
		for i := range lines {
			if lines[i].ID == id {
				lines[i].Quantity = qty
				break
			}
		}
		return lines
	})
}

// Clear resets the cart to the empty state.
func (s *Store) Clear(ctx context.Context) Cart {
	return s.mutate(ctx, events.TopicCartCleared, "clear", func([]Line) []Line {
		return []Line{}
	})
}

// Load replaces the cart with the snapshot verbatim, without recomputation:
// the snapshot already carries consistent derived fields because it was
// produced by a prior totals pass before being persisted. No write-back and
// no event is triggered.
func (s *Store) Load(snapshot Cart) {
	if s == nil {
		return
	}
	if snapshot.Lines == nil {
		snapshot.Lines = []Line{}
	}
	s.mu.Lock()
	s.cart = snapshot
	s.restored = true
	s.mu.Unlock()
}

// Restore reads the persisted snapshot and loads it, at most once per store.
// Missing or malformed payloads leave the cart empty; the failure is logged,
// never surfaced. A mutation that reaches the store first triggers the same
// restore itself, so the persisted cart can never be overwritten by a
// restore arriving late.
func (s *Store) Restore(ctx context.Context) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.restoreLocked(ctx)
	s.mu.Unlock()
}

func (s *Store) restoreLocked(ctx context.Context) {
	if s.restored {
		return
	}
	s.restored = true
	if s.persist == nil {
		return
	}
	snapshot, found, err := s.persist.Load(ctx, s.key)
	if err != nil {
		s.log.Warn().Err(err).Msg("discarding persisted cart")
		return
	}
	if !found {
		return
	}
	if snapshot.Lines == nil {
		snapshot.Lines = []Line{}
	}
	s.cart = snapshot
}

func (s *Store) mutate(ctx context.Context, topic, op string, fn func([]Line) []Line) Cart {
	if s == nil {
		return Empty()
	}
	s.mu.Lock()
	s.restoreLocked(ctx)
	s.cart = calculateTotals(fn(cloneLines(s.cart.Lines)))
	next := s.snapshotLocked()
	if s.persist != nil {
		// The write happens under the lock: the next mutation cannot start
		// (and cannot persist) until this snapshot is durable, so snapshots
		// reach storage in mutation order.
		if err := s.persist.Save(ctx, s.key, next); err != nil {
			// The mutation itself has committed; a failed write must not
			// undo it, so it is surfaced as a warning only.
			obs.IncCartPersistFailure()
			s.log.Warn().Err(err).Str("op", op).Msg("persist cart")
		}
	}
	s.mu.Unlock()

	obs.IncCartMutation(op)

	if s.bus != nil {
		payload := map[string]any{
			"itemCount": next.ItemCount,
			"total":     next.Total,
		}
		if _, err := s.bus.Emit(ctx, topic, s.key, payload); err != nil {
			s.log.Warn().Err(err).Str("topic", topic).Msg("emit cart event")
		}
	}
	return next
}
