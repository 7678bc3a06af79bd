// internal/cart/store.go
package cart

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrBadQuantity = errors.New("cart: quantity must be at least 1")
	ErrNotInCart   = errors.New("cart: line not found")
)

// Key identifies one cart line. The same product in a different size or
// color is a separate line.
type Key struct {
	ProductID string
	Size      string
	Color     string
}

// Remote persists cart mutations. The gorm-backed service implements it;
// tests swap in a failing stub.
type Remote interface {
	SaveLine(ctx context.Context, key Key, quantity int) error
	DeleteLine(ctx context.Context, key Key) error
}

// Store is one user's cart held in memory, mirrored to a Remote. Mutations
// apply locally first and revert if the remote write fails, so the snapshot
// never drifts ahead of what is persisted.
type Store struct {
	mu     sync.Mutex
	remote Remote
	lines  map[Key]int
}

func NewStore(remote Remote) *Store {
	return &Store{
		remote: remote,
		lines:  make(map[Key]int),
	}
}

// Load replaces the snapshot, typically from a fresh remote read.
func (s *Store) Load(lines map[Key]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[Key]int, len(lines))
	for k, q := range lines {
		if q > 0 {
			s.lines[k] = q
		}
	}
}

// Add merges quantity into an existing line or creates one.
func (s *Store) Add(ctx context.Context, key Key, quantity int) error {
	if quantity < 1 {
		return ErrBadQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.lines[key]
	next := prev + quantity
	s.lines[key] = next

	if err := s.remote.SaveLine(ctx, key, next); err != nil {
		if existed {
			s.lines[key] = prev
		} else {
			delete(s.lines, key)
		}
		return err
	}
	return nil
}

// SetQuantity overwrites a line's quantity. Lowering it to zero is Remove's
// job; this rejects anything below one.
func (s *Store) SetQuantity(ctx context.Context, key Key, quantity int) error {
	if quantity < 1 {
		return ErrBadQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.lines[key]
	if !existed {
		return ErrNotInCart
	}

	s.lines[key] = quantity
	if err := s.remote.SaveLine(ctx, key, quantity); err != nil {
		s.lines[key] = prev
		return err
	}
	return nil
}

// Remove deletes a line.
func (s *Store) Remove(ctx context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.lines[key]
	if !existed {
		return ErrNotInCart
	}

	delete(s.lines, key)
	if err := s.remote.DeleteLine(ctx, key); err != nil {
		s.lines[key] = prev
		return err
	}
	return nil
}

// Quantity reports a line's current quantity, zero when absent.
func (s *Store) Quantity(key Key) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines[key]
}

// Snapshot copies the current lines.
func (s *Store) Snapshot() map[Key]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Key]int, len(s.lines))
	for k, q := range s.lines {
		out[k] = q
	}
	return out
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}
