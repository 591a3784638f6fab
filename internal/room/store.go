// internal/room/store.go
package room

import (
	"fmt"
	"sync"
)

// Store is the process-wide room registry, keyed by room code. Rooms exist
// only in memory; nothing here survives a restart.
type Store struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewStore initializes an empty room registry.
func NewStore() *Store {
	return &Store{rooms: make(map[string]*Room)}
}

// Create generates a code, constructs a waiting room and inserts it.
// Freshly generated codes are re-rolled on collision with a live room
// rather than overwriting it; after ten collisions creation fails.
func (s *Store) Create(name string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for range 10 {
		code, err := GenerateCode()
		if err != nil {
			return nil, fmt.Errorf("generating room code: %w", err)
		}
		if _, exists := s.rooms[code]; exists {
			continue
		}
		r := New(code, name)
		s.rooms[code] = r
		return r, nil
	}
	return nil, fmt.Errorf("exhausted room code generation attempts")
}

// Get returns the room for a code, or nil if absent.
func (s *Store) Get(code string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[code]
}

// Delete removes a room. Deleting an absent code is a no-op.
func (s *Store) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// Len reports how many rooms are live.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}
