// internal/room/conn_store.go
package room

import (
	"sync"

	"github.com/aramdraft/aramdraft/internal/models"
)

// Binding associates a live connection with the room and role it occupies.
type Binding struct {
	RoomCode string
	Role     models.Role
}

// ConnStore is the process-wide connection registry: pure bookkeeping from
// transient connection IDs to room bindings. It never validates room
// existence; callers check against the room registry.
type ConnStore struct {
	mu    sync.Mutex
	conns map[string]Binding
}

// NewConnStore initializes an empty connection registry.
func NewConnStore() *ConnStore {
	return &ConnStore{conns: make(map[string]Binding)}
}

// Bind records that connID is attached to roomCode under the given role,
// replacing any previous binding for that connection.
func (s *ConnStore) Bind(connID, roomCode string, role models.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[connID] = Binding{RoomCode: roomCode, Role: role}
}

// Resolve returns the binding for a connection and whether one exists.
func (s *ConnStore) Resolve(connID string) (Binding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.conns[connID]
	return b, ok
}

// ConnsInRoom lists the connection IDs currently bound to a room code.
func (s *ConnStore) ConnsInRoom(roomCode string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for id, b := range s.conns {
		if b.RoomCode == roomCode {
			ids = append(ids, id)
		}
	}
	return ids
}

// UnbindRoom removes every binding pointing at a room code. Called when a
// room is disbanded so surviving connections do not keep stale bindings
// until their sockets close.
func (s *ConnStore) UnbindRoom(roomCode string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, b := range s.conns {
		if b.RoomCode == roomCode {
			delete(s.conns, id)
		}
	}
}

// Unbind removes a connection's binding. Unknown IDs are a no-op.
func (s *ConnStore) Unbind(connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, connID)
}
