// internal/engine/engine.go
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aramdraft/aramdraft/internal/models"
	"github.com/aramdraft/aramdraft/internal/room"
)

// Failure taxonomy. All of these are contained to the offending room and
// surfaced to the requesting connection as an event; none is fatal.
var (
	ErrRoomNotFound     = errors.New("room does not exist")
	ErrRoomFull         = errors.New("room is full")
	ErrPlayerNotFound   = errors.New("player is not in the room")
	ErrAlreadyGenerated = errors.New("match already generated")
	ErrIncompletePair   = errors.New("both creator and member must be present")
	ErrNotInitiator     = errors.New("only the room creator may do this")
	ErrCatalogTooSmall  = errors.New("champion catalog too small")
)

// Broadcaster delivers events to connections. Fire-and-forget: no
// acknowledgement, no retry, no persistence of undelivered events.
type Broadcaster interface {
	Broadcast(roomCode string, ev Event)
	SendTo(connID string, ev Event)
}

// Catalog supplies the cached champion catalog.
type Catalog interface {
	Champions() []models.ChampionSummary
}

// MatchStore appends completed matches durably. Writes are best-effort; a
// failed write is logged and never rolls back in-memory state.
type MatchStore interface {
	InsertMatch(ctx context.Context, m *models.Match) error
}

const (
	// snapshotDelay separates the join broadcast from the private
	// room-state push to the joining connection.
	snapshotDelay = 50 * time.Millisecond

	// gracePeriod is how long a disconnected initiator may reconnect
	// before the room is disbanded.
	gracePeriod = 5 * time.Second

	persistTimeout = 10 * time.Second
)

// Engine owns the room lifecycle state machine. Every inbound event
// (join, ready, restart, leave, disconnect) is serialized under one mutex,
// so registry mutations never race; deferred timers re-enter through the
// same lock and re-check state before acting.
type Engine struct {
	mu sync.Mutex

	rooms *room.Store
	conns *room.ConnStore

	catalog Catalog
	store   MatchStore
	cast    Broadcaster
	log     *logrus.Logger

	// after schedules a deferred event; replaced in tests.
	after func(d time.Duration, fn func())
}

// New wires the engine to its registries and collaborators.
func New(rooms *room.Store, conns *room.ConnStore, catalog Catalog, store MatchStore, cast Broadcaster, log *logrus.Logger) *Engine {
	return &Engine{
		rooms:   rooms,
		conns:   conns,
		catalog: catalog,
		store:   store,
		cast:    cast,
		log:     log,
		after:   func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

// Join attaches a connection to a room under the requested role. If that
// role already holds a slot this is a reconnection: the stale entry is
// replaced and its ready flag reset, room state untouched. Otherwise it is
// a fresh join. Either way the roster is broadcast and a private room-state
// snapshot is scheduled for the joining connection.
func (e *Engine) Join(connID, roomCode string, isInitiator bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.rooms.Get(roomCode)
	if r == nil {
		e.cast.SendTo(connID, Event{Type: EvRoomNotFound, Payload: MessagePayload{Message: "room does not exist"}})
		return ErrRoomNotFound
	}

	role := models.RoleJoiner
	if isInitiator {
		role = models.RoleInitiator
	}

	oldConnID, existing := r.PlayerByRole(role)
	if existing == nil && len(r.Players) >= 2 {
		e.cast.SendTo(connID, errorEvent("room is full"))
		return ErrRoomFull
	}

	reconnect := existing != nil
	if reconnect {
		// Replace, never duplicate: the stale entry for this role is
		// discarded along with its binding.
		delete(r.Players, oldConnID)
		e.conns.Unbind(oldConnID)
	}

	r.Players[connID] = &models.Player{ConnID: connID, Role: role, Ready: false}
	e.conns.Bind(connID, roomCode, role)

	payload := RosterPayload{
		Players:     r.Roster(),
		PlayerCount: len(r.Players),
		IsCreator:   isInitiator,
		Team:        string(role.Side()),
	}
	evType := EvPlayerJoined
	if reconnect {
		evType = EvPlayerReconnected
	}
	e.cast.Broadcast(roomCode, Event{Type: evType, Payload: payload})

	e.log.WithFields(logrus.Fields{
		"room":      roomCode,
		"conn":      connID,
		"role":      role,
		"reconnect": reconnect,
	}).Info("player joined room")

	// The authoritative snapshot follows the broadcast after a short
	// delay, privately, so the joiner never races it.
	e.after(snapshotDelay, func() { e.pushRoomState(connID, roomCode) })
	return nil
}

// RoomInfo reads the fields the join precheck needs under the event mutex,
// so HTTP goroutines never touch a Room concurrently with event handling.
func (e *Engine) RoomInfo(roomCode string) (name string, status models.RoomStatus, playerCount int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.rooms.Get(roomCode)
	if r == nil {
		return "", "", 0, false
	}
	return r.Name, r.Status, len(r.Players), true
}

// pushRoomState sends the private snapshot if the connection is still bound
// to the room when the deferred event fires.
func (e *Engine) pushRoomState(connID, roomCode string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.rooms.Get(roomCode)
	if r == nil {
		return
	}
	if _, ok := r.Players[connID]; !ok {
		return
	}

	snap := StatePayload{
		RoomID:   roomCode,
		Status:   r.Status,
		Players:  r.Roster(),
		BlueTeam: r.BlueTeam,
		RedTeam:  r.RedTeam,
	}
	if r.Status == models.StatusGenerated {
		snap.MatchUUID = r.MatchUUID.String()
	}
	e.cast.SendTo(connID, Event{Type: EvRoomState, Payload: snap})
}

// Ready raises the caller's ready flag. When both slots are occupied and
// both flags are up while the room is still waiting, the match is generated
// exactly once; flipping the status inside the same critical section
// prevents re-entry.
func (e *Engine) Ready(connID, roomCode string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.rooms.Get(roomCode)
	if r == nil {
		e.cast.SendTo(connID, errorEvent("room does not exist"))
		return ErrRoomNotFound
	}
	p, ok := r.Players[connID]
	if !ok {
		e.cast.SendTo(connID, errorEvent("player is not in the room"))
		return ErrPlayerNotFound
	}
	if r.Status == models.StatusGenerated {
		e.cast.SendTo(connID, errorEvent("match already generated, restart to play again"))
		return ErrAlreadyGenerated
	}
	if !r.HasRole(models.RoleInitiator) || !r.HasRole(models.RoleJoiner) {
		e.cast.SendTo(connID, errorEvent("both creator and member must be present before readying"))
		return ErrIncompletePair
	}

	p.Ready = true

	allReady := r.AllReady()
	e.cast.Broadcast(roomCode, Event{Type: EvReadyUpdated, Payload: ReadyPayload{
		Team:       string(p.Role.Side()),
		AllReady:   allReady,
		ReadyCount: r.ReadyCount(),
		TotalCount: len(r.Players),
	}})

	if allReady && len(r.Players) == 2 && r.Status == models.StatusWaiting {
		e.generateMatch(r)
	}
	return nil
}

// Restart returns a generated room to a fresh waiting round. Only the
// initiator may restart. Past match rows are unaffected.
func (e *Engine) Restart(connID, roomCode string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.rooms.Get(roomCode)
	if r == nil {
		e.cast.SendTo(connID, errorEvent("room does not exist"))
		return ErrRoomNotFound
	}
	p, ok := r.Players[connID]
	if !ok {
		e.cast.SendTo(connID, errorEvent("player is not in the room"))
		return ErrPlayerNotFound
	}
	if p.Role != models.RoleInitiator {
		e.cast.SendTo(connID, errorEvent("only the room creator may restart the match"))
		return ErrNotInitiator
	}

	r.Reset()

	e.cast.Broadcast(roomCode, Event{Type: EvMatchRestarted, Payload: RestartPayload{
		Message:     "match restarted, both sides must ready up again",
		Players:     r.Roster(),
		PlayerCount: len(r.Players),
	}})
	e.log.WithField("room", roomCode).Info("match restarted")
	return nil
}

// Leave removes a voluntarily departing player. An initiator's departure
// disbands the room immediately; a joiner leaving an otherwise empty room
// deletes it silently.
func (e *Engine) Leave(connID, roomCode string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	defer e.conns.Unbind(connID)

	r := e.rooms.Get(roomCode)
	if r == nil {
		return
	}
	p, ok := r.Players[connID]
	if !ok {
		return
	}
	delete(r.Players, connID)

	e.cast.Broadcast(roomCode, Event{Type: EvPlayerLeft, Payload: LeftPayload{
		Players:     r.Roster(),
		Team:        string(p.Role.Side()),
		IsCreator:   p.Role == models.RoleInitiator,
		PlayerCount: len(r.Players),
	}})

	if p.Role == models.RoleInitiator {
		e.cast.Broadcast(roomCode, Event{Type: EvRoomDisbanded, Payload: MessagePayload{Message: "the creator left, room disbanded"}})
		e.rooms.Delete(roomCode)
		e.conns.UnbindRoom(roomCode)
		e.log.WithField("room", roomCode).Info("room disbanded, creator left")
	} else if len(r.Players) == 0 {
		e.rooms.Delete(roomCode)
		e.log.WithField("room", roomCode).Info("room deleted, last player left")
	}
}

// Disconnect handles a connection teardown without an explicit leave. The
// removal and broadcast match Leave, but an initiator gets a grace period:
// the room survives until the timer fires and finds the initiator slot
// still empty.
func (e *Engine) Disconnect(connID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.conns.Resolve(connID)
	if !ok {
		return
	}
	e.conns.Unbind(connID)

	r := e.rooms.Get(b.RoomCode)
	if r == nil {
		return
	}
	p, ok := r.Players[connID]
	if !ok {
		return
	}
	delete(r.Players, connID)

	e.cast.Broadcast(b.RoomCode, Event{Type: EvPlayerLeft, Payload: LeftPayload{
		Players:     r.Roster(),
		Team:        string(p.Role.Side()),
		IsCreator:   p.Role == models.RoleInitiator,
		PlayerCount: len(r.Players),
	}})

	if p.Role == models.RoleInitiator {
		e.cast.Broadcast(b.RoomCode, Event{Type: EvCreatorDisconnect, Payload: MessagePayload{Message: "creator disconnected, waiting for reconnect"}})
		code := b.RoomCode
		e.after(gracePeriod, func() { e.expireGrace(code) })
		e.log.WithField("room", b.RoomCode).Info("creator disconnected, grace timer armed")
	} else if len(r.Players) == 0 {
		e.rooms.Delete(b.RoomCode)
	}
}

// expireGrace fires when an initiator's grace period elapses. The room may
// have been deleted or the initiator may have reconnected since the timer
// was armed, so current state decides, not captured state.
func (e *Engine) expireGrace(roomCode string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.rooms.Get(roomCode)
	if r == nil {
		return
	}
	if r.HasRole(models.RoleInitiator) {
		return
	}
	e.cast.Broadcast(roomCode, Event{Type: EvRoomDisbanded, Payload: MessagePayload{Message: "the creator did not reconnect, room disbanded"}})
	e.rooms.Delete(roomCode)
	e.conns.UnbindRoom(roomCode)
	e.log.WithField("room", roomCode).Info("room disbanded, creator never reconnected")
}
