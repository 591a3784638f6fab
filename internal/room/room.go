// internal/room/room.go
package room

import (
	"github.com/google/uuid"

	"github.com/aramdraft/aramdraft/internal/models"
)

// Room is a single two-participant draft session. It holds at most one
// initiator and one joiner at any time. Rooms are volatile: only generated
// matches outlive the process.
type Room struct {
	Code   string
	Name   string
	Status models.RoomStatus

	// MatchUUID is set only while Status == StatusGenerated.
	MatchUUID uuid.UUID
	BlueTeam  []models.ChampionSummary
	RedTeam   []models.ChampionSummary

	// Players maps live connection ID -> occupied slot.
	Players map[string]*models.Player
}

// New constructs a waiting room with no players. An empty name falls back to
// the default placeholder.
func New(code, name string) *Room {
	if name == "" {
		name = models.DefaultRoomName
	}
	return &Room{
		Code:    code,
		Name:    name,
		Status:  models.StatusWaiting,
		Players: make(map[string]*models.Player),
	}
}

// PlayerByRole returns the connection ID and player currently holding the
// given role, or "" and nil if the slot is empty.
func (r *Room) PlayerByRole(role models.Role) (string, *models.Player) {
	for connID, p := range r.Players {
		if p.Role == role {
			return connID, p
		}
	}
	return "", nil
}

// HasRole reports whether the given role slot is occupied.
func (r *Room) HasRole(role models.Role) bool {
	_, p := r.PlayerByRole(role)
	return p != nil
}

// AllReady reports whether every present player is ready.
func (r *Room) AllReady() bool {
	if len(r.Players) == 0 {
		return false
	}
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// ReadyCount returns how many present players are ready.
func (r *Room) ReadyCount() int {
	n := 0
	for _, p := range r.Players {
		if p.Ready {
			n++
		}
	}
	return n
}

// Roster projects the current players onto their wire representation.
// Order is not significant; both clients render by team.
func (r *Room) Roster() []models.PlayerView {
	views := make([]models.PlayerView, 0, len(r.Players))
	for _, p := range r.Players {
		views = append(views, p.View())
	}
	return views
}

// Reset returns the room to a fresh waiting round: match fields cleared,
// every ready flag lowered. Player slots and the room code are preserved.
func (r *Room) Reset() {
	r.Status = models.StatusWaiting
	r.MatchUUID = uuid.Nil
	r.BlueTeam = nil
	r.RedTeam = nil
	for _, p := range r.Players {
		p.Ready = false
	}
}
