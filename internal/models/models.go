// internal/models/models.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies which of the two slots a player occupies in a room.
// It is fixed for the lifetime of a player entry.
type Role string

const (
	RoleInitiator Role = "initiator"
	RoleJoiner    Role = "joiner"
)

// Side is the team assignment derived 1:1 from the role.
func (r Role) Side() Side {
	if r == RoleInitiator {
		return SideBlue
	}
	return SideRed
}

// Side names the two halves of a match.
type Side string

const (
	SideBlue Side = "blue"
	SideRed  Side = "red"
)

// RoomStatus is the room lifecycle state.
type RoomStatus string

const (
	StatusWaiting   RoomStatus = "waiting"
	StatusGenerated RoomStatus = "generated"
)

// DefaultRoomName is used when a room is created without a display name.
const DefaultRoomName = "Unnamed Room"

// Player is one occupied slot in a room, keyed by its live connection ID.
type Player struct {
	ConnID string
	Role   Role
	Ready  bool
}

// View projects a player onto the wire roster format.
func (p *Player) View() PlayerView {
	return PlayerView{
		Team:      string(p.Role.Side()),
		Ready:     p.Ready,
		IsCreator: p.Role == RoleInitiator,
	}
}

// PlayerView is the roster entry sent in join/leave/restart notifications.
type PlayerView struct {
	Team      string `json:"team"`
	Ready     bool   `json:"ready"`
	IsCreator bool   `json:"isCreator"`
}

// ChampionSummary is the projection of a catalog entry carried on pools and
// persisted match rows: identifier, display name, image file reference.
type ChampionSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// Match is the durable artifact of one successful ready-completion.
// Immutable once written; a restart starts a new round but never touches it.
type Match struct {
	UUID      uuid.UUID         `json:"uuid"`
	RoomCode  string            `json:"roomId"`
	RoomName  string            `json:"roomName"`
	BlueTeam  []ChampionSummary `json:"blueTeam"`
	RedTeam   []ChampionSummary `json:"redTeam"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Pagination describes one page of the match history listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes the envelope for a total row count.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}
