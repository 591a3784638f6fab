// internal/engine/events.go
package engine

import (
	"github.com/aramdraft/aramdraft/internal/models"
)

// Outbound event types. Room-scoped events go to every connection bound to
// the room; private events go to exactly one connection. Delivery is
// fire-and-forget: a disconnected side misses the event and recovers from
// the room-state snapshot on its next join.
const (
	EvPlayerJoined      = "player-joined"
	EvPlayerReconnected = "player-reconnected"
	EvPlayerLeft        = "player-left"
	EvCreatorDisconnect = "creator-disconnected"
	EvReadyUpdated      = "player-ready-updated"
	EvMatchGenerated    = "match-generated" // private
	EvMatchRestarted    = "match-restarted"
	EvRoomDisbanded     = "room-disbanded"
	EvRoomNotFound      = "room-not-found"
	EvRoomState         = "room-state" // private
	EvError             = "error"
)

// Event is one outbound notification. Payload is a typed struct below; the
// transport layer flattens it into the wire message.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// RosterPayload accompanies player-joined and player-reconnected: the full
// current roster plus the joining player's own slot.
type RosterPayload struct {
	Players     []models.PlayerView `json:"players"`
	PlayerCount int                 `json:"playerCount"`
	IsCreator   bool                `json:"isCreator"`
	Team        string              `json:"team"`
}

// LeftPayload accompanies player-left.
type LeftPayload struct {
	Players     []models.PlayerView `json:"players"`
	Team        string              `json:"team"`
	IsCreator   bool                `json:"isCreator"`
	PlayerCount int                 `json:"playerCount"`
}

// ReadyPayload accompanies player-ready-updated.
type ReadyPayload struct {
	Team       string `json:"team"`
	AllReady   bool   `json:"allReady"`
	ReadyCount int    `json:"readyCount"`
	TotalCount int    `json:"totalCount"`
}

// GeneratedPayload accompanies match-generated. Each side receives only its
// own pool; the opposing pool is never sent to a side not entitled to it.
type GeneratedPayload struct {
	MatchUUID string                   `json:"matchUuid"`
	Team      string                   `json:"team"`
	Champions []models.ChampionSummary `json:"champions"`
	RoomID    string                   `json:"roomId"`
}

// RestartPayload accompanies match-restarted.
type RestartPayload struct {
	Message     string              `json:"message"`
	Players     []models.PlayerView `json:"players"`
	PlayerCount int                 `json:"playerCount"`
}

// MessagePayload is the generic payload for room-disbanded, room-not-found,
// creator-disconnected and error events.
type MessagePayload struct {
	Message string `json:"message"`
}

// StatePayload is the authoritative private snapshot pushed to a connection
// shortly after it joins, so a late joiner learns room state without racing
// the join broadcast.
type StatePayload struct {
	RoomID    string                   `json:"roomId"`
	Status    models.RoomStatus        `json:"status"`
	Players   []models.PlayerView      `json:"players"`
	MatchUUID string                   `json:"matchUuid,omitempty"`
	BlueTeam  []models.ChampionSummary `json:"blueTeam"`
	RedTeam   []models.ChampionSummary `json:"redTeam"`
}

func errorEvent(msg string) Event {
	return Event{Type: EvError, Payload: MessagePayload{Message: msg}}
}
