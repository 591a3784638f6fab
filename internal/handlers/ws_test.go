// internal/handlers/ws_test.go
package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aramdraft/aramdraft/internal/broadcast"
	"github.com/aramdraft/aramdraft/internal/engine"
	"github.com/aramdraft/aramdraft/internal/models"
	"github.com/aramdraft/aramdraft/internal/room"
)

type emptyCatalog struct{}

func (emptyCatalog) Champions() []models.ChampionSummary { return nil }

type nullStore struct{}

func (nullStore) InsertMatch(context.Context, *models.Match) error { return nil }

func drainEvent(t *testing.T, c *broadcast.Client) engine.Event {
	t.Helper()
	select {
	case data := <-c.Send:
		var ev engine.Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	default:
		t.Fatal("expected an event in the outbox")
		return engine.Event{}
	}
}

func TestDispatchRoutesToEngine(t *testing.T) {
	log := testLogger()
	rooms := room.NewStore()
	conns := room.NewConnStore()
	hub := broadcast.NewHub(conns.ConnsInRoom, log)
	eng := engine.New(rooms, conns, emptyCatalog{}, nullStore{}, hub, log)

	client := hub.Register("c1")
	defer hub.Unregister("c1")

	rm, err := rooms.Create("")
	require.NoError(t, err)

	dispatch(ClientMessage{Type: MsgJoinRoom, RoomCode: rm.Code, IsInitiator: true}, "c1", eng, hub)
	ev := drainEvent(t, client)
	assert.Equal(t, engine.EvPlayerJoined, ev.Type)
	assert.Len(t, rm.Players, 1)

	dispatch(ClientMessage{Type: MsgLeaveRoom, RoomCode: rm.Code}, "c1", eng, hub)
	assert.Nil(t, rooms.Get(rm.Code))
}

func TestDispatchJoinUnknownRoom(t *testing.T) {
	log := testLogger()
	rooms := room.NewStore()
	conns := room.NewConnStore()
	hub := broadcast.NewHub(conns.ConnsInRoom, log)
	eng := engine.New(rooms, conns, emptyCatalog{}, nullStore{}, hub, log)

	client := hub.Register("c1")
	defer hub.Unregister("c1")

	dispatch(ClientMessage{Type: MsgJoinRoom, RoomCode: "ZZZZZZ", IsInitiator: true}, "c1", eng, hub)
	ev := drainEvent(t, client)
	assert.Equal(t, engine.EvRoomNotFound, ev.Type)
}

func TestDispatchUnknownType(t *testing.T) {
	log := testLogger()
	conns := room.NewConnStore()
	hub := broadcast.NewHub(conns.ConnsInRoom, log)

	client := hub.Register("c1")
	defer hub.Unregister("c1")

	dispatch(ClientMessage{Type: "self-destruct"}, "c1", nil, hub)
	ev := drainEvent(t, client)
	assert.Equal(t, engine.EvError, ev.Type)
}
