// internal/broadcast/hub_test.go
package broadcast

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aramdraft/aramdraft/internal/engine"
)

func testHub(members map[string][]string) *Hub {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHub(func(roomCode string) []string { return members[roomCode] }, log)
}

func recv(t *testing.T, c *Client) engine.Event {
	t.Helper()
	select {
	case data := <-c.Send:
		var ev engine.Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	default:
		t.Fatal("expected a queued event")
		return engine.Event{}
	}
}

func TestSendToDeliversPrivately(t *testing.T) {
	h := testHub(nil)
	a := h.Register("a")
	b := h.Register("b")

	h.SendTo("a", engine.Event{Type: "room-state"})

	ev := recv(t, a)
	assert.Equal(t, "room-state", ev.Type)
	assert.Empty(t, b.Send)

	// Unknown connections are skipped quietly.
	h.SendTo("ghost", engine.Event{Type: "room-state"})
}

func TestBroadcastReachesRoomMembersOnly(t *testing.T) {
	h := testHub(map[string][]string{"ROOM01": {"a", "b"}})
	a := h.Register("a")
	b := h.Register("b")
	c := h.Register("c")

	h.Broadcast("ROOM01", engine.Event{Type: "player-joined"})

	assert.Equal(t, "player-joined", recv(t, a).Type)
	assert.Equal(t, "player-joined", recv(t, b).Type)
	assert.Empty(t, c.Send)
}

func TestBroadcastSkipsDepartedMember(t *testing.T) {
	// The registry may still list a connection whose outbox is gone.
	h := testHub(map[string][]string{"ROOM01": {"a", "b"}})
	a := h.Register("a")

	h.Broadcast("ROOM01", engine.Event{Type: "player-left"})
	assert.Equal(t, "player-left", recv(t, a).Type)
}

func TestFullOutboxDropsEvent(t *testing.T) {
	h := testHub(nil)
	a := h.Register("a")

	for i := 0; i < cap(a.Send)+5; i++ {
		h.SendTo("a", engine.Event{Type: "player-ready-updated"})
	}
	assert.Len(t, a.Send, cap(a.Send), "overflow must drop, not block")
}

func TestUnregisterClosesOutbox(t *testing.T) {
	h := testHub(nil)
	a := h.Register("a")
	h.Unregister("a")

	_, open := <-a.Send
	assert.False(t, open)

	// Double unregister and sends after teardown are no-ops.
	h.Unregister("a")
	h.SendTo("a", engine.Event{Type: "room-state"})
}
