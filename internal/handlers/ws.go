// internal/handlers/ws.go
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aramdraft/aramdraft/internal/broadcast"
	"github.com/aramdraft/aramdraft/internal/engine"
)

// ClientMessage is the JSON structure received over the draft WebSocket.
type ClientMessage struct {
	Type        string `json:"type"`
	RoomCode    string `json:"roomCode"`
	IsInitiator bool   `json:"isInitiator"`
}

// Inbound event types consumed by the coordination engine. Disconnect is
// implicit: the channel tearing down, no payload.
const (
	MsgJoinRoom     = "join-room"
	MsgPlayerReady  = "player-ready"
	MsgLeaveRoom    = "leave-room"
	MsgRestartMatch = "restart-match"
)

// WSHandler upgrades the connection, registers its outbox with the hub and
// pumps inbound events into the engine until the socket closes. Teardown
// counts as a disconnect event, which arms the initiator grace timer.
func WSHandler(log *logrus.Logger, eng *engine.Engine, hub *broadcast.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"draft"},
			OriginPatterns: []string{"*"}, // Adjust in production
		})
		if err != nil {
			log.Warnf("websocket accept error: %v", err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler finished")

		if c.Subprotocol() != "draft" {
			c.Close(BadSubprotocolError, "client must speak the draft subprotocol")
			return
		}

		connID := uuid.New().String()
		client := hub.Register(connID)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		log.WithFields(logrus.Fields{"conn": connID, "remote": r.RemoteAddr}).
			Info("websocket connected")

		go writePump(ctx, c, client, log)

		readPump(ctx, c, connID, eng, hub, log)

		// Implicit disconnect: remove the player, arm the grace timer if
		// this was the initiator, then drop the outbox.
		eng.Disconnect(connID)
		hub.Unregister(connID)
		log.WithField("conn", connID).Info("websocket disconnected")
	}
}

// readPump parses inbound messages and dispatches them to the engine.
func readPump(ctx context.Context, c *websocket.Conn, connID string, eng *engine.Engine, hub *broadcast.Hub, log *logrus.Logger) {
	for {
		typ, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return
			}
			if strings.Contains(err.Error(), "context canceled") {
				return
			}
			log.WithField("conn", connID).Warnf("read error: %v (close status %d)", err, status)
			return
		}
		if typ != websocket.MessageText {
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.WithField("conn", connID).Warnf("invalid json: %v", err)
			hub.SendTo(connID, engine.Event{Type: engine.EvError, Payload: engine.MessagePayload{Message: "invalid message format"}})
			continue
		}

		dispatch(msg, connID, eng, hub)
	}
}

// dispatch maps one inbound message onto the engine operation it names.
// Engine failures surface to clients as events from inside the engine, so
// the returned errors matter only for flow here.
func dispatch(msg ClientMessage, connID string, eng *engine.Engine, hub *broadcast.Hub) {
	switch msg.Type {
	case MsgJoinRoom:
		_ = eng.Join(connID, msg.RoomCode, msg.IsInitiator)
	case MsgPlayerReady:
		_ = eng.Ready(connID, msg.RoomCode)
	case MsgLeaveRoom:
		eng.Leave(connID, msg.RoomCode)
	case MsgRestartMatch:
		_ = eng.Restart(connID, msg.RoomCode)
	default:
		hub.SendTo(connID, engine.Event{Type: engine.EvError, Payload: engine.MessagePayload{Message: "unknown message type: " + msg.Type}})
	}
}

// writePump drains the hub outbox onto the socket and keeps the connection
// alive with periodic pings.
func writePump(ctx context.Context, c *websocket.Conn, client *broadcast.Client, log *logrus.Logger) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-client.Send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := c.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				log.WithField("conn", client.ID).Warnf("write failed: %v", err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
			err := c.Ping(pingCtx)
			cancel()
			if err != nil {
				log.WithField("conn", client.ID).Warnf("ping failed, assuming disconnect: %v", err)
				return
			}
		}
	}
}
