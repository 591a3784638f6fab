// internal/handlers/rooms.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/aramdraft/aramdraft/internal/engine"
	"github.com/aramdraft/aramdraft/internal/models"
	"github.com/aramdraft/aramdraft/internal/room"
)

// CreateRoomHandler builds a fresh waiting room and returns its code.
func CreateRoomHandler(rooms *room.Store, log *logrus.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RoomName string `json:"roomName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err.Error() != "EOF" {
			writeFailure(w, http.StatusBadRequest, "bad request payload")
			return
		}

		rm, err := rooms.Create(body.RoomName)
		if err != nil {
			log.WithError(err).Error("failed to create room")
			writeFailure(w, http.StatusInternalServerError, "failed to create room")
			return
		}

		log.WithFields(logrus.Fields{"room": rm.Code, "name": rm.Name}).Info("room created")
		writeJSON(w, http.StatusOK, apiResponse{
			"success":  true,
			"roomId":   rm.Code,
			"roomName": rm.Name,
			"message":  "room created",
		})
	}
}

// JoinPrecheckHandler validates a room code before the client opens its
// WebSocket: the room must exist, be waiting, and have a free slot. Room
// state is read through the engine so the check never races live events.
func JoinPrecheckHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			RoomID string `json:"roomId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeFailure(w, http.StatusBadRequest, "bad request payload")
			return
		}

		name, status, playerCount, ok := eng.RoomInfo(body.RoomID)
		if !ok {
			writeJSON(w, http.StatusOK, apiResponse{"success": false, "message": "room does not exist"})
			return
		}
		if status != models.StatusWaiting {
			writeJSON(w, http.StatusOK, apiResponse{"success": false, "message": "room already started or finished"})
			return
		}
		if playerCount >= 2 {
			writeJSON(w, http.StatusOK, apiResponse{"success": false, "message": "room is full"})
			return
		}

		writeJSON(w, http.StatusOK, apiResponse{
			"success":     true,
			"message":     "joined room",
			"roomName":    name,
			"roomStatus":  status,
			"playerCount": playerCount + 1,
		})
	}
}
