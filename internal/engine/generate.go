// internal/engine/generate.go
package engine

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/aramdraft/aramdraft/internal/models"
	"github.com/aramdraft/aramdraft/internal/room"
)

// PoolSize is how many champions each side receives.
const PoolSize = 15

// generateMatch draws two disjoint random pools, flips the room to
// generated, hands the row to the match store and delivers each side its
// own pool privately. Caller holds the engine lock; flipping the status
// here is what prevents a second ready event from re-entering.
func (e *Engine) generateMatch(r *room.Room) {
	catalog := e.catalog.Champions()
	if len(catalog) < 2*PoolSize {
		// The room stays waiting with both ready flags up; only a
		// restart lets the pair retry.
		e.cast.Broadcast(r.Code, errorEvent("champion catalog unavailable, cannot generate match"))
		e.log.WithFields(logrus.Fields{"room": r.Code, "catalog": len(catalog)}).
			Warn("catalog too small to generate match")
		return
	}

	// One shuffle of a copy yields both draws: the first 15 for blue, the
	// next 15 for red. Disjoint by construction.
	pool := make([]models.ChampionSummary, len(catalog))
	copy(pool, catalog)
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	blue := append([]models.ChampionSummary(nil), pool[:PoolSize]...)
	red := append([]models.ChampionSummary(nil), pool[PoolSize:2*PoolSize]...)

	matchID := uuid.New()
	r.Status = models.StatusGenerated
	r.MatchUUID = matchID
	r.BlueTeam = blue
	r.RedTeam = red

	m := &models.Match{
		UUID:      matchID,
		RoomCode:  r.Code,
		RoomName:  r.Name,
		BlueTeam:  blue,
		RedTeam:   red,
		CreatedAt: time.Now(),
	}
	// Durable write is detached; the serialized event path never waits on it.
	go e.persistMatch(m)

	for _, side := range []models.Role{models.RoleInitiator, models.RoleJoiner} {
		connID, p := r.PlayerByRole(side)
		if p == nil {
			// No live connection for this side; its pool stays
			// retrievable via the room-state snapshot on reconnect.
			continue
		}
		champs := blue
		if side == models.RoleJoiner {
			champs = red
		}
		e.cast.SendTo(connID, Event{Type: EvMatchGenerated, Payload: GeneratedPayload{
			MatchUUID: matchID.String(),
			Team:      string(side.Side()),
			Champions: champs,
			RoomID:    r.Code,
		}})
	}

	e.log.WithFields(logrus.Fields{"room": r.Code, "match": matchID}).Info("match generated")
}

// persistMatch writes the row best-effort. On completion it re-checks
// whether the room still references this match before claiming success for
// the live round; a restart or disband in the meantime does not retract the
// row, it only means the room has moved on.
func (e *Engine) persistMatch(m *models.Match) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := e.store.InsertMatch(ctx, m); err != nil {
		e.log.WithFields(logrus.Fields{"match": m.UUID, "room": m.RoomCode}).
			WithError(err).Error("failed to persist match")
		return
	}

	e.mu.Lock()
	r := e.rooms.Get(m.RoomCode)
	current := r != nil && r.MatchUUID == m.UUID
	e.mu.Unlock()

	fields := logrus.Fields{"match": m.UUID, "room": m.RoomCode}
	if current {
		e.log.WithFields(fields).Info("match persisted")
	} else {
		e.log.WithFields(fields).Info("match persisted after room moved on")
	}
}
