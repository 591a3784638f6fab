// internal/database/match.go
package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aramdraft/aramdraft/internal/models"
)

// ErrMatchNotFound is returned when no row exists for a UUID.
var ErrMatchNotFound = errors.New("match record not found")

// InsertMatch appends one completed match. Rows are append-only; nothing
// ever updates them afterwards.
func InsertMatch(ctx context.Context, m *models.Match) error {
	blue, err := json.Marshal(m.BlueTeam)
	if err != nil {
		return fmt.Errorf("marshaling blue team: %w", err)
	}
	red, err := json.Marshal(m.RedTeam)
	if err != nil {
		return fmt.Errorf("marshaling red team: %w", err)
	}

	q := `
	INSERT INTO matches (uuid, room_code, room_name, blue_team, red_team, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	return pgx.BeginTxFunc(ctx, DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, m.UUID, m.RoomCode, m.RoomName, blue, red, m.CreatedAt)
		return err
	})
}

// GetMatchByUUID fetches one match row.
func GetMatchByUUID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	q := `
	SELECT uuid, room_code, room_name, blue_team, red_team, created_at
	FROM matches
	WHERE uuid = $1
	`
	var (
		m    models.Match
		blue []byte
		red  []byte
	)
	err := DB.QueryRow(ctx, q, id).Scan(&m.UUID, &m.RoomCode, &m.RoomName, &blue, &red, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(blue, &m.BlueTeam); err != nil {
		return nil, fmt.Errorf("unmarshaling blue team: %w", err)
	}
	if err := json.Unmarshal(red, &m.RedTeam); err != nil {
		return nil, fmt.Errorf("unmarshaling red team: %w", err)
	}
	return &m, nil
}

// ListMatches returns one newest-first page of match rows plus the total
// row count for pagination.
func ListMatches(ctx context.Context, page, limit int) ([]models.Match, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int
	if err := DB.QueryRow(ctx, `SELECT COUNT(*) FROM matches`).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `
	SELECT uuid, room_code, room_name, blue_team, red_team, created_at
	FROM matches
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2
	`
	rows, err := DB.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0, limit)
	for rows.Next() {
		var (
			m    models.Match
			blue []byte
			red  []byte
		)
		if err := rows.Scan(&m.UUID, &m.RoomCode, &m.RoomName, &blue, &red, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal(blue, &m.BlueTeam); err != nil {
			return nil, 0, fmt.Errorf("unmarshaling blue team: %w", err)
		}
		if err := json.Unmarshal(red, &m.RedTeam); err != nil {
			return nil, 0, fmt.Errorf("unmarshaling red team: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, total, rows.Err()
}

// MatchRepo adapts the package-level persistence functions to the
// engine's MatchStore interface.
type MatchRepo struct{}

// InsertMatch implements engine.MatchStore.
func (MatchRepo) InsertMatch(ctx context.Context, m *models.Match) error {
	return InsertMatch(ctx, m)
}
