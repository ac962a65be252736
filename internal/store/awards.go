package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/abhisek/wreckdiver/internal/game"
	"github.com/abhisek/wreckdiver/internal/progress"
)

// awardRepo implements AwardRepo on raw SQL.
type awardRepo struct {
	db *sql.DB
}

func (r *awardRepo) Record(ctx context.Context, a progress.Achievement) error {
	var gameType any
	if a.GameType != "" {
		gameType = string(a.GameType)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO achievement_awards (id, name, description, game_type, earned_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		a.ID, a.Name, a.Description, gameType,
		a.EarnedDate.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record award: %w", err)
	}
	return nil
}

func (r *awardRepo) All(ctx context.Context) ([]progress.Achievement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, game_type, earned_at
		 FROM achievement_awards ORDER BY earned_at`)
	if err != nil {
		return nil, fmt.Errorf("query awards: %w", err)
	}
	defer rows.Close()

	var out []progress.Achievement
	for rows.Next() {
		var a progress.Achievement
		var gameType sql.NullString
		var earnedAt string
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &gameType, &earnedAt); err != nil {
			return nil, err
		}
		if gameType.Valid {
			a.GameType = game.Type(gameType.String)
		}
		t, err := time.Parse(time.RFC3339Nano, earnedAt)
		if err != nil {
			return nil, fmt.Errorf("parse earned_at: %w", err)
		}
		a.EarnedDate = t
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *awardRepo) EarnedIDs(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM achievement_awards`)
	if err != nil {
		return nil, fmt.Errorf("query award ids: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
