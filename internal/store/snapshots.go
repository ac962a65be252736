package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/wreckdiver/internal/game"
	"github.com/abhisek/wreckdiver/internal/progress"
)

// snapshotRepo implements SnapshotRepo on raw SQL, storing the per-game
// progress map as a JSON column.
type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *ProgressSnapshot) error {
	data, err := json.Marshal(snap.Progress)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO progress_snapshots (taken_at, overall_completion, certification_status, data)
		 VALUES (?, ?, ?, ?)`,
		snap.TakenAt.UTC().Format(time.RFC3339Nano),
		snap.OverallCompletion,
		string(snap.CertificationStatus),
		string(data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*ProgressSnapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, taken_at, overall_completion, certification_status, data
		 FROM progress_snapshots ORDER BY taken_at DESC, id DESC LIMIT 1`)

	var snap ProgressSnapshot
	var takenAt, status, data string
	err := row.Scan(&snap.ID, &takenAt, &snap.OverallCompletion, &status, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, takenAt)
	if err != nil {
		return nil, fmt.Errorf("parse taken_at: %w", err)
	}
	snap.TakenAt = t
	snap.CertificationStatus = progress.CertificationStatus(status)

	var prog map[game.Type]progress.GameProgress
	if err := json.Unmarshal([]byte(data), &prog); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	snap.Progress = prog
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM progress_snapshots WHERE id NOT IN (
			SELECT id FROM progress_snapshots ORDER BY taken_at DESC, id DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
