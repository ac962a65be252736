package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/wreckdiver/internal/game"
)

// sessionRepo implements SessionRepo on raw SQL.
type sessionRepo struct {
	db *sql.DB
}

const sessionColumns = "id, game_type, difficulty, status, score, max_score, completion_pct, start_time, end_time"

func (r *sessionRepo) Insert(ctx context.Context, rec game.SessionRecord) error {
	var end any
	if rec.EndTime != nil {
		end = rec.EndTime.UTC().Format(time.RFC3339Nano)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		string(rec.GameType),
		string(rec.Difficulty),
		string(rec.Status),
		rec.Score,
		rec.MaxScore,
		rec.CompletionPercentage,
		rec.StartTime.UTC().Format(time.RFC3339Nano),
		end,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*game.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return rec, nil
}

func (r *sessionRepo) ActiveByType(ctx context.Context, t game.Type) (*game.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE game_type = ? AND status = ? LIMIT 1`,
		string(t), string(game.StatusActive))
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query active session: %w", err)
	}
	return rec, nil
}

func (r *sessionRepo) ActiveBefore(ctx context.Context, cutoff time.Time) ([]game.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE status = ? AND start_time < ? ORDER BY start_time`,
		string(game.StatusActive), cutoff.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("query stale sessions: %w", err)
	}
	defer rows.Close()
	return collectSessions(rows)
}

func (r *sessionRepo) UpdateProgress(ctx context.Context, id string, score, maxScore, completionPct int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET score = ?, max_score = ?, completion_pct = ? WHERE id = ? AND status = ?`,
		score, maxScore, completionPct, id, string(game.StatusActive))
	if err != nil {
		return fmt.Errorf("update session progress: %w", err)
	}
	return requireRow(res, id)
}

func (r *sessionRepo) Finish(ctx context.Context, id string, status game.Status, score, maxScore, completionPct int, endedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET status = ?, score = ?, max_score = ?, completion_pct = ?, end_time = ?
		 WHERE id = ? AND status = ?`,
		string(status), score, maxScore, completionPct,
		endedAt.UTC().Format(time.RFC3339Nano), id, string(game.StatusActive))
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	return requireRow(res, id)
}

func (r *sessionRepo) All(ctx context.Context) ([]game.SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions ORDER BY start_time`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()
	return collectSessions(rows)
}

// ErrNoSuchSession is returned when an update targets a session that
// doesn't exist or is no longer active.
var ErrNoSuchSession = errors.New("no active session with that id")

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNoSuchSession, id)
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*game.SessionRecord, error) {
	var rec game.SessionRecord
	var gameType, difficulty, status, start string
	var end sql.NullString

	if err := row.Scan(&rec.ID, &gameType, &difficulty, &status,
		&rec.Score, &rec.MaxScore, &rec.CompletionPercentage, &start, &end); err != nil {
		return nil, err
	}

	rec.GameType = game.Type(gameType)
	rec.Difficulty = game.Difficulty(difficulty)
	rec.Status = game.Status(status)

	startTime, err := time.Parse(time.RFC3339Nano, start)
	if err != nil {
		return nil, fmt.Errorf("parse start_time: %w", err)
	}
	rec.StartTime = startTime

	if end.Valid {
		endTime, err := time.Parse(time.RFC3339Nano, end.String)
		if err != nil {
			return nil, fmt.Errorf("parse end_time: %w", err)
		}
		rec.EndTime = &endTime
	}
	return &rec, nil
}

func collectSessions(rows *sql.Rows) ([]game.SessionRecord, error) {
	var out []game.SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}
