// Package session implements the session lifecycle: records are created
// active, updated while the diver plays, and finished exactly once as
// completed or abandoned. The progress engine consumes the resulting
// history read-only.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/wreckdiver/internal/game"
	"github.com/abhisek/wreckdiver/internal/store"
)

// DefaultTimeout is how long an active session may sit untouched before
// a sweep abandons it.
const DefaultTimeout = 30 * time.Minute

var (
	// ErrActiveSession means a game type already has an active session.
	// Only one attempt per game may run at a time; sweep or finish the
	// old one first.
	ErrActiveSession = errors.New("an active session already exists for this game type")

	// ErrInvalidInput means the game type or difficulty is not part of
	// the closed vocabulary.
	ErrInvalidInput = errors.New("invalid game type or difficulty")
)

// Service manages session lifecycle transitions.
type Service struct {
	sessions store.SessionRepo
	now      func() time.Time
}

// NewService creates a session lifecycle service.
func NewService(sessions store.SessionRepo) *Service {
	return &Service{sessions: sessions, now: time.Now}
}

// Start creates a new active session for the given game and difficulty.
// It enforces the single-active-session-per-game-type invariant.
func (s *Service) Start(ctx context.Context, t game.Type, d game.Difficulty) (*game.SessionRecord, error) {
	if !t.Valid() || !d.Valid() {
		return nil, ErrInvalidInput
	}

	existing, err := s.sessions.ActiveByType(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("check active session: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrActiveSession, existing.ID)
	}

	rec := game.SessionRecord{
		ID:         uuid.NewString(),
		GameType:   t,
		Difficulty: d,
		Status:     game.StatusActive,
		MaxScore:   100,
		StartTime:  s.now().UTC(),
	}
	if err := s.sessions.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return &rec, nil
}

// Progress updates the running score of an active session.
func (s *Service) Progress(ctx context.Context, id string, score, maxScore, completionPct int) error {
	return s.sessions.UpdateProgress(ctx, id, score, maxScore, clampPct(completionPct))
}

// Complete finishes a session with its final score and completion.
func (s *Service) Complete(ctx context.Context, id string, score, maxScore, completionPct int) error {
	return s.sessions.Finish(ctx, id, game.StatusCompleted, score, maxScore, clampPct(completionPct), s.now().UTC())
}

// Abandon finishes a session without credit, keeping whatever score and
// completion were last recorded. The record stays in history and still
// counts toward last-played.
func (s *Service) Abandon(ctx context.Context, id string) error {
	rec, err := s.sessions.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("%w: %s", store.ErrNoSuchSession, id)
	}
	return s.sessions.Finish(ctx, id, game.StatusAbandoned, rec.Score, rec.MaxScore, rec.CompletionPercentage, s.now().UTC())
}

// Sweep abandons active sessions that started more than timeout ago and
// returns how many it closed.
func (s *Service) Sweep(ctx context.Context, timeout time.Duration) (int, error) {
	cutoff := s.now().UTC().Add(-timeout)
	stale, err := s.sessions.ActiveBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("find stale sessions: %w", err)
	}

	swept := 0
	for _, rec := range stale {
		if err := s.sessions.Finish(ctx, rec.ID, game.StatusAbandoned,
			rec.Score, rec.MaxScore, rec.CompletionPercentage, s.now().UTC()); err != nil {
			return swept, fmt.Errorf("abandon %s: %w", rec.ID, err)
		}
		swept++
	}
	return swept, nil
}

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
