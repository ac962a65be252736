// Package tracker glues the store to the progress engine. It is the
// sanctioned caller of achievement detection: it reads the full session
// history together with the last persisted snapshot, runs the engine,
// and persists the new snapshot and awards before returning the result.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/wreckdiver/internal/game"
	"github.com/abhisek/wreckdiver/internal/progress"
	"github.com/abhisek/wreckdiver/internal/store"
)

// snapshotKeep bounds the snapshot history retained after each run.
const snapshotKeep = 20

// Tracker recomputes and persists a diver's progress.
type Tracker struct {
	store  *store.Store
	engine *progress.Engine
	now    func() time.Time
}

// New creates a Tracker over an open store and a validated engine.
func New(st *store.Store, eng *progress.Engine) *Tracker {
	return &Tracker{store: st, engine: eng, now: time.Now}
}

// Engine returns the underlying progress engine.
func (t *Tracker) Engine() *progress.Engine { return t.engine }

// Recalculate runs the full pipeline and persists its outcome. The
// previous snapshot read here is what keeps achievement detection
// at-most-once across runs; the award table's primary key backs that up
// if two processes ever race on the same database.
func (t *Tracker) Recalculate(ctx context.Context) (*progress.Result, error) {
	sessions, err := t.store.Sessions().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	var previous map[game.Type]progress.GameProgress
	snap, err := t.store.Snapshots().Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap != nil {
		previous = snap.Progress
	}

	result := t.engine.Calculate(sessions, previous)

	for _, a := range result.NewAchievements {
		if err := t.store.Awards().Record(ctx, a); err != nil {
			return nil, fmt.Errorf("record achievement %s: %w", a.ID, err)
		}
	}

	next := &store.ProgressSnapshot{
		TakenAt:             t.now().UTC(),
		OverallCompletion:   result.OverallCompletion,
		CertificationStatus: result.CertificationStatus,
		Progress:            result.GameProgress,
	}
	if err := t.store.Snapshots().Save(ctx, next); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	if err := t.store.Snapshots().Prune(ctx, snapshotKeep); err != nil {
		return nil, fmt.Errorf("prune snapshots: %w", err)
	}

	return result, nil
}

// Eligibility computes the guidance view without persisting anything.
func (t *Tracker) Eligibility(ctx context.Context) (progress.EligibilityStatus, error) {
	sessions, err := t.store.Sessions().All(ctx)
	if err != nil {
		return progress.EligibilityStatus{}, fmt.Errorf("load sessions: %w", err)
	}
	return t.engine.Eligibility(sessions), nil
}
