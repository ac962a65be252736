package store

import (
	"context"
	"time"

	"github.com/abhisek/wreckdiver/internal/game"
	"github.com/abhisek/wreckdiver/internal/progress"
)

// SessionRepo manages the session record history. Records are inserted
// active by the lifecycle service and finished exactly once; the
// progress engine only ever reads them.
type SessionRepo interface {
	// Insert stores a new session record.
	Insert(ctx context.Context, rec game.SessionRecord) error

	// Get returns the session with the given id, or nil if absent.
	Get(ctx context.Context, id string) (*game.SessionRecord, error)

	// ActiveByType returns the active session for a game type, or nil.
	ActiveByType(ctx context.Context, t game.Type) (*game.SessionRecord, error)

	// ActiveBefore returns active sessions started before the cutoff.
	ActiveBefore(ctx context.Context, cutoff time.Time) ([]game.SessionRecord, error)

	// UpdateProgress updates score and completion of an active session.
	UpdateProgress(ctx context.Context, id string, score, maxScore, completionPct int) error

	// Finish transitions a session to completed or abandoned, recording
	// the final score, completion and end timestamp.
	Finish(ctx context.Context, id string, status game.Status, score, maxScore, completionPct int, endedAt time.Time) error

	// All returns every session record, oldest first.
	All(ctx context.Context) ([]game.SessionRecord, error)
}

// ProgressSnapshot is a point-in-time capture of the computed progress,
// the "previous" input of the next achievement detection.
type ProgressSnapshot struct {
	ID                  int
	TakenAt             time.Time
	OverallCompletion   int
	CertificationStatus progress.CertificationStatus
	Progress            map[game.Type]progress.GameProgress
}

// SnapshotRepo manages progress snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *ProgressSnapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*ProgressSnapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// AwardRepo records which achievements have been granted. The primary
// key on the achievement id makes re-recording a no-op, backing up the
// detector's crossing-edge guarantee at the storage layer.
type AwardRepo interface {
	// Record persists an earned achievement. Recording an already
	// granted achievement does nothing and is not an error.
	Record(ctx context.Context, a progress.Achievement) error

	// All returns every granted achievement, oldest first.
	All(ctx context.Context) ([]progress.Achievement, error)

	// EarnedIDs returns the set of granted achievement ids.
	EarnedIDs(ctx context.Context) (map[string]bool, error)
}
