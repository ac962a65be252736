package tracker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wreckdiver/internal/game"
	"github.com/abhisek/wreckdiver/internal/progress"
	"github.com/abhisek/wreckdiver/internal/store"
)

func newTestTracker(t *testing.T) (*Tracker, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "wreckdiver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	eng, err := progress.NewEngine(progress.DefaultConfig())
	require.NoError(t, err)
	return New(st, eng), st
}

func completedSession(id string, typ game.Type, score int, start time.Time) game.SessionRecord {
	end := start.Add(20 * time.Minute)
	return game.SessionRecord{
		ID:                   id,
		GameType:             typ,
		Difficulty:           game.Beginner,
		Status:               game.StatusCompleted,
		Score:                score,
		MaxScore:             100,
		CompletionPercentage: 100,
		StartTime:            start,
		EndTime:              &end,
	}
}

func TestRecalculateFiresAchievementsOnce(t *testing.T) {
	ctx := context.Background()
	tr, st := newTestTracker(t)

	start := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, st.Sessions().Insert(ctx,
		completedSession("s1", game.ArtifactIdentification, 95, start)))

	first, err := tr.Recalculate(ctx)
	require.NoError(t, err)
	require.Len(t, first.NewAchievements, 1)
	assert.Equal(t, "artifact_expert", first.NewAchievements[0].ID)

	// The persisted snapshot becomes the next previous: no re-fire.
	second, err := tr.Recalculate(ctx)
	require.NoError(t, err)
	assert.Empty(t, second.NewAchievements)

	awards, err := st.Awards().All(ctx)
	require.NoError(t, err)
	assert.Len(t, awards, 1)
}

func TestRecalculatePersistsSnapshot(t *testing.T) {
	ctx := context.Background()
	tr, st := newTestTracker(t)

	start := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, st.Sessions().Insert(ctx,
		completedSession("s1", game.ExcavationSimulation, 70, start)))

	res, err := tr.Recalculate(ctx)
	require.NoError(t, err)

	snap, err := st.Snapshots().Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, res.OverallCompletion, snap.OverallCompletion)
	assert.Equal(t, res.CertificationStatus, snap.CertificationStatus)
	assert.Equal(t, res.GameProgress[game.ExcavationSimulation],
		snap.Progress[game.ExcavationSimulation])
}

func TestRecalculateEmptyStore(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTestTracker(t)

	res, err := tr.Recalculate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, res.OverallCompletion)
	assert.Equal(t, progress.CertNotEligible, res.CertificationStatus)
	assert.Empty(t, res.NewAchievements)
}
