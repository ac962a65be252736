package progress

import (
	"testing"
	"time"

	"github.com/abhisek/wreckdiver/internal/game"
)

var detectNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func scoreDef(id string, t game.Type, threshold int) AchievementDefinition {
	return AchievementDefinition{
		ID: id, Name: id, Description: id,
		GameType: t,
		Criteria: Criteria{Type: CriteriaScore, Threshold: threshold},
	}
}

func TestDetectCrossingEdge(t *testing.T) {
	defs := []AchievementDefinition{scoreDef("ninety", game.ArtifactIdentification, 90)}

	tests := []struct {
		name      string
		prev, cur int
		wantFired bool
	}{
		{"crosses threshold", 85, 92, true},
		{"lands exactly on threshold", 89, 90, true},
		{"already crossed previously", 91, 95, false},
		{"still below", 50, 89, false},
		{"score regressed below", 95, 85, false},
		{"from zero", 0, 90, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			previous := progressWith(map[game.Type]GameProgress{
				game.ArtifactIdentification: {GameType: game.ArtifactIdentification, BestScore: tt.prev},
			})
			current := progressWith(map[game.Type]GameProgress{
				game.ArtifactIdentification: {GameType: game.ArtifactIdentification, BestScore: tt.cur},
			})

			earned := Detect(current, previous, defs, detectNow)
			if fired := len(earned) == 1; fired != tt.wantFired {
				t.Errorf("prev=%d cur=%d: fired=%v, want %v", tt.prev, tt.cur, fired, tt.wantFired)
			}
		})
	}
}

func TestDetectMissingPreviousIsZero(t *testing.T) {
	defs := []AchievementDefinition{scoreDef("ninety", game.ArtifactIdentification, 90)}
	current := progressWith(map[game.Type]GameProgress{
		game.ArtifactIdentification: {GameType: game.ArtifactIdentification, BestScore: 95},
	})

	// nil previous snapshot: first-ever computation fires everything
	// already satisfied.
	earned := Detect(current, nil, defs, detectNow)
	if len(earned) != 1 {
		t.Fatalf("earned = %v, want one achievement", earned)
	}
	if !earned[0].EarnedDate.Equal(detectNow) {
		t.Errorf("EarnedDate = %v, want %v", earned[0].EarnedDate, detectNow)
	}
}

func TestDetectRefiresOnStaleSnapshot(t *testing.T) {
	// The detector is stateless: feeding the same previous/current pair
	// twice fires the achievement twice. Supplying the true prior
	// snapshot is the caller's contract, not something the detector
	// silently suppresses.
	defs := []AchievementDefinition{scoreDef("ninety", game.ArtifactIdentification, 90)}
	previous := progressWith(nil)
	current := progressWith(map[game.Type]GameProgress{
		game.ArtifactIdentification: {GameType: game.ArtifactIdentification, BestScore: 95},
	})

	first := Detect(current, previous, defs, detectNow)
	second := Detect(current, previous, defs, detectNow)
	if len(first) != 1 || len(second) != 1 {
		t.Errorf("stale snapshot should re-fire: first=%d second=%d, want 1 and 1", len(first), len(second))
	}
}

func TestDetectOverallMetrics(t *testing.T) {
	defs := []AchievementDefinition{
		{
			ID: "total_levels", Name: "n", Description: "d",
			Criteria: Criteria{Type: CriteriaCompletion, Threshold: 10},
		},
		{
			ID: "avg_score", Name: "n", Description: "d",
			Criteria: Criteria{Type: CriteriaScore, Threshold: 80},
		},
		{
			ID: "total_time", Name: "n", Description: "d",
			Criteria: Criteria{Type: CriteriaTime, Threshold: 600},
		},
	}

	previous := progressWith(nil)
	current := make(map[game.Type]GameProgress)
	for _, typ := range game.AllTypes {
		current[typ] = GameProgress{
			GameType:         typ,
			CompletedLevels:  2, // sums to 10
			TotalLevels:      3,
			BestScore:        80, // averages to 80
			TimeSpentMinutes: 120, // sums to 600
		}
	}

	earned := Detect(current, previous, defs, detectNow)
	if len(earned) != 3 {
		t.Fatalf("earned %d achievements, want 3: %+v", len(earned), earned)
	}
	for _, a := range earned {
		if a.GameType != "" {
			t.Errorf("%s: cross-game achievement carries game type %q", a.ID, a.GameType)
		}
	}
}

func TestDetectCompletionAndTimePerGame(t *testing.T) {
	defs := []AchievementDefinition{
		{
			ID: "first_level", Name: "n", Description: "d",
			GameType: game.ExcavationSimulation,
			Criteria: Criteria{Type: CriteriaCompletion, Threshold: 1},
		},
		{
			ID: "hour_digging", Name: "n", Description: "d",
			GameType: game.ExcavationSimulation,
			Criteria: Criteria{Type: CriteriaTime, Threshold: 60},
		},
	}

	previous := progressWith(map[game.Type]GameProgress{
		game.ExcavationSimulation: {GameType: game.ExcavationSimulation, TimeSpentMinutes: 55},
	})
	current := progressWith(map[game.Type]GameProgress{
		game.ExcavationSimulation: {GameType: game.ExcavationSimulation, CompletedLevels: 1, TimeSpentMinutes: 65},
	})

	earned := Detect(current, previous, defs, detectNow)
	if len(earned) != 2 {
		t.Fatalf("earned %d achievements, want 2: %+v", len(earned), earned)
	}
}

func TestDefaultAchievementsValid(t *testing.T) {
	defs := DefaultAchievements()
	if len(defs) != 8 {
		t.Fatalf("len(DefaultAchievements()) = %d, want 8", len(defs))
	}
	cfg := DefaultConfig()
	cfg.Achievements = defs
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default achievements do not validate: %v", err)
	}
}
