// Package progress is the aggregation and certification core: it reduces
// a diver's session history into per-game statistics, a weighted overall
// completion number, certification eligibility, newly crossed
// achievements and study recommendations. Every computation here is a
// pure function over its inputs; persistence belongs to the caller.
package progress

import (
	"time"

	"github.com/abhisek/wreckdiver/internal/game"
)

// GameProgress is the derived per-game statistic block. It is recomputed
// fresh on every aggregation, never incrementally mutated.
type GameProgress struct {
	GameType game.Type `json:"game_type"`

	// CompletedLevels counts distinct difficulty levels with at least one
	// completed session at 100%. Bounded by the three difficulty levels.
	CompletedLevels int `json:"completed_levels"`

	// TotalLevels is copied from configuration, not derived from data.
	TotalLevels int `json:"total_levels"`

	// BestScore and AverageScore are 0-100 percentages over completed
	// sessions only; both zero when no session completed.
	BestScore    int `json:"best_score"`
	AverageScore int `json:"average_score"`

	// TimeSpentMinutes sums completed-session durations, rounded once.
	TimeSpentMinutes int `json:"time_spent_minutes"`

	// LastPlayed is the most recent start time across sessions of any
	// status. Zero when the game has never been attempted.
	LastPlayed time.Time `json:"last_played"`
}

// CertificationStatus is the outcome of the all-or-nothing gate. The
// certified state is reached only through an external issuance action;
// the evaluator never self-promotes past eligible.
type CertificationStatus string

const (
	CertNotEligible CertificationStatus = "not_eligible"
	CertEligible    CertificationStatus = "eligible"
)

// Achievement is a derived one-time event, reported outward when its
// threshold is crossed. The engine does not store it; the caller does.
type Achievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	GameType    game.Type `json:"game_type,omitempty"` // empty for cross-game achievements
	EarnedDate  time.Time `json:"earned_date"`
}

// Result is the full output of one engine calculation, handed to the
// persistence and presentation layers.
type Result struct {
	OverallCompletion   int                         `json:"overall_completion"`
	GameProgress        map[game.Type]GameProgress  `json:"game_progress"`
	CertificationStatus CertificationStatus         `json:"certification_status"`
	NewAchievements     []Achievement               `json:"new_achievements"`
	Recommendations     []string                    `json:"recommendations"`
}
