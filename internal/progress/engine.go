package progress

import (
	"time"

	"github.com/abhisek/wreckdiver/internal/game"
)

// Engine bundles a validated configuration with the pure calculators.
// Construct one per configuration; there is no shared default instance,
// so concurrent callers with different configs cannot interfere. Engines
// are safe for concurrent use: Calculate touches no shared mutable state.
type Engine struct {
	cfg Config
	now func() time.Time
}

// NewEngine validates cfg and returns a ready engine. Configuration
// problems surface as *ConfigError before any computation runs.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg, now: time.Now}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Aggregate reduces sessions into per-game statistics using the engine's
// configured level counts.
func (e *Engine) Aggregate(sessions []game.SessionRecord) map[game.Type]GameProgress {
	return Aggregate(sessions, e.cfg.TotalLevels)
}

// Calculate runs the full pipeline: aggregation, overall completion,
// certification gate, achievement detection against the previous
// snapshot, and recommendations.
//
// previous is the per-game progress persisted after the prior
// calculation; nil means a brand-new diver, in which case every already
// satisfied achievement fires. Supplying an accurate previous snapshot
// (read atomically with the session history) is the caller's
// responsibility; see Detect.
func (e *Engine) Calculate(sessions []game.SessionRecord, previous map[game.Type]GameProgress) *Result {
	current := e.Aggregate(sessions)

	return &Result{
		OverallCompletion:   OverallCompletion(current, e.cfg.GameWeights),
		GameProgress:        current,
		CertificationStatus: EvaluateCertification(current, e.cfg.MinimumLevels, e.cfg.ScoreThresholds),
		NewAchievements:     Detect(current, previous, e.cfg.Achievements, e.now()),
		Recommendations:     Recommend(current, e.cfg.MinimumLevels, e.cfg.ScoreThresholds),
	}
}

// Eligibility computes the richer guidance view of the certification
// gate for the given sessions.
func (e *Engine) Eligibility(sessions []game.SessionRecord) EligibilityStatus {
	return EvaluateEligibility(e.Aggregate(sessions), e.cfg.MinimumLevels, e.cfg.ScoreThresholds)
}
