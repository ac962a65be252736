package progress

import (
	"fmt"

	"github.com/abhisek/wreckdiver/internal/game"
)

// Config holds the knobs of the progress engine. All maps must carry an
// entry for every game type; Validate enforces this at construction.
type Config struct {
	// GameWeights are the relative contributions of each game to the
	// overall completion number. They need not sum to 1; the calculator
	// normalizes by the total.
	GameWeights map[game.Type]float64

	// TotalLevels is the configured level count per game, the denominator
	// of the per-game completion ratio. Not derived from session data.
	TotalLevels map[game.Type]int

	// MinimumLevels and ScoreThresholds gate certification eligibility.
	MinimumLevels   map[game.Type]int
	ScoreThresholds map[game.Type]int

	// Achievements are the definitions the detector evaluates.
	Achievements []AchievementDefinition
}

// DefaultConfig returns the product defaults.
//
// Note the structural ceiling: only three difficulty levels exist, so a
// game can never report more than three completed levels, yet the minimum
// level requirements for artifact identification (5) and excavation
// simulation (4) sit above that. Under these defaults full certification
// eligibility is unreachable; the thresholds are preserved as configured
// because changing the gate is a product decision, not an engine one.
// Deployments that want an attainable gate override minimum_levels in
// config.toml.
func DefaultConfig() Config {
	return Config{
		GameWeights: map[game.Type]float64{
			game.ArtifactIdentification: 0.25,
			game.ExcavationSimulation:   0.30,
			game.SiteDocumentation:      0.20,
			game.HistoricalTimeline:     0.15,
			game.ConservationLab:        0.10,
		},
		TotalLevels: map[game.Type]int{
			game.ArtifactIdentification: 5,
			game.ExcavationSimulation:   4,
			game.SiteDocumentation:      3,
			game.HistoricalTimeline:     3,
			game.ConservationLab:        2,
		},
		MinimumLevels: map[game.Type]int{
			game.ArtifactIdentification: 5,
			game.ExcavationSimulation:   4,
			game.SiteDocumentation:      3,
			game.HistoricalTimeline:     3,
			game.ConservationLab:        2,
		},
		ScoreThresholds: map[game.Type]int{
			game.ArtifactIdentification: 80,
			game.ExcavationSimulation:   75,
			game.SiteDocumentation:      70,
			game.HistoricalTimeline:     70,
			game.ConservationLab:        65,
		},
		Achievements: DefaultAchievements(),
	}
}

// Validate checks the configuration and returns a *ConfigError on the
// first problem found.
func (c Config) Validate() error {
	var weightSum float64
	for _, t := range game.AllTypes {
		w, ok := c.GameWeights[t]
		if !ok {
			return &ConfigError{Field: "game_weights", Reason: fmt.Sprintf("missing weight for %s", t)}
		}
		if w < 0 {
			return &ConfigError{Field: "game_weights", Reason: fmt.Sprintf("negative weight for %s", t)}
		}
		weightSum += w

		total, ok := c.TotalLevels[t]
		if !ok || total <= 0 {
			return &ConfigError{Field: "total_levels", Reason: fmt.Sprintf("%s must be positive", t)}
		}
		if min, ok := c.MinimumLevels[t]; !ok || min < 0 {
			return &ConfigError{Field: "minimum_levels", Reason: fmt.Sprintf("%s must be present and non-negative", t)}
		}
		if thr, ok := c.ScoreThresholds[t]; !ok || thr < 0 {
			return &ConfigError{Field: "score_thresholds", Reason: fmt.Sprintf("%s must be present and non-negative", t)}
		}
	}
	if weightSum == 0 {
		return &ConfigError{Field: "game_weights", Reason: "weights sum to zero"}
	}

	seen := make(map[string]bool, len(c.Achievements))
	for _, def := range c.Achievements {
		if def.ID == "" {
			return &ConfigError{Field: "achievements", Reason: "definition with empty id"}
		}
		if seen[def.ID] {
			return &ConfigError{Field: "achievements", Reason: fmt.Sprintf("duplicate id %q", def.ID)}
		}
		seen[def.ID] = true
		switch def.Criteria.Type {
		case CriteriaScore, CriteriaCompletion, CriteriaTime:
		default:
			return &ConfigError{Field: "achievements", Reason: fmt.Sprintf("%s: unknown criteria type %q", def.ID, def.Criteria.Type)}
		}
		if def.Criteria.Threshold <= 0 {
			return &ConfigError{Field: "achievements", Reason: fmt.Sprintf("%s: threshold must be positive", def.ID)}
		}
		if def.GameType != "" && !def.GameType.Valid() {
			return &ConfigError{Field: "achievements", Reason: fmt.Sprintf("%s: unknown game type %q", def.ID, def.GameType)}
		}
	}
	return nil
}
