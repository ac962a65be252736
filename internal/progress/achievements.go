package progress

import (
	"time"

	"github.com/abhisek/wreckdiver/internal/game"
)

// CriteriaType selects which GameProgress metric an achievement watches.
type CriteriaType string

const (
	CriteriaScore      CriteriaType = "score"      // best score (0-100)
	CriteriaCompletion CriteriaType = "completion" // completed levels
	CriteriaTime       CriteriaType = "time"       // time spent, minutes
)

// Criteria is the threshold rule of an achievement definition.
type Criteria struct {
	Type      CriteriaType `toml:"type" json:"type"`
	Threshold int          `toml:"threshold" json:"threshold"`
}

// AchievementDefinition describes one detectable achievement. A definition
// either targets a single game type or, with GameType left empty, spans
// all five games: completion sums completed levels, score averages best
// scores, and time sums minutes played.
type AchievementDefinition struct {
	ID          string    `toml:"id" json:"id"`
	Name        string    `toml:"name" json:"name"`
	Description string    `toml:"description" json:"description"`
	GameType    game.Type `toml:"game_type" json:"game_type,omitempty"`
	Criteria    Criteria  `toml:"criteria" json:"criteria"`
}

// DefaultAchievements returns the eight stock achievements.
func DefaultAchievements() []AchievementDefinition {
	return []AchievementDefinition{
		{
			ID:          "first_excavation",
			Name:        "First Excavation",
			Description: "Complete your first excavation simulation level",
			GameType:    game.ExcavationSimulation,
			Criteria:    Criteria{Type: CriteriaCompletion, Threshold: 1},
		},
		{
			ID:          "artifact_expert",
			Name:        "Artifact Expert",
			Description: "Score 90 or higher identifying artifacts",
			GameType:    game.ArtifactIdentification,
			Criteria:    Criteria{Type: CriteriaScore, Threshold: 90},
		},
		{
			ID:          "master_excavator",
			Name:        "Master Excavator",
			Description: "Complete every excavation difficulty level",
			GameType:    game.ExcavationSimulation,
			Criteria:    Criteria{Type: CriteriaCompletion, Threshold: 3},
		},
		{
			ID:          "meticulous_recorder",
			Name:        "Meticulous Recorder",
			Description: "Complete every site documentation difficulty level",
			GameType:    game.SiteDocumentation,
			Criteria:    Criteria{Type: CriteriaCompletion, Threshold: 3},
		},
		{
			ID:          "timeline_scholar",
			Name:        "Timeline Scholar",
			Description: "Score 90 or higher ordering historical timelines",
			GameType:    game.HistoricalTimeline,
			Criteria:    Criteria{Type: CriteriaScore, Threshold: 90},
		},
		{
			ID:          "conservation_specialist",
			Name:        "Conservation Specialist",
			Description: "Score 85 or higher in the conservation lab",
			GameType:    game.ConservationLab,
			Criteria:    Criteria{Type: CriteriaScore, Threshold: 85},
		},
		{
			ID:          "well_rounded",
			Name:        "Well-Rounded Archaeologist",
			Description: "Complete ten levels across all mini-games",
			Criteria:    Criteria{Type: CriteriaCompletion, Threshold: 10},
		},
		{
			ID:          "dedicated_diver",
			Name:        "Dedicated Diver",
			Description: "Spend ten hours in training overall",
			Criteria:    Criteria{Type: CriteriaTime, Threshold: 600},
		},
	}
}

// Detect compares current against previous aggregated progress and
// returns every achievement whose threshold was crossed: fires iff
// previous < threshold <= current. The crossing-edge test, not a plain
// satisfied test, is what makes each achievement fire at most once, as
// long as the caller supplies the true prior snapshot. Feeding a stale
// or zeroed previous snapshot re-fires achievements; that is the
// caller's contract, not detector state. Missing previous entries are
// treated as zero progress, so a first-ever run fires everything already
// satisfied.
func Detect(current, previous map[game.Type]GameProgress, defs []AchievementDefinition, now time.Time) []Achievement {
	var earned []Achievement
	for _, def := range defs {
		cur := metricValue(current, def)
		prev := metricValue(previous, def)
		if cur >= float64(def.Criteria.Threshold) && prev < float64(def.Criteria.Threshold) {
			earned = append(earned, Achievement{
				ID:          def.ID,
				Name:        def.Name,
				Description: def.Description,
				GameType:    def.GameType,
				EarnedDate:  now,
			})
		}
	}
	return earned
}

// metricValue extracts the watched metric from a progress snapshot. A nil
// snapshot or missing entry reads as zero.
func metricValue(progress map[game.Type]GameProgress, def AchievementDefinition) float64 {
	if def.GameType != "" {
		gp := progress[def.GameType]
		switch def.Criteria.Type {
		case CriteriaScore:
			return float64(gp.BestScore)
		case CriteriaCompletion:
			return float64(gp.CompletedLevels)
		case CriteriaTime:
			return float64(gp.TimeSpentMinutes)
		}
		return 0
	}

	// Cross-game metrics.
	var sum float64
	for _, t := range game.AllTypes {
		gp := progress[t]
		switch def.Criteria.Type {
		case CriteriaScore:
			sum += float64(gp.BestScore)
		case CriteriaCompletion:
			sum += float64(gp.CompletedLevels)
		case CriteriaTime:
			sum += float64(gp.TimeSpentMinutes)
		}
	}
	if def.Criteria.Type == CriteriaScore {
		return sum / float64(len(game.AllTypes))
	}
	return sum
}
