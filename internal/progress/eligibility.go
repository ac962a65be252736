package progress

import (
	"fmt"
	"math"

	"github.com/abhisek/wreckdiver/internal/game"
)

// Per-gap time estimates used by EvaluateEligibility.
const (
	minutesPerLevel     = 20
	minutesPerScoreStep = 15
	scoreStep           = 10
)

// gameSatisfied reports whether one game meets both its level-count and
// best-score requirements.
func gameSatisfied(gp GameProgress, minLevels, scoreThreshold int) bool {
	return gp.CompletedLevels >= minLevels && gp.BestScore >= scoreThreshold
}

// SatisfiedCount returns how many of the five games currently meet both
// certification requirements.
func SatisfiedCount(progress map[game.Type]GameProgress, minLevels, scoreThresholds map[game.Type]int) int {
	n := 0
	for _, t := range game.AllTypes {
		if gameSatisfied(progress[t], minLevels[t], scoreThresholds[t]) {
			n++
		}
	}
	return n
}

// EvaluateCertification applies the strict all-or-nothing gate: eligible
// only when every game satisfies both thresholds. No partial credit, no
// weighting. Issuing the actual certificate is an external action.
func EvaluateCertification(progress map[game.Type]GameProgress, minLevels, scoreThresholds map[game.Type]int) CertificationStatus {
	if SatisfiedCount(progress, minLevels, scoreThresholds) == len(game.AllTypes) {
		return CertEligible
	}
	return CertNotEligible
}

// EligibilityStatus is the richer eligibility view used for guidance.
type EligibilityStatus struct {
	IsEligible bool

	// CompletionPercentage measures readiness toward the certification
	// requirements (distinct from level-based overall completion): per
	// game, the mean of the capped level ratio and capped score ratio,
	// averaged across games.
	CompletionPercentage int

	// MissingRequirements holds one message per unmet gap; a game can
	// contribute up to two (levels and score).
	MissingRequirements []string

	// EstimatedMinutes is a rough remaining-effort estimate. Zero when
	// fully eligible.
	EstimatedMinutes int
}

// EvaluateEligibility computes the guidance view of the certification
// gate. The boolean matches EvaluateCertification exactly.
func EvaluateEligibility(progress map[game.Type]GameProgress, minLevels, scoreThresholds map[game.Type]int) EligibilityStatus {
	var status EligibilityStatus
	var readiness float64

	for _, t := range game.AllTypes {
		gp := progress[t]
		minLvl := minLevels[t]
		threshold := scoreThresholds[t]

		levelRatio := 1.0
		if minLvl > 0 {
			levelRatio = math.Min(float64(gp.CompletedLevels)/float64(minLvl), 1)
		}
		scoreRatio := 1.0
		if threshold > 0 {
			scoreRatio = math.Min(float64(gp.BestScore)/float64(threshold), 1)
		}
		readiness += (levelRatio + scoreRatio) / 2 * 100

		if gp.CompletedLevels < minLvl {
			remaining := minLvl - gp.CompletedLevels
			status.MissingRequirements = append(status.MissingRequirements,
				fmt.Sprintf("Complete %d more level(s) in %s", remaining, t.Display()))
			status.EstimatedMinutes += remaining * minutesPerLevel
		}
		if gp.BestScore < threshold {
			gap := threshold - gp.BestScore
			status.MissingRequirements = append(status.MissingRequirements,
				fmt.Sprintf("Raise your best %s score to %d (currently %d)", t.Display(), threshold, gp.BestScore))
			status.EstimatedMinutes += int(math.Ceil(float64(gap)/scoreStep)) * minutesPerScoreStep
		}
	}

	status.CompletionPercentage = int(math.Round(readiness / float64(len(game.AllTypes))))
	status.IsEligible = len(status.MissingRequirements) == 0
	if status.IsEligible {
		status.EstimatedMinutes = 0
	}
	return status
}
