package progress

import (
	"math"

	"github.com/abhisek/wreckdiver/internal/game"
)

// completionRatio is the per-game completion as a 0-100 number, clamped
// so malformed data can never push a single game past 100.
func completionRatio(gp GameProgress) float64 {
	if gp.TotalLevels <= 0 {
		// Guarded by Config.Validate; kept as a belt against callers
		// constructing GameProgress by hand.
		return 0
	}
	r := float64(gp.CompletedLevels) / float64(gp.TotalLevels)
	if r > 1 {
		r = 1
	}
	return r * 100
}

// OverallCompletion combines per-game completion ratios into one 0-100
// number using the given weights, normalized by their sum. Weights are
// assumed validated (sum > 0).
func OverallCompletion(progress map[game.Type]GameProgress, weights map[game.Type]float64) int {
	var weighted, total float64
	for _, t := range game.AllTypes {
		w := weights[t]
		weighted += completionRatio(progress[t]) * w
		total += w
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(weighted / total))
}
