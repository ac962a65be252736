package progress

import (
	"fmt"
	"strings"

	"github.com/abhisek/wreckdiver/internal/game"
)

// practiceScoreBar is the best-score floor below which a game lands in
// the combined practice recommendation.
const practiceScoreBar = 70

// closeToEligibility is the satisfied-game count that earns the
// "almost there" nudge.
const closeToEligibility = 3

// Recommend derives guidance messages from aggregated progress. Rules
// fire independently; an empty slice is a valid outcome for a diver with
// uniformly strong progress.
func Recommend(progress map[game.Type]GameProgress, minLevels, scoreThresholds map[game.Type]int) []string {
	var recs []string

	// Weakest area: the game with the lowest completion ratio, if it is
	// under half done. Ties resolve to canonical game order.
	weakest := game.AllTypes[0]
	weakestRatio := completionRatio(progress[weakest])
	for _, t := range game.AllTypes[1:] {
		if r := completionRatio(progress[t]); r < weakestRatio {
			weakest, weakestRatio = t, r
		}
	}
	if weakestRatio < 50 {
		gp := progress[weakest]
		recs = append(recs, fmt.Sprintf("Focus on %s: %d of %d levels completed",
			weakest.Display(), gp.CompletedLevels, gp.TotalLevels))
	}

	// Low scores: one combined message naming every game under the bar.
	var low []string
	for _, t := range game.AllTypes {
		if progress[t].BestScore < practiceScoreBar {
			low = append(low, t.Display())
		}
	}
	if len(low) > 0 {
		recs = append(recs, fmt.Sprintf("Practice %s to raise your best scores above %d",
			joinNames(low), practiceScoreBar))
	}

	// Certification readiness.
	switch n := SatisfiedCount(progress, minLevels, scoreThresholds); {
	case n == len(game.AllTypes):
		recs = append(recs, "All certification requirements met — ready to apply for your junior archaeologist certificate")
	case n >= closeToEligibility:
		recs = append(recs, fmt.Sprintf("Close to certification eligibility: %d of %d games fully satisfied",
			n, len(game.AllTypes)))
	}

	return recs
}

// joinNames renders "a", "a and b", or "a, b and c".
func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
