package progress

import (
	"math"

	"github.com/abhisek/wreckdiver/internal/game"
)

// Aggregate reduces a session history into per-game statistics. Every
// game type gets an entry; untouched games report zero values with the
// configured total level count. The input is never modified.
//
// Scores consider completed sessions only, so an active or abandoned
// attempt cannot drag the averages. A session missing its end timestamp
// is skipped when summing time spent rather than failing the whole
// aggregation; progress is a best-effort secondary view, not the system
// of record.
func Aggregate(sessions []game.SessionRecord, totalLevels map[game.Type]int) map[game.Type]GameProgress {
	out := make(map[game.Type]GameProgress, len(game.AllTypes))

	for _, t := range game.AllTypes {
		gp := GameProgress{
			GameType:    t,
			TotalLevels: totalLevels[t],
		}

		levelsDone := make(map[game.Difficulty]bool)
		var scoreSum float64
		var completed int
		var minutes float64

		for _, s := range sessions {
			if s.GameType != t {
				continue
			}

			if s.StartTime.After(gp.LastPlayed) {
				gp.LastPlayed = s.StartTime
			}

			if s.Status != game.StatusCompleted {
				continue
			}

			pct := s.ScorePercent()
			scoreSum += pct
			completed++
			if best := int(math.Round(pct)); best > gp.BestScore {
				gp.BestScore = best
			}

			if s.CompletionPercentage == 100 && s.Difficulty.Valid() {
				levelsDone[s.Difficulty] = true
			}

			if d, ok := s.Duration(); ok {
				minutes += d.Minutes()
			}
		}

		gp.CompletedLevels = len(levelsDone)
		if completed > 0 {
			gp.AverageScore = int(math.Round(scoreSum / float64(completed)))
		}
		gp.TimeSpentMinutes = int(math.Round(minutes))

		out[t] = gp
	}

	return out
}
