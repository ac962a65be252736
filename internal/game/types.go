// Package game defines the closed vocabulary of the training platform:
// the five mini-game types, difficulty levels, session statuses, and the
// immutable session record the progress engine consumes.
package game

import "time"

// Type identifies one of the five fixed mini-games.
type Type string

const (
	ArtifactIdentification Type = "artifact_identification"
	ExcavationSimulation   Type = "excavation_simulation"
	SiteDocumentation      Type = "site_documentation"
	HistoricalTimeline     Type = "historical_timeline"
	ConservationLab        Type = "conservation_lab"
)

// AllTypes lists every game type in canonical display order.
// Iteration over this slice keeps derived output deterministic.
var AllTypes = []Type{
	ArtifactIdentification,
	ExcavationSimulation,
	SiteDocumentation,
	HistoricalTimeline,
	ConservationLab,
}

// Valid reports whether t is one of the five known game types.
func (t Type) Valid() bool {
	switch t {
	case ArtifactIdentification, ExcavationSimulation, SiteDocumentation,
		HistoricalTimeline, ConservationLab:
		return true
	}
	return false
}

// Display returns the human-readable name used in recommendations and reports.
func (t Type) Display() string {
	switch t {
	case ArtifactIdentification:
		return "Artifact Identification"
	case ExcavationSimulation:
		return "Excavation Simulation"
	case SiteDocumentation:
		return "Site Documentation"
	case HistoricalTimeline:
		return "Historical Timeline"
	case ConservationLab:
		return "Conservation Lab"
	}
	return string(t)
}

// Difficulty is one of the three fixed difficulty levels.
// A completed 100% session at a difficulty counts that level as done,
// which caps completed levels per game at three.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// AllDifficulties lists the difficulty levels from easiest to hardest.
var AllDifficulties = []Difficulty{Beginner, Intermediate, Advanced}

// Valid reports whether d is a known difficulty level.
func (d Difficulty) Valid() bool {
	return d == Beginner || d == Intermediate || d == Advanced
}

// Status is the session lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// Valid reports whether s is a known session status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusCompleted || s == StatusAbandoned
}

// SessionRecord is one attempt at one game type and difficulty.
// Records are created active by the session lifecycle service, transition
// once to completed or abandoned, and are never mutated afterwards.
// The progress engine treats them as read-only history.
type SessionRecord struct {
	ID                   string
	GameType             Type
	Difficulty           Difficulty
	Status               Status
	Score                int
	MaxScore             int
	CompletionPercentage int
	StartTime            time.Time
	EndTime              *time.Time // nil while the session is active
}

// Duration returns the session's wall-clock duration, or false when the
// end timestamp is missing or precedes the start.
func (r SessionRecord) Duration() (time.Duration, bool) {
	if r.EndTime == nil {
		return 0, false
	}
	d := r.EndTime.Sub(r.StartTime)
	if d < 0 {
		return 0, false
	}
	return d, true
}

// ScorePercent returns the session score scaled to 0-100.
// Sessions with no attainable score report zero.
func (r SessionRecord) ScorePercent() float64 {
	if r.MaxScore <= 0 {
		return 0
	}
	return float64(r.Score) / float64(r.MaxScore) * 100
}
