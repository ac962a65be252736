package game

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordsSchema validates externally produced session record files before
// they are trusted enough to parse. The enums here must stay in sync with
// the constants in types.go.
const recordsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "gameType", "difficultyLevel", "status", "score", "maxScore", "completionPercentage", "startTime"],
    "additionalProperties": false,
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "gameType": {
        "enum": ["artifact_identification", "excavation_simulation", "site_documentation", "historical_timeline", "conservation_lab"]
      },
      "difficultyLevel": {"enum": ["beginner", "intermediate", "advanced"]},
      "status": {"enum": ["active", "completed", "abandoned"]},
      "score": {"type": "integer", "minimum": 0},
      "maxScore": {"type": "integer", "minimum": 0},
      "completionPercentage": {"type": "integer", "minimum": 0, "maximum": 100},
      "startTime": {"type": "string", "format": "date-time"},
      "endTime": {"type": "string", "format": "date-time"}
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func recordsSchemaCompiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(recordsSchema), &parsed); err != nil {
			compileErr = fmt.Errorf("parse records schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://session_records.json"
		if err := c.AddResource(url, parsed); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// ImportError reports why a session record file was rejected. Record is
// the index of the offending record, or -1 when the file as a whole is
// bad. Malformed input is a caller problem, kept distinct from the
// configuration errors the progress engine raises at construction.
type ImportError struct {
	Record int
	Reason string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Record >= 0 {
		return fmt.Sprintf("session records: record %d: %s", e.Record, e.Reason)
	}
	return fmt.Sprintf("session records: %s", e.Reason)
}

func (e *ImportError) Unwrap() error { return e.Err }

// recordJSON is the wire shape of an imported session record.
type recordJSON struct {
	ID                   string     `json:"id"`
	GameType             Type       `json:"gameType"`
	DifficultyLevel      Difficulty `json:"difficultyLevel"`
	Status               Status     `json:"status"`
	Score                int        `json:"score"`
	MaxScore             int        `json:"maxScore"`
	CompletionPercentage int        `json:"completionPercentage"`
	StartTime            string     `json:"startTime"`
	EndTime              string     `json:"endTime,omitempty"`
}

// ParseRecords validates raw JSON against the session record schema and
// returns the decoded records. The data is rejected wholesale on the
// first schema violation; nothing is partially imported. Rejections are
// reported as *ImportError.
func ParseRecords(data []byte) ([]SessionRecord, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &ImportError{Record: -1, Reason: "invalid JSON", Err: err}
	}

	schema, err := recordsSchemaCompiled()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &ImportError{Record: -1, Reason: "schema validation failed", Err: err}
	}

	var raw []recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ImportError{Record: -1, Reason: "decode records", Err: err}
	}

	records := make([]SessionRecord, 0, len(raw))
	for i, r := range raw {
		start, err := time.Parse(time.RFC3339, r.StartTime)
		if err != nil {
			return nil, &ImportError{Record: i, Reason: "unparseable startTime", Err: err}
		}
		rec := SessionRecord{
			ID:                   r.ID,
			GameType:             r.GameType,
			Difficulty:           r.DifficultyLevel,
			Status:               r.Status,
			Score:                r.Score,
			MaxScore:             r.MaxScore,
			CompletionPercentage: r.CompletionPercentage,
			StartTime:            start,
		}
		if r.EndTime != "" {
			end, err := time.Parse(time.RFC3339, r.EndTime)
			if err != nil {
				return nil, &ImportError{Record: i, Reason: "unparseable endTime", Err: err}
			}
			rec.EndTime = &end
		}
		records = append(records, rec)
	}
	return records, nil
}
