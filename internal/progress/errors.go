package progress

import "fmt"

// ConfigError reports an invalid engine configuration. Configuration
// problems are fatal at construction so the calculators never have to
// guard against division by zero mid-computation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("progress config: %s: %s", e.Field, e.Reason)
}
