package pipeline

import "fmt"

// SchemaError reports a required input column that is absent from the raw
// frame. It is the only error kind preprocessing raises for structural
// problems; the serving boundary maps it to a client error.
type SchemaError struct {
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: missing column %s", e.Reason, e.Column)
	}
	return fmt.Sprintf("missing required column: %s", e.Column)
}
