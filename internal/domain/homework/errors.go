package homework

import (
	"errors"
	"fmt"
)

// Reasons carried by SchemaError. Match them with errors.Is.
var (
	ErrNotMapping              = errors.New("not a mapping")
	ErrMissingSubmissions      = errors.New("missing submissions key")
	ErrSubmissionsNotSequence  = errors.New("submissions not a sequence")
	ErrMissingNextTimestamp    = errors.New("missing next timestamp")
	ErrNextTimestampNotInteger = errors.New("next timestamp not an integer")
	ErrSubmissionNotMapping    = errors.New("submission not a mapping")
	ErrMissingName             = errors.New("missing submission name")
	ErrInvalidJSON             = errors.New("body is not valid JSON")
)

// SchemaError reports a response that does not match the expected shape.
type SchemaError struct {
	Reason error
	// Got describes the offending value, e.g. "array" or "string".
	Got string
}

func (e *SchemaError) Error() string {
	if e.Got != "" {
		return fmt.Sprintf("unexpected API response: %v (got %s)", e.Reason, e.Got)
	}
	return fmt.Sprintf("unexpected API response: %v", e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Reason }

// UnknownVerdictError reports a submission status outside the verdict table.
type UnknownVerdictError struct {
	Value   string
	Missing bool
}

func (e *UnknownVerdictError) Error() string {
	if e.Missing {
		return "unknown homework status: status is missing"
	}
	return fmt.Sprintf("unknown homework status %q", e.Value)
}

// describe names the JSON kind of a decoded value.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64, interface{ Int64() (int64, error) }:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
