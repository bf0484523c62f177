package homework

import (
	"encoding/json"
	"math"
)

// CheckResponse validates a decoded homework_statuses payload.
// Every check reports its own SchemaError reason so callers can tell them apart.
func CheckResponse(payload any) (*Response, error) {
	body, ok := payload.(map[string]any)
	if !ok {
		return nil, &SchemaError{Reason: ErrNotMapping, Got: describe(payload)}
	}

	raw, ok := body[KeyHomeworks]
	if !ok {
		return nil, &SchemaError{Reason: ErrMissingSubmissions}
	}

	homeworks, ok := raw.([]any)
	if !ok {
		return nil, &SchemaError{Reason: ErrSubmissionsNotSequence, Got: describe(raw)}
	}

	currentDate, err := nextTimestamp(body)
	if err != nil {
		return nil, err
	}

	return &Response{Homeworks: homeworks, CurrentDate: currentDate}, nil
}

func nextTimestamp(body map[string]any) (int64, error) {
	raw, ok := body[KeyCurrentDate]
	if !ok || raw == nil {
		return 0, &SchemaError{Reason: ErrMissingNextTimestamp}
	}

	switch v := raw.(type) {
	case json.Number:
		ts, err := v.Int64()
		if err != nil {
			return 0, &SchemaError{Reason: ErrNextTimestampNotInteger, Got: v.String()}
		}
		return ts, nil
	case float64:
		if v != math.Trunc(v) || v < -(1<<63) || v >= 1<<63 {
			return 0, &SchemaError{Reason: ErrNextTimestampNotInteger, Got: "number"}
		}
		return int64(v), nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, &SchemaError{Reason: ErrNextTimestampNotInteger, Got: describe(raw)}
	}
}
