package homework

import "fmt"

var verdicts = map[Status]string{
	StatusApproved:  "The work has been reviewed: the reviewer liked everything. Hooray!",
	StatusReviewing: "The work has been taken for review by the reviewer.",
	StatusRejected:  "The work has been reviewed: the reviewer has comments.",
}

// Verdict returns the human-readable sentence for a status code.
func Verdict(s Status) (string, bool) {
	text, ok := verdicts[s]
	return text, ok
}

// ParseSubmission reads the name and status of a raw homework entry.
func ParseSubmission(raw any) (Submission, error) {
	entry, ok := raw.(map[string]any)
	if !ok {
		return Submission{}, &SchemaError{Reason: ErrSubmissionNotMapping, Got: describe(raw)}
	}

	name, ok := entry[KeyName].(string)
	if !ok {
		if v, present := entry[KeyName]; present {
			return Submission{}, &SchemaError{Reason: ErrMissingName, Got: describe(v)}
		}
		return Submission{}, &SchemaError{Reason: ErrMissingName}
	}

	rawStatus, present := entry[KeyStatus]
	if !present || rawStatus == nil {
		return Submission{}, &UnknownVerdictError{Missing: true}
	}
	code, ok := rawStatus.(string)
	if !ok {
		return Submission{}, &UnknownVerdictError{Value: fmt.Sprint(rawStatus)}
	}
	if _, known := verdicts[Status(code)]; !known {
		return Submission{}, &UnknownVerdictError{Value: code}
	}

	return Submission{Name: name, Status: Status(code)}, nil
}

// Message renders the notification text for a parsed submission.
func (s Submission) Message() string {
	return fmt.Sprintf("Changed review status for submission \"%s\". %s", s.Name, verdicts[s.Status])
}

// ParseStatus parses a raw homework entry and renders its notification text.
func ParseStatus(raw any) (string, error) {
	sub, err := ParseSubmission(raw)
	if err != nil {
		return "", err
	}
	return sub.Message(), nil
}
