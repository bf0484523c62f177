package homework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseStatusMessages(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"approved", `Changed review status for submission "task1". The work has been reviewed: the reviewer liked everything. Hooray!`},
		{"reviewing", `Changed review status for submission "task1". The work has been taken for review by the reviewer.`},
		{"rejected", `Changed review status for submission "task1". The work has been reviewed: the reviewer has comments.`},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, err := ParseStatus(map[string]any{KeyName: "task1", KeyStatus: tt.status})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSubmissionMissingName(t *testing.T) {
	_, err := ParseSubmission(map[string]any{KeyStatus: "approved"})
	assert.ErrorIs(t, err, ErrMissingName)

	_, err = ParseSubmission(map[string]any{KeyName: 12, KeyStatus: "approved"})
	assert.ErrorIs(t, err, ErrMissingName)
	assert.Contains(t, err.Error(), "got number")
}

func TestParseSubmissionNotMapping(t *testing.T) {
	_, err := ParseSubmission("task1")
	assert.ErrorIs(t, err, ErrSubmissionNotMapping)
}

func TestParseSubmissionUnknownVerdict(t *testing.T) {
	tests := []struct {
		name    string
		entry   map[string]any
		value   string
		missing bool
	}{
		{name: "unknown code", entry: map[string]any{KeyName: "task1", KeyStatus: "in_progress"}, value: "in_progress"},
		{name: "empty code", entry: map[string]any{KeyName: "task1", KeyStatus: ""}, value: ""},
		{name: "missing", entry: map[string]any{KeyName: "task1"}, missing: true},
		{name: "null", entry: map[string]any{KeyName: "task1", KeyStatus: nil}, missing: true},
		{name: "not a string", entry: map[string]any{KeyName: "task1", KeyStatus: true}, value: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSubmission(tt.entry)

			var verdictErr *UnknownVerdictError
			require.True(t, errors.As(err, &verdictErr), "got %v", err)
			assert.Equal(t, tt.value, verdictErr.Value)
			assert.Equal(t, tt.missing, verdictErr.Missing)
		})
	}
}

func TestParseStatusProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.String().Draw(t, "name")
		status := rapid.SampledFrom([]Status{StatusApproved, StatusReviewing, StatusRejected}).Draw(t, "status")

		got, err := ParseStatus(map[string]any{KeyName: name, KeyStatus: string(status)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		verdict, ok := Verdict(status)
		if !ok {
			t.Fatalf("no verdict for %s", status)
		}
		if want := "Changed review status for submission \"" + name + "\". " + verdict; got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	})
}

func TestParseStatusRejectsUnknownCodesProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		code := rapid.String().Filter(func(s string) bool {
			_, known := Verdict(Status(s))
			return !known
		}).Draw(t, "code")

		_, err := ParseStatus(map[string]any{KeyName: "task1", KeyStatus: code})
		var verdictErr *UnknownVerdictError
		if !errors.As(err, &verdictErr) || verdictErr.Value != code {
			t.Fatalf("got %v for code %q", err, code)
		}
	})
}
