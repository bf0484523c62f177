// Package homework holds the review API data model and the rules for
// validating responses and rendering status notifications.
package homework

// Status is a review verdict code reported for a submission.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Wire keys of the homework_statuses payload.
const (
	KeyHomeworks   = "homeworks"
	KeyCurrentDate = "current_date"
	KeyName        = "homework_name"
	KeyStatus      = "status"
)

// Submission is a single graded work item returned by the review API.
type Submission struct {
	Name   string
	Status Status
}

// Response is a poll response that passed CheckResponse.
// Homeworks keeps the raw entries: each one is parsed lazily by ParseSubmission.
type Response struct {
	Homeworks   []any
	CurrentDate int64
}

// Latest returns the most recent submission entry, or false when there is none.
func (r *Response) Latest() (any, bool) {
	if r == nil || len(r.Homeworks) == 0 {
		return nil, false
	}
	return r.Homeworks[0], true
}
