// Package practicum defines the contract of the homework review API.
package practicum

import "context"

// Client fetches homework statuses changed since fromDate (unix seconds).
// The returned payload is the decoded JSON body, not yet validated.
type Client interface {
	HomeworkStatuses(ctx context.Context, fromDate int64) (any, error)
}
