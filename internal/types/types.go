// Package types holds the data structures shared between the submission
// service, the storage backends and the JSON handlers. Keeping them here
// keeps those packages free of imports on each other.
package types

import "time"

// Attempt is the diagnostic record of one dispatched form submission.
//
// Fields records which fields were filled, not what was typed: every
// free-form value is masked before an Attempt is ever built, and only
// selections and checkboxes keep their value. An Attempt is write-only
// diagnostics; no form is ever repopulated from one.
type Attempt struct {
	ID        string         `json:"id"`
	Form      string         `json:"form"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
}
