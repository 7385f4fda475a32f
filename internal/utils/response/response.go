// Package response provides helpers for writing consistent HTTP responses:
// JSON envelopes for the API routes and rendered gomponents pages for the
// HTML routes.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	g "maragu.dev/gomponents"

	"github.com/aanand-mishra/airbear/internal/form"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Error responses always look like:
//
//	{ "status": "error", "error": "field email is required" }
//
// Fields carries the same problems keyed by field name, when there are any.
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string            `json:"status"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteHTML renders page with the given HTTP status code.
func WriteHTML(w http.ResponseWriter, status int, page g.Node) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return page.Render(w)
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts format problems found by form.Controller.Validate
// into a single human-readable Response.
//
// Example output:
//
//	{ "status": "error",
//	  "error": "field email must be a valid email address",
//	  "fields": { "email": "must be a valid email address" } }
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs form.ValidationErrors) Response {
	fields := FieldMessages(errs)

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fmt.Sprintf("field %s %s", e.Field, fields[e.Field]))
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
		Fields: fields,
	}
}

// MissingFields reports required fields that are still empty.
func MissingFields(names []string) Response {
	fields := make(map[string]string, len(names))
	msgs := make([]string, 0, len(names))
	for _, name := range names {
		fields[name] = "is required"
		msgs = append(msgs, fmt.Sprintf("field %s is required", name))
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(msgs, ", "),
		Fields: fields,
	}
}

// FieldMessages maps each failing field to a short sentence fragment, keyed
// off the validation tag that failed.
func FieldMessages(errs form.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if _, seen := out[e.Field]; seen {
			continue
		}
		switch e.Tag {
		case "required":
			out[e.Field] = "is required"
		case "email":
			out[e.Field] = "must be a valid email address"
		case "datetime":
			out[e.Field] = "must be a date in YYYY-MM-DD format"
		case "oneof":
			out[e.Field] = "must be one of the listed options"
		default:
			out[e.Field] = "is invalid"
		}
	}
	return out
}
