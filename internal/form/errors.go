package form

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownField is returned by SetField for a name the form does not
	// declare. It always indicates a programming error in the caller.
	ErrUnknownField = errors.New("unknown field")

	// ErrKindMismatch is returned in Strict mode when a value's Go type does
	// not match the field's Kind.
	ErrKindMismatch = errors.New("value does not match field kind")

	// ErrNotSubmittable is returned by Submit when a required field is empty.
	ErrNotSubmittable = errors.New("form is not submittable")

	// ErrSubmitInFlight is returned by Submit while a previous submission on
	// the same controller has not returned yet.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrInvalidFormat wraps every FieldError produced by Validate.
	ErrInvalidFormat = errors.New("invalid format")
)

// FieldError attaches a field name (and, for format failures, the failing
// validation tag) to one of the sentinel errors above.
type FieldError struct {
	Field string
	Tag   string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("field %s: %v (%s)", e.Field, e.Err, e.Tag)
	}
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// ValidationErrors collects every FieldError found by a single Validate call.
type ValidationErrors []*FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, ", ")
}

// Is makes errors.Is(ve, ErrInvalidFormat) hold for any non-empty set.
func (ve ValidationErrors) Is(target error) bool {
	return len(ve) > 0 && target == ErrInvalidFormat
}

// ByField indexes the errors by field name, keeping the first per field.
func (ve ValidationErrors) ByField() map[string]*FieldError {
	out := make(map[string]*FieldError, len(ve))
	for _, e := range ve {
		if _, seen := out[e.Field]; !seen {
			out[e.Field] = e
		}
	}
	return out
}
