package form

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
)

// Mode selects how SetField treats a value whose Go type does not match the
// field's Kind.
type Mode int

const (
	// Strict fails fast with ErrKindMismatch. Used in development.
	Strict Mode = iota
	// Lenient coerces unambiguous values and ignores the rest. Used in
	// staging and production.
	Lenient
)

// Status is the outcome reported by a Handler.
type Status string

// StatusAccepted means the submission was handed off for further processing.
const StatusAccepted Status = "accepted"

// Result is what a Handler returns for a dispatched submission.
type Result struct {
	Status    Status `json:"status"`
	AttemptID string `json:"attempt_id,omitempty"`
}

// Handler receives a copy of the form's values when Submit dispatches.
// Changes the handler makes to the copy never reach the controller.
type Handler func(ctx context.Context, values State) (Result, error)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Controller manages the values of a fixed set of fields for one form view.
//
// A Controller is owned by a single request (or UI event loop) and is not
// safe for concurrent SetField calls. Submit is guarded against re-entry.
type Controller struct {
	name   string
	fields []FieldDescriptor
	index  map[string]int
	state  State
	mode   Mode

	pending atomic.Bool
}

// New returns a controller for the named form with every field set to its
// zero value ("" or false). It panics on duplicate or empty field names,
// which can only come from a broken page definition.
func New(name string, fields []FieldDescriptor, mode Mode) *Controller {
	c := &Controller{
		name:   name,
		fields: cloneFields(fields),
		index:  make(map[string]int, len(fields)),
		state:  make(State, len(fields)),
		mode:   mode,
	}
	for i, fd := range c.fields {
		if fd.Name == "" {
			panic(fmt.Sprintf("form %s: field %d has no name", name, i))
		}
		if _, dup := c.index[fd.Name]; dup {
			panic(fmt.Sprintf("form %s: duplicate field %q", name, fd.Name))
		}
		c.index[fd.Name] = i
		c.state[fd.Name] = fd.zero()
	}
	return c
}

// cloneFields copies descriptors together with their Options, so a caller
// mutating its slices cannot change a live controller.
func cloneFields(fields []FieldDescriptor) []FieldDescriptor {
	out := slices.Clone(fields)
	for i := range out {
		out[i].Options = slices.Clone(out[i].Options)
	}
	return out
}

// Name returns the form's name, e.g. "login".
func (c *Controller) Name() string { return c.name }

// Mode returns the kind-mismatch policy the controller was built with.
func (c *Controller) Mode() Mode { return c.mode }

// Fields returns the form's descriptors in declaration order.
func (c *Controller) Fields() []FieldDescriptor { return cloneFields(c.fields) }

// Field returns the descriptor for name.
func (c *Controller) Field(name string) (FieldDescriptor, bool) {
	i, ok := c.index[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	fd := c.fields[i]
	fd.Options = slices.Clone(fd.Options)
	return fd, true
}

// Get returns the current value of name.
func (c *Controller) Get(name string) (any, bool) {
	v, ok := c.state[name]
	return v, ok
}

// Values returns a copy of the current state.
func (c *Controller) Values() State { return c.state.Clone() }

// Redacted returns a copy of the current state with every free-form value
// masked. See Redact.
func (c *Controller) Redacted() State { return Redact(c.fields, c.state) }

// SetField updates exactly one field. Strings are stored as given. Unknown
// names always fail with ErrUnknownField. A value of the wrong kind fails
// with ErrKindMismatch in Strict mode; in Lenient mode it is coerced when
// unambiguous and silently dropped otherwise.
func (c *Controller) SetField(name string, value any) error {
	i, ok := c.index[name]
	if !ok {
		return &FieldError{Field: name, Err: ErrUnknownField}
	}
	fd := c.fields[i]

	v, err := c.coerce(fd, value)
	if err != nil {
		if c.mode == Lenient {
			return nil
		}
		return err
	}
	c.state[name] = v
	return nil
}

func (c *Controller) coerce(fd FieldDescriptor, value any) (any, error) {
	mismatch := &FieldError{Field: fd.Name, Tag: fd.Kind.String(), Err: ErrKindMismatch}

	if fd.Kind.IsBool() {
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			if c.mode == Strict {
				return nil, mismatch
			}
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "on", "true", "1", "yes":
				return true, nil
			case "", "off", "false", "0", "no":
				return false, nil
			}
		}
		return nil, mismatch
	}

	var s string
	switch v := value.(type) {
	case string:
		s = v
	case bool:
		if c.mode == Strict {
			return nil, mismatch
		}
		s = fmt.Sprint(v)
	default:
		return nil, mismatch
	}
	return s, nil
}

// Missing returns the names of required fields that are empty (or false),
// in declaration order.
func (c *Controller) Missing() []string {
	var missing []string
	for _, fd := range c.fields {
		if fd.Required && !filled(c.state[fd.Name]) {
			missing = append(missing, fd.Name)
		}
	}
	return missing
}

// IsSubmittable reports whether every required field is filled. It has no
// side effects.
func (c *Controller) IsSubmittable() bool {
	for _, fd := range c.fields {
		if fd.Required && !filled(c.state[fd.Name]) {
			return false
		}
	}
	return true
}

func filled(v any) bool {
	switch t := v.(type) {
	case string:
		return t != ""
	case bool:
		return t
	default:
		return false
	}
}

// Validate checks the format of every non-empty value against its Kind:
// emails must parse as addresses, dates must be YYYY-MM-DD and selections
// must be one of the declared options. Empty values are left to
// IsSubmittable. It returns nil or a ValidationErrors.
func (c *Controller) Validate() error {
	var errs ValidationErrors
	for _, fd := range c.fields {
		s, ok := c.state[fd.Name].(string)
		if !ok || s == "" {
			continue
		}

		var tag string
		switch fd.Kind {
		case KindEmail:
			tag = "email"
		case KindDate:
			tag = "datetime=2006-01-02"
		case KindSelect:
			if !slices.Contains(fd.Options, s) {
				errs = append(errs, &FieldError{Field: fd.Name, Tag: "oneof", Err: ErrInvalidFormat})
			}
			continue
		default:
			continue
		}

		if err := validate.Var(s, tag); err != nil {
			failed := tag
			if vErrs, ok := err.(validator.ValidationErrors); ok && len(vErrs) > 0 {
				failed = vErrs[0].Tag()
			}
			errs = append(errs, &FieldError{Field: fd.Name, Tag: failed, Err: ErrInvalidFormat})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Submit invokes handler exactly once with a snapshot of the current state
// when the form is submittable. The state itself is never modified, so a
// form keeps its values after a successful submit.
//
// It returns ErrNotSubmittable without calling handler when a required
// field is empty, and ErrSubmitInFlight when another Submit on the same
// controller has not returned yet.
func (c *Controller) Submit(ctx context.Context, handler Handler) (Result, error) {
	if !c.IsSubmittable() {
		return Result{}, ErrNotSubmittable
	}
	if !c.pending.CompareAndSwap(false, true) {
		return Result{}, ErrSubmitInFlight
	}
	defer c.pending.Store(false)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return handler(ctx, c.state.Clone())
}

// Pending reports whether a Submit call is currently running.
func (c *Controller) Pending() bool { return c.pending.Load() }
