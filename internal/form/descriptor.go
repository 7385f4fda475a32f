// Package form holds the per-form state controller shared by every page
// that collects input: login, registration and ride booking.
//
// A Controller owns one FormState (field name → value) for the lifetime of
// a single form view. Values are either strings or booleans, matching the
// Kind declared by the field's FieldDescriptor.
//
// The controller never performs I/O itself. Submission is delegated to a
// caller-supplied Handler, which is the only place network or storage work
// is allowed to happen.
package form

// Kind is the value kind of a field. It decides which Go type a value must
// have (string or bool) and which format checks Validate applies.
type Kind int

const (
	KindText Kind = iota
	KindEmail
	KindPassword
	KindDate
	KindBool
	KindSelect
)

// String returns the HTML input type used to render the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindEmail:
		return "email"
	case KindPassword:
		return "password"
	case KindDate:
		return "date"
	case KindBool:
		return "checkbox"
	case KindSelect:
		return "select"
	default:
		return "unknown"
	}
}

// IsBool reports whether values of this kind are booleans.
func (k Kind) IsBool() bool { return k == KindBool }

// FieldDescriptor is the static, immutable metadata for one field.
//
// Label and Placeholder are presentation hints only; the controller reads
// Name, Kind, Required and (for KindSelect) Options.
type FieldDescriptor struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Placeholder string

	// Options enumerates the allowed values of a KindSelect field.
	Options []string
}

// zero returns the initial value a fresh form holds for the field.
func (fd FieldDescriptor) zero() any {
	if fd.Kind.IsBool() {
		return false
	}
	return ""
}

// State is a snapshot of a form's values keyed by field name.
// Every value is a string or a bool.
type State map[string]any

// Clone returns a shallow copy. Values are immutable scalars, so a shallow
// copy is fully independent of the original.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// String returns the string value stored under name, or "" when the field
// is absent or boolean.
func (s State) String(name string) string {
	v, _ := s[name].(string)
	return v
}

// Bool returns the boolean value stored under name, or false when the field
// is absent or a string.
func (s State) Bool(name string) bool {
	v, _ := s[name].(bool)
	return v
}

// redactedMask replaces non-empty free-form values in diagnostic output.
const redactedMask = "[redacted]"

// Redact returns a copy of values that tells which fields were filled
// without revealing what the user typed. Non-empty strings are masked
// unless the field is a selection, whose value is one of its declared
// options. Booleans and fields not described by fields are copied
// untouched.
func Redact(fields []FieldDescriptor, values State) State {
	out := values.Clone()
	for _, fd := range fields {
		if fd.Kind == KindSelect {
			continue
		}
		if s, ok := out[fd.Name].(string); ok && s != "" {
			out[fd.Name] = redactedMask
		}
	}
	return out
}
