package webclient

import (
	"net/url"

	"github.com/go-playground/validator/v10"
)

// Serialize flattens form fields into a JSON-ready map. A single-valued
// field maps directly to its value; a repeated field name collapses into an
// ordered list of all its values instead of overwriting.
func Serialize(values url.Values) map[string]any {
	out := make(map[string]any, len(values))
	for name, vals := range values {
		switch len(vals) {
		case 0:
		case 1:
			out[name] = vals[0]
		default:
			list := make([]any, len(vals))
			for i, v := range vals {
				list[i] = v
			}
			out[name] = list
		}
	}
	return out
}

// FieldState is the presentational validity marker on one field.
type FieldState int

const (
	FieldNeutral FieldState = iota
	FieldValid
	FieldInvalid
)

// Form carries a set of field values, their constraint rules, and the
// presentational validation state the error-routing layer toggles.
type Form struct {
	values    url.Values
	rules     map[string]string
	validated bool
	states    map[string]FieldState
	feedback  map[string]string
	check     *validator.Validate
}

func NewForm(values url.Values) *Form {
	if values == nil {
		values = url.Values{}
	}
	return &Form{
		values:   values,
		rules:    make(map[string]string),
		states:   make(map[string]FieldState),
		feedback: make(map[string]string),
		check:    validator.New(),
	}
}

// SetRule attaches a constraint rule (validator tag syntax, e.g.
// "required,email") to a field.
func (f *Form) SetRule(field, rule string) {
	f.rules[field] = rule
}

func (f *Form) Values() url.Values {
	return f.values
}

// Has reports whether the form carries a field with this name.
func (f *Form) Has(field string) bool {
	_, ok := f.values[field]
	return ok
}

// Serialize returns the form's fields as a mapping; see the package-level
// Serialize for the repeated-name behavior.
func (f *Form) Serialize() map[string]any {
	return Serialize(f.values)
}

// Validate runs the field constraints and marks the form as validated. The
// mark affects presentational state only; it blocks nothing by itself.
func (f *Form) Validate() bool {
	f.validated = true
	ok := true
	for field, rule := range f.rules {
		if err := f.check.Var(f.values.Get(field), rule); err != nil {
			f.states[field] = FieldInvalid
			ok = false
		} else {
			f.states[field] = FieldValid
		}
	}
	return ok
}

func (f *Form) Validated() bool {
	return f.validated
}

// ResetValidation clears the validated marker and every per-field state and
// feedback message.
func (f *Form) ResetValidation() {
	f.validated = false
	clear(f.states)
	clear(f.feedback)
}

// ShowFieldError puts one field into the invalid state with its feedback
// message; the feedback slot is created on first use.
func (f *Form) ShowFieldError(field, message string) {
	f.states[field] = FieldInvalid
	f.feedback[field] = message
}

// ClearFieldError flips a field back to valid and drops its feedback text.
func (f *Form) ClearFieldError(field string) {
	f.states[field] = FieldValid
	delete(f.feedback, field)
}

func (f *Form) FieldState(field string) FieldState {
	return f.states[field]
}

func (f *Form) FieldError(field string) string {
	return f.feedback[field]
}
