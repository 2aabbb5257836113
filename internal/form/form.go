package form

import (
	"errors"
	"strings"

	"skillswap-cli/internal/api"
	"skillswap-cli/pkg/validator"
)

// Rule checks one field's draft value and returns an error message, or ""
// when the value passes.
type Rule struct {
	Field string
	Check func(value string) string
}

// Required builds the most common rule.
func Required(field, message string) Rule {
	return Rule{Field: field, Check: func(v string) string {
		if strings.TrimSpace(v) == "" {
			return message
		}
		return ""
	}}
}

// Form holds a page's draft field values and inline errors. Local rule
// failures and server-side field rejections land in the same error map so
// the rendering layer treats them uniformly. Forms live on the single UI
// event loop and are not safe for concurrent use.
type Form struct {
	values     map[string]string
	errors     map[string]string
	dirty      bool
	submitting bool
}

func New() *Form {
	return &Form{
		values: make(map[string]string),
		errors: make(map[string]string),
	}
}

// NewWith seeds a form with initial values, e.g. the current profile.
func NewWith(initial map[string]string) *Form {
	f := New()
	for name, value := range initial {
		f.values[name] = value
	}
	return f
}

// Set updates a field and clears any error previously shown on it.
func (f *Form) Set(name, value string) {
	f.values[name] = value
	delete(f.errors, name)
	f.dirty = true
}

// Value returns a field's current draft value.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// Error returns the inline error for a field, if any.
func (f *Form) Error(name string) string {
	return f.errors[name]
}

// Errors returns a copy of the whole error map.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// SetError records an inline error for a field.
func (f *Form) SetError(name, message string) {
	f.errors[name] = message
}

// Dirty reports whether any field changed since the form was built.
func (f *Form) Dirty() bool { return f.dirty }

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool { return f.submitting }

// BeginSubmit marks the form as submitting; EndSubmit clears it.
func (f *Form) BeginSubmit() { f.submitting = true }
func (f *Form) EndSubmit()   { f.submitting = false }

// Validate clears old errors, runs every rule and reports whether the form
// may be submitted.
func (f *Form) Validate(rules ...Rule) bool {
	f.errors = make(map[string]string)
	for _, rule := range rules {
		if _, seen := f.errors[rule.Field]; seen {
			continue
		}
		if msg := rule.Check(f.values[rule.Field]); msg != "" {
			f.errors[rule.Field] = msg
		}
	}
	return len(f.errors) == 0
}

// ValidateStruct validates a bound request struct with its validate tags and
// merges failures into the error map. Returns whether the struct passed.
func (f *Form) ValidateStruct(s any) bool {
	err := validator.ValidateStruct(s)
	if err == nil {
		return true
	}
	for field, msg := range validator.FieldMap(err) {
		if _, seen := f.errors[field]; !seen {
			f.errors[field] = msg
		}
	}
	return false
}

// MergeServerErrors folds a failed submission's field errors into the same
// error map inline rules use. Reports whether err carried field errors;
// other error classes are left for the page-level fallback.
func (f *Form) MergeServerErrors(err error) bool {
	var ve *api.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	for field, msg := range ve.Fields {
		f.errors[field] = msg
	}
	return true
}

// Valid reports whether the form currently has no errors.
func (f *Form) Valid() bool {
	return len(f.errors) == 0
}
