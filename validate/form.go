package validate

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrSubmitInFlight rejects a Submit issued while another is running.
	ErrSubmitInFlight = errors.New("submission already in flight")
	// ErrInvalid reports that validation blocked the submission.
	ErrInvalid = errors.New("form has validation errors")
)

// Field declares one form field: its initial value and the rules checked
// against it, in declared order.
type Field struct {
	Name    string
	Initial string
	Rules   []Rule
}

// Form drives field-level validation state and the submit lifecycle for a
// static field schema. Per field, the first failing rule wins. A submission
// in flight blocks re-entry; a failed submission preserves entered values;
// a successful one resets the form to its initial state.
type Form struct {
	mu         sync.Mutex
	fields     []Field
	values     map[string]string
	errors     map[string]string
	touched    map[string]bool
	submitting bool
	submitErr  string
}

func NewForm(fields ...Field) *Form {
	f := &Form{
		fields:  fields,
		values:  map[string]string{},
		errors:  map[string]string{},
		touched: map[string]bool{},
	}
	for _, field := range fields {
		f.values[field.Name] = field.Initial
	}
	return f
}

// SetValue updates a field's value and clears its recorded error.
func (f *Form) SetValue(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[name] = value
	delete(f.errors, name)
}

// Touch marks a field as touched and validates it.
func (f *Form) Touch(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[name] = true
	f.validateField(name)
}

// ValidateField runs a field's rules in declared order, recording the first
// failure. It returns the failure message and whether the field is valid.
func (f *Form) ValidateField(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateField(name)
}

func (f *Form) validateField(name string) (string, bool) {
	for _, field := range f.fields {
		if field.Name != name {
			continue
		}
		value := f.values[name]
		for _, rule := range field.Rules {
			if !rule.Check(value) {
				f.errors[name] = rule.Message
				return rule.Message, false
			}
		}
		delete(f.errors, name)
		return "", true
	}
	return "", true
}

// Validate checks every field, marking each as touched, and reports overall
// validity.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateAll()
}

func (f *Form) validateAll() bool {
	valid := true
	for _, field := range f.fields {
		f.touched[field.Name] = true
		if _, ok := f.validateField(field.Name); !ok {
			valid = false
		}
	}
	return valid
}

// Submit runs the submission lifecycle: reject re-entry, clear the previous
// submit-level error, validate, and only then call fn with the current
// values. An error from fn becomes the submit-level error and the entered
// values are preserved for retry; success resets the form.
func (f *Form) Submit(ctx context.Context, fn func(ctx context.Context, values map[string]string) error) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.submitErr = ""
	if !f.validateAll() {
		f.mu.Unlock()
		return ErrInvalid
	}
	f.submitting = true
	values := copyStrings(f.values)
	f.mu.Unlock()

	err := fn(ctx, values)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.submitErr = err.Error()
		return err
	}
	f.reset()
	return nil
}

func (f *Form) reset() {
	f.values = map[string]string{}
	for _, field := range f.fields {
		f.values[field.Name] = field.Initial
	}
	f.errors = map[string]string{}
	f.touched = map[string]bool{}
}

// Value returns a field's current value.
func (f *Form) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// Values returns a copy of every field's current value.
func (f *Form) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyStrings(f.values)
}

// Errors returns a copy of the per-field error messages.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyStrings(f.errors)
}

// Touched reports whether a field has been touched.
func (f *Form) Touched(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[name]
}

// SubmitError returns the submit-level error message, if any.
func (f *Form) SubmitError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitErr
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
