// Package form guards the submission lifecycle of interactive forms:
// client-side validation, one pending submission at a time, and restoring the
// submit control when a submission fails.
package form

import (
	"fmt"
	"net/url"
	"sort"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// LoadingLabel replaces a button label while its action is in flight.
const LoadingLabel = "Loading..."

// Button is a clickable control whose appearance can be swapped for a loading
// affordance and later restored.
type Button struct {
	Label    string
	Disabled bool
	saved    *Button
}

// SetLoading swaps the button into or out of its loading state. Entering the
// state twice keeps the first snapshot.
func (b *Button) SetLoading(loading bool) {
	if loading {
		if b.saved == nil {
			snap := Button{Label: b.Label, Disabled: b.Disabled}
			b.saved = &snap
		}
		b.Label = LoadingLabel
		b.Disabled = true
		return
	}
	if b.saved != nil {
		b.Label = b.saved.Label
		b.Disabled = b.saved.Disabled
		b.saved = nil
		return
	}
	b.Disabled = false
}

// Loading reports whether a snapshot is currently held.
func (b *Button) Loading() bool {
	return b.saved != nil
}

// CounterLevel grades how close a field is to its length limit.
type CounterLevel int

const (
	CounterNormal CounterLevel = iota
	CounterWarning
	CounterDanger
)

// Field is one input of a form.
type Field struct {
	Name  string
	Label string
	Value string
	// Rules is a validator tag, e.g. "required,max=200".
	Rules     string
	MaxLength int
	Multiline bool
	// Choices enables fuzzy completion of the value.
	Choices []string
}

// Counter returns the "n / max" text for length-limited fields.
func (f *Field) Counter() (string, CounterLevel, bool) {
	if f.MaxLength <= 0 {
		return "", CounterNormal, false
	}
	n := utf8.RuneCountInString(f.Value)
	level := CounterNormal
	switch {
	case n >= f.MaxLength:
		level = CounterDanger
	case float64(n) > float64(f.MaxLength)*0.9:
		level = CounterWarning
	}
	return fmt.Sprintf("%d / %d", n, f.MaxLength), level, true
}

// Complete replaces the value with the closest choice. It reports whether the
// value changed.
func (f *Field) Complete() bool {
	if len(f.Choices) == 0 || f.Value == "" {
		return false
	}
	ranks := fuzzy.RankFindFold(f.Value, f.Choices)
	if len(ranks) == 0 {
		return false
	}
	sort.Sort(ranks)
	best := ranks[0].Target
	if best == f.Value {
		return false
	}
	f.Value = best
	return true
}

// Form is an ordered set of fields with one submit control.
type Form struct {
	ID     string
	Title  string
	Fields []*Field
	Submit Button
	Focus  int
}

// Field returns the named field, or nil.
func (f *Form) Field(name string) *Field {
	for _, field := range f.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// FocusField moves focus to the named field. Unknown names are ignored.
func (f *Form) FocusField(name string) bool {
	for i, field := range f.Fields {
		if field.Name == name {
			f.Focus = i
			return true
		}
	}
	return false
}

// Focused returns the field that has focus.
func (f *Form) Focused() *Field {
	if f.Focus < 0 || f.Focus >= len(f.Fields) {
		return nil
	}
	return f.Fields[f.Focus]
}

// MoveFocus cycles focus by delta, wrapping around.
func (f *Form) MoveFocus(delta int) {
	n := len(f.Fields)
	if n == 0 {
		return
	}
	f.Focus = ((f.Focus+delta)%n + n) % n
}

// Values encodes the fields for a form submission.
func (f *Form) Values() url.Values {
	values := make(url.Values, len(f.Fields))
	for _, field := range f.Fields {
		values.Set(field.Name, field.Value)
	}
	return values
}
