// Package claim holds the claim intake data model: extracted fields,
// the mandatory-field contract, routing decisions and the assembled
// result record. Everything here is a pure function of its inputs.
package claim

import "strings"

// Kind tells the validator how to judge a field value.
type Kind string

const (
	Text  Kind = "text"
	Money Kind = "money"
)

// Field is a single named value extracted from a document.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	// Raw is the text captured by the matcher before normalization.
	Raw string `json:"raw,omitempty"`
	// Value is the normalized text emitted in the result record.
	Value string `json:"value"`
	// Amount is set for Money fields whose value parsed as a number.
	Amount *float64 `json:"amount,omitempty"`
}

// Blank reports whether the value is empty or whitespace-only.
func (f Field) Blank() bool {
	return strings.TrimSpace(f.Value) == ""
}

// Usable reports whether the field carries a value the validator accepts.
func (f Field) Usable() bool {
	if f.Blank() {
		return false
	}
	if f.Kind == Money && f.Amount == nil {
		return false
	}
	return true
}

// Fields maps a field name to its extracted value. A key is present only
// when an extraction rule matched.
type Fields map[string]Field

// Set adds or replaces a field.
func (fs Fields) Set(f Field) {
	fs[f.Name] = f
}

// Get retrieves a field by name. Returns zero Field and false if absent.
func (fs Fields) Get(name string) (Field, bool) {
	f, ok := fs[name]
	return f, ok
}

// Has returns true if the field is present and usable.
func (fs Fields) Has(name string) bool {
	f, ok := fs[name]
	return ok && f.Usable()
}

// Text returns the normalized value of a field, or "" when absent.
func (fs Fields) Text(name string) string {
	return fs[name].Value
}

// Amount returns the parsed amount of a money field.
func (fs Fields) Amount(name string) (float64, bool) {
	f, ok := fs[name]
	if !ok || f.Amount == nil {
		return 0, false
	}
	return *f.Amount, true
}

// Values flattens the fields into the name -> text form used on the wire.
func (fs Fields) Values() map[string]string {
	out := make(map[string]string, len(fs))
	for name, f := range fs {
		out[name] = f.Value
	}
	return out
}

// TextField builds a text Field, mostly for tests and synthetic input.
func TextField(name, value string) Field {
	return Field{Name: name, Kind: Text, Raw: value, Value: value}
}

// MoneyField builds a money Field with a parsed amount.
func MoneyField(name, value string, amount float64) Field {
	return Field{Name: name, Kind: Money, Raw: value, Value: value, Amount: &amount}
}
