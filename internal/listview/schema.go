package listview

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind tells the query pipeline how to compare a field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
)

// DateLayout is the raw form of date fields.  Dates are matched and sorted
// on this form, never on a localized rendering.
const DateLayout = "2006-01-02"

// Field is one entry of an entity's field table: a name bound to typed
// accessors.  Text is the string form used for search (and for sorting
// non-numeric kinds); Number is only set for KindNumber.  Set parses a form
// value into the record; a nil Set marks the field read-only.
type Field[T any] struct {
	Name   string
	Kind   Kind
	Text   func(T) string
	Number func(T) float64
	Set    func(*T, string) error
}

// Schema describes a record type to the engine.  Records must be plain
// value structs: copying a T must produce an independent record, which is
// how edit buffers stay isolated from the collection.
type Schema[T any] struct {
	Entity string
	Fields []Field[T]
	ID     func(T) int
	WithID func(T, int) T
	// New returns the create-mode defaults for the modal buffer.
	New func() T
}

// Field looks up a field by name.
func (s *Schema[T]) Field(name string) (Field[T], bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field[T]{}, false
}

// FieldNames returns the field names in table order.
func (s *Schema[T]) FieldNames() []string {
	out := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		out = append(out, f.Name)
	}
	return out
}

// IntField builds a numeric field backed by an int.
func IntField[T any](name string, get func(T) int, set func(*T, int)) Field[T] {
	f := Field[T]{
		Name:   name,
		Kind:   KindNumber,
		Text:   func(r T) string { return strconv.Itoa(get(r)) },
		Number: func(r T) float64 { return float64(get(r)) },
	}
	if set != nil {
		f.Set = func(r *T, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%q is not an integer", v)
			}
			set(r, n)
			return nil
		}
	}
	return f
}

// FloatField builds a numeric field backed by a float64.  Its string form
// has no grouping and no trailing zeros, e.g. 150000 or 12.5.
func FloatField[T any](name string, get func(T) float64, set func(*T, float64)) Field[T] {
	f := Field[T]{
		Name:   name,
		Kind:   KindNumber,
		Text:   func(r T) string { return strconv.FormatFloat(get(r), 'f', -1, 64) },
		Number: get,
	}
	if set != nil {
		f.Set = func(r *T, v string) error {
			n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("%q is not a number", v)
			}
			set(r, n)
			return nil
		}
	}
	return f
}

// TextField builds a free-text field.
func TextField[T any](name string, get func(T) string, set func(*T, string)) Field[T] {
	f := Field[T]{Name: name, Kind: KindText, Text: get}
	if set != nil {
		f.Set = func(r *T, v string) error {
			set(r, v)
			return nil
		}
	}
	return f
}

// EnumField builds a text field that only accepts one of allowed.
func EnumField[T any](name string, allowed []string, get func(T) string, set func(*T, string)) Field[T] {
	f := Field[T]{Name: name, Kind: KindText, Text: get}
	if set != nil {
		f.Set = func(r *T, v string) error {
			for _, a := range allowed {
				if v == a {
					set(r, v)
					return nil
				}
			}
			return fmt.Errorf("%q is not one of %s", v, strings.Join(allowed, ", "))
		}
	}
	return f
}

// DateField builds a YYYY-MM-DD date field.  An empty value clears the date,
// leaving the required check to submit.
func DateField[T any](name string, get func(T) string, set func(*T, string)) Field[T] {
	f := Field[T]{Name: name, Kind: KindDate, Text: get}
	if set != nil {
		f.Set = func(r *T, v string) error {
			v = strings.TrimSpace(v)
			if v != "" {
				if _, err := time.Parse(DateLayout, v); err != nil {
					return fmt.Errorf("%q is not a YYYY-MM-DD date", v)
				}
			}
			set(r, v)
			return nil
		}
	}
	return f
}
