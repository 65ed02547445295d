package listview

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when an operation refers to a record id that is
// not in the collection.  Handlers translate it into a 404.
var ErrNotFound = errors.New("record not found")

// ErrUnknownField is returned when a sort or edit names a field that the
// entity's field table does not define.
var ErrUnknownField = errors.New("unknown field")

// ErrReadOnlyField is returned when the modal tries to edit the id.
var ErrReadOnlyField = errors.New("field is read-only")

// ErrModalClosed is returned by modal operations that need an open session.
var ErrModalClosed = errors.New("modal is not open")

// ErrModalOpen is returned when a modal is opened on top of another one.
var ErrModalOpen = errors.New("modal is already open")

// ErrNoPendingDelete is returned when a delete is confirmed without a prior
// request.  It is the only way Confirm can fail.
var ErrNoPendingDelete = errors.New("no delete awaiting confirmation")

// ValidationError lists the fields of a modal buffer that failed
// validation, keyed by field name.  It is a recoverable condition: the
// modal stays open and the store is untouched.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func invalidField(name, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{name: reason}}
}
