package listview

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Mode tags an open modal as creating or editing.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ModalState is the render view of a modal session.
type ModalState[T any] struct {
	Open   bool `json:"open"`
	Mode   Mode `json:"mode,omitempty"`
	Buffer *T   `json:"buffer,omitempty"`
}

// ModalSession is the create/edit working buffer.  The buffer is a copy;
// edits stay invisible to the store until Submit.
type ModalSession[T any] struct {
	schema   *Schema[T]
	store    *Store[T]
	validate *validator.Validate
	open     bool
	mode     Mode
	buffer   T
}

// NewModalSession returns a closed session that commits into store.
func NewModalSession[T any](schema *Schema[T], store *Store[T]) *ModalSession[T] {
	return &ModalSession[T]{schema: schema, store: store, validate: newValidator()}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// OpenCreate opens the modal seeded with the entity's defaults.
func (m *ModalSession[T]) OpenCreate() error {
	if m.open {
		return ErrModalOpen
	}
	m.open, m.mode, m.buffer = true, ModeCreate, m.schema.New()
	return nil
}

// OpenEdit opens the modal on a copy of the record with id.
func (m *ModalSession[T]) OpenEdit(id int) error {
	if m.open {
		return ErrModalOpen
	}
	r, ok := m.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	m.open, m.mode, m.buffer = true, ModeEdit, r
	return nil
}

// SetField parses value into the named buffer field.  On error the buffer
// is left as it was.
func (m *ModalSession[T]) SetField(name, value string) error {
	if !m.open {
		return ErrModalClosed
	}
	f, ok := m.schema.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if f.Set == nil {
		return fmt.Errorf("%w: %s", ErrReadOnlyField, name)
	}
	next := m.buffer
	if err := f.Set(&next, value); err != nil {
		return invalidField(name, err.Error())
	}
	m.buffer = next
	return nil
}

// Cancel closes the modal and drops the buffer.  Cancelling a closed modal
// does nothing.
func (m *ModalSession[T]) Cancel() {
	var zero T
	m.open, m.mode, m.buffer = false, "", zero
}

// Submit validates the buffer and commits it: Update in edit mode, Create
// in create mode.  A validation failure keeps the modal open and the store
// untouched.  On success the modal closes and the committed record is
// returned.
func (m *ModalSession[T]) Submit() (T, error) {
	var zero T
	if !m.open {
		return zero, ErrModalClosed
	}
	if err := m.check(m.buffer); err != nil {
		return zero, err
	}
	rec := m.buffer
	if m.mode == ModeEdit {
		m.store.Update(rec)
	} else {
		rec = m.store.Create(rec)
	}
	m.Cancel()
	return rec, nil
}

func (m *ModalSession[T]) check(r T) error {
	err := m.validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		out.Fields[fe.Field()] = reason
	}
	return out
}

// State returns the render view.  The buffer is a copy.
func (m *ModalSession[T]) State() ModalState[T] {
	if !m.open {
		return ModalState[T]{}
	}
	buf := m.buffer
	return ModalState[T]{Open: true, Mode: m.mode, Buffer: &buf}
}

// DeleteGate holds a delete until it is confirmed.  Store.Delete is only
// reached through Confirm.
type DeleteGate[T any] struct {
	store   *Store[T]
	pending int
	armed   bool
}

// NewDeleteGate returns a gate with nothing pending.
func NewDeleteGate[T any](store *Store[T]) *DeleteGate[T] {
	return &DeleteGate[T]{store: store}
}

// Request asks for confirmation to delete id, replacing any earlier request.
func (g *DeleteGate[T]) Request(id int) error {
	if _, ok := g.store.Get(id); !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	g.pending, g.armed = id, true
	return nil
}

// Confirm deletes the pending id and clears the gate.  It reports whether
// a record was removed.
func (g *DeleteGate[T]) Confirm() (bool, error) {
	if !g.armed {
		return false, ErrNoPendingDelete
	}
	id := g.pending
	g.Cancel()
	return g.store.Delete(id), nil
}

// Cancel drops the pending request.
func (g *DeleteGate[T]) Cancel() {
	g.pending, g.armed = 0, false
}

// Pending returns the id awaiting confirmation.
func (g *DeleteGate[T]) Pending() (int, bool) {
	return g.pending, g.armed
}
