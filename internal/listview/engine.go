// Package listview implements the list-view engine behind every management
// screen: an in-memory record store, a filter/sort/paginate query pipeline,
// and a modal session for create and edit with a confirmation gate for
// delete.  One Engine is instantiated per entity over a Schema that maps
// field names to typed accessors.
//
// An Engine models a single UI session and is not safe for concurrent use.
package listview

import (
	"fmt"
)

// Output is everything a screen needs to render.
type Output[T any] struct {
	Page[T]
	Modal         ModalState[T] `json:"modal"`
	PendingDelete *int          `json:"pending_delete"`
}

// Engine is one entity's list view.
type Engine[T any] struct {
	schema   *Schema[T]
	store    *Store[T]
	pipeline *Pipeline[T]
	view     ViewState
	modal    *ModalSession[T]
	gate     *DeleteGate[T]
}

// New builds an engine with an empty store.
func New[T any](schema *Schema[T], opts ...Option) *Engine[T] {
	store := NewStore(schema, opts...)
	return &Engine[T]{
		schema:   schema,
		store:    store,
		pipeline: NewPipeline(schema, opts...),
		view:     NewViewState(),
		modal:    NewModalSession(schema, store),
		gate:     NewDeleteGate(store),
	}
}

// Schema returns the entity schema.
func (e *Engine[T]) Schema() *Schema[T] { return e.schema }

// Entity returns the collection name.
func (e *Engine[T]) Entity() string { return e.store.Entity() }

// ReplaceAll bulk-replaces the collection.  The view state is kept.
func (e *Engine[T]) ReplaceAll(records []T) int {
	return e.store.ReplaceAll(records)
}

// Get returns a copy of the record with id.
func (e *Engine[T]) Get(id int) (T, bool) { return e.store.Get(id) }

// Update replaces the stored record with r's id outside the modal, for
// single-field actions such as a status button.  A missing id is a traced
// no-op and reports false.  There is no matching Delete: records leave the
// collection only through ConfirmDelete.
func (e *Engine[T]) Update(r T) bool { return e.store.Update(r) }

// Len returns the number of records held.
func (e *Engine[T]) Len() int { return e.store.Len() }

// Snapshot returns a copy of the collection in insertion order.
func (e *Engine[T]) Snapshot() []T { return e.store.Snapshot() }

// Revision counts successful mutations of the collection.
func (e *Engine[T]) Revision() uint64 { return e.store.Revision() }

// Subscribe registers fn for collection changes and returns a function that
// removes it.
func (e *Engine[T]) Subscribe(fn Subscriber) func() { return e.store.Subscribe(fn) }

// Search handles search-text-changed.
func (e *Engine[T]) Search(q string) {
	e.view.SetSearch(q)
}

// Sort handles sort-requested.
func (e *Engine[T]) Sort(field string) error {
	if _, ok := e.schema.Field(field); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	e.view.ToggleSort(field)
	return nil
}

// GotoPage handles page-requested.
func (e *Engine[T]) GotoPage(p int) {
	e.view.SetPage(p)
}

// ResetView returns to the unsorted first page with no search.
func (e *Engine[T]) ResetView() {
	e.view.Reset()
}

// ViewState returns the current view state.
func (e *Engine[T]) ViewState() ViewState { return e.view }

// OpenCreate handles modal-open in create mode.
func (e *Engine[T]) OpenCreate() error { return e.modal.OpenCreate() }

// OpenEdit handles modal-open in edit mode for the record with id.
func (e *Engine[T]) OpenEdit(id int) error { return e.modal.OpenEdit(id) }

// SetField handles modal-field-changed.
func (e *Engine[T]) SetField(name, value string) error { return e.modal.SetField(name, value) }

// ModalMode reports the mode of the open modal, or "" when it is closed.
func (e *Engine[T]) ModalMode() Mode { return e.modal.State().Mode }

// Submit handles modal-submit.
func (e *Engine[T]) Submit() (T, error) { return e.modal.Submit() }

// Cancel handles modal-cancel.
func (e *Engine[T]) Cancel() { e.modal.Cancel() }

// RequestDelete handles delete-requested.
func (e *Engine[T]) RequestDelete(id int) error { return e.gate.Request(id) }

// ConfirmDelete handles delete-confirmed.
func (e *Engine[T]) ConfirmDelete() (bool, error) { return e.gate.Confirm() }

// CancelDelete handles delete-cancelled.
func (e *Engine[T]) CancelDelete() { e.gate.Cancel() }

// Query runs the pipeline for an arbitrary view state without touching the
// session's own state.  Unknown sort fields are rejected.
func (e *Engine[T]) Query(v ViewState) (Page[T], error) {
	if v.Sort.Field != "" {
		if _, ok := e.schema.Field(v.Sort.Field); !ok {
			return Page[T]{}, fmt.Errorf("%w: %s", ErrUnknownField, v.Sort.Field)
		}
	}
	return e.pipeline.Run(e.store.Snapshot(), v), nil
}

// View computes the current render output.
func (e *Engine[T]) View() Output[T] {
	out := Output[T]{
		Page:  e.pipeline.Run(e.store.Snapshot(), e.view),
		Modal: e.modal.State(),
	}
	if id, ok := e.gate.Pending(); ok {
		out.PendingDelete = &id
	}
	return out
}
