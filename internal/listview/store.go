package listview

import (
	"github.com/rs/zerolog"
)

// Op names the kind of mutation reported to subscribers.
type Op string

const (
	OpReplace Op = "replace"
	OpCreate  Op = "create"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
)

// Change is delivered to subscribers after every successful mutation.  ID
// is zero for OpReplace.
type Change struct {
	Entity   string
	Op       Op
	ID       int
	Revision uint64
}

// Subscriber observes store mutations.  It is called synchronously, after
// the collection has been updated, on the mutating caller's goroutine.
type Subscriber func(Change)

// Store owns the collection for one entity type.  It is not safe for
// concurrent use; callers serialize access.
type Store[T any] struct {
	schema   *Schema[T]
	records  []T
	strategy IDStrategy
	highID   int
	revision uint64
	subs     map[int]Subscriber
	subSeq   int
	log      zerolog.Logger
}

// NewStore returns an empty store.  Only WithIDStrategy and WithLogger
// apply to a store.
func NewStore[T any](schema *Schema[T], opts ...Option) *Store[T] {
	o := buildOptions(schema.Entity, opts)
	return &Store[T]{
		schema:   schema,
		strategy: o.idStrategy,
		subs:     map[int]Subscriber{},
		log:      o.logger,
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store[T]) Subscribe(fn Subscriber) func() {
	s.subSeq++
	id := s.subSeq
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// ReplaceAll swaps in a new collection.  Input order is kept; when ids
// repeat, the first record wins and the rest are dropped with a warning.
// It returns the number of records kept.
func (s *Store[T]) ReplaceAll(records []T) int {
	seen := make(map[int]struct{}, len(records))
	out := make([]T, 0, len(records))
	for _, r := range records {
		id := s.schema.ID(r)
		if _, dup := seen[id]; dup {
			s.log.Warn().Int("id", id).Msg("duplicate id in bulk load; keeping first occurrence")
			continue
		}
		seen[id] = struct{}{}
		out = append(out, r)
		if id > s.highID {
			s.highID = id
		}
	}
	s.records = out
	s.notify(OpReplace, 0)
	return len(out)
}

// Create assigns the next id to r, appends it and returns the stored copy.
func (s *Store[T]) Create(r T) T {
	id := s.nextID()
	r = s.schema.WithID(r, id)
	s.records = append(s.records, r)
	if id > s.highID {
		s.highID = id
	}
	s.notify(OpCreate, id)
	return r
}

func (s *Store[T]) nextID() int {
	if s.strategy == IDMonotonic {
		return s.highID + 1
	}
	highest := 0
	for _, r := range s.records {
		if id := s.schema.ID(r); id > highest {
			highest = id
		}
	}
	return highest + 1
}

// Update replaces the record with r's id.  A missing id is a traced no-op
// and reports false.
func (s *Store[T]) Update(r T) bool {
	id := s.schema.ID(r)
	i := s.index(id)
	if i < 0 {
		s.log.Warn().Int("id", id).Msg("update skipped: no record with this id")
		return false
	}
	s.records[i] = r
	s.notify(OpUpdate, id)
	return true
}

// Delete removes the record with id.  A missing id is a traced no-op and
// reports false.
func (s *Store[T]) Delete(id int) bool {
	i := s.index(id)
	if i < 0 {
		s.log.Warn().Int("id", id).Msg("delete skipped: no record with this id")
		return false
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	s.notify(OpDelete, id)
	return true
}

// Get returns a copy of the record with id.
func (s *Store[T]) Get(id int) (T, bool) {
	if i := s.index(id); i >= 0 {
		return s.records[i], true
	}
	var zero T
	return zero, false
}

// Snapshot returns a copy of the collection in insertion order.
func (s *Store[T]) Snapshot() []T {
	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store[T]) Len() int { return len(s.records) }

// Revision increases by one on every mutation.
func (s *Store[T]) Revision() uint64 { return s.revision }

// Entity returns the schema's entity name.
func (s *Store[T]) Entity() string { return s.schema.Entity }

func (s *Store[T]) index(id int) int {
	for i, r := range s.records {
		if s.schema.ID(r) == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) notify(op Op, id int) {
	s.revision++
	ch := Change{Entity: s.schema.Entity, Op: op, ID: id, Revision: s.revision}
	for _, fn := range s.subs {
		fn(ch)
	}
}
