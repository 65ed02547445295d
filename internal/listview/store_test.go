package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReplaceAllKeepsFirstDuplicate(t *testing.T) {
	s := NewStore(itemSchema())

	n := s.ReplaceAll([]item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 1, Name: "dup"}})

	assert.Equal(t, 2, n)
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "a", got.Name)
	assert.Equal(t, []int{1, 2}, ids(s.Snapshot()))
}

func TestStore_CreateAssignsMaxPlusOne(t *testing.T) {
	s := NewStore(itemSchema())

	first := s.Create(item{Name: "first"})
	assert.Equal(t, 1, first.ID)

	s.ReplaceAll([]item{{ID: 4, Name: "a"}, {ID: 9, Name: "b"}, {ID: 2, Name: "c"}})
	created := s.Create(item{ID: 99, Name: "new"})

	assert.Equal(t, 10, created.ID)
	assert.Equal(t, []int{4, 9, 2, 10}, ids(s.Snapshot()))
}

func TestStore_MaxPlusOneReusesDeletedMax(t *testing.T) {
	s := NewStore(itemSchema())
	s.ReplaceAll(seq(3))

	require.True(t, s.Delete(3))
	assert.Equal(t, 3, s.Create(item{Name: "again"}).ID)
}

func TestStore_MonotonicNeverReuses(t *testing.T) {
	s := NewStore(itemSchema(), WithIDStrategy(IDMonotonic))
	s.ReplaceAll(seq(3))

	require.True(t, s.Delete(3))
	assert.Equal(t, 4, s.Create(item{Name: "next"}).ID)

	s.ReplaceAll(nil)
	assert.Equal(t, 5, s.Create(item{Name: "after reload"}).ID)
}

func TestStore_IDsStayUnique(t *testing.T) {
	s := NewStore(itemSchema())
	s.ReplaceAll(seq(5))
	for i := 0; i < 20; i++ {
		s.Create(item{Name: "x"})
		if i%3 == 0 {
			s.Delete(s.Snapshot()[0].ID)
		}
	}

	seen := map[int]bool{}
	for _, r := range s.Snapshot() {
		assert.False(t, seen[r.ID], "duplicate id %d", r.ID)
		seen[r.ID] = true
	}
}

func TestStore_UpdateAndDeleteMissingAreNoops(t *testing.T) {
	s := NewStore(itemSchema())
	s.ReplaceAll(seq(2))
	rev := s.Revision()

	assert.False(t, s.Update(item{ID: 42, Name: "ghost"}))
	assert.False(t, s.Delete(42))
	assert.Equal(t, rev, s.Revision())
	assert.Equal(t, 2, s.Len())
}

func TestStore_UpdateReplacesInPlace(t *testing.T) {
	s := NewStore(itemSchema())
	s.ReplaceAll(seq(3))

	require.True(t, s.Update(item{ID: 2, Name: "renamed"}))

	assert.Equal(t, []int{1, 2, 3}, ids(s.Snapshot()))
	got, _ := s.Get(2)
	assert.Equal(t, "renamed", got.Name)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore(itemSchema())
	s.ReplaceAll(seq(2))

	snap := s.Snapshot()
	snap[0].Name = "mutated"

	got, _ := s.Get(1)
	assert.Equal(t, "item-01", got.Name)
}

func TestStore_SubscribersSeeEveryMutation(t *testing.T) {
	s := NewStore(itemSchema())
	var changes []Change
	unsubscribe := s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.ReplaceAll(seq(2))
	created := s.Create(item{Name: "c"})
	s.Update(item{ID: 1, Name: "u"})
	s.Delete(2)
	s.Delete(2)

	require.Len(t, changes, 4)
	assert.Equal(t, Change{Entity: "items", Op: OpReplace, ID: 0, Revision: 1}, changes[0])
	assert.Equal(t, Change{Entity: "items", Op: OpCreate, ID: created.ID, Revision: 2}, changes[1])
	assert.Equal(t, OpUpdate, changes[2].Op)
	assert.Equal(t, Change{Entity: "items", Op: OpDelete, ID: 2, Revision: 4}, changes[3])

	unsubscribe()
	s.Create(item{Name: "quiet"})
	assert.Len(t, changes, 4)
}

func TestStore_CreateAfterGappedIDs(t *testing.T) {
	s := NewStore(itemSchema())
	s.ReplaceAll([]item{{ID: 1, Name: "a"}, {ID: 3, Name: "b"}, {ID: 5, Name: "c"}})

	assert.Equal(t, 6, s.Create(item{Name: "d"}).ID)
}
