package fixture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-booking-admin/internal/listview"
	"github.com/iliyamo/room-booking-admin/internal/model"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadInto_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.json", `[{"id":1,"name":"Andi","email":"a@x.id"},{"id":2,"name":"Budi","email":"b@x.id"}]`)
	l := NewLoader(dir, "", time.Second, zerolog.Nop())
	store := listview.NewStore(model.UserSchema())

	n, err := LoadInto[model.User](context.Background(), l, "users.json", store)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	u, ok := store.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Budi", u.Name)
}

func TestLoadInto_FailuresLeaveEmptyCollection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "object.json", `{"id":1}`)
	writeFile(t, dir, "broken.json", `[{"id":`)
	l := NewLoader(dir, "", time.Second, zerolog.Nop())

	for _, name := range []string{"missing.json", "object.json", "broken.json"} {
		store := listview.NewStore(model.UserSchema())
		store.ReplaceAll([]model.User{{ID: 9, Name: "stale"}})

		n, err := LoadInto[model.User](context.Background(), l, name, store)

		assert.Error(t, err, name)
		assert.Equal(t, 0, n, name)
		assert.Equal(t, 0, store.Len(), name)
	}
}

func TestDecode_NotList(t *testing.T) {
	_, err := Decode[model.Room]([]byte(`  {"rooms":[]}`))
	assert.ErrorIs(t, err, ErrNotList)

	rooms, err := Decode[model.Room]([]byte(" \n[]"))
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestLoadInto_FromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/bookings.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"id":1,"roomId":2,"bookingDate":"2025-01-06","bookedBy":3,"price":150000}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	l := NewLoader("ignored", srv.URL+"/data/", time.Second, zerolog.Nop())
	assert.Equal(t, srv.URL+"/data/bookings.json", l.Location("bookings.json"))

	store := listview.NewStore(model.BookingSchema())
	n, err := LoadInto[model.Booking](context.Background(), l, "bookings.json", store)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	b, _ := store.Get(1)
	assert.Equal(t, "2025-01-06", b.BookingDate)

	_, err = LoadInto[model.Room](context.Background(), l, "rooms.json", listview.NewStore(model.RoomSchema()))
	assert.Error(t, err)
}

func TestRepositoryFixturesLoad(t *testing.T) {
	l := NewLoader(filepath.Join("..", "..", "fixtures"), "", time.Second, zerolog.Nop())
	ctx := context.Background()

	users, err := LoadInto[model.User](ctx, l, "users.json", listview.NewStore(model.UserSchema()))
	require.NoError(t, err)
	rooms, err := LoadInto[model.Room](ctx, l, "rooms.json", listview.NewStore(model.RoomSchema()))
	require.NoError(t, err)
	bookings, err := LoadInto[model.Booking](ctx, l, "bookings.json", listview.NewStore(model.BookingSchema()))
	require.NoError(t, err)

	assert.Equal(t, 12, users)
	assert.Equal(t, 12, rooms)
	assert.Equal(t, 12, bookings)
}
