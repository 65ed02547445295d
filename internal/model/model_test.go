package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-booking-admin/internal/listview"
)

func TestRoomSchema_Setters(t *testing.T) {
	s := RoomSchema()
	r := s.New()
	assert.Equal(t, CategoryClass, r.Category)
	assert.Equal(t, StatusAvailable, r.Status)

	set := func(name, value string) error {
		f, ok := s.Field(name)
		require.True(t, ok, name)
		return f.Set(&r, value)
	}
	require.NoError(t, set("name", "Aula Utama"))
	require.NoError(t, set("capacity", "250"))
	require.NoError(t, set("price", "1500000.50"))
	require.NoError(t, set("category", "auditorium"))
	require.NoError(t, set("status", "approved"))

	assert.Equal(t, Room{Name: "Aula Utama", Capacity: 250, Category: CategoryAuditorium, Price: 1500000.5, Status: StatusApproved}, r)

	assert.Error(t, set("capacity", "dua"))
	assert.Error(t, set("category", "gudang"))
	assert.Error(t, set("status", "pending"))
	assert.Equal(t, 250, r.Capacity)

	id, _ := s.Field("id")
	assert.Nil(t, id.Set)
}

func TestRoomSchema_PriceText(t *testing.T) {
	f, _ := RoomSchema().Field("price")
	assert.Equal(t, "150000", f.Text(Room{Price: 150000}))
	assert.Equal(t, "12.5", f.Text(Room{Price: 12.5}))
}

func TestBookingSchema_Date(t *testing.T) {
	s := BookingSchema()
	b := s.New()
	f, _ := s.Field("bookingDate")

	require.NoError(t, f.Set(&b, "2025-02-14"))
	assert.Equal(t, "2025-02-14", b.BookingDate)
	assert.Error(t, f.Set(&b, "14-02-2025"))
	assert.Equal(t, "2025-02-14", b.BookingDate)
	assert.Equal(t, listview.KindDate, f.Kind)
}

func TestUserSchema_Fields(t *testing.T) {
	assert.Equal(t, []string{"id", "name", "email"}, UserSchema().FieldNames())
	assert.Equal(t, "users", UserSchema().Entity)
}

func submitNew[T any](t *testing.T, schema *listview.Schema[T], fields map[string]string) error {
	t.Helper()
	e := listview.New(schema)
	require.NoError(t, e.OpenCreate())
	for k, v := range fields {
		require.NoError(t, e.SetField(k, v), k)
	}
	_, err := e.Submit()
	return err
}

func TestValidation_User(t *testing.T) {
	err := submitNew(t, UserSchema(), map[string]string{"name": "Andi"})
	var verr *listview.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"email": "required"}, verr.Fields)

	err = submitNew(t, UserSchema(), map[string]string{"name": "Andi", "email": "not-an-email"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Fields["email"])

	assert.NoError(t, submitNew(t, UserSchema(), map[string]string{"name": "Andi", "email": "andi@kampus.ac.id"}))
}

func TestValidation_Room(t *testing.T) {
	err := submitNew(t, RoomSchema(), map[string]string{"capacity": "-1"})
	var verr *listview.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "required", verr.Fields["name"])
	assert.Equal(t, "gte=0", verr.Fields["capacity"])

	assert.NoError(t, submitNew(t, RoomSchema(), map[string]string{"name": "Ruang B201", "capacity": "30", "price": "100000"}))
}

func TestValidation_Booking(t *testing.T) {
	err := submitNew(t, BookingSchema(), map[string]string{"price": "50000"})
	var verr *listview.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "required", verr.Fields["roomId"])
	assert.Equal(t, "required", verr.Fields["bookingDate"])
	assert.Equal(t, "required", verr.Fields["bookedBy"])

	assert.NoError(t, submitNew(t, BookingSchema(), map[string]string{
		"roomId": "1", "bookingDate": "2025-03-03", "bookedBy": "2", "price": "50000",
	}))
}

func TestSetRoomStatus(t *testing.T) {
	store := listview.NewStore(RoomSchema())
	store.ReplaceAll([]Room{{ID: 1, Name: "A101", Category: CategoryClass, Status: StatusAvailable}})

	r, err := SetRoomStatus(store, 1, "approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, r.Status)
	stored, _ := store.Get(1)
	assert.Equal(t, StatusApproved, stored.Status)

	_, err = SetRoomStatus(store, 1, "available")
	assert.ErrorIs(t, err, ErrInvalidReviewStatus)
	_, err = SetRoomStatus(store, 9, "rejected")
	assert.ErrorIs(t, err, listview.ErrNotFound)
}

func TestRevenue(t *testing.T) {
	assert.Equal(t, 0.0, Revenue(nil))
	assert.Equal(t, 400000.0, Revenue([]Booking{{Price: 150000}, {Price: 250000}}))
}

func TestUserSearch_ByNameAndID(t *testing.T) {
	e := listview.New(UserSchema())
	e.ReplaceAll([]User{{ID: 1, Name: "Ann", Email: "a@x.com"}, {ID: 2, Name: "Bob", Email: "b@x.com"}})

	e.Search("bob")
	assert.Equal(t, []User{{ID: 2, Name: "Bob", Email: "b@x.com"}}, e.View().Rows)

	e.Search("2")
	assert.Equal(t, []User{{ID: 2, Name: "Bob", Email: "b@x.com"}}, e.View().Rows)
}

func TestEditCancel_LeavesRoomUnchanged(t *testing.T) {
	e := listview.New(RoomSchema())
	orig := Room{ID: 1, Name: "Lab Kimia", Capacity: 25, Category: CategoryLaboratory, Price: 200000, Status: StatusAvailable}
	e.ReplaceAll([]Room{orig})

	require.NoError(t, e.OpenEdit(1))
	require.NoError(t, e.SetField("price", "1"))
	require.NoError(t, e.SetField("status", "rejected"))
	e.Cancel()

	got, ok := e.Get(1)
	require.True(t, ok)
	assert.Equal(t, orig, got)
}
