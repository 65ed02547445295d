package model

import (
	"errors"
	"fmt"

	"github.com/iliyamo/room-booking-admin/internal/listview"
)

// ErrInvalidReviewStatus is returned when a review sets anything other than
// approved or rejected.
var ErrInvalidReviewStatus = errors.New("status must be approved or rejected")

// RoomCategory classifies a room.
type RoomCategory string

const (
	CategoryClass      RoomCategory = "kelas"
	CategoryLaboratory RoomCategory = "labolatorium"
	CategoryLibrary    RoomCategory = "perpustakaan"
	CategoryAuditorium RoomCategory = "auditorium"
	CategoryOther      RoomCategory = "lainnya"
)

// RoomCategories lists every category in form order.
var RoomCategories = []string{
	string(CategoryClass),
	string(CategoryLaboratory),
	string(CategoryLibrary),
	string(CategoryAuditorium),
	string(CategoryOther),
}

// RoomStatus is the approval state of a room.
type RoomStatus string

const (
	StatusAvailable RoomStatus = "available"
	StatusApproved  RoomStatus = "approved"
	StatusRejected  RoomStatus = "rejected"
)

// RoomStatuses lists every status in form order.
var RoomStatuses = []string{
	string(StatusAvailable),
	string(StatusApproved),
	string(StatusRejected),
}

// Room is a bookable space listed on the room management screen.
//
// Fields:
//
//	ID       – unique identifier, assigned by the store on create.
//	Name     – display name.
//	Capacity – number of people the room holds.
//	Category – one of RoomCategories.
//	Price    – rental price in rupiah.
//	Status   – one of RoomStatuses.
type Room struct {
	ID       int          `json:"id"`
	Name     string       `json:"name" validate:"required"`
	Capacity int          `json:"capacity" validate:"gte=0"`
	Category RoomCategory `json:"category" validate:"required,oneof=kelas labolatorium perpustakaan auditorium lainnya"`
	Price    float64      `json:"price" validate:"gte=0"`
	Status   RoomStatus   `json:"status" validate:"required,oneof=available approved rejected"`
}

// WithStatus returns a copy of r carrying status s.
func (r Room) WithStatus(s RoomStatus) Room {
	r.Status = s
	return r
}

// ParseReviewStatus accepts the two statuses an approve/reject action can
// set.
func ParseReviewStatus(s string) (RoomStatus, bool) {
	switch RoomStatus(s) {
	case StatusApproved, StatusRejected:
		return RoomStatus(s), true
	}
	return "", false
}

// RoomUpdater is the part of a room collection SetRoomStatus touches.
type RoomUpdater interface {
	Get(id int) (Room, bool)
	Update(r Room) bool
}

// SetRoomStatus approves or rejects the room with id.  The change goes
// through Update like any other edit.
func SetRoomStatus(store RoomUpdater, id int, status string) (Room, error) {
	s, ok := ParseReviewStatus(status)
	if !ok {
		return Room{}, fmt.Errorf("%w: %q", ErrInvalidReviewStatus, status)
	}
	r, ok := store.Get(id)
	if !ok {
		return Room{}, fmt.Errorf("%w: id %d", listview.ErrNotFound, id)
	}
	r = r.WithStatus(s)
	store.Update(r)
	return r, nil
}

// RoomSchema returns the field table for rooms.  New rooms default to the
// first category and the available status.
func RoomSchema() *listview.Schema[Room] {
	return &listview.Schema[Room]{
		Entity: "rooms",
		Fields: []listview.Field[Room]{
			listview.IntField("id", func(r Room) int { return r.ID }, nil),
			listview.TextField("name", func(r Room) string { return r.Name }, func(r *Room, v string) { r.Name = v }),
			listview.IntField("capacity", func(r Room) int { return r.Capacity }, func(r *Room, v int) { r.Capacity = v }),
			listview.EnumField("category", RoomCategories,
				func(r Room) string { return string(r.Category) },
				func(r *Room, v string) { r.Category = RoomCategory(v) }),
			listview.FloatField("price", func(r Room) float64 { return r.Price }, func(r *Room, v float64) { r.Price = v }),
			listview.EnumField("status", RoomStatuses,
				func(r Room) string { return string(r.Status) },
				func(r *Room, v string) { r.Status = RoomStatus(v) }),
		},
		ID:     func(r Room) int { return r.ID },
		WithID: func(r Room, id int) Room { r.ID = id; return r },
		New: func() Room {
			return Room{Category: CategoryClass, Status: StatusAvailable}
		},
	}
}
