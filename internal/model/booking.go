package model

import "github.com/iliyamo/room-booking-admin/internal/listview"

// Booking reserves a room for a day on behalf of a user.
//
// Fields:
//
//	ID          – unique identifier, assigned by the store on create.
//	RoomID      – id of the booked room.
//	BookingDate – day of the booking, YYYY-MM-DD.
//	BookedBy    – id of the user who booked.
//	Price       – amount charged in rupiah.
type Booking struct {
	ID          int     `json:"id"`
	RoomID      int     `json:"roomId" validate:"required,gt=0"`
	BookingDate string  `json:"bookingDate" validate:"required,datetime=2006-01-02"`
	BookedBy    int     `json:"bookedBy" validate:"required,gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
}

// BookingSchema returns the field table for bookings.
func BookingSchema() *listview.Schema[Booking] {
	return &listview.Schema[Booking]{
		Entity: "bookings",
		Fields: []listview.Field[Booking]{
			listview.IntField("id", func(b Booking) int { return b.ID }, nil),
			listview.IntField("roomId", func(b Booking) int { return b.RoomID }, func(b *Booking, v int) { b.RoomID = v }),
			listview.DateField("bookingDate", func(b Booking) string { return b.BookingDate }, func(b *Booking, v string) { b.BookingDate = v }),
			listview.IntField("bookedBy", func(b Booking) int { return b.BookedBy }, func(b *Booking, v int) { b.BookedBy = v }),
			listview.FloatField("price", func(b Booking) float64 { return b.Price }, func(b *Booking, v float64) { b.Price = v }),
		},
		ID:     func(b Booking) int { return b.ID },
		WithID: func(b Booking, id int) Booking { b.ID = id; return b },
		New:    func() Booking { return Booking{} },
	}
}

// Revenue sums the price of every booking.
func Revenue(bookings []Booking) float64 {
	var total float64
	for _, b := range bookings {
		total += b.Price
	}
	return total
}
