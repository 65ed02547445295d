package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-booking-admin/internal/model"
)

// Counter reports the size of a collection.
type Counter interface {
	Count() int
}

// Summary is the dashboard payload.
type Summary struct {
	Users    int     `json:"users"`
	Rooms    int     `json:"rooms"`
	Bookings int     `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

// DashboardHandler aggregates the three collections.
type DashboardHandler struct {
	Users    Counter
	Rooms    Counter
	Bookings *EntityHandler[model.Booking]
}

// Summary computes the current totals.  Revenue is the sum of booking
// prices.
func (h *DashboardHandler) Summary() Summary {
	bookings := h.Bookings.Snapshot()
	return Summary{
		Users:    h.Users.Count(),
		Rooms:    h.Rooms.Count(),
		Bookings: len(bookings),
		Revenue:  model.Revenue(bookings),
	}
}

// Get handles GET /v1/dashboard.
func (h *DashboardHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Summary())
}
