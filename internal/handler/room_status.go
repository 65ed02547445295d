package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-booking-admin/internal/listview"
	"github.com/iliyamo/room-booking-admin/internal/model"
)

// RoomStatus handles POST /v1/rooms/:id/status, the approve and reject
// buttons of the room screen.
func RoomStatus(rooms *EntityHandler[model.Room]) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
		}
		var body struct {
			Status string `json:"status"` // approved or rejected
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		}
		return rooms.withEngine(func(e *listview.Engine[model.Room]) error {
			room, err := model.SetRoomStatus(e, id, body.Status)
			if errors.Is(err, model.ErrInvalidReviewStatus) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			if err != nil {
				return writeError(c, err)
			}
			return c.JSON(http.StatusOK, room)
		})
	}
}
