package notification

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/admitdesk/admitdesk/internal/domain/booking"
	"github.com/admitdesk/admitdesk/internal/platform/auth"
)

type Handler struct {
	bookings *booking.Service
}

func NewHandler(bookings *booking.Service) *Handler {
	return &Handler{bookings: bookings}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/appointments/:id/reminder", h.SendReminder, auth.RequireRole(auth.RoleAdmin))
}

// SendReminder builds the missed-appointment nudge for the admin dashboard.
func (h *Handler) SendReminder(c echo.Context) error {
	a, err := h.bookings.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	reminder, err := BuildReminder(a)
	if err != nil {
		if errors.Is(err, ErrNotMissed) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, reminder)
}
