package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/admitdesk/admitdesk/internal/domain/catalog"
	"github.com/admitdesk/admitdesk/internal/platform/auth"
	"github.com/admitdesk/admitdesk/internal/platform/validate"
	"github.com/admitdesk/admitdesk/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/appointments", h.Create, auth.RequireRole(auth.RoleStudent))
	api.GET("/appointments", h.List)
	api.GET("/appointments/stats", h.Stats, auth.RequireRole(auth.RoleAdmin))
	api.GET("/appointments/:id", h.Get)
	api.PUT("/appointments/:id/status", h.UpdateStatus, auth.RequireRole(auth.RoleAdmin))
	api.POST("/appointments/:id/cancel", h.Cancel, auth.RequireRole(auth.RoleStudent))
	api.DELETE("/appointments/:id", h.Delete, auth.RequireRole(auth.RoleAdmin))
}

func (h *Handler) Create(c echo.Context) error {
	var input AppointmentInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	// The booking always belongs to the authenticated requester.
	input.UserID = auth.UserIDFromContext(c.Request().Context())

	a, err := h.svc.Create(input)
	if err != nil {
		return httpError(err)
	}
	// Free-text departments are accepted; flag ones outside the catalog so
	// the client can surface a hint.
	if !catalog.Exists(a.Department) {
		c.Response().Header().Set("X-Department-Unlisted", "true")
	}
	return c.JSON(http.StatusCreated, a)
}

// List returns all appointments for admins (optionally filtered by status)
// and the requester's own appointments for students.
func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	pg := pagination.FromContext(c)

	var items []*Appointment
	if auth.RoleFromContext(ctx) == auth.RoleAdmin {
		if status := c.QueryParam("status"); status != "" {
			if !ValidStatus(status) {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
			}
			items = h.svc.ListByStatus(status)
		} else {
			items = h.svc.List()
		}
	} else {
		items = h.svc.ListForUser(auth.UserIDFromContext(ctx))
	}

	page := pagination.Slice(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, len(items), pg.Limit, pg.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	a, err := h.svc.Get(c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	ctx := c.Request().Context()
	if auth.RoleFromContext(ctx) != auth.RoleAdmin && a.UserID != auth.UserIDFromContext(ctx) {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

type statusUpdateRequest struct {
	Status       string     `json:"status"`
	AssignedDate *time.Time `json:"assignedDate,omitempty"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.UpdateStatus(c.Param("id"), req.Status, req.AssignedDate)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Cancel(c echo.Context) error {
	requester := auth.UserIDFromContext(c.Request().Context())
	a, err := h.svc.Cancel(c.Param("id"), requester)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Stats())
}

func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	case errors.Is(err, ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, "not your appointment")
	case errors.Is(err, ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, validate.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
