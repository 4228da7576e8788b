package admission

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

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
	api.POST("/admissions", h.Submit, auth.RequireRole(auth.RoleStudent))
	api.GET("/admissions", h.List)
	api.GET("/admissions/stats", h.Stats, auth.RequireRole(auth.RoleAdmin))
	api.GET("/admissions/:id", h.Get)
	api.PUT("/admissions/:id/status", h.Decide, auth.RequireRole(auth.RoleAdmin))
	api.DELETE("/admissions/:id", h.Delete, auth.RequireRole(auth.RoleAdmin))
}

func (h *Handler) Submit(c echo.Context) error {
	var input AdmissionInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input.UserID = auth.UserIDFromContext(c.Request().Context())

	a, err := h.svc.Submit(input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) List(c echo.Context) error {
	ctx := c.Request().Context()
	pg := pagination.FromContext(c)

	var items []*Admission
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
		return echo.NewHTTPError(http.StatusNotFound, "admission not found")
	}
	return c.JSON(http.StatusOK, a)
}

type decisionRequest struct {
	Status string `json:"status"`
}

func (h *Handler) Decide(c echo.Context) error {
	var req decisionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Decide(c.Param("id"), req.Status)
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
		return echo.NewHTTPError(http.StatusNotFound, "admission not found")
	case errors.Is(err, ErrNotOwner):
		return echo.NewHTTPError(http.StatusForbidden, "not your admission")
	case errors.Is(err, ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, validate.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
