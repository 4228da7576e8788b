package settings

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var validThemes = map[string]bool{"light": true, "dark": true}

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/settings", h.Get)
	api.PUT("/settings", h.Update)
}

func (h *Handler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Get())
}

func (h *Handler) Update(c echo.Context) error {
	var next Settings
	if err := c.Bind(&next); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if next.Theme == "" {
		next.Theme = h.store.Get().Theme
	}
	if !validThemes[next.Theme] {
		return echo.NewHTTPError(http.StatusBadRequest, "theme must be light or dark")
	}
	if next.Language == "" {
		next.Language = h.store.Get().Language
	}

	updated, err := h.store.Update(next)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, updated)
}
