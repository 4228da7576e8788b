package catalog

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/departments", h.List)
	g.GET("/departments/:id", h.Get)
}

func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, List())
}

func (h *Handler) Get(c echo.Context) error {
	d, err := Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "department not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}
