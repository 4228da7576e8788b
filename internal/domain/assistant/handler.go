package assistant

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/assistant/greeting", h.Greeting)
	g.POST("/assistant/messages", h.Message)
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Reply string `json:"reply"`
}

func (h *Handler) Greeting(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Reply: Greeting})
}

func (h *Handler) Message(c echo.Context) error {
	var req messageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}
	return c.JSON(http.StatusOK, messageResponse{Reply: Reply(req.Message)})
}
