package identity

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/admitdesk/admitdesk/internal/platform/auth"
	"github.com/admitdesk/admitdesk/internal/platform/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts the unauthenticated entry points.
func (h *Handler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/auth/signup", h.Signup)
	g.POST("/auth/login", h.Login)
}

// RegisterRoutes mounts the token-protected account endpoints.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", h.Me)
	api.PUT("/auth/profile", h.UpdateProfile)
}

func (h *Handler) Signup(c echo.Context) error {
	var input SignupInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.Signup(input)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, u.Public())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, token, err := h.svc.Login(req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: u.Public()})
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.svc.Logout(); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Me(c echo.Context) error {
	u, err := h.svc.Get(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u.Public())
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var update ProfileUpdate
	if err := c.Bind(&update); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.UpdateProfile(auth.UserIDFromContext(c.Request().Context()), update)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u.Public())
}

func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, ErrBadCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, "email already registered")
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	case errors.Is(err, validate.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
