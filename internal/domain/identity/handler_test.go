package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/admitdesk/admitdesk/internal/platform/auth"
)

func newTestServer(t *testing.T) (*echo.Echo, *mockRepo) {
	t.Helper()
	repo := &mockRepo{}
	h := NewHandler(NewService(repo, testJWT))
	e := echo.New()
	h.RegisterPublicRoutes(e.Group(""))
	h.RegisterRoutes(e.Group("", auth.JWTMiddleware(testJWT)))
	return e, repo
}

func doJSON(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandlerSignup(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/auth/signup",
		`{"name":"A Student","email":"a@x.com","phone":"9999999999","password":"hunter22"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "passwordHash") {
		t.Error("expected password hash kept out of the response")
	}
}

func TestHandlerSignup_DuplicateEmail(t *testing.T) {
	e, _ := newTestServer(t)
	body := `{"name":"A Student","email":"a@x.com","password":"hunter22"}`

	doJSON(e, http.MethodPost, "/auth/signup", body, "")
	rec := doJSON(e, http.MethodPost, "/auth/signup", body, "")
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestHandlerLogin(t *testing.T) {
	e, _ := newTestServer(t)
	doJSON(e, http.MethodPost, "/auth/signup",
		`{"name":"A Student","email":"a@x.com","password":"hunter22"}`, "")

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"hunter22"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a token")
	}
	if resp.User.Email != "a@x.com" {
		t.Errorf("unexpected user: %+v", resp.User)
	}
}

func TestHandlerLogin_WrongPassword(t *testing.T) {
	e, _ := newTestServer(t)
	doJSON(e, http.MethodPost, "/auth/signup",
		`{"name":"A Student","email":"a@x.com","password":"hunter22"}`, "")

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"wrong"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestHandlerMe(t *testing.T) {
	e, _ := newTestServer(t)
	doJSON(e, http.MethodPost, "/auth/signup",
		`{"name":"A Student","email":"a@x.com","password":"hunter22"}`, "")
	login := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"hunter22"}`, "")
	var resp loginResponse
	json.Unmarshal(login.Body.Bytes(), &resp)

	rec := doJSON(e, http.MethodGet, "/auth/me", "", resp.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var me PublicUser
	json.Unmarshal(rec.Body.Bytes(), &me)
	if me.ID != resp.User.ID {
		t.Errorf("expected the signed-in account, got %+v", me)
	}
}

func TestHandlerMe_NoToken(t *testing.T) {
	e, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/auth/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestHandlerUpdateProfile(t *testing.T) {
	e, _ := newTestServer(t)
	doJSON(e, http.MethodPost, "/auth/signup",
		`{"name":"A Student","email":"a@x.com","password":"hunter22"}`, "")
	login := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"hunter22"}`, "")
	var resp loginResponse
	json.Unmarshal(login.Body.Bytes(), &resp)

	rec := doJSON(e, http.MethodPut, "/auth/profile", `{"name":"Renamed"}`, resp.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated PublicUser
	json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Name != "Renamed" {
		t.Errorf("expected renamed profile, got %+v", updated)
	}
}

func TestHandlerLogout(t *testing.T) {
	e, repo := newTestServer(t)
	doJSON(e, http.MethodPost, "/auth/signup",
		`{"name":"A Student","email":"a@x.com","password":"hunter22"}`, "")
	login := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"hunter22"}`, "")
	var resp loginResponse
	json.Unmarshal(login.Body.Bytes(), &resp)

	rec := doJSON(e, http.MethodPost, "/auth/logout", "", resp.Token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if repo.current != nil {
		t.Error("expected signed-in account cleared")
	}
}

func TestHandlerRebindsUserFromContext(t *testing.T) {
	// A request carrying identity on the context but no route match must
	// not leak another account's data.
	e, repo := newTestServer(t)
	repo.Add(&User{ID: "u9", Email: "x@x.com"})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, "u9"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a bearer token, got %d", rec.Code)
	}
}
