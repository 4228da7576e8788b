package admission

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

func identityAs(userID, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			ctx = context.WithValue(ctx, auth.UserIDKey, userID)
			ctx = context.WithValue(ctx, auth.RoleKey, role)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func newTestServer(t *testing.T, userID, role string) (*echo.Echo, *mockRepo) {
	t.Helper()
	repo := &mockRepo{}
	h := NewHandler(NewService(repo))
	e := echo.New()
	api := e.Group("", identityAs(userID, role))
	h.RegisterRoutes(api)
	return e, repo
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandlerSubmit(t *testing.T) {
	e, repo := newTestServer(t, "u1", auth.RoleStudent)

	rec := doJSON(e, http.MethodPost, "/admissions",
		`{"fullName":"A Student","email":"a@x.com","phone":"9999999999","courseInterested":"B.Tech CSE","address":"12 College Road"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got Admission
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got.UserID != "u1" || got.Status != StatusPending {
		t.Errorf("unexpected admission: %+v", got)
	}
	if len(repo.admissions) != 1 {
		t.Errorf("expected 1 stored admission, got %d", len(repo.admissions))
	}
}

func TestHandlerSubmit_AdminAllowed(t *testing.T) {
	// Admins pass every role check, matching the dashboard's walk-in entry.
	e, _ := newTestServer(t, "admin-1", auth.RoleAdmin)

	rec := doJSON(e, http.MethodPost, "/admissions",
		`{"fullName":"A Student","email":"a@x.com","phone":"9999999999","courseInterested":"BBA","address":"12 College Road"}`)
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandlerSubmit_Validation(t *testing.T) {
	e, _ := newTestServer(t, "u1", auth.RoleStudent)

	rec := doJSON(e, http.MethodPost, "/admissions", `{"fullName":"A Student"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerList_StudentSeesOwnOnly(t *testing.T) {
	e, repo := newTestServer(t, "u1", auth.RoleStudent)

	mine := testInput()
	mine.UserID = "u1"
	repo.Add(mine)
	other := testInput()
	other.UserID = "u2"
	repo.Add(other)

	rec := doJSON(e, http.MethodGet, "/admissions", "")
	var page struct {
		Data  []*Admission `json:"data"`
		Total int          `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &page)
	if page.Total != 1 || len(page.Data) != 1 || page.Data[0].UserID != "u1" {
		t.Errorf("expected only u1's admission, got %+v", page)
	}
}

func TestHandlerDecide(t *testing.T) {
	e, repo := newTestServer(t, "admin-1", auth.RoleAdmin)
	a, _ := repo.Add(testInput())

	rec := doJSON(e, http.MethodPut, "/admissions/"+a.ID+"/status", `{"status":"approved"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPut, "/admissions/"+a.ID+"/status", `{"status":"rejected"}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 re-deciding, got %d", rec.Code)
	}
}

func TestHandlerDecide_StudentForbidden(t *testing.T) {
	e, repo := newTestServer(t, "u1", auth.RoleStudent)
	a, _ := repo.Add(testInput())

	rec := doJSON(e, http.MethodPut, "/admissions/"+a.ID+"/status", `{"status":"approved"}`)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestHandlerGet_OtherUserLooksMissing(t *testing.T) {
	e, repo := newTestServer(t, "u1", auth.RoleStudent)

	other := testInput()
	other.UserID = "u2"
	a, _ := repo.Add(other)

	rec := doJSON(e, http.MethodGet, "/admissions/"+a.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandlerDelete(t *testing.T) {
	e, repo := newTestServer(t, "admin-1", auth.RoleAdmin)
	a, _ := repo.Add(testInput())

	rec := doJSON(e, http.MethodDelete, "/admissions/"+a.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(repo.admissions) != 0 {
		t.Error("expected admission removed")
	}
}

func TestHandlerStats(t *testing.T) {
	e, repo := newTestServer(t, "admin-1", auth.RoleAdmin)
	repo.Add(testInput())

	rec := doJSON(e, http.MethodGet, "/admissions/stats", "")
	var counts map[string]int
	json.Unmarshal(rec.Body.Bytes(), &counts)
	if counts[StatusPending] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
