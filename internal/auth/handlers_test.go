package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/H4ckEd666/Twitter-clone-app/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

func newApp(mock pgxmock.PgxPoolIface) (*fiber.App, *Service) {
	svc := NewService("secret", users.NewService(mock, nil))
	app := fiber.New()
	RegisterRoutes(app.Group("/api/auth"), svc, JWTMiddleware("secret"), true)
	return app, svc
}

func postJSON(path string, body any) *http.Request {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	return nil
}

func TestSignupHandlerSetsCookie(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	now := time.Now()
	expectExists(mock, "username", "alice", false)
	expectExists(mock, "email", "alice@example.com", false)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "alice", "alice@example.com", pgxmock.AnyArg(), "Alice").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	app, _ := newApp(mock)
	resp, err := app.Test(postJSON("/api/auth/signup", SignupRequest{
		Username: "alice", FullName: "Alice", Email: "alice@example.com", Password: "secret1",
	}))
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status: %v %d", err, resp.StatusCode)
	}
	cookie := sessionCookie(resp)
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly || !cookie.Secure {
		t.Fatalf("expected secure httpOnly session cookie, got %+v", cookie)
	}

	var body users.User
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Username != "alice" {
		t.Fatalf("unexpected body: %+v %v", body, err)
	}
}

func TestSignupHandlerMissingField(t *testing.T) {
	app, _ := newApp(nil)
	resp, _ := app.Test(postJSON("/api/auth/signup", SignupRequest{Username: "alice"}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestLoginLogoutMe(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	expectUser(mock, "alice", "user-1", string(hash))
	expectUser(mock, "user-1", "user-1", string(hash))
	expectRelations(mock, "user-1")

	app, _ := newApp(mock)
	resp, err := app.Test(postJSON("/api/auth/login", LoginRequest{Username: "alice", Password: "secret1"}))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: %v %d", err, resp.StatusCode)
	}
	cookie := sessionCookie(resp)
	if cookie == nil {
		t.Fatalf("expected session cookie")
	}

	expectUser(mock, "user-1", "user-1", string(hash))
	expectRelations(mock, "user-1")
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie.Value})
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status: %d", resp.StatusCode)
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status: %d", resp.StatusCode)
	}
	cleared := sessionCookie(resp)
	if cleared == nil || cleared.Value != "" {
		t.Fatalf("expected cleared cookie, got %+v", cleared)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginHandlerRejectsEmptyBody(t *testing.T) {
	app, _ := newApp(nil)
	resp, _ := app.Test(postJSON("/api/auth/login", LoginRequest{}))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %d", resp.StatusCode)
	}
}

func TestMeRequiresToken(t *testing.T) {
	app, _ := newApp(nil)
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}
}

func TestMeDeletedUser(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, username, email, password_hash`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(userColumns))

	app, svc := newApp(mock)
	token, _ := svc.signToken("user-1", time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	if !strings.Contains(buf.String(), "User not found") {
		t.Fatalf("unexpected body: %s", buf.String())
	}
}
