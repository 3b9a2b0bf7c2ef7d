package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/H4ckEd666/Twitter-clone-app/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const frontend = "http://localhost:3000"

func newServer(t *testing.T, rdb *redis.Client) *Server {
	t.Helper()
	s, err := NewServer(context.Background(), config.Config{JWTSecret: "secret", FrontendURL: frontend}, Deps{Redis: rdb})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	t.Cleanup(func() { _ = s.Stream.Close() })
	return s
}

func errorBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestHealthRoute(t *testing.T) {
	s := newServer(t, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestHealthRouteWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	s := newServer(t, redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	resp, err := s.App.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil || resp.StatusCode != 200 {
		t.Fatalf("health with redis: %v", err)
	}
}

func TestProtectedRouteRendersJSONError(t *testing.T) {
	s := newServer(t, nil)

	resp, _ := s.App.Test(httptest.NewRequest(http.MethodGet, "/api/notifications", nil))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized, got %d", resp.StatusCode)
	}
	if msg := errorBody(t, resp); !strings.Contains(msg, "No Token Provided") {
		t.Fatalf("unexpected error message %q", msg)
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newServer(t, nil)

	resp, _ := s.App.Test(httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
	if errorBody(t, resp) == "" {
		t.Fatalf("expected error message")
	}
}

func TestOriginCheck(t *testing.T) {
	s := newServer(t, nil)

	cases := []struct {
		name    string
		origin  string
		referer string
		want    int
	}{
		{"foreign origin", "http://evil.test", "", http.StatusForbidden},
		{"foreign referer", "", "http://evil.test/page", http.StatusForbidden},
		{"frontend origin", frontend, "", http.StatusOK},
		{"frontend referer", "", frontend + "/login", http.StatusOK},
		{"no headers", "", "", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		if tc.origin != "" {
			req.Header.Set("Origin", tc.origin)
		}
		if tc.referer != "" {
			req.Header.Set("Referer", tc.referer)
		}
		resp, _ := s.App.Test(req)
		if resp.StatusCode != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, resp.StatusCode)
		}
	}
}

func TestOriginCheckIgnoresSafeMethods(t *testing.T) {
	s := newServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	resp, _ := s.App.Test(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected ok, got %d", resp.StatusCode)
	}
}

func TestCORSAllowsFrontendWithCredentials(t *testing.T) {
	s := newServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", frontend)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, _ := s.App.Test(req)
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != frontend {
		t.Fatalf("unexpected allow origin %q", got)
	}
	if resp.Header.Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("expected credentials to be allowed")
	}
}

func TestWebsocketRequiresUpgrade(t *testing.T) {
	s := newServer(t, nil)

	resp, _ := s.App.Test(httptest.NewRequest(http.MethodGet, "/ws?userId=u1", nil))
	if resp.StatusCode != http.StatusUpgradeRequired {
		t.Fatalf("expected upgrade required, got %d", resp.StatusCode)
	}
}
