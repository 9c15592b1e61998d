package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_UnknownPath(t *testing.T) {
	h := newSeededRouter(t, nil)

	for _, path := range []string{"/api/nothing", "/nothing", "/api/questions/abc"} {
		t.Run(path, func(t *testing.T) {
			w, body := do(t, h, http.MethodGet, path, "")
			expectError(t, w, body, http.StatusNotFound, "Not found")
		})
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h := newSeededRouter(t, nil)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPut, "/api/questions"},
		{http.MethodPatch, "/api/questions"},
		{http.MethodGet, "/api/quizzes"},
		{http.MethodGet, "/api/questions/5"},
		{http.MethodPost, "/api/categories"},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			w, body := do(t, h, c.method, c.path, "")
			expectError(t, w, body, http.StatusMethodNotAllowed, "Method not allowed")
		})
	}
}

func TestRouter_CORSOnEveryResponse(t *testing.T) {
	h := newSeededRouter(t, nil)

	for _, path := range []string{"/api/categories", "/api/missing"} {
		w, _ := do(t, h, http.MethodGet, path, "")
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("%s: expected Allow-Origin *, got %q", path, got)
		}
		if got := w.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PATCH, DELETE, OPTIONS" {
			t.Fatalf("%s: unexpected Allow-Methods %q", path, got)
		}
	}
}

func TestRouter_Preflight(t *testing.T) {
	h := newSeededRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/questions/5", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
		t.Fatalf("unexpected Allow-Headers %q", got)
	}
}

func TestRouter_HealthAndVersion(t *testing.T) {
	h := newSeededRouter(t, nil)

	w, body := do(t, h, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("health: got %d %v", w.Code, body)
	}
	w, body = do(t, h, http.MethodGet, "/version", "")
	if w.Code != http.StatusOK || body["version"] != "test" {
		t.Fatalf("version: got %d %v", w.Code, body)
	}
}
