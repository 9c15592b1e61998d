package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/garnizeh/trivia/api"
	dbfs "github.com/garnizeh/trivia/db"
	dbpkg "github.com/garnizeh/trivia/internal/db"
	"github.com/garnizeh/trivia/internal/repository/sqlite"
)

// newSeededRouter returns the full router over a private in-memory database
// holding the sample trivia.
func newSeededRouter(t *testing.T, gen api.QuestionGenerator) http.Handler {
	t.Helper()
	ctx := context.Background()
	dsn := "file:api_" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	d, err := dbpkg.New(ctx, dsn, nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := sqlite.New(d, nil)
	return api.NewRouter(api.Deps{Questions: repo, Categories: repo, Generator: gen, Version: "test"})
}

// do sends a request through h and decodes the JSON object it answers with.
func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: response is not a JSON object: %v (%s)", method, path, err, w.Body.String())
		}
	}
	return w, out
}

// expectError checks the failure envelope.
func expectError(t *testing.T, w *httptest.ResponseRecorder, body map[string]any, code int, msg string) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("expected status %d, got %d (%s)", code, w.Code, w.Body.String())
	}
	if body["success"] != false {
		t.Fatalf("expected success false, got %v", body["success"])
	}
	if body["error"] != float64(code) {
		t.Fatalf("expected error %d, got %v", code, body["error"])
	}
	if body["message"] != msg {
		t.Fatalf("expected message %q, got %v", msg, body["message"])
	}
}

func questionIDs(t *testing.T, v any) []int64 {
	t.Helper()
	list, ok := v.([]any)
	if !ok {
		t.Fatalf("questions is not a list: %T", v)
	}
	out := make([]int64, 0, len(list))
	for _, item := range list {
		q, ok := item.(map[string]any)
		if !ok {
			t.Fatalf("question is not an object: %T", item)
		}
		out = append(out, int64(q["id"].(float64)))
	}
	return out
}
