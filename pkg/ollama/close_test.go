package ollama

import (
	"net/http"
	"sync/atomic"
	"testing"
)

type testTransport struct{ called int32 }

func (t *testTransport) RoundTrip(req *http.Request) (*http.Response, error) { panic("not used") }
func (t *testTransport) CloseIdleConnections()                               { atomic.AddInt32(&t.called, 1) }

func TestClient_Close_IdempotentAndCallsTransport(t *testing.T) {
	tr := &testTransport{}
	client := &http.Client{Transport: tr}
	cfg := Config{BaseURL: "http://localhost:11434", Timeout: 1}
	c, err := NewClient(cfg, client)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := c.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if atomic.LoadInt32(&tr.called) != 1 {
		t.Fatalf("expected CloseIdleConnections called once")
	}

	// second call should be a no-op
	if err := c.Close(); err != nil {
		t.Fatalf("Close second call error: %v", err)
	}
	if atomic.LoadInt32(&tr.called) != 1 {
		t.Fatalf("expected CloseIdleConnections not called again")
	}
}

func TestNewClient_InvalidBaseURL(t *testing.T) {
	if _, err := NewClient(Config{BaseURL: "not a url"}, nil); err == nil {
		t.Fatalf("expected error for invalid base url")
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	got := Config{Timeout: 5}.WithDefaults()
	def := DefaultConfig()
	if got.BaseURL != def.BaseURL {
		t.Fatalf("expected default base url, got %q", got.BaseURL)
	}
	if got.Timeout != 5 {
		t.Fatalf("explicit timeout must be kept, got %v", got.Timeout)
	}
	if got.CircuitFailureThreshold != def.CircuitFailureThreshold || got.CircuitReset != def.CircuitReset {
		t.Fatalf("expected circuit defaults, got %+v", got)
	}
}
