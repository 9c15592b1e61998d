package ollama

import (
	"net/http"
	"runtime"
	"sync"
	"testing"
	"time"
)

// TestClient_NoGoroutineLeak creates and closes many clients to detect obvious goroutine leaks.
func TestClient_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	before := runtime.NumGoroutine()

	var wg sync.WaitGroup
	n := 50
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client := &http.Client{}
			cfg := Config{BaseURL: "http://localhost:11434", Timeout: 1}
			c, err := NewClient(cfg, client)
			if err != nil {
				t.Errorf("new client: %v", err)
				return
			}
			if err := c.Close(); err != nil {
				t.Errorf("close: %v", err)
			}
		}()
	}
	wg.Wait()

	time.Sleep(100 * time.Millisecond)
	runtime.GC()
	after := runtime.NumGoroutine()

	if after-before > 10 {
		t.Fatalf("possible goroutine leak: before=%d after=%d", before, after)
	}
}
