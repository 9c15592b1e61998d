package ollama_test

import (
	"testing"

	"github.com/garnizeh/trivia/pkg/ollama"
)

func TestRenderTemplate(t *testing.T) {
	out, err := ollama.RenderTemplate("category={{.Category}} level={{.Difficulty}}", map[string]any{"Category": "Art", "Difficulty": 3})
	if err != nil {
		t.Fatalf("RenderTemplate: %v", err)
	}
	if out != "category=Art level=3" {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := ollama.RenderTemplate("{{.Missing", nil); err == nil {
		t.Fatalf("expected parse error")
	}
	if _, err := ollama.RenderTemplate("{{.Missing}}", map[string]any{}); err == nil {
		t.Fatalf("expected missing key error")
	}
}
