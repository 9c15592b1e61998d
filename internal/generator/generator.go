// Package generator drafts new trivia questions with an LLM served by Ollama.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/ollama"
)

// DefaultTemplate is the prompt used when no template is configured. It is
// rendered with Category (the category name) and Difficulty (1 to 5).
const DefaultTemplate = `You write questions for a trivia game.
Write one new question for the category "{{.Category}}" at difficulty {{.Difficulty}} on a scale from 1 (easy) to 5 (hard).
The answer must be short: a name, a number, or a few words.
Respond with ONLY a JSON object, no markdown and no explanations, in this format:
{"question": "Question text?", "answer": "Answer"}`

// ErrInvalidDraft is returned when the model output is not a usable question.
var ErrInvalidDraft = errors.New("generator: model returned an invalid question")

// Model is the subset of the Ollama client the generator needs.
type Model interface {
	Generate(ctx context.Context, model, prompt, format string) (ollama.GenerateResult, error)
}

type Generator struct {
	client   Model
	model    string
	template string
}

type draft struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func New(client Model, model, template string) *Generator {
	if template == "" {
		template = DefaultTemplate
	}
	return &Generator{client: client, model: model, template: template}
}

// Generate asks the model for a question in category at the given difficulty
// and returns it ready to be stored. Nothing is persisted here.
func (g *Generator) Generate(ctx context.Context, category models.Category, difficulty int) (*models.NewQuestion, error) {
	prompt, err := ollama.RenderTemplate(g.template, map[string]any{
		"Category":   category.Type,
		"Difficulty": difficulty,
	})
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}

	res, err := g.client.Generate(ctx, g.model, prompt, "json")
	if err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	var d draft
	if err := json.Unmarshal([]byte(cleanJSONContent(res.Text)), &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}
	d.Question = strings.TrimSpace(d.Question)
	d.Answer = strings.TrimSpace(d.Answer)
	if d.Question == "" || d.Answer == "" {
		return nil, ErrInvalidDraft
	}

	return &models.NewQuestion{
		Question:   d.Question,
		Answer:     d.Answer,
		Category:   category.ID,
		Difficulty: difficulty,
	}, nil
}

// cleanJSONContent strips markdown code fences some models wrap JSON in.
func cleanJSONContent(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
