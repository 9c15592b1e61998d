// Command generate-question asks the configured Ollama model for one trivia
// question and prints it without storing it. Useful to tune prompt templates.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/garnizeh/trivia/internal/config"
	"github.com/garnizeh/trivia/internal/generator"
	"github.com/garnizeh/trivia/pkg/models"
	"github.com/garnizeh/trivia/pkg/ollama"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	category := flag.String("category", "Science", "Category name")
	difficulty := flag.Int("difficulty", 3, "Difficulty from 1 to 5")
	model := flag.String("model", "", "Model name, overrides generator.model")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *model != "" {
		cfg.Generator.Model = *model
	}
	cfg.Generator.Enabled = true
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	client, err := ollama.NewDefaultClient(cfg.Generator.Ollama)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	gen := generator.New(client, cfg.Generator.Model, cfg.Generator.Template)
	nq, err := gen.Generate(context.Background(), models.Category{Type: *category}, *difficulty)
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"question": nq.Question, "answer": nq.Answer, "difficulty": nq.Difficulty}); err != nil {
		log.Fatal(err)
	}
}
