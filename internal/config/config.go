package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/garnizeh/trivia/pkg/ollama"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr           string          `yaml:"addr"`
	APITimeout     time.Duration   `yaml:"timeout"`
	DatabasePath   string          `yaml:"database_path"`
	MigrateOnStart bool            `yaml:"migrate_on_start"`
	Generator      GeneratorConfig `yaml:"generator"`
}

// GeneratorConfig controls the optional LLM-backed question generator.
type GeneratorConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Model    string        `yaml:"model"`
	Template string        `yaml:"template"`
	Ollama   ollama.Config `yaml:"ollama"`
}

// LoadConfig builds a Config from environment defaults and, when path is not
// empty, overlays the YAML file at path.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:           getEnv("TRIVIA_ADDR", ":8080"),
		APITimeout:     15 * time.Second,
		DatabasePath:   getEnv("TRIVIA_DATABASE_PATH", "trivia.db"),
		MigrateOnStart: getEnvBool("TRIVIA_MIGRATE_ON_START", false),
		Generator: GeneratorConfig{
			Enabled: getEnvBool("TRIVIA_GENERATOR_ENABLED", false),
			Model:   getEnv("TRIVIA_GENERATOR_MODEL", ""),
			Ollama:  ollama.Config{BaseURL: getEnv("TRIVIA_OLLAMA_URL", "")},
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Validate checks the configuration and fills generator client defaults.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.DatabasePath == "" {
		return errors.New("database_path is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.APITimeout)
	}
	if c.Generator.Enabled && c.Generator.Model == "" {
		return errors.New("generator.model is required when the generator is enabled")
	}

	c.Generator.Ollama = c.Generator.Ollama.WithDefaults()
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
