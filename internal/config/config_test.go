package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/garnizeh/trivia/internal/config"
	"github.com/garnizeh/trivia/pkg/ollama"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("TRIVIA_ADDR", "")
	t.Setenv("TRIVIA_DATABASE_PATH", "")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.DatabasePath != "trivia.db" {
		t.Fatalf("expected default database path, got %q", cfg.DatabasePath)
	}
	if cfg.APITimeout != 15*time.Second {
		t.Fatalf("expected default timeout, got %v", cfg.APITimeout)
	}
	if cfg.MigrateOnStart || cfg.Generator.Enabled {
		t.Fatalf("expected migrate and generator disabled by default: %+v", cfg)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TRIVIA_ADDR", ":9999")
	t.Setenv("TRIVIA_DATABASE_PATH", "/tmp/x.db")
	t.Setenv("TRIVIA_MIGRATE_ON_START", "true")
	t.Setenv("TRIVIA_GENERATOR_ENABLED", "not-a-bool")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.DatabasePath != "/tmp/x.db" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if !cfg.MigrateOnStart {
		t.Fatalf("expected migrate_on_start from env")
	}
	if cfg.Generator.Enabled {
		t.Fatalf("invalid bool must fall back to default")
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "addr: \":7000\"\n" +
		"timeout: 5s\n" +
		"database_path: '" + filepath.Join(dir, "t.db") + "'\n" +
		"migrate_on_start: true\n" +
		"generator:\n" +
		"  enabled: true\n" +
		"  model: llama3\n" +
		"  ollama:\n" +
		"    base_url: http://ollama:11434\n" +
		"    retries: 4\n" +
		"    backoff: 250ms\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7000" || cfg.APITimeout != 5*time.Second || !cfg.MigrateOnStart {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	g := cfg.Generator
	if !g.Enabled || g.Model != "llama3" || g.Ollama.BaseURL != "http://ollama:11434" || g.Ollama.Retries != 4 || g.Ollama.Backoff != 250*time.Millisecond {
		t.Fatalf("unexpected generator config: %+v", g)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		return &config.Config{Addr: ":8080", APITimeout: time.Second, DatabasePath: "trivia.db"}
	}

	cases := []struct {
		name    string
		mutate  func(c *config.Config)
		wantErr bool
	}{
		{name: "Valid", mutate: func(c *config.Config) {}},
		{name: "MissingAddr", mutate: func(c *config.Config) { c.Addr = "" }, wantErr: true},
		{name: "MissingDatabasePath", mutate: func(c *config.Config) { c.DatabasePath = "" }, wantErr: true},
		{name: "ZeroTimeout", mutate: func(c *config.Config) { c.APITimeout = 0 }, wantErr: true},
		{name: "GeneratorWithoutModel", mutate: func(c *config.Config) { c.Generator.Enabled = true }, wantErr: true},
		{name: "GeneratorWithModel", mutate: func(c *config.Config) { c.Generator.Enabled = true; c.Generator.Model = "m" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			err := c.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_OllamaDefaultsPopulated(t *testing.T) {
	cfg := &config.Config{Addr: ":8080", APITimeout: time.Second, DatabasePath: "trivia.db"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed unexpectedly: %v", err)
	}
	def := ollama.DefaultConfig()
	if cfg.Generator.Ollama.BaseURL != def.BaseURL || cfg.Generator.Ollama.Timeout != def.Timeout {
		t.Fatalf("expected ollama defaults, got %+v", cfg.Generator.Ollama)
	}
}
