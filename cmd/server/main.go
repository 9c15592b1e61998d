package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garnizeh/trivia/api"
	dbfs "github.com/garnizeh/trivia/db"
	"github.com/garnizeh/trivia/internal/config"
	"github.com/garnizeh/trivia/internal/db"
	"github.com/garnizeh/trivia/internal/generator"
	"github.com/garnizeh/trivia/pkg/ollama"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)
	ollama.SetLogger(logger)

	logger.Info("starting trivia server", slog.String("version", version), slog.String("build_time", buildTime))

	ctx := context.Background()

	dbCtx, dbCancel := context.WithTimeout(ctx, cfg.APITimeout)
	defer dbCancel()

	database, err := db.New(dbCtx, cfg.DatabasePath, logger)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}

	if cfg.MigrateOnStart {
		if err := db.Migrate(dbCtx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
			log.Fatalf("Failed to migrate DB: %v", err)
		}
	}

	var gen api.QuestionGenerator
	var llm *ollama.Client
	if cfg.Generator.Enabled {
		llm, err = ollama.NewDefaultClient(cfg.Generator.Ollama)
		if err != nil {
			log.Fatalf("Failed to create ollama client: %v", err)
		}
		if err := llm.Health(ctx); err != nil {
			// the endpoint stays routed; requests fail with 500 until ollama is reachable
			logger.Warn("ollama not healthy at startup", slog.Any("err", err))
		}
		gen = generator.New(llm, cfg.Generator.Model, cfg.Generator.Template)
	}

	handler := api.SetupRoutes(version, buildTime, database, gen)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := llm.Close(); err != nil {
		logger.Error("closing ollama client", slog.Any("err", err))
	}
	if err := database.Close(); err != nil {
		logger.Error("closing DB", slog.Any("err", err))
	}

	logger.Info("server exited")
}
