package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"

	dbfs "github.com/garnizeh/trivia/db"
	"github.com/garnizeh/trivia/internal/config"
	"github.com/garnizeh/trivia/internal/db"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	noSeed := flag.Bool("no-seed", false, "Create the schema without the sample trivia")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	var seed fs.FS = dbfs.SeedFiles
	if *noSeed {
		seed = nil
	}
	if err := db.Migrate(ctx, database, dbfs.Migrations, seed); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database %s initialized.\n", cfg.DatabasePath)
}
