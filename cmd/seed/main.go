package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/menuplanner/backend/config"
	"github.com/menuplanner/backend/internal/app"
)

// seed loads the configured ingredients CSV and dish JSON files into storage.
// Existing names are left untouched, so running it twice is harmless.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer repos.Close()

	services := app.NewServices(cfg, repos)
	defer services.Close()

	report, err := app.SeedFromFiles(ctx, cfg, services.Seed)
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	for _, rejected := range report.Rejected {
		log.Printf("rejected: %s", rejected)
	}
	if len(report.Rejected) > 0 {
		os.Exit(1)
	}
}
