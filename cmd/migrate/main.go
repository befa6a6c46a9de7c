package main

import (
	"context"
	"log"
	"os"

	"github.com/menuplanner/backend/config"
	"github.com/menuplanner/backend/internal/infrastructure/postgres"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: go run ./cmd/migrate [up|status|down]")
	}

	command := os.Args[1]
	switch command {
	case "up", "status", "down":
	default:
		log.Fatalf("unsupported command %q (allowed: up, status, down)", command)
	}

	// Migrations always target Postgres, whatever storage.driver says
	if os.Getenv("MENUPLANNER_STORAGE_DRIVER") == "" {
		os.Setenv("MENUPLANNER_STORAGE_DRIVER", "postgres")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("migrate: command=%s", command)
	if err := postgres.Migrate(context.Background(), cfg.Database.URL, command); err != nil {
		log.Fatal(err)
	}
	log.Printf("migrate: %s completed successfully", command)
}
