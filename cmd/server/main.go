package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/menuplanner/backend/config"
	"github.com/menuplanner/backend/internal/app"
	httpDelivery "github.com/menuplanner/backend/internal/delivery/http"
	"github.com/menuplanner/backend/internal/infrastructure/report"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Menu Planner Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Storage: %s", cfg.Storage.Driver)
	log.Printf("Cache: %s (TTL %s)", cfg.Cache.Type, cfg.Cache.TTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	repos, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer repos.Close()

	// Initialize usecase layer
	services := app.NewServices(cfg, repos)
	defer services.Close()

	if cfg.Seed.OnStart {
		if _, err := app.SeedFromFiles(ctx, cfg, services.Seed); err != nil {
			log.Fatalf("Failed to seed: %v", err)
		}
	}

	// Create HTTP handler with dependencies
	var storage httpDelivery.Pinger
	if repos.DB != nil {
		storage = repos.DB
	}
	handler := httpDelivery.NewHandler(httpDelivery.Services{
		Ingredients: services.Ingredients,
		Dishes:      services.Dishes,
		Menu:        services.Menu,
		Goals:       services.Goals,
		Import:      services.Import,
		Report:      report.Options{FontFile: cfg.Report.FontFile},
	}, storage)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down (timeout %s)", cfg.Server.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
