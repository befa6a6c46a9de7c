// Package app wires configuration to repositories and use cases for the binaries.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/menuplanner/backend/config"
	"github.com/menuplanner/backend/internal/domain"
	"github.com/menuplanner/backend/internal/infrastructure/cache"
	"github.com/menuplanner/backend/internal/infrastructure/memory"
	"github.com/menuplanner/backend/internal/infrastructure/postgres"
	"github.com/menuplanner/backend/internal/infrastructure/usda"
	"github.com/menuplanner/backend/internal/usecase"
)

// Repositories are the storage backends selected by storage.driver
type Repositories struct {
	Ingredients domain.IngredientRepository
	Dishes      domain.DishRepository
	Goals       domain.GoalsRepository

	// DB is nil for the memory driver
	DB *postgres.Storage
}

// OpenRepositories connects to the configured backend, migrating Postgres first
// when database.auto_migrate is set
func OpenRepositories(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.URL, "up"); err != nil {
				return nil, fmt.Errorf("auto-migrate: %w", err)
			}
			log.Printf("[Postgres] Migrations applied")
		}

		db, err := postgres.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Ingredients: db.Ingredients(),
			Dishes:      db.Dishes(),
			Goals:       db.Goals(),
			DB:          db,
		}, nil

	case "memory":
		log.Printf("Storage: in-memory (data is lost on restart)")
		return &Repositories{
			Ingredients: memory.NewIngredientStore(),
			Dishes:      memory.NewDishStore(),
			Goals:       memory.NewGoalsStore(),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

func (r *Repositories) Close() {
	if r.DB != nil {
		r.DB.Close()
	}
}

// Services are the use cases built over a set of repositories
type Services struct {
	Ingredients *usecase.IngredientService
	Dishes      *usecase.DishService
	Menu        *usecase.MenuService
	Goals       *usecase.GoalsService
	Seed        *usecase.SeedService
	Import      *usecase.ImportService

	cache *cache.MemoryCache
}

// NewServices builds every use case. USDA import is only backed by a client when
// an API key is configured.
func NewServices(cfg *config.Config, repos *Repositories) *Services {
	ingredients := usecase.NewIngredientService(repos.Ingredients)
	dishes := usecase.NewDishService(repos.Dishes, repos.Ingredients)

	searchCache := cache.NewMemoryCache()

	var client domain.USDAClient
	if cfg.ImportEnabled() {
		usdaClient := usda.NewClientWithRate(cfg.USDA.APIKey, cfg.USDA.BaseURL, cfg.RateLimit.USDA)
		if cfg.Server.Environment == "development" {
			usdaClient.SetDebug(true)
		}
		client = usdaClient
		log.Printf("USDA import enabled: %s (%d requests/hour)", cfg.USDA.BaseURL, cfg.RateLimit.USDA)
	} else {
		log.Printf("USDA import disabled (set MENUPLANNER_USDA_API_KEY to enable)")
	}

	return &Services{
		Ingredients: ingredients,
		Dishes:      dishes,
		Menu:        usecase.NewMenuService(repos.Dishes, repos.Ingredients, repos.Goals),
		Goals:       usecase.NewGoalsService(repos.Goals),
		Seed:        usecase.NewSeedService(ingredients, dishes),
		Import: usecase.NewImportService(ingredients, searchCache, client, usecase.ImportServiceConfig{
			CacheTTL:               cfg.Cache.TTL,
			MinConfidenceThreshold: cfg.USDA.MinConfidence,
		}),
		cache: searchCache,
	}
}

// Close stops background work owned by the services
func (s *Services) Close() {
	s.cache.Close()
}
