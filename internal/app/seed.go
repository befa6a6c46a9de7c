package app

import (
	"context"
	"errors"
	"io/fs"
	"log"

	"github.com/menuplanner/backend/config"
	"github.com/menuplanner/backend/internal/infrastructure/seed"
	"github.com/menuplanner/backend/internal/usecase"
)

// SeedFromFiles applies seed.ingredients_file and seed.dishes_dir.
// A missing file or directory is skipped with a log line.
func SeedFromFiles(ctx context.Context, cfg *config.Config, svc *usecase.SeedService) (*usecase.SeedReport, error) {
	ingredients, err := seed.LoadIngredientsFile(cfg.Seed.IngredientsFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("[Seed] No ingredients file at %s, skipping", cfg.Seed.IngredientsFile)
	case err != nil:
		return nil, err
	}

	dishes, err := seed.LoadDishesDir(cfg.Seed.DishesDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("[Seed] No dishes directory at %s, skipping", cfg.Seed.DishesDir)
	case err != nil:
		return nil, err
	}

	return svc.Apply(ctx, ingredients, dishes)
}
