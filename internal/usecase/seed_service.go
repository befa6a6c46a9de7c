package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/menuplanner/backend/internal/domain"
	"github.com/menuplanner/backend/internal/infrastructure/seed"
)

// SeedReport counts what a seed run did
type SeedReport struct {
	IngredientsCreated int      `json:"ingredientsCreated"`
	IngredientsSkipped int      `json:"ingredientsSkipped"`
	DishesCreated      int      `json:"dishesCreated"`
	DishesSkipped      int      `json:"dishesSkipped"`
	Rejected           []string `json:"rejected,omitempty"`
}

// SeedService loads seed records through the regular services, so seeded data
// passes the same validation as API input
type SeedService struct {
	ingredients *IngredientService
	dishes      *DishService
}

func NewSeedService(ingredients *IngredientService, dishes *DishService) *SeedService {
	return &SeedService{ingredients: ingredients, dishes: dishes}
}

// Apply creates missing ingredients, then missing dishes. Existing names are skipped;
// dishes failing validation are reported and skipped. Storage errors abort the run.
func (s *SeedService) Apply(ctx context.Context, ingredients []seed.IngredientRecord, dishes []seed.DishRecord) (*SeedReport, error) {
	report := &SeedReport{}

	for _, rec := range ingredients {
		_, err := s.ingredients.Add(ctx, rec.Name, NutritionInput{
			Calories:      rec.Calories,
			Protein:       rec.Protein,
			Fat:           rec.Fat,
			Carbohydrates: rec.Carbohydrates,
		})
		switch {
		case err == nil:
			report.IngredientsCreated++
		case errors.Is(err, domain.ErrDuplicateName):
			report.IngredientsSkipped++
		case errors.Is(err, domain.ErrStorage):
			return report, err
		default:
			log.Printf("[Seed] Rejected ingredient %q: %v", rec.Name, err)
			report.Rejected = append(report.Rejected, rec.Name+": "+err.Error())
		}
	}

	for _, rec := range dishes {
		_, err := s.dishes.Create(ctx, rec.Name, rec.Ingredients)
		switch {
		case err == nil:
			report.DishesCreated++
		case errors.Is(err, domain.ErrDuplicateName):
			report.DishesSkipped++
		case errors.Is(err, domain.ErrStorage):
			return report, err
		default:
			log.Printf("[Seed] Rejected dish %q (%s): %v", rec.Name, rec.File, err)
			report.Rejected = append(report.Rejected, rec.Name+": "+err.Error())
		}
	}

	log.Printf("[Seed] Ingredients: %d created, %d existing; dishes: %d created, %d existing; %d rejected",
		report.IngredientsCreated, report.IngredientsSkipped, report.DishesCreated, report.DishesSkipped, len(report.Rejected))
	return report, nil
}
