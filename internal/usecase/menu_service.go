package usecase

import (
	"context"
	"fmt"

	"github.com/menuplanner/backend/internal/domain"
)

// MenuService computes shopping lists and nutrition totals for menu selections
type MenuService struct {
	dishes      domain.DishRepository
	ingredients domain.IngredientRepository
	goals       domain.GoalsRepository
}

// NewMenuService creates a menu service. Progress is reported only when goals is non-nil
// and at least one goal is set.
func NewMenuService(dishes domain.DishRepository, ingredients domain.IngredientRepository, goals domain.GoalsRepository) *MenuService {
	return &MenuService{
		dishes:      dishes,
		ingredients: ingredients,
		goals:       goals,
	}
}

// ComputeMenu aggregates the selected dishes into a shopping list and total nutrition.
// Unknown dish IDs are skipped; an empty selection yields an empty result.
func (s *MenuService) ComputeMenu(ctx context.Context, selections []domain.MenuSelection) (*domain.MenuResult, error) {
	for _, sel := range selections {
		if sel.Portions < 1 {
			return nil, fmt.Errorf("%w: portions for dish %d must be >= 1, got %d", domain.ErrInvalidRequest, sel.DishID, sel.Portions)
		}
	}

	dishes := DishCatalog{}
	catalog := IngredientCatalog{}
	if len(selections) > 0 {
		ids := make([]int64, 0, len(selections))
		seen := make(map[int64]bool, len(selections))
		for _, sel := range selections {
			if !seen[sel.DishID] {
				seen[sel.DishID] = true
				ids = append(ids, sel.DishID)
			}
		}

		found, err := s.dishes.GetMany(ctx, ids)
		if err != nil {
			return nil, err
		}
		dishes = NewDishCatalog(found)

		all, err := s.ingredients.All(ctx)
		if err != nil {
			return nil, err
		}
		catalog = NewIngredientCatalog(all)
	}

	result := AggregateMenu(selections, dishes, catalog)

	if s.goals != nil {
		goals, err := s.goals.Get(ctx)
		if err != nil {
			return nil, err
		}
		if goals != (domain.Goals{}) {
			progress := goals.Progress(result.Total)
			result.GoalProgress = &progress
		}
	}

	return &result, nil
}
