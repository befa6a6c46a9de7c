package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/menuplanner/backend/internal/domain"
)

// DishService manages dishes and their compositions.
// Creation is strict about ingredient references; reading tolerates ingredients
// that were deleted after the dish was saved.
type DishService struct {
	dishes      domain.DishRepository
	ingredients domain.IngredientRepository
}

// NewDishService creates a dish service
func NewDishService(dishes domain.DishRepository, ingredients domain.IngredientRepository) *DishService {
	return &DishService{
		dishes:      dishes,
		ingredients: ingredients,
	}
}

// Create validates and stores a new dish
func (s *DishService) Create(ctx context.Context, name string, items []domain.IngredientAmount) (*domain.Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: dish name is required", domain.ErrInvalidRequest)
	}

	exists, err := s.dishes.NameExists(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: dish %q", domain.ErrDuplicateName, name)
	}

	composition, err := s.resolveComposition(ctx, items)
	if err != nil {
		return nil, err
	}

	dish := &domain.Dish{Name: name, Ingredients: composition}
	if err := s.dishes.Create(ctx, dish); err != nil {
		return nil, err
	}

	log.Printf("[DishService] Created dish %q (id=%d, %d ingredients)", dish.Name, dish.ID, len(dish.Ingredients))
	return dish, nil
}

// ReplaceIngredients replaces the whole composition of a dish
func (s *DishService) ReplaceIngredients(ctx context.Context, id int64, items []domain.IngredientAmount) (*domain.Dish, error) {
	if _, err := s.dishes.GetByID(ctx, id); err != nil {
		return nil, err
	}

	composition, err := s.resolveComposition(ctx, items)
	if err != nil {
		return nil, err
	}

	return s.dishes.ReplaceIngredients(ctx, id, composition)
}

// Rename changes the name of a dish; the dish's own name does not count as a conflict
func (s *DishService) Rename(ctx context.Context, id int64, name string) (*domain.Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: dish name is required", domain.ErrInvalidRequest)
	}

	if _, err := s.dishes.GetByID(ctx, id); err != nil {
		return nil, err
	}

	exists, err := s.dishes.NameExists(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: dish %q", domain.ErrDuplicateName, name)
	}

	return s.dishes.Rename(ctx, id, name)
}

// Delete removes a dish and its composition
func (s *DishService) Delete(ctx context.Context, id int64) error {
	if err := s.dishes.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[DishService] Deleted dish id=%d", id)
	return nil
}

// Get returns a dish by ID
func (s *DishService) Get(ctx context.Context, id int64) (*domain.Dish, error) {
	return s.dishes.GetByID(ctx, id)
}

// GetByName returns a dish by name
func (s *DishService) GetByName(ctx context.Context, name string, caseInsensitive bool) (*domain.Dish, error) {
	return s.dishes.GetByName(ctx, strings.TrimSpace(name), caseInsensitive)
}

// List returns a page of dishes ordered by name
func (s *DishService) List(ctx context.Context, skip, limit int) ([]domain.Dish, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return s.dishes.List(ctx, skip, limit)
}

// Search returns dishes whose name contains query
func (s *DishService) Search(ctx context.Context, query string, limit int) ([]domain.Dish, error) {
	if err := validateLimit(limit); err != nil {
		return nil, err
	}
	return s.dishes.Search(ctx, strings.TrimSpace(query), limit)
}

// Detail returns a dish with its weight, nutrition and per-ingredient lines
func (s *DishService) Detail(ctx context.Context, id int64) (*domain.DishDetail, error) {
	dish, err := s.dishes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DishDetail{
		ID:         dish.ID,
		Name:       dish.Name,
		DishTotals: CalculateDishTotals(*dish, catalog),
	}, nil
}

// ListWithTotals returns a page of dishes with computed totals, ordered by name
func (s *DishService) ListWithTotals(ctx context.Context, skip, limit int) ([]domain.DishDetail, error) {
	dishes, err := s.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return s.withTotals(ctx, dishes)
}

// SearchWithTotals is Search with computed totals
func (s *DishService) SearchWithTotals(ctx context.Context, query string, limit int) ([]domain.DishDetail, error) {
	dishes, err := s.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return s.withTotals(ctx, dishes)
}

func (s *DishService) withTotals(ctx context.Context, dishes []domain.Dish) ([]domain.DishDetail, error) {
	catalog, err := s.catalog(ctx)
	if err != nil {
		return nil, err
	}

	details := make([]domain.DishDetail, 0, len(dishes))
	for _, d := range dishes {
		details = append(details, domain.DishDetail{
			ID:         d.ID,
			Name:       d.Name,
			DishTotals: CalculateDishTotals(d, catalog),
		})
	}
	sort.SliceStable(details, func(i, j int) bool {
		return domain.NameLess(details[i].Name, details[j].Name)
	})
	return details, nil
}

func (s *DishService) catalog(ctx context.Context) (IngredientCatalog, error) {
	all, err := s.ingredients.All(ctx)
	if err != nil {
		return nil, err
	}
	return NewIngredientCatalog(all), nil
}

// resolveComposition validates a composition and canonicalizes ingredient names.
// Repeated ingredients (case-insensitive) are merged by summing their amounts.
func (s *DishService) resolveComposition(ctx context.Context, items []domain.IngredientAmount) ([]domain.IngredientAmount, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyComposition
	}

	for _, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("%w: ingredient name is required", domain.ErrInvalidRequest)
		}
		if !(item.Amount > 0) || math.IsInf(item.Amount, 0) {
			return nil, fmt.Errorf("%w: %q has amount %v", domain.ErrInvalidAmount, item.Name, item.Amount)
		}
	}

	composition := make([]domain.IngredientAmount, 0, len(items))
	positions := make(map[string]int, len(items))
	for _, item := range items {
		key := domain.NormalizeName(item.Name)
		if pos, seen := positions[key]; seen {
			composition[pos].Amount += item.Amount
			continue
		}

		ingredient, err := s.ingredients.GetByName(ctx, strings.TrimSpace(item.Name))
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.BadReferenceError{Name: strings.TrimSpace(item.Name)}
		}
		if err != nil {
			return nil, err
		}

		positions[key] = len(composition)
		composition = append(composition, domain.IngredientAmount{Name: ingredient.Name, Amount: item.Amount})
	}

	return composition, nil
}
