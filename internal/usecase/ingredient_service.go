package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/menuplanner/backend/internal/domain"
)

// NutritionInput is raw per-100g nutrition as supplied by a caller.
// Calories are derived from macros when nil.
type NutritionInput struct {
	Calories      *float64
	Protein       float64
	Fat           float64
	Carbohydrates float64
}

// Nutrients converts the input into a validated value
func (in NutritionInput) Nutrients() (domain.Nutrients, error) {
	n := domain.ResolveNutrients(in.Calories, in.Protein, in.Fat, in.Carbohydrates)
	if err := n.Validate(); err != nil {
		return domain.Nutrients{}, err
	}
	return n, nil
}

// IngredientService manages the ingredient catalog
type IngredientService struct {
	repo domain.IngredientRepository
}

// NewIngredientService creates an ingredient service backed by repo
func NewIngredientService(repo domain.IngredientRepository) *IngredientService {
	return &IngredientService{repo: repo}
}

// Add creates an ingredient; fails with ErrDuplicateName if the name exists in any case
func (s *IngredientService) Add(ctx context.Context, name string, in NutritionInput) (*domain.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: ingredient name is required", domain.ErrInvalidRequest)
	}
	// names are path segments in /ingredients/:name
	if strings.Contains(name, "/") {
		return nil, fmt.Errorf("%w: ingredient name must not contain '/'", domain.ErrInvalidRequest)
	}

	nutrients, err := in.Nutrients()
	if err != nil {
		return nil, err
	}

	ingredient := &domain.Ingredient{Name: name, Nutrients: nutrients}
	if err := s.repo.Create(ctx, ingredient); err != nil {
		return nil, err
	}

	log.Printf("[IngredientService] Created ingredient %q (id=%d)", ingredient.Name, ingredient.ID)
	return ingredient, nil
}

// Update fully replaces the nutrition of an existing ingredient
func (s *IngredientService) Update(ctx context.Context, name string, in NutritionInput) (*domain.Ingredient, error) {
	nutrients, err := in.Nutrients()
	if err != nil {
		return nil, err
	}

	ingredient := &domain.Ingredient{Name: strings.TrimSpace(name), Nutrients: nutrients}
	if err := s.repo.Update(ctx, ingredient); err != nil {
		return nil, err
	}
	return ingredient, nil
}

// Remove deletes an ingredient. Dishes that reference it are left untouched.
func (s *IngredientService) Remove(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(name)); err != nil {
		return err
	}
	log.Printf("[IngredientService] Deleted ingredient %q", name)
	return nil
}

// Get returns the ingredient with the given name (case-insensitive)
func (s *IngredientService) Get(ctx context.Context, name string) (*domain.Ingredient, error) {
	return s.repo.GetByName(ctx, strings.TrimSpace(name))
}

// Search returns ingredients whose name contains query, ordered by name.
// A limit of 0 returns every match.
func (s *IngredientService) Search(ctx context.Context, query string, limit int) ([]domain.Ingredient, error) {
	if limit != 0 {
		if err := validateLimit(limit); err != nil {
			return nil, err
		}
	}
	return s.repo.Search(ctx, strings.TrimSpace(query), limit)
}

// List returns a page of ingredients ordered by name
func (s *IngredientService) List(ctx context.Context, skip, limit int) ([]domain.Ingredient, error) {
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, skip, limit)
}

// Catalog returns a snapshot of every ingredient for nutrition calculations
func (s *IngredientService) Catalog(ctx context.Context) (IngredientCatalog, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return NewIngredientCatalog(all), nil
}
