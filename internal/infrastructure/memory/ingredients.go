package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/menuplanner/backend/internal/domain"
)

// IngredientStore is an in-memory domain.IngredientRepository.
// Ingredients are keyed by normalized name; the write lock covers the
// uniqueness check and the insert together.
type IngredientStore struct {
	mu     sync.RWMutex
	byName map[string]domain.Ingredient
	nextID int64
}

// NewIngredientStore creates an empty store
func NewIngredientStore() *IngredientStore {
	return &IngredientStore{
		byName: make(map[string]domain.Ingredient),
		nextID: 1,
	}
}

func (s *IngredientStore) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeName(ingredient.Name)
	if existing, ok := s.byName[key]; ok {
		return fmt.Errorf("%w: ingredient %q exists as %q", domain.ErrDuplicateName, ingredient.Name, existing.Name)
	}

	ingredient.ID = s.nextID
	s.nextID++
	s.byName[key] = *ingredient
	return nil
}

func (s *IngredientStore) Update(ctx context.Context, ingredient *domain.Ingredient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeName(ingredient.Name)
	existing, ok := s.byName[key]
	if !ok {
		return fmt.Errorf("%w: ingredient %q", domain.ErrNotFound, ingredient.Name)
	}

	existing.Nutrients = ingredient.Nutrients
	s.byName[key] = existing

	ingredient.ID = existing.ID
	ingredient.Name = existing.Name
	return nil
}

func (s *IngredientStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeName(name)
	if _, ok := s.byName[key]; !ok {
		return fmt.Errorf("%w: ingredient %q", domain.ErrNotFound, name)
	}
	delete(s.byName, key)
	return nil
}

func (s *IngredientStore) GetByName(ctx context.Context, name string) (*domain.Ingredient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ingredient, ok := s.byName[domain.NormalizeName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: ingredient %q", domain.ErrNotFound, name)
	}
	return &ingredient, nil
}

func (s *IngredientStore) List(ctx context.Context, skip, limit int) ([]domain.Ingredient, error) {
	return paginate(s.sorted(""), skip, limit), nil
}

func (s *IngredientStore) Search(ctx context.Context, query string, limit int) ([]domain.Ingredient, error) {
	return paginate(s.sorted(query), 0, limit), nil
}

func (s *IngredientStore) All(ctx context.Context) ([]domain.Ingredient, error) {
	return s.sorted(""), nil
}

// sorted returns the ingredients whose name contains query, ordered by name
func (s *IngredientStore) sorted(query string) []domain.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = domain.NormalizeName(query)
	results := make([]domain.Ingredient, 0, len(s.byName))
	for key, ingredient := range s.byName {
		if query != "" && !strings.Contains(key, query) {
			continue
		}
		results = append(results, ingredient)
	}

	sort.Slice(results, func(i, j int) bool {
		return domain.NameLess(results[i].Name, results[j].Name)
	})
	return results
}

// paginate applies skip and limit to an ordered slice; limit <= 0 means no limit
func paginate[T any](items []T, skip, limit int) []T {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(items) {
		return []T{}
	}
	items = items[skip:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
