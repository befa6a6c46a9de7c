package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/menuplanner/backend/internal/domain"
)

// DishStore is an in-memory domain.DishRepository.
// A dish and its composition are stored as one value, so every mutation is atomic.
// IDs start at 1 and are never reused.
type DishStore struct {
	mu     sync.RWMutex
	byID   map[int64]domain.Dish
	byName map[string]int64
	nextID int64
}

// NewDishStore creates an empty store
func NewDishStore() *DishStore {
	return &DishStore{
		byID:   make(map[int64]domain.Dish),
		byName: make(map[string]int64),
		nextID: 1,
	}
}

func (s *DishStore) Create(ctx context.Context, dish *domain.Dish) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := domain.NormalizeName(dish.Name)
	if _, ok := s.byName[key]; ok {
		return fmt.Errorf("%w: dish %q", domain.ErrDuplicateName, dish.Name)
	}

	dish.ID = s.nextID
	s.nextID++
	s.byID[dish.ID] = dish.Clone()
	s.byName[key] = dish.ID
	return nil
}

func (s *DishStore) ReplaceIngredients(ctx context.Context, id int64, items []domain.IngredientAmount) (*domain.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dish, ok := s.byID[id]
	if !ok {
		return nil, notFound(id)
	}

	dish.Ingredients = append([]domain.IngredientAmount(nil), items...)
	s.byID[id] = dish

	out := dish.Clone()
	return &out, nil
}

func (s *DishStore) Rename(ctx context.Context, id int64, name string) (*domain.Dish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dish, ok := s.byID[id]
	if !ok {
		return nil, notFound(id)
	}

	key := domain.NormalizeName(name)
	if owner, taken := s.byName[key]; taken && owner != id {
		return nil, fmt.Errorf("%w: dish %q", domain.ErrDuplicateName, name)
	}

	delete(s.byName, domain.NormalizeName(dish.Name))
	dish.Name = name
	s.byID[id] = dish
	s.byName[key] = id

	out := dish.Clone()
	return &out, nil
}

func (s *DishStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dish, ok := s.byID[id]
	if !ok {
		return notFound(id)
	}
	delete(s.byID, id)
	delete(s.byName, domain.NormalizeName(dish.Name))
	return nil
}

func (s *DishStore) GetByID(ctx context.Context, id int64) (*domain.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dish, ok := s.byID[id]
	if !ok {
		return nil, notFound(id)
	}
	out := dish.Clone()
	return &out, nil
}

func (s *DishStore) GetByName(ctx context.Context, name string, caseInsensitive bool) (*domain.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[domain.NormalizeName(name)]
	if !ok || (!caseInsensitive && s.byID[id].Name != name) {
		return nil, fmt.Errorf("%w: dish %q", domain.ErrNotFound, name)
	}
	out := s.byID[id].Clone()
	return &out, nil
}

func (s *DishStore) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[domain.NormalizeName(name)]
	return ok && id != excludeID, nil
}

func (s *DishStore) List(ctx context.Context, skip, limit int) ([]domain.Dish, error) {
	return paginate(s.sorted(""), skip, limit), nil
}

func (s *DishStore) Search(ctx context.Context, query string, limit int) ([]domain.Dish, error) {
	return paginate(s.sorted(query), 0, limit), nil
}

func (s *DishStore) GetMany(ctx context.Context, ids []int64) ([]domain.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dishes := make([]domain.Dish, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		dish, ok := s.byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		dishes = append(dishes, dish.Clone())
	}
	return dishes, nil
}

func (s *DishStore) sorted(query string) []domain.Dish {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = domain.NormalizeName(query)
	results := make([]domain.Dish, 0, len(s.byID))
	for key, id := range s.byName {
		if query != "" && !strings.Contains(key, query) {
			continue
		}
		results = append(results, s.byID[id].Clone())
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Name == results[j].Name {
			return results[i].ID < results[j].ID
		}
		return domain.NameLess(results[i].Name, results[j].Name)
	})
	return results
}

func notFound(id int64) error {
	return fmt.Errorf("%w: dish %d", domain.ErrNotFound, id)
}
