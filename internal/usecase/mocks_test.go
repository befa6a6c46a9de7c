package usecase

import (
	"context"
	"time"

	"github.com/menuplanner/backend/internal/domain"
	"github.com/menuplanner/backend/internal/infrastructure/memory"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data      map[string]interface{}
	getError  error
	setError  error
	getCalled bool
	setCalled bool
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.getCalled = true
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalled = true
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockUSDAClient is a mock implementation of domain.USDAClient
type MockUSDAClient struct {
	searchResult *domain.USDASearchResponse
	searchError  error
	foodResult   *domain.USDAFood
	foodError    error

	searchCalls  int
	detailsCalls int
	lastFdcID    string
}

func NewMockUSDAClient() *MockUSDAClient {
	return &MockUSDAClient{}
}

func (m *MockUSDAClient) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	m.searchCalls++
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.searchResult, nil
}

func (m *MockUSDAClient) GetFoodDetails(ctx context.Context, fdcID string) (*domain.USDAFood, error) {
	m.detailsCalls++
	m.lastFdcID = fdcID
	if m.foodError != nil {
		return nil, m.foodError
	}
	return m.foodResult, nil
}

// failingIngredientRepo behaves like the memory store but fails writes and snapshots with err
type failingIngredientRepo struct {
	*memory.IngredientStore
	err error
}

func (r *failingIngredientRepo) Create(ctx context.Context, ingredient *domain.Ingredient) error {
	return r.err
}

func (r *failingIngredientRepo) All(ctx context.Context) ([]domain.Ingredient, error) {
	return nil, r.err
}

// testStores holds fresh in-memory stores and the services over them
type testStores struct {
	ingredients *memory.IngredientStore
	dishes      *memory.DishStore
	goals       *memory.GoalsStore

	ingredientSvc *IngredientService
	dishSvc       *DishService
	menuSvc       *MenuService
}

func newTestStores() *testStores {
	s := &testStores{
		ingredients: memory.NewIngredientStore(),
		dishes:      memory.NewDishStore(),
		goals:       memory.NewGoalsStore(),
	}
	s.ingredientSvc = NewIngredientService(s.ingredients)
	s.dishSvc = NewDishService(s.dishes, s.ingredients)
	s.menuSvc = NewMenuService(s.dishes, s.ingredients, s.goals)
	return s
}

func floatPtr(v float64) *float64 { return &v }
