package domain

import (
	"context"
	"time"
)

// IngredientRepository persists ingredients keyed by case-insensitive name
type IngredientRepository interface {
	// Create assigns an ID; returns ErrDuplicateName when the name is taken
	Create(ctx context.Context, ingredient *Ingredient) error
	// Update replaces the nutrition of the ingredient with the same name
	Update(ctx context.Context, ingredient *Ingredient) error
	Delete(ctx context.Context, name string) error
	GetByName(ctx context.Context, name string) (*Ingredient, error)
	// List returns ingredients ordered by name
	List(ctx context.Context, skip, limit int) ([]Ingredient, error)
	// Search matches a case-insensitive substring; limit <= 0 means no limit
	Search(ctx context.Context, query string, limit int) ([]Ingredient, error)
	All(ctx context.Context) ([]Ingredient, error)
}

// DishRepository persists dishes together with their compositions.
// Every mutation writes the dish and its composition atomically.
type DishRepository interface {
	// Create assigns an ID; returns ErrDuplicateName when the name is taken
	Create(ctx context.Context, dish *Dish) error
	ReplaceIngredients(ctx context.Context, id int64, items []IngredientAmount) (*Dish, error)
	Rename(ctx context.Context, id int64, name string) (*Dish, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*Dish, error)
	GetByName(ctx context.Context, name string, caseInsensitive bool) (*Dish, error)
	// NameExists ignores the dish with excludeID (0 excludes nothing)
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	// List returns dishes ordered by name
	List(ctx context.Context, skip, limit int) ([]Dish, error)
	// Search matches a case-insensitive substring; limit <= 0 means no limit
	Search(ctx context.Context, query string, limit int) ([]Dish, error)
	// GetMany returns the dishes that exist among ids; unknown ids are ignored
	GetMany(ctx context.Context, ids []int64) ([]Dish, error)
}

// GoalsRepository stores the nutrition goals
type GoalsRepository interface {
	Get(ctx context.Context) (Goals, error)
	Save(ctx context.Context, goals Goals) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// USDAClient defines the interface for interacting with USDA FoodData Central API
type USDAClient interface {
	SearchFoods(ctx context.Context, query string) (*USDASearchResponse, error)
	GetFoodDetails(ctx context.Context, fdcID string) (*USDAFood, error)
}
