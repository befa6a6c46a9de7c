package usecase

import (
	"fmt"
	"sort"

	"github.com/menuplanner/backend/internal/domain"
)

// referenceGrams is the amount ingredient nutrition values are expressed for
const referenceGrams = 100.0

// IngredientIndex resolves ingredients by case-insensitive name
type IngredientIndex interface {
	Lookup(name string) (domain.Ingredient, bool)
}

// DishIndex resolves dishes by ID
type DishIndex interface {
	Lookup(id int64) (domain.Dish, bool)
}

// IngredientCatalog is a read-only snapshot of the ingredient store
type IngredientCatalog map[string]domain.Ingredient

// NewIngredientCatalog indexes ingredients by normalized name
func NewIngredientCatalog(ingredients []domain.Ingredient) IngredientCatalog {
	catalog := make(IngredientCatalog, len(ingredients))
	for _, ing := range ingredients {
		catalog[domain.NormalizeName(ing.Name)] = ing
	}
	return catalog
}

func (c IngredientCatalog) Lookup(name string) (domain.Ingredient, bool) {
	ing, ok := c[domain.NormalizeName(name)]
	return ing, ok
}

// DishCatalog is a read-only snapshot of dishes keyed by ID
type DishCatalog map[int64]domain.Dish

// NewDishCatalog indexes dishes by ID
func NewDishCatalog(dishes []domain.Dish) DishCatalog {
	catalog := make(DishCatalog, len(dishes))
	for _, d := range dishes {
		catalog[d.ID] = d
	}
	return catalog
}

func (c DishCatalog) Lookup(id int64) (domain.Dish, bool) {
	d, ok := c[id]
	return d, ok
}

// IngredientNutritionAt scales an ingredient's per-100g nutrition to the given amount in grams
func IngredientNutritionAt(name string, grams float64, ingredients IngredientIndex) (domain.Nutrients, error) {
	ing, ok := ingredients.Lookup(name)
	if !ok {
		return domain.Nutrients{}, fmt.Errorf("%w: ingredient %q", domain.ErrNotFound, name)
	}
	return ing.Nutrients.Scale(grams / referenceGrams), nil
}

// CalculateDishTotals computes weight and nutrition of a dish.
// Ingredients missing from the index still count towards the weight and appear as
// lines without nutrition; they contribute nothing to the nutrition total.
func CalculateDishTotals(dish domain.Dish, ingredients IngredientIndex) domain.DishTotals {
	totals := domain.DishTotals{
		Weight: dish.TotalWeight(),
		Lines:  make([]domain.IngredientLine, 0, len(dish.Ingredients)),
	}

	for _, item := range dish.Ingredients {
		line := domain.IngredientLine{Name: item.Name, Amount: item.Amount}
		if n, err := IngredientNutritionAt(item.Name, item.Amount, ingredients); err == nil {
			line.Nutrients = &n
			totals.Nutrients = totals.Nutrients.Add(n)
		}
		totals.Lines = append(totals.Lines, line)
	}

	return totals
}

// AggregateMenu builds the dish summaries, shopping list and total nutrition of a menu.
// Unknown dish IDs are skipped. Dish summaries keep the selection order; the shopping
// list sums amounts of the same ingredient (case-insensitive) across dishes and portions.
func AggregateMenu(selections []domain.MenuSelection, dishes DishIndex, ingredients IngredientIndex) domain.MenuResult {
	result := domain.MenuResult{
		Dishes:       []domain.DishSummary{},
		ShoppingList: []domain.ShoppingItem{},
	}

	amounts := make(map[string]*domain.ShoppingItem)
	for _, sel := range selections {
		dish, ok := dishes.Lookup(sel.DishID)
		if !ok {
			continue
		}

		result.Dishes = append(result.Dishes, domain.DishSummary{
			DishID:   dish.ID,
			Name:     dish.Name,
			Portions: sel.Portions,
		})

		portions := float64(sel.Portions)
		for _, item := range dish.Ingredients {
			key := domain.NormalizeName(item.Name)
			entry, seen := amounts[key]
			if !seen {
				entry = &domain.ShoppingItem{Name: item.Name}
				amounts[key] = entry
			}
			entry.Amount += item.Amount * portions
		}

		totals := CalculateDishTotals(dish, ingredients)
		result.Total = result.Total.Add(totals.Nutrients.Scale(portions))
	}

	for _, entry := range amounts {
		result.ShoppingList = append(result.ShoppingList, *entry)
	}
	sort.Slice(result.ShoppingList, func(i, j int) bool {
		return domain.NameLess(result.ShoppingList[i].Name, result.ShoppingList[j].Name)
	})

	return result
}
