package http

import (
	"math"

	"github.com/menuplanner/backend/internal/domain"
	"github.com/menuplanner/backend/internal/usecase"
)

// roundTo2 rounds for presentation only; stored and computed values keep full precision
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := roundTo2(*v)
	return &r
}

// NutritionRequest is per-100g nutrition. Calories are derived when omitted.
type NutritionRequest struct {
	Calories      *float64 `json:"calories"`
	Proteins      float64  `json:"proteins"`
	Fats          float64  `json:"fats"`
	Carbohydrates float64  `json:"carbohydrates"`
}

func (r NutritionRequest) toInput() usecase.NutritionInput {
	return usecase.NutritionInput{
		Calories:      r.Calories,
		Protein:       r.Proteins,
		Fat:           r.Fats,
		Carbohydrates: r.Carbohydrates,
	}
}

// CreateIngredientRequest is the body of POST /ingredients
type CreateIngredientRequest struct {
	Name      string           `json:"name" binding:"required"`
	Nutrition NutritionRequest `json:"nutrition"`
}

// ImportIngredientRequest is the body of POST /ingredients/import
type ImportIngredientRequest struct {
	Query string `json:"query" binding:"required"`
	Name  string `json:"name"`
}

// DishRequest is the body of POST /dishes
type DishRequest struct {
	Name        string                    `json:"name" binding:"required"`
	Ingredients []domain.IngredientAmount `json:"ingredients"`
}

// CompositionRequest is the body of PUT /dishes/:id/ingredients
type CompositionRequest struct {
	Ingredients []domain.IngredientAmount `json:"ingredients"`
}

// RenameDishRequest is the body of PATCH /dishes/:id
type RenameDishRequest struct {
	Name string `json:"name" binding:"required"`
}

// MenuRequest is the body of POST /menu and POST /menu/pdf
type MenuRequest struct {
	Dishes []MenuSelectionRequest `json:"dishes"`
}

// MenuSelectionRequest picks a dish; omitted portions mean one portion
type MenuSelectionRequest struct {
	ID       int64 `json:"id"`
	Portions *int  `json:"portions"`
}

func (r MenuRequest) toSelections() []domain.MenuSelection {
	selections := make([]domain.MenuSelection, 0, len(r.Dishes))
	for _, d := range r.Dishes {
		portions := 1
		if d.Portions != nil {
			portions = *d.Portions
		}
		selections = append(selections, domain.MenuSelection{DishID: d.ID, Portions: portions})
	}
	return selections
}

// GoalsRequest is the body of PUT /goals
type GoalsRequest struct {
	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Fats          float64 `json:"fats"`
	Carbohydrates float64 `json:"carbohydrates"`
}

func (r GoalsRequest) toGoals() domain.Goals {
	return domain.Goals{
		Calories:      r.Calories,
		Protein:       r.Proteins,
		Fat:           r.Fats,
		Carbohydrates: r.Carbohydrates,
	}
}

// NutritionResponse is nutrition rounded to 2 decimal places
type NutritionResponse struct {
	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Fats          float64 `json:"fats"`
	Carbohydrates float64 `json:"carbohydrates"`
}

func newNutritionResponse(n domain.Nutrients) NutritionResponse {
	return NutritionResponse{
		Calories:      roundTo2(n.Calories),
		Proteins:      roundTo2(n.Protein),
		Fats:          roundTo2(n.Fat),
		Carbohydrates: roundTo2(n.Carbohydrates),
	}
}

type IngredientResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Nutrition NutritionResponse `json:"nutrition"`
}

func newIngredientResponse(ing domain.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:        ing.ID,
		Name:      ing.Name,
		Nutrition: newNutritionResponse(ing.Nutrients),
	}
}

func newIngredientList(items []domain.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(items))
	for _, ing := range items {
		out = append(out, newIngredientResponse(ing))
	}
	return out
}

type ImportResponse struct {
	Ingredient IngredientResponse `json:"ingredient"`
	Match      domain.MatchResult `json:"match"`
}

// DishLineResponse has no nutrition when the ingredient was deleted
type DishLineResponse struct {
	Name      string             `json:"name"`
	Amount    float64            `json:"amount"`
	Nutrition *NutritionResponse `json:"nutrition,omitempty"`
}

type DishResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Weight      float64            `json:"weight"`
	Nutrition   NutritionResponse  `json:"nutrition"`
	Ingredients []DishLineResponse `json:"ingredients"`
}

func newDishResponse(d domain.DishDetail) DishResponse {
	lines := make([]DishLineResponse, 0, len(d.Lines))
	for _, line := range d.Lines {
		out := DishLineResponse{Name: line.Name, Amount: roundTo2(line.Amount)}
		if line.Nutrients != nil {
			n := newNutritionResponse(*line.Nutrients)
			out.Nutrition = &n
		}
		lines = append(lines, out)
	}

	return DishResponse{
		ID:          d.ID,
		Name:        d.Name,
		Weight:      roundTo2(d.Weight),
		Nutrition:   newNutritionResponse(d.Nutrients),
		Ingredients: lines,
	}
}

func newDishList(items []domain.DishDetail) []DishResponse {
	out := make([]DishResponse, 0, len(items))
	for _, d := range items {
		out = append(out, newDishResponse(d))
	}
	return out
}

type GoalsResponse NutritionResponse

func newGoalsResponse(g domain.Goals) GoalsResponse {
	return GoalsResponse(newNutritionResponse(domain.Nutrients(g)))
}

// GoalProgressResponse holds percentages of each goal; fields without a goal are omitted
type GoalProgressResponse struct {
	Calories      *float64 `json:"calories,omitempty"`
	Proteins      *float64 `json:"proteins,omitempty"`
	Fats          *float64 `json:"fats,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty"`
}

type ShoppingItemResponse struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type MenuResponse struct {
	Dishes         []domain.DishSummary   `json:"dishes"`
	ShoppingList   []ShoppingItemResponse `json:"shoppingList"`
	TotalNutrition NutritionResponse      `json:"totalNutrition"`
	GoalProgress   *GoalProgressResponse  `json:"goalProgress,omitempty"`
}

func newMenuResponse(r *domain.MenuResult) MenuResponse {
	items := make([]ShoppingItemResponse, 0, len(r.ShoppingList))
	for _, item := range r.ShoppingList {
		items = append(items, ShoppingItemResponse{Name: item.Name, Amount: roundTo2(item.Amount)})
	}

	resp := MenuResponse{
		Dishes:         r.Dishes,
		ShoppingList:   items,
		TotalNutrition: newNutritionResponse(r.Total),
	}
	if r.GoalProgress != nil {
		resp.GoalProgress = &GoalProgressResponse{
			Calories:      roundPtr(r.GoalProgress.Calories),
			Proteins:      roundPtr(r.GoalProgress.Protein),
			Fats:          roundPtr(r.GoalProgress.Fat),
			Carbohydrates: roundPtr(r.GoalProgress.Carbohydrates),
		}
	}
	return resp
}
