package domain

// MenuSelection picks a dish for a menu with a number of portions (>= 1)
type MenuSelection struct {
	DishID   int64 `json:"id"`
	Portions int   `json:"portions"`
}

// DishSummary describes a selected dish in a computed menu
type DishSummary struct {
	DishID   int64  `json:"id"`
	Name     string `json:"name"`
	Portions int    `json:"portions"`
}

// ShoppingItem is the total amount of one ingredient needed for a menu
type ShoppingItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"` // grams
}

// MenuResult is the aggregate of a menu selection.
// ShoppingList is ordered alphabetically by ingredient name.
type MenuResult struct {
	Dishes       []DishSummary  `json:"dishes"`
	ShoppingList []ShoppingItem `json:"shoppingList"`
	Total        Nutrients      `json:"totalNutrition"`
	GoalProgress *GoalProgress  `json:"goalProgress,omitempty"`
}
