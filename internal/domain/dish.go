package domain

// IngredientAmount is one line of a dish composition: an ingredient name and its weight in grams
type IngredientAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Dish is a named composition of ingredients.
// Ingredients keeps the order in which the composition was supplied.
type Dish struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Ingredients []IngredientAmount `json:"ingredients"`
}

// TotalWeight is the sum of all ingredient amounts, independent of the ingredient catalog
func (d Dish) TotalWeight() float64 {
	var total float64
	for _, item := range d.Ingredients {
		total += item.Amount
	}
	return total
}

// Clone returns a copy that shares no memory with d
func (d Dish) Clone() Dish {
	out := d
	out.Ingredients = append([]IngredientAmount(nil), d.Ingredients...)
	return out
}

// IngredientLine is a dish composition line with its scaled nutrition.
// Nutrients is nil when the ingredient is no longer in the catalog.
type IngredientLine struct {
	Name      string     `json:"name"`
	Amount    float64    `json:"amount"`
	Nutrients *Nutrients `json:"nutrition,omitempty"`
}

// DishTotals is the computed weight and nutrition of one dish
type DishTotals struct {
	Weight    float64          `json:"weight"`
	Nutrients Nutrients        `json:"nutrition"`
	Lines     []IngredientLine `json:"ingredients"`
}

// DishDetail is a dish together with its computed totals
type DishDetail struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	DishTotals
}
