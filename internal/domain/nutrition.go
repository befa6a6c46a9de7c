package domain

import "math"

// Energy contributed by one gram of each macronutrient (kcal)
const (
	KcalPerGramProtein      = 4.0
	KcalPerGramFat          = 9.0
	KcalPerGramCarbohydrate = 4.0
)

// Nutrients holds energy and macronutrient values.
// For an ingredient the values are per 100g; for a dish or a menu they are absolute.
// Nutrients is a value type: Scale and Add return new values and never mutate the receiver.
type Nutrients struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`       // grams
	Fat           float64 `json:"fat"`           // grams
	Carbohydrates float64 `json:"carbohydrates"` // grams
}

// NutrientsFromMacros derives calories from macronutrients using the 4-9-4 rule
func NutrientsFromMacros(protein, fat, carbohydrates float64) Nutrients {
	return Nutrients{
		Calories:      protein*KcalPerGramProtein + fat*KcalPerGramFat + carbohydrates*KcalPerGramCarbohydrate,
		Protein:       protein,
		Fat:           fat,
		Carbohydrates: carbohydrates,
	}
}

// ResolveNutrients builds a Nutrients value from raw input.
// An explicitly supplied calorie figure is authoritative; otherwise calories are derived.
func ResolveNutrients(calories *float64, protein, fat, carbohydrates float64) Nutrients {
	n := NutrientsFromMacros(protein, fat, carbohydrates)
	if calories != nil {
		n.Calories = *calories
	}
	return n
}

// Scale multiplies every field by factor
func (n Nutrients) Scale(factor float64) Nutrients {
	return Nutrients{
		Calories:      n.Calories * factor,
		Protein:       n.Protein * factor,
		Fat:           n.Fat * factor,
		Carbohydrates: n.Carbohydrates * factor,
	}
}

// Add sums two values field by field
func (n Nutrients) Add(other Nutrients) Nutrients {
	return Nutrients{
		Calories:      n.Calories + other.Calories,
		Protein:       n.Protein + other.Protein,
		Fat:           n.Fat + other.Fat,
		Carbohydrates: n.Carbohydrates + other.Carbohydrates,
	}
}

// IsZero reports whether all fields are zero
func (n Nutrients) IsZero() bool {
	return n == Nutrients{}
}

// Validate rejects negative or non-finite values
func (n Nutrients) Validate() error {
	for _, v := range []float64{n.Calories, n.Protein, n.Fat, n.Carbohydrates} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidNutrients
		}
	}
	return nil
}

// Goals are the daily nutrition targets a menu is compared against.
// A zero field means "no goal" for that value.
type Goals struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
}

// Validate rejects negative or non-finite goals
func (g Goals) Validate() error {
	return Nutrients(g).Validate()
}

// GoalProgress holds, per field, the total as a percentage of the goal.
// Fields without a goal are nil.
type GoalProgress struct {
	Calories      *float64 `json:"calories,omitempty"`
	Protein       *float64 `json:"protein,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty"`
}

// Progress compares total against the goals
func (g Goals) Progress(total Nutrients) GoalProgress {
	return GoalProgress{
		Calories:      percentOf(total.Calories, g.Calories),
		Protein:       percentOf(total.Protein, g.Protein),
		Fat:           percentOf(total.Fat, g.Fat),
		Carbohydrates: percentOf(total.Carbohydrates, g.Carbohydrates),
	}
}

func percentOf(value, goal float64) *float64 {
	if goal <= 0 {
		return nil
	}
	p := value / goal * 100
	return &p
}
