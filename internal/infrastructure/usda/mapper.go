package usda

import (
	"github.com/menuplanner/backend/internal/domain"
)

// USDA Nutrient IDs for key macronutrients
const (
	NutrientIDEnergy       = 1008 // Calories (kcal)
	NutrientIDProtein      = 1003 // Protein (g)
	NutrientIDTotalFat     = 1004 // Total Fat (g)
	NutrientIDCarbohydrate = 1005 // Carbohydrates (g)
)

// MapToNutrients converts a USDA food to per-100g nutrition.
// USDA reports generic foods per 100g. Energy is kept when present and derived
// from the macros otherwise.
func MapToNutrients(food *domain.USDAFood) domain.Nutrients {
	var (
		calories *float64
		protein  float64
		fat      float64
		carbs    float64
	)

	for _, nutrient := range food.Nutrients {
		value := nutrient.Value
		if value < 0 {
			value = 0
		}
		switch nutrient.NutrientID {
		case NutrientIDEnergy:
			// Some records also carry energy in kJ under the same ID
			if nutrient.UnitName != "" && nutrient.UnitName != "KCAL" && nutrient.UnitName != "kcal" {
				continue
			}
			v := value
			calories = &v
		case NutrientIDProtein:
			protein = value
		case NutrientIDTotalFat:
			fat = value
		case NutrientIDCarbohydrate:
			carbs = value
		}
	}

	return domain.ResolveNutrients(calories, protein, fat, carbs)
}
