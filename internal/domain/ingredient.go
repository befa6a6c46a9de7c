package domain

import "strings"

// Ingredient is a named food item with nutrition values per 100g
type Ingredient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Nutrients Nutrients `json:"nutrition"`
}

// NormalizeName returns the key used for case-insensitive name comparison
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NameLess orders names alphabetically ignoring case, falling back to byte order for ties
func NameLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
