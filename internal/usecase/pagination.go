package usecase

import (
	"fmt"

	"github.com/menuplanner/backend/internal/domain"
)

// Page bounds shared by list and search operations
const (
	DefaultPageLimit   = 100
	MaxPageLimit       = 100
	DefaultSearchLimit = 20
)

// validatePage checks skip >= 0 and 1 <= limit <= MaxPageLimit
func validatePage(skip, limit int) error {
	if skip < 0 {
		return fmt.Errorf("%w: skip must be >= 0, got %d", domain.ErrInvalidRange, skip)
	}
	return validateLimit(limit)
}

func validateLimit(limit int) error {
	if limit < 1 || limit > MaxPageLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d, got %d", domain.ErrInvalidRange, MaxPageLimit, limit)
	}
	return nil
}
