package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is returned when a name is already taken (case-insensitive)
	ErrDuplicateName = errors.New("name already exists")

	// ErrNotFound is returned when an ingredient or dish does not exist
	ErrNotFound = errors.New("not found")

	// ErrBadReference is returned when a dish references an unknown ingredient
	ErrBadReference = errors.New("unknown ingredient")

	// ErrEmptyComposition is returned when a dish has no ingredients
	ErrEmptyComposition = errors.New("dish must have at least one ingredient")

	// ErrInvalidAmount is returned when an ingredient amount is not positive
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidRange is returned when pagination bounds are out of range
	ErrInvalidRange = errors.New("pagination parameters out of range")

	// ErrInvalidNutrients is returned when nutrition values are negative
	ErrInvalidNutrients = errors.New("nutrition values must be non-negative")

	// ErrStorage wraps failures of the persistence layer
	ErrStorage = errors.New("storage failure")

	// ErrProductNotFound is returned when a food cannot be found in USDA database
	ErrProductNotFound = errors.New("product not found in USDA database")

	// ErrLowConfidence is returned when the match confidence is below the threshold
	ErrLowConfidence = errors.New("match confidence below threshold")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrUSDAAPIFailure is returned when USDA API request fails
	ErrUSDAAPIFailure = errors.New("USDA API request failed")

	// ErrUSDANotConfigured is returned when no USDA API key is configured
	ErrUSDANotConfigured = errors.New("USDA import is not configured")
)

// BadReferenceError names the first ingredient of a composition that does not exist
type BadReferenceError struct {
	Name string
}

func (e *BadReferenceError) Error() string {
	return fmt.Sprintf("%s: %q", ErrBadReference, e.Name)
}

func (e *BadReferenceError) Unwrap() error {
	return ErrBadReference
}
