package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/menuplanner/backend/internal/domain"
	"github.com/menuplanner/backend/internal/infrastructure/usda"
)

var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// ImportServiceConfig holds configuration for the import service
type ImportServiceConfig struct {
	CacheTTL               time.Duration
	MinConfidenceThreshold float64
}

// ImportService creates ingredients from USDA FoodData Central records
type ImportService struct {
	ingredients *IngredientService
	cache       domain.CacheRepository
	usdaClient  domain.USDAClient
	matcher     *FoodMatcher
	cacheTTL    time.Duration
}

// NewImportService creates an import service. usdaClient may be nil when no API key
// is configured; Import then fails with ErrUSDANotConfigured.
func NewImportService(
	ingredients *IngredientService,
	cache domain.CacheRepository,
	usdaClient domain.USDAClient,
	config ImportServiceConfig,
) *ImportService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 720 * time.Hour // 30 days
	}

	return &ImportService{
		ingredients: ingredients,
		cache:       cache,
		usdaClient:  usdaClient,
		matcher:     NewFoodMatcher(MatchConfig{MinConfidenceThreshold: config.MinConfidenceThreshold}),
		cacheTTL:    cacheTTL,
	}
}

// Import searches USDA for query and stores the best match as an ingredient called name.
// An empty name falls back to the query.
// Flow: check name -> check cache -> search USDA -> cache -> match -> create ingredient
func (s *ImportService) Import(ctx context.Context, query, name string) (*domain.ImportResult, error) {
	if s.usdaClient == nil {
		return nil, domain.ErrUSDANotConfigured
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = query
	}

	// Fail before spending USDA quota on a name that is already taken
	if _, err := s.ingredients.Get(ctx, name); err == nil {
		return nil, fmt.Errorf("%w: ingredient %q", domain.ErrDuplicateName, name)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	searchResult, err := s.search(ctx, query)
	if err != nil {
		return nil, err
	}

	match, err := s.matcher.FindBestMatch(ctx, query, searchResult.Foods)
	if err != nil {
		if errors.Is(err, domain.ErrLowConfidence) && match != nil {
			return nil, fmt.Errorf("%w: best match %q scored %.1f", err, match.Description, match.MatchScore)
		}
		return nil, err
	}

	var food *domain.USDAFood
	for i := range searchResult.Foods {
		if searchResult.Foods[i].FdcID == match.FdcID {
			food = &searchResult.Foods[i]
			break
		}
	}
	if food == nil {
		return nil, domain.ErrProductNotFound
	}
	// Abridged search results can omit nutrients
	if len(food.Nutrients) == 0 {
		detailed, err := s.usdaClient.GetFoodDetails(ctx, strconv.Itoa(food.FdcID))
		if err != nil {
			return nil, err
		}
		food = detailed
	}

	nutrients := usda.MapToNutrients(food)
	ingredient, err := s.ingredients.Add(ctx, name, NutritionInput{
		Calories:      &nutrients.Calories,
		Protein:       nutrients.Protein,
		Fat:           nutrients.Fat,
		Carbohydrates: nutrients.Carbohydrates,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[Import] %q imported from USDA food %d %q (score %.1f)", ingredient.Name, match.FdcID, match.Description, match.MatchScore)
	return &domain.ImportResult{Ingredient: *ingredient, Match: *match}, nil
}

// search returns the USDA search response for query, served from cache when possible
func (s *ImportService) search(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	cacheKey := generateCacheKey(query)

	if s.cache != nil {
		if cached, err := s.getFromCache(ctx, cacheKey); err == nil {
			return cached, nil
		}
	}

	searchResult, err := s.usdaClient.SearchFoods(ctx, query)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) || errors.Is(err, domain.ErrUSDAAPIFailure) ||
			errors.Is(err, domain.ErrRateLimited) || ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
	}
	if len(searchResult.Foods) == 0 {
		return nil, domain.ErrProductNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, searchResult, s.cacheTTL); err != nil {
			log.Printf("[Import] Failed to cache search for %q: %v", query, err)
		}
	}

	return searchResult, nil
}

// getFromCache decodes a cached search response. The cache stores JSON-decoded
// values, so the entry is re-marshalled into the typed response.
func (s *ImportService) getFromCache(ctx context.Context, key string) (*domain.USDASearchResponse, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if resp, ok := value.(*domain.USDASearchResponse); ok {
		return resp, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, domain.ErrCacheMiss
	}
	var resp domain.USDASearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Foods) == 0 {
		return nil, domain.ErrCacheMiss
	}
	return &resp, nil
}

// generateCacheKey creates a normalized cache key for a search query.
// Format: "usda:search:{normalized_query}"
func generateCacheKey(query string) string {
	return "usda:search:" + normalizeForCacheKey(query)
}

// normalizeForCacheKey lowercases s, removes special characters and collapses whitespace
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
