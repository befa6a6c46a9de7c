package usecase

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/menuplanner/backend/internal/domain"
)

var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// Bonuses for USDA data types. Generic foods are preferred over branded products
// because ingredients describe raw foods.
var dataTypeBonus = map[string]float64{
	"Foundation":     10,
	"SR Legacy":      8,
	"Survey (FNDDS)": 5,
	"Branded":        0,
	"Experimental":   0,
}

// matcherStopWords are ignored when tokenizing names and descriptions
var matcherStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "with": true, "without": true, "for": true,
	"ns": true, "nfs": true, "as": true, "to": true,
}

// MatchConfig holds configuration for the food matcher
type MatchConfig struct {
	MinConfidenceThreshold float64
	EnableDebugLogging     bool
}

// FoodMatcher picks the USDA food that best describes an ingredient name
type FoodMatcher struct {
	minConfidenceThreshold float64
	enableDebugLogging     bool
}

// NewFoodMatcher creates a matcher; the threshold defaults to 40%
func NewFoodMatcher(config MatchConfig) *FoodMatcher {
	threshold := config.MinConfidenceThreshold
	if threshold <= 0 {
		threshold = 40.0
	}
	return &FoodMatcher{
		minConfidenceThreshold: threshold,
		enableDebugLogging:     config.EnableDebugLogging,
	}
}

// FindBestMatch scores every food against query and returns the best one.
// A best match under the threshold is returned together with ErrLowConfidence.
func (m *FoodMatcher) FindBestMatch(ctx context.Context, query string, foods []domain.USDAFood) (*domain.MatchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if len(foods) == 0 {
		return nil, domain.ErrProductNotFound
	}

	var best *domain.MatchResult
	for _, food := range foods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		score, matched := m.score(query, food)
		if m.enableDebugLogging {
			log.Printf("[MATCH] %q vs %q (%s): %.1f %v", query, food.Description, food.DataType, score, matched)
		}

		if best == nil || score > best.MatchScore {
			best = &domain.MatchResult{
				FdcID:         food.FdcID,
				Description:   food.Description,
				DataType:      food.DataType,
				MatchScore:    score,
				MatchedTokens: matched,
			}
		}
	}

	if best.MatchScore < m.minConfidenceThreshold {
		return best, domain.ErrLowConfidence
	}
	return best, nil
}

// score combines query coverage (70%) and Jaccard similarity (30%), then adds
// substring and data type bonuses. The result is capped at 100.
func (m *FoodMatcher) score(query string, food domain.USDAFood) (float64, []string) {
	queryTokens := tokenize(query)
	foodTokens := tokenize(food.Description)
	if len(queryTokens) == 0 || len(foodTokens) == 0 {
		return 0, nil
	}

	foodSet := make(map[string]bool, len(foodTokens))
	for _, t := range foodTokens {
		foodSet[t] = true
	}

	var matched []string
	for _, t := range queryTokens {
		if foodSet[t] {
			matched = append(matched, t)
		}
	}

	union := len(foodSet)
	for _, t := range queryTokens {
		if !foodSet[t] {
			union++
		}
	}

	coverage := float64(len(matched)) / float64(len(queryTokens))
	jaccard := float64(len(matched)) / float64(union)
	score := (coverage*0.7 + jaccard*0.3) * 70

	queryLower := strings.Join(queryTokens, " ")
	if strings.HasPrefix(strings.Join(foodTokens, " "), queryLower) {
		score += 20
	}
	score += dataTypeBonus[food.DataType]

	if score > 100 {
		score = 100
	}
	return score, matched
}

// tokenize lowercases s, strips punctuation and stop words, and drops duplicates
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	seen := make(map[string]bool)
	var tokens []string
	for _, field := range strings.Fields(cleaned) {
		if matcherStopWords[field] || seen[field] {
			continue
		}
		seen[field] = true
		tokens = append(tokens, field)
	}
	return tokens
}
