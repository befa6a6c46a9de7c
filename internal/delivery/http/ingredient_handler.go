package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/menuplanner/backend/internal/domain"
	"github.com/menuplanner/backend/internal/usecase"
)

// queryInt reads an optional integer query parameter
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidRange, key)
	}
	return v, nil
}

// ListIngredients handles GET /ingredients?skip&limit&search
func (h *Handler) ListIngredients(c *gin.Context) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		respondError(c, err)
		return
	}

	var items []domain.Ingredient
	if query, ok := c.GetQuery("search"); ok {
		limit, err := queryInt(c, "limit", usecase.DefaultSearchLimit)
		if err != nil {
			respondError(c, err)
			return
		}
		items, err = h.ingredients.Search(c.Request.Context(), query, limit)
		if err != nil {
			respondError(c, err)
			return
		}
	} else {
		limit, err := queryInt(c, "limit", usecase.DefaultPageLimit)
		if err != nil {
			respondError(c, err)
			return
		}
		items, err = h.ingredients.List(c.Request.Context(), skip, limit)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, newIngredientList(items))
}

// GetIngredient handles GET /ingredients/:name
func (h *Handler) GetIngredient(c *gin.Context) {
	ing, err := h.ingredients.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newIngredientResponse(*ing))
}

// CreateIngredient handles POST /ingredients
func (h *Handler) CreateIngredient(c *gin.Context) {
	var req CreateIngredientRequest
	if !bindJSON(c, &req) {
		return
	}

	ing, err := h.ingredients.Add(c.Request.Context(), req.Name, req.Nutrition.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newIngredientResponse(*ing))
}

// UpdateIngredient handles PUT /ingredients/:name. The body replaces all nutrition values.
func (h *Handler) UpdateIngredient(c *gin.Context) {
	var req NutritionRequest
	if !bindJSON(c, &req) {
		return
	}

	ing, err := h.ingredients.Update(c.Request.Context(), c.Param("name"), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newIngredientResponse(*ing))
}

// DeleteIngredient handles DELETE /ingredients/:name
func (h *Handler) DeleteIngredient(c *gin.Context) {
	if err := h.ingredients.Remove(c.Request.Context(), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ImportIngredient handles POST /ingredients/import
func (h *Handler) ImportIngredient(c *gin.Context) {
	if h.imports == nil {
		respondError(c, domain.ErrUSDANotConfigured)
		return
	}

	var req ImportIngredientRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.imports.Import(c.Request.Context(), req.Query, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ImportResponse{
		Ingredient: newIngredientResponse(result.Ingredient),
		Match:      result.Match,
	})
}
