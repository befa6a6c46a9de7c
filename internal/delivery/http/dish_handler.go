package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/menuplanner/backend/internal/domain"
	"github.com/menuplanner/backend/internal/usecase"
)

func dishID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: dish id must be a positive integer", domain.ErrInvalidRequest)
	}
	return id, nil
}

// ListDishes handles GET /dishes?skip&limit&search. Every dish carries its weight and nutrition.
func (h *Handler) ListDishes(c *gin.Context) {
	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		respondError(c, err)
		return
	}

	var details []domain.DishDetail
	if query, ok := c.GetQuery("search"); ok {
		limit, err := queryInt(c, "limit", usecase.DefaultSearchLimit)
		if err != nil {
			respondError(c, err)
			return
		}
		details, err = h.dishes.SearchWithTotals(c.Request.Context(), query, limit)
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
		details, err = h.dishes.ListWithTotals(c.Request.Context(), skip, limit)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, newDishList(details))
}

// GetDish handles GET /dishes/:id
func (h *Handler) GetDish(c *gin.Context) {
	id, err := dishID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondDish(c, http.StatusOK, id)
}

// CreateDish handles POST /dishes
func (h *Handler) CreateDish(c *gin.Context) {
	var req DishRequest
	if !bindJSON(c, &req) {
		return
	}

	dish, err := h.dishes.Create(c.Request.Context(), req.Name, req.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondDish(c, http.StatusCreated, dish.ID)
}

// ReplaceDishIngredients handles PUT /dishes/:id/ingredients
func (h *Handler) ReplaceDishIngredients(c *gin.Context) {
	id, err := dishID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req CompositionRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.dishes.ReplaceIngredients(c.Request.Context(), id, req.Ingredients); err != nil {
		respondError(c, err)
		return
	}
	h.respondDish(c, http.StatusOK, id)
}

// RenameDish handles PATCH /dishes/:id
func (h *Handler) RenameDish(c *gin.Context) {
	id, err := dishID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req RenameDishRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.dishes.Rename(c.Request.Context(), id, req.Name); err != nil {
		respondError(c, err)
		return
	}
	h.respondDish(c, http.StatusOK, id)
}

// DeleteDish handles DELETE /dishes/:id
func (h *Handler) DeleteDish(c *gin.Context) {
	id, err := dishID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.dishes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) respondDish(c *gin.Context, status int, id int64) {
	detail, err := h.dishes.Detail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, newDishResponse(*detail))
}
