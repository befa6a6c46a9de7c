package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/menuplanner/backend/internal/infrastructure/report"
)

// ComputeMenu handles POST /menu
func (h *Handler) ComputeMenu(c *gin.Context) {
	var req MenuRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.menu.ComputeMenu(c.Request.Context(), req.toSelections())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newMenuResponse(result))
}

// ShoppingListPDF handles POST /menu/pdf
func (h *Handler) ShoppingListPDF(c *gin.Context) {
	var req MenuRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.menu.ComputeMenu(c.Request.Context(), req.toSelections())
	if err != nil {
		respondError(c, err)
		return
	}

	pdf, err := report.ShoppingListPDF(result, h.now(), h.report)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping-list.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GetGoals handles GET /goals
func (h *Handler) GetGoals(c *gin.Context) {
	goals, err := h.goals.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGoalsResponse(goals))
}

// SetGoals handles PUT /goals
func (h *Handler) SetGoals(c *gin.Context) {
	var req GoalsRequest
	if !bindJSON(c, &req) {
		return
	}

	goals, err := h.goals.Set(c.Request.Context(), req.toGoals())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newGoalsResponse(goals))
}
