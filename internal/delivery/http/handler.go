package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/menuplanner/backend/internal/infrastructure/report"
	"github.com/menuplanner/backend/internal/usecase"
)

// Pinger reports whether the storage backend is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups the use cases served over HTTP
type Services struct {
	Ingredients *usecase.IngredientService
	Dishes      *usecase.DishService
	Menu        *usecase.MenuService
	Goals       *usecase.GoalsService
	Import      *usecase.ImportService
	// Report configures the shopping-list PDF
	Report report.Options
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	ingredients *usecase.IngredientService
	dishes      *usecase.DishService
	menu        *usecase.MenuService
	goals       *usecase.GoalsService
	imports     *usecase.ImportService
	report      report.Options
	storage     Pinger
	now         func() time.Time
}

// NewHandler creates a new HTTP handler. storage may be nil for the memory backend.
func NewHandler(services Services, storage Pinger) *Handler {
	return &Handler{
		ingredients: services.Ingredients,
		dishes:      services.Dishes,
		menu:        services.Menu,
		goals:       services.Goals,
		imports:     services.Import,
		report:      services.Report,
		storage:     storage,
		now:         time.Now,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	status, storage := http.StatusOK, "ok"
	if h.storage != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.storage.Ping(ctx); err != nil {
			log.Printf("[HTTP] Health check: storage ping failed: %v", err)
			status, storage = http.StatusServiceUnavailable, "unavailable"
		}
	}

	health := "healthy"
	if status != http.StatusOK {
		health = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":  health,
		"service": "menuplanner-backend",
		"version": "1.0.0",
		"storage": storage,
	})
}
