package http

import (
	"github.com/gin-gonic/gin"
	"github.com/menuplanner/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		ingredients := v1.Group("/ingredients")
		{
			ingredients.GET("", handler.ListIngredients)
			ingredients.POST("", handler.CreateIngredient)
			ingredients.POST("/import", handler.ImportIngredient)
			ingredients.GET("/:name", handler.GetIngredient)
			ingredients.PUT("/:name", handler.UpdateIngredient)
			ingredients.DELETE("/:name", handler.DeleteIngredient)
		}

		dishes := v1.Group("/dishes")
		{
			dishes.GET("", handler.ListDishes)
			dishes.POST("", handler.CreateDish)
			dishes.GET("/:id", handler.GetDish)
			dishes.PATCH("/:id", handler.RenameDish)
			dishes.DELETE("/:id", handler.DeleteDish)
			dishes.PUT("/:id/ingredients", handler.ReplaceDishIngredients)
		}

		menu := v1.Group("/menu")
		{
			menu.POST("", handler.ComputeMenu)
			menu.POST("/pdf", handler.ShoppingListPDF)
		}

		v1.GET("/goals", handler.GetGoals)
		v1.PUT("/goals", handler.SetGoals)
	}

	return router
}
