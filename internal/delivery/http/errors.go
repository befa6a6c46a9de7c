package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/menuplanner/backend/internal/domain"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBadReference),
		errors.Is(err, domain.ErrEmptyComposition),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrInvalidNutrients),
		errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrLowConfidence):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUSDAAPIFailure):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrUSDANotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Server-side failures get an opaque message.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)

	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		log.Printf("[HTTP] %s %s failed (request %s): %v", c.Request.Method, c.FullPath(), requestID(c), err)
		message = "internal server error"
	case http.StatusBadGateway:
		log.Printf("[HTTP] USDA failure (request %s): %v", requestID(c), err)
		message = "USDA API temporarily unavailable"
	case http.StatusTooManyRequests:
		message = "rate limit exceeded"
	}

	abortWithError(c, status, message)
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"status":    "error",
		"error":     message,
		"requestId": requestID(c),
	})
}

// bindJSON decodes the request body and writes a 400 on failure
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
