package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nghialuong53/tana-tra-quan/internal/engine"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// respondEngineError maps the engine's error taxonomy onto HTTP statuses.
func respondEngineError(c *gin.Context, route string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, engine.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, engine.ErrAlreadyCanceled):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrValidation),
		errors.Is(err, engine.ErrInvalidVariant),
		errors.Is(err, engine.ErrInvalidTopping),
		errors.Is(err, engine.ErrEmptyCart):
		status = http.StatusBadRequest
	}
	respondWithError(c, status, route, err.Error())
}
