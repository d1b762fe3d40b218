package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nghialuong53/tana-tra-quan/internal/engine"
	"github.com/nghialuong53/tana-tra-quan/internal/middleware"
)

// GetOrders returns the order history, most recent first. Canceled orders
// stay visible, flagged.
func GetOrders(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, eng.History())
	}
}

// CancelOrder soft-deletes an order; it remains in history but drops out of
// net revenue.
func CancelOrder(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/orders/:id"
		defer handlePanic(c, route)

		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		if err := eng.CancelOrder(middleware.RoleFrom(c), orderID); err != nil {
			respondEngineError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order canceled"})
	}
}

// GetRevenue returns the report figures: gross, canceled, and net totals.
func GetRevenue(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, eng.Revenue())
	}
}
