package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nghialuong53/tana-tra-quan/internal/engine"
	"github.com/nghialuong53/tana-tra-quan/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type addLineRequest struct {
	ProductID  string   `json:"productId" binding:"required"`
	Size       string   `json:"size"`
	ToppingIDs []string `json:"toppingIds"`
	Note       string   `json:"note"`
	Qty        int      `json:"qty"`
}

type changeQtyRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

type checkoutRequest struct {
	Payment string `json:"payment" binding:"required"`
}

/* =========================
   MENU & CART
========================= */

// GetMenu lists the products currently for sale.
func GetMenu(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, eng.Menu())
	}
}

// GetCart returns the open bill.
func GetCart(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"lines": eng.CartLines(),
			"total": eng.CartTotal(),
		})
	}
}

// AddCartLine prices a selection and adds it to the cart.
func AddCartLine(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/lines"
		defer handlePanic(c, route)

		var req addLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		qty := req.Qty
		if qty == 0 {
			qty = 1
		}

		line, err := eng.AddLine(req.ProductID, models.Size(req.Size), req.ToppingIDs, req.Note, qty)
		if err != nil {
			respondEngineError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, line)
	}
}

// ChangeCartQty bumps a line's quantity up or down. Reaching zero removes it.
func ChangeCartQty(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /cart/lines/:id"
		defer handlePanic(c, route)

		var req changeQtyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		if err := eng.ChangeQty(c.Param("id"), *req.Delta); err != nil {
			respondEngineError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"lines": eng.CartLines(),
			"total": eng.CartTotal(),
		})
	}
}

// RemoveCartLine deletes a line outright. Safe to repeat.
func RemoveCartLine(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		eng.RemoveLine(c.Param("id"))
		c.JSON(http.StatusOK, gin.H{
			"lines": eng.CartLines(),
			"total": eng.CartTotal(),
		})
	}
}

// Checkout commits the cart as a paid order.
func Checkout(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout"
		defer handlePanic(c, route)

		var req checkoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		order, err := eng.Checkout(models.PaymentMethod(req.Payment))
		if err != nil {
			respondEngineError(c, route, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
