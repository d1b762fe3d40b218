package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nghialuong53/tana-tra-quan/internal/engine"
	"github.com/nghialuong53/tana-tra-quan/internal/middleware"
	"github.com/nghialuong53/tana-tra-quan/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type toppingRequest struct {
	ID    string       `json:"id"`
	Name  string       `json:"name" binding:"required"`
	Price models.Money `json:"price"`
}

type productRequest struct {
	ID         string           `json:"id"`
	Name       string           `json:"name" binding:"required"`
	Active     *bool            `json:"active"`
	FlatPrice  *models.Money    `json:"flatPrice"`
	SizePrices map[string]models.Money `json:"sizePrices"`
	Toppings   []toppingRequest `json:"toppings"`
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (r productRequest) toProduct() models.Product {
	p := models.Product{
		ID:        r.ID,
		Name:      r.Name,
		Active:    true,
		FlatPrice: r.FlatPrice,
	}
	if r.Active != nil {
		p.Active = *r.Active
	}
	if len(r.SizePrices) > 0 {
		p.SizePrices = make(map[models.Size]models.Money, len(r.SizePrices))
		for size, price := range r.SizePrices {
			p.SizePrices[models.Size(size)] = price
		}
	}
	for _, t := range r.Toppings {
		p.Toppings = append(p.Toppings, models.Topping{ID: t.ID, Name: t.Name, Price: t.Price})
	}
	return p
}

/* =========================
   MENU MANAGEMENT
========================= */

// GetAllProducts lists the full catalog, inactive entries included.
func GetAllProducts(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products"
		products, err := eng.Products(middleware.RoleFrom(c))
		if err != nil {
			respondEngineError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// UpsertProduct creates or replaces a menu entry.
func UpsertProduct(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		product, err := eng.UpsertProduct(middleware.RoleFrom(c), req.toProduct())
		if err != nil {
			respondEngineError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// SetProductActive turns a menu entry on or off without deleting it.
func SetProductActive(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/products/:id/active"
		defer handlePanic(c, route)

		var req setActiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		if err := eng.SetProductActive(middleware.RoleFrom(c), c.Param("id"), *req.Active); err != nil {
			respondEngineError(c, route, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product updated"})
	}
}
