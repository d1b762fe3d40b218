package engine

import (
	"fmt"
	"strings"

	"github.com/nghialuong53/tana-tra-quan/internal/models"
)

// Catalog holds the menu in insertion order. Callers see products in the
// order they were first added; edits replace in place without re-sorting.
type Catalog struct {
	ids  []string
	byID map[string]models.Product
}

func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]models.Product)}
}

// ListActive returns the products currently for sale.
func (c *Catalog) ListActive() []models.Product {
	out := make([]models.Product, 0, len(c.ids))
	for _, id := range c.ids {
		if p := c.byID[id]; p.Active {
			out = append(out, p)
		}
	}
	return out
}

// List returns every product, inactive ones included, for menu management.
func (c *Catalog) List() []models.Product {
	out := make([]models.Product, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}
	return out
}

func (c *Catalog) Get(id string) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Upsert inserts a new product or replaces the existing definition in place.
func (c *Catalog) Upsert(p models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if _, ok := c.byID[p.ID]; !ok {
		c.ids = append(c.ids, p.ID)
	}
	c.byID[p.ID] = p
	return nil
}

// SetActive toggles whether the product is offered for sale.
func (c *Catalog) SetActive(id string, active bool) error {
	p, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	}
	p.Active = active
	c.byID[id] = p
	return nil
}

// Restore replaces the catalog contents from a persisted snapshot.
func (c *Catalog) Restore(products []models.Product) {
	c.ids = c.ids[:0]
	c.byID = make(map[string]models.Product, len(products))
	for _, p := range products {
		if _, ok := c.byID[p.ID]; !ok {
			c.ids = append(c.ids, p.ID)
		}
		c.byID[p.ID] = p
	}
}

func validateProduct(p models.Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: product id is required", ErrValidation)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}

	switch {
	case p.FlatPrice != nil && len(p.SizePrices) > 0:
		return fmt.Errorf("%w: product %s sets both flat and sized pricing", ErrValidation, p.ID)
	case p.FlatPrice != nil:
		if *p.FlatPrice < 0 {
			return fmt.Errorf("%w: product %s has negative price", ErrValidation, p.ID)
		}
	case len(p.SizePrices) > 0:
		for _, size := range models.Sizes {
			price, ok := p.SizePrices[size]
			if !ok {
				return fmt.Errorf("%w: product %s missing price for size %s", ErrValidation, p.ID, size)
			}
			if price < 0 {
				return fmt.Errorf("%w: product %s has negative price for size %s", ErrValidation, p.ID, size)
			}
		}
		for size := range p.SizePrices {
			if !size.Valid() {
				return fmt.Errorf("%w: product %s prices unknown size %q", ErrValidation, p.ID, size)
			}
		}
	default:
		return fmt.Errorf("%w: product %s has no pricing", ErrValidation, p.ID)
	}

	seen := make(map[string]struct{}, len(p.Toppings))
	for _, t := range p.Toppings {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("%w: product %s has a topping without id", ErrValidation, p.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: product %s duplicates topping %s", ErrValidation, p.ID, t.ID)
		}
		seen[t.ID] = struct{}{}
		if t.Price < 0 {
			return fmt.Errorf("%w: topping %s has negative price", ErrValidation, t.ID)
		}
	}
	return nil
}
