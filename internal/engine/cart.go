package engine

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nghialuong53/tana-tra-quan/internal/models"
)

// Cart is the open bill of the active till session: an ordered list of lines,
// each a priced snapshot of a selection.
type Cart struct {
	lines []models.CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// AddLine prices the selection and appends it to the cart.
//
// Merge policy: a plain flat-price selection (no size, no toppings, no note)
// merges into an existing identical line by bumping its qty, matching how the
// till behaves for the simple menu. Any sized, topped, or noted selection is
// always its own line, so distinct notes never collapse into one row.
func (c *Cart) AddLine(p models.Product, size models.Size, toppingIDs []string, note string, qty int) (models.CartLine, error) {
	if qty < 1 {
		return models.CartLine{}, fmt.Errorf("%w: qty must be at least 1", ErrValidation)
	}

	unitPrice, toppings, err := UnitPrice(p, size, toppingIDs)
	if err != nil {
		return models.CartLine{}, err
	}

	line := models.CartLine{
		ID:        primitive.NewObjectID().Hex(),
		ProductID: p.ID,
		Name:      p.Name,
		Size:      size,
		Toppings:  toppings,
		Note:      note,
		Qty:       qty,
		UnitPrice: unitPrice,
	}

	if !p.Sized() && len(toppings) == 0 && note == "" {
		for i := range c.lines {
			if c.lines[i].SameSelection(line) {
				c.lines[i].Qty += qty
				return c.lines[i], nil
			}
		}
	}

	c.lines = append(c.lines, line)
	return line, nil
}

// ChangeQty adjusts a line's quantity by delta. Dropping to zero or below
// removes the line; a zero-qty row is never kept.
func (c *Cart) ChangeQty(lineID string, delta int) error {
	for i := range c.lines {
		if c.lines[i].ID != lineID {
			continue
		}
		c.lines[i].Qty += delta
		if c.lines[i].Qty <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return nil
	}
	return fmt.Errorf("%w: cart line %s", ErrNotFound, lineID)
}

// RemoveLine deletes a line. Removing an absent line is a safe no-op.
func (c *Cart) RemoveLine(lineID string) {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Total recomputes the bill from the lines on every call.
func (c *Cart) Total() models.Money {
	var total models.Money
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// Lines returns a copy of the cart contents in order.
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) Clear() {
	c.lines = nil
}
