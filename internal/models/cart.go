package models

// CartLine is one selection in the cart. Name and UnitPrice are snapshots
// taken when the line was added; later menu edits never reach back into an
// open cart or a committed order.
type CartLine struct {
	ID        string    `bson:"id" json:"id"`
	ProductID string    `bson:"productId" json:"productId"`
	Name      string    `bson:"name" json:"name"`
	Size      Size      `bson:"size,omitempty" json:"size,omitempty"`
	Toppings  []Topping `bson:"toppings,omitempty" json:"toppings,omitempty"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
	Qty       int       `bson:"qty" json:"qty"`
	UnitPrice Money     `bson:"unitPrice" json:"unitPrice"`
}

// Subtotal is the line's contribution to the cart total.
func (l CartLine) Subtotal() Money {
	return l.UnitPrice * Money(l.Qty)
}

// SameSelection reports whether two lines describe the identical choice,
// including note and topping set in order. Used by the flat-price merge path.
func (l CartLine) SameSelection(other CartLine) bool {
	if l.ProductID != other.ProductID || l.Size != other.Size || l.Note != other.Note {
		return false
	}
	if len(l.Toppings) != len(other.Toppings) {
		return false
	}
	for i, t := range l.Toppings {
		if t.ID != other.Toppings[i].ID {
			return false
		}
	}
	return true
}
