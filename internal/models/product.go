package models

// Topping is an add-on a product offers, priced per unit of the line.
type Topping struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Price Money  `bson:"price" json:"price"`
}

// Product is a menu entry. Pricing is tagged: either FlatPrice is set (no
// size choice) or SizePrices maps every recognized size, never both.
// Deactivated products stay in the catalog so old order lines keep resolving.
type Product struct {
	ID         string         `bson:"id" json:"id"`
	Name       string         `bson:"name" json:"name"`
	Active     bool           `bson:"active" json:"active"`
	FlatPrice  *Money         `bson:"flatPrice,omitempty" json:"flatPrice,omitempty"`
	SizePrices map[Size]Money `bson:"sizePrices,omitempty" json:"sizePrices,omitempty"`
	Toppings   []Topping      `bson:"toppings,omitempty" json:"toppings,omitempty"`
}

// Sized reports which pricing mode the product uses.
func (p Product) Sized() bool {
	return len(p.SizePrices) > 0
}

// FindTopping resolves a topping id against the product's own offer list.
func (p Product) FindTopping(id string) (Topping, bool) {
	for _, t := range p.Toppings {
		if t.ID == id {
			return t, true
		}
	}
	return Topping{}, false
}
