package engine

import (
	"fmt"

	"github.com/nghialuong53/tana-tra-quan/internal/models"
)

// UnitPrice computes the price of one unit of a selection and returns the
// resolved topping snapshots. Pure; dispatches on the product's pricing tag.
//
// Topping ids are resolved against the product's own offer list, never
// against client-supplied prices, so a stale or hostile client cannot inject
// a cheaper topping.
func UnitPrice(p models.Product, size models.Size, toppingIDs []string) (models.Money, []models.Topping, error) {
	var base models.Money

	if p.Sized() {
		price, ok := p.SizePrices[size]
		if !ok {
			return 0, nil, fmt.Errorf("%w: product %s size %q", ErrInvalidVariant, p.ID, size)
		}
		base = price
	} else {
		if size != "" {
			return 0, nil, fmt.Errorf("%w: product %s has no sizes", ErrInvalidVariant, p.ID)
		}
		if p.FlatPrice == nil {
			return 0, nil, fmt.Errorf("%w: product %s has no price", ErrValidation, p.ID)
		}
		base = *p.FlatPrice
	}

	var toppings []models.Topping
	for _, id := range toppingIDs {
		topping, ok := p.FindTopping(id)
		if !ok {
			return 0, nil, fmt.Errorf("%w: product %s topping %q", ErrInvalidTopping, p.ID, id)
		}
		base += topping.Price
		toppings = append(toppings, topping)
	}

	return base, toppings, nil
}
