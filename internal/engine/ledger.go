package engine

import (
	"fmt"
	"time"

	"github.com/nghialuong53/tana-tra-quan/internal/models"
)

// Ledger is the append-only order history, most recent first. Orders are
// immutable after append except for the cancellation flag.
type Ledger struct {
	orders []models.Order
	nextID int64
}

func NewLedger() *Ledger {
	return &Ledger{nextID: 1}
}

// Append commits a frozen cart snapshot as a paid order and returns it.
// Order ids increase monotonically in creation order.
func (l *Ledger) Append(items []models.CartLine, total models.Money, payment models.PaymentMethod, now time.Time) models.Order {
	order := models.Order{
		ID:      l.nextID,
		Time:    now,
		Items:   items,
		Total:   total,
		Payment: payment,
		Paid:    true,
	}
	l.nextID++
	l.orders = append([]models.Order{order}, l.orders...)
	return order
}

// Cancel soft-deletes an order. The record stays in history for audit but no
// longer counts toward revenue. A canceled order cannot be canceled again.
func (l *Ledger) Cancel(orderID int64) error {
	for i := range l.orders {
		if l.orders[i].ID != orderID {
			continue
		}
		if l.orders[i].Canceled {
			return fmt.Errorf("%w: order %d", ErrAlreadyCanceled, orderID)
		}
		l.orders[i].Canceled = true
		return nil
	}
	return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
}

// RevenueTotal sums the totals of all non-canceled orders.
func (l *Ledger) RevenueTotal() models.Money {
	var sum models.Money
	for _, o := range l.orders {
		if !o.Canceled {
			sum += o.Total
		}
	}
	return sum
}

// GrossTotal sums every order, canceled ones included.
func (l *Ledger) GrossTotal() models.Money {
	var sum models.Money
	for _, o := range l.orders {
		sum += o.Total
	}
	return sum
}

// History returns a copy of the order list, most recent first.
func (l *Ledger) History() []models.Order {
	out := make([]models.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

func (l *Ledger) Len() int {
	return len(l.orders)
}

// Restore replaces the ledger contents from a persisted snapshot and resumes
// the id sequence after the highest stored id.
func (l *Ledger) Restore(orders []models.Order) {
	l.orders = orders
	l.nextID = 1
	for _, o := range orders {
		if o.ID >= l.nextID {
			l.nextID = o.ID + 1
		}
	}
}
