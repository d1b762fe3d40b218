// Package printer renders plain-text receipts for committed orders. Printing
// is a best-effort side effect after checkout; a wedged printer never blocks
// or rolls back the sale.
package printer

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/nghialuong53/tana-tra-quan/internal/models"
)

type Printer struct {
	shopName string

	mu  sync.Mutex
	out io.Writer
}

func New(shopName string, out io.Writer) *Printer {
	return &Printer{shopName: shopName, out: out}
}

// OrderCommitted writes a receipt for the order. Errors are logged and
// swallowed.
func (p *Printer) OrderCommitted(order models.Order) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := io.WriteString(p.out, p.Render(order)); err != nil {
		log.Printf("[PRINTER] [WARN] receipt for order %d not printed: %v", order.ID, err)
	}
}

// Render formats the receipt text for one order.
func (p *Printer) Render(order models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "===== %s =====\n", p.shopName)
	fmt.Fprintf(&b, "Đơn #%d  %s\n", order.ID, order.Time.Format("02/01/2006 15:04"))
	b.WriteString("--------------------------\n")

	for _, line := range order.Items {
		name := line.Name
		if line.Size != "" {
			name = fmt.Sprintf("%s (%s)", name, line.Size)
		}
		fmt.Fprintf(&b, "%s x%d  %s đ\n", name, line.Qty, line.Subtotal())
		for _, t := range line.Toppings {
			fmt.Fprintf(&b, "  + %s\n", t.Name)
		}
		if line.Note != "" {
			fmt.Fprintf(&b, "  * %s\n", line.Note)
		}
	}

	b.WriteString("--------------------------\n")
	fmt.Fprintf(&b, "TỔNG: %s đ (%s)\n\n", order.Total, paymentLabel(order.Payment))
	return b.String()
}

func paymentLabel(p models.PaymentMethod) string {
	switch p {
	case models.PaymentCash:
		return "tiền mặt"
	case models.PaymentTransfer:
		return "chuyển khoản"
	default:
		return string(p)
	}
}
