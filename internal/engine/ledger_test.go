package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/nghialuong53/tana-tra-quan/internal/models"
)

func appendOrder(l *Ledger, total models.Money) models.Order {
	items := []models.CartLine{{ID: "l1", ProductID: "tra-dao", Name: "Trà đào", Qty: 1, UnitPrice: total}}
	return l.Append(items, total, models.PaymentCash, time.Now())
}

func TestLedgerAppendMostRecentFirst(t *testing.T) {
	l := NewLedger()
	first := appendOrder(l, 10000)
	second := appendOrder(l, 20000)

	history := l.History()
	if len(history) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(history))
	}
	if history[0].ID != second.ID || history[1].ID != first.ID {
		t.Fatal("history must be most-recent-first")
	}
}

func TestLedgerIDsIncreaseMonotonically(t *testing.T) {
	l := NewLedger()
	prev := int64(0)
	for i := 0; i < 5; i++ {
		order := appendOrder(l, 1000)
		if order.ID <= prev {
			t.Fatalf("expected increasing ids, got %d after %d", order.ID, prev)
		}
		prev = order.ID
	}
}

func TestLedgerAppendMarksPaid(t *testing.T) {
	l := NewLedger()
	order := appendOrder(l, 80000)
	if !order.Paid || order.Canceled {
		t.Fatalf("expected paid, not canceled, got %+v", order)
	}
}

func TestLedgerCancel(t *testing.T) {
	l := NewLedger()
	order := appendOrder(l, 80000)

	if err := l.Cancel(order.ID); err != nil {
		t.Fatalf("cancel returned error: %v", err)
	}
	if !l.History()[0].Canceled {
		t.Fatal("expected order flagged canceled in history")
	}

	if err := l.Cancel(order.ID); !errors.Is(err, ErrAlreadyCanceled) {
		t.Fatalf("expected ErrAlreadyCanceled, got %v", err)
	}
	if err := l.Cancel(999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLedgerRevenueExcludesCanceled(t *testing.T) {
	l := NewLedger()
	keep := appendOrder(l, 50000)
	drop := appendOrder(l, 30000)
	_ = keep

	if err := l.Cancel(drop.ID); err != nil {
		t.Fatal(err)
	}

	if got := l.RevenueTotal(); got != 50000 {
		t.Fatalf("expected net 50000, got %v", got)
	}
	if got := l.GrossTotal(); got != 80000 {
		t.Fatalf("expected gross 80000, got %v", got)
	}
	if l.Len() != 2 {
		t.Fatal("canceled orders stay in history")
	}
}

func TestLedgerRestoreResumesIDSequence(t *testing.T) {
	l := NewLedger()
	appendOrder(l, 1000)
	appendOrder(l, 2000)
	saved := l.History()

	fresh := NewLedger()
	fresh.Restore(saved)
	order := appendOrder(fresh, 3000)
	if order.ID != 3 {
		t.Fatalf("expected id sequence to resume at 3, got %d", order.ID)
	}
}
