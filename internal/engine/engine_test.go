package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nghialuong53/tana-tra-quan/internal/models"
	"github.com/nghialuong53/tana-tra-quan/internal/storage"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng := New(nil)
	eng.Load(context.Background(), []models.Product{sizedMilkTea(), flatPeachTea()})
	return eng
}

func TestEngineCashierCannotEditMenu(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.UpsertProduct(models.RoleCashier, flatPeachTea()); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := eng.SetProductActive(models.RoleCashier, "tra-dao", false); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if len(eng.Menu()) != 2 {
		t.Fatal("rejected mutation must leave the catalog untouched")
	}
}

func TestEngineAdminUpsertGeneratesID(t *testing.T) {
	eng := newTestEngine(t)
	price := models.Money(20000)

	product, err := eng.UpsertProduct(models.RoleAdmin, models.Product{Name: "Trà chanh", Active: true, FlatPrice: &price})
	if err != nil {
		t.Fatalf("upsert returned error: %v", err)
	}
	if product.ID == "" {
		t.Fatal("expected a generated id")
	}
}

func TestEngineAddLineUnknownProduct(t *testing.T) {
	eng := newTestEngine(t)
	if _, err := eng.AddLine("ghost", "", nil, "", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEngineAddLineInactiveProduct(t *testing.T) {
	eng := newTestEngine(t)
	if err := eng.SetProductActive(models.RoleAdmin, "tra-dao", false); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.AddLine("tra-dao", "", nil, "", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive product, got %v", err)
	}
}

func TestEngineCheckoutCommitsAndClearsCart(t *testing.T) {
	eng := newTestEngine(t)

	line, err := eng.AddLine("tra-sua", models.SizeL, []string{"tran-chau"}, "", 2)
	if err != nil {
		t.Fatal(err)
	}
	if line.UnitPrice != 40000 {
		t.Fatalf("expected unit price 40000, got %v", line.UnitPrice)
	}
	if eng.CartTotal() != 80000 {
		t.Fatalf("expected cart total 80000, got %v", eng.CartTotal())
	}

	order, err := eng.Checkout(models.PaymentCash)
	if err != nil {
		t.Fatalf("checkout returned error: %v", err)
	}
	if order.Total != 80000 || !order.Paid || order.Canceled {
		t.Fatalf("unexpected order state: %+v", order)
	}
	if len(eng.CartLines()) != 0 {
		t.Fatal("checkout must clear the cart")
	}
	if history := eng.History(); len(history) != 1 || history[0].ID != order.ID {
		t.Fatalf("expected exactly the new order in history, got %+v", history)
	}
}

func TestEngineCheckoutEmptyCartRejected(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Checkout(models.PaymentCash)
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if len(eng.History()) != 0 {
		t.Fatal("rejected checkout must not touch the ledger")
	}
}

func TestEngineCheckoutUnknownPayment(t *testing.T) {
	eng := newTestEngine(t)
	if _, err := eng.AddLine("tra-dao", "", nil, "", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Checkout("card"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(eng.CartLines()) != 1 {
		t.Fatal("rejected checkout must leave the cart intact")
	}
}

func TestEngineCancelRequiresAdmin(t *testing.T) {
	eng := newTestEngine(t)
	if _, err := eng.AddLine("tra-dao", "", nil, "", 1); err != nil {
		t.Fatal(err)
	}
	order, err := eng.Checkout(models.PaymentTransfer)
	if err != nil {
		t.Fatal(err)
	}

	if err := eng.CancelOrder(models.RoleCashier, order.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if eng.History()[0].Canceled {
		t.Fatal("rejected cancel must not flag the order")
	}

	if err := eng.CancelOrder(models.RoleAdmin, order.ID); err != nil {
		t.Fatalf("admin cancel returned error: %v", err)
	}
	if !eng.History()[0].Canceled {
		t.Fatal("expected order flagged canceled")
	}
	if report := eng.Revenue(); report.Net != 0 || report.Gross != order.Total {
		t.Fatalf("expected net 0 after cancel, got %+v", report)
	}
}

func TestEngineRevenueReport(t *testing.T) {
	eng := newTestEngine(t)

	if _, err := eng.AddLine("tra-dao", "", nil, "", 2); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Checkout(models.PaymentCash); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.AddLine("tra-sua", models.SizeS, nil, "", 1); err != nil {
		t.Fatal(err)
	}
	canceled, err := eng.Checkout(models.PaymentTransfer)
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.CancelOrder(models.RoleAdmin, canceled.ID); err != nil {
		t.Fatal(err)
	}

	report := eng.Revenue()
	if report.Orders != 2 {
		t.Fatalf("expected 2 orders, got %d", report.Orders)
	}
	if report.Gross != 70000+25000 || report.Canceled != 25000 || report.Net != 70000 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestEngineCatalogEditsDoNotReachCartOrHistory(t *testing.T) {
	eng := newTestEngine(t)

	line, err := eng.AddLine("tra-sua", models.SizeL, nil, "", 1)
	if err != nil {
		t.Fatal(err)
	}

	repriced := sizedMilkTea()
	repriced.Name = "Trà sữa đặc biệt"
	repriced.SizePrices[models.SizeL] = 99000
	if _, err := eng.UpsertProduct(models.RoleAdmin, repriced); err != nil {
		t.Fatal(err)
	}

	lines := eng.CartLines()
	if lines[0].UnitPrice != line.UnitPrice || lines[0].Name != "Trà sữa" {
		t.Fatalf("cart line must keep its add-time snapshot, got %+v", lines[0])
	}

	order, err := eng.Checkout(models.PaymentCash)
	if err != nil {
		t.Fatal(err)
	}

	cheaper := sizedMilkTea()
	cheaper.SizePrices[models.SizeL] = 1000
	if _, err := eng.UpsertProduct(models.RoleAdmin, cheaper); err != nil {
		t.Fatal(err)
	}

	if got := eng.History()[0]; got.Total != order.Total || got.Items[0].Name != "Trà sữa" {
		t.Fatalf("committed order must be immutable, got %+v", got)
	}
}

func TestEngineOrderCommittedHookFires(t *testing.T) {
	eng := newTestEngine(t)
	got := make(chan models.Order, 1)
	eng.OnOrderCommitted(func(o models.Order) { got <- o })

	if _, err := eng.AddLine("tra-dao", "", nil, "", 1); err != nil {
		t.Fatal(err)
	}
	order, err := eng.Checkout(models.PaymentCash)
	if err != nil {
		t.Fatal(err)
	}

	select {
	case notified := <-got:
		if notified.ID != order.ID {
			t.Fatalf("hook got order %d, want %d", notified.ID, order.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("order hook never fired")
	}
}

func TestEngineRehydratesFromGateway(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryGateway()

	eng := New(gw)
	eng.Load(ctx, []models.Product{sizedMilkTea(), flatPeachTea()})
	if _, err := eng.AddLine("tra-sua", models.SizeM, nil, "", 1); err != nil {
		t.Fatal(err)
	}
	order, err := eng.Checkout(models.PaymentCash)
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.SetProductActive(models.RoleAdmin, "tra-dao", false); err != nil {
		t.Fatal(err)
	}
	if err := eng.Close(ctx); err != nil {
		t.Fatalf("close returned error: %v", err)
	}

	restarted := New(gw)
	restarted.Load(ctx, nil)
	defer restarted.Close(ctx)

	if menu := restarted.Menu(); len(menu) != 1 || menu[0].ID != "tra-sua" {
		t.Fatalf("expected rehydrated menu with tra-dao off, got %+v", menu)
	}
	history := restarted.History()
	if len(history) != 1 || history[0].Total != order.Total {
		t.Fatalf("expected rehydrated history, got %+v", history)
	}

	if _, err := restarted.AddLine("tra-sua", models.SizeS, nil, "", 1); err != nil {
		t.Fatal(err)
	}
	next, err := restarted.Checkout(models.PaymentCash)
	if err != nil {
		t.Fatal(err)
	}
	if next.ID <= order.ID {
		t.Fatalf("order ids must keep increasing across restarts, got %d after %d", next.ID, order.ID)
	}
}

func TestEngineLoadFallsBackOnCorruptState(t *testing.T) {
	ctx := context.Background()
	gw := storage.NewMemoryGateway()
	if err := gw.Save(ctx, storage.KeyProducts, []byte("{definitely not json")); err != nil {
		t.Fatal(err)
	}
	if err := gw.Save(ctx, storage.KeyOrders, []byte("[broken")); err != nil {
		t.Fatal(err)
	}

	eng := New(gw)
	eng.Load(ctx, []models.Product{flatPeachTea()})
	defer eng.Close(ctx)

	if menu := eng.Menu(); len(menu) != 1 || menu[0].ID != "tra-dao" {
		t.Fatalf("expected default catalog after corrupt load, got %+v", menu)
	}
	if len(eng.History()) != 0 {
		t.Fatal("expected empty history after corrupt load")
	}
}
