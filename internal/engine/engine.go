package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nghialuong53/tana-tra-quan/internal/models"
	"github.com/nghialuong53/tana-tra-quan/internal/storage"
)

// Engine owns the till state: the catalog, the one open cart of the active
// session, and the order ledger, all behind a single lock. It is an explicit
// instance; there is no package-level state. Durability goes through the
// injected gateway as fire-and-forget snapshots, so the in-memory state is
// authoritative the moment a mutation returns.
type Engine struct {
	mu      sync.Mutex
	catalog *Catalog
	cart    *Cart
	ledger  *Ledger

	gateway   storage.Gateway
	flusher   *storage.Flusher
	committed func(models.Order)
	now       func() time.Time
}

// New builds an engine around the given gateway. A nil gateway runs the till
// purely in memory.
func New(gateway storage.Gateway) *Engine {
	e := &Engine{
		catalog: NewCatalog(),
		cart:    NewCart(),
		ledger:  NewLedger(),
		gateway: gateway,
		now:     time.Now,
	}
	if gateway != nil {
		e.flusher = storage.NewFlusher(gateway)
	}
	return e
}

// OnOrderCommitted registers the receipt hook, invoked asynchronously after
// every successful checkout. Its failures never reach the checkout caller.
func (e *Engine) OnOrderCommitted(fn func(models.Order)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.committed = fn
}

// Load rehydrates catalog and ledger from storage. A missing or corrupt blob
// falls back to the given default catalog (resp. an empty history) and never
// fails startup.
func (e *Engine) Load(ctx context.Context, defaults []models.Product) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.catalog.Restore(defaults)
	if e.gateway == nil {
		return
	}

	if blob, err := e.gateway.Load(ctx, storage.KeyProducts); err == nil {
		var products []models.Product
		if jsonErr := json.Unmarshal(blob, &products); jsonErr != nil {
			log.Printf("[ENGINE] [WARN] stored products unreadable, keeping defaults: %v", jsonErr)
		} else {
			e.catalog.Restore(products)
		}
	} else if !errors.Is(err, storage.ErrKeyMissing) {
		log.Printf("[ENGINE] [WARN] loading products failed, keeping defaults: %v", err)
	}

	if blob, err := e.gateway.Load(ctx, storage.KeyOrders); err == nil {
		var orders []models.Order
		if jsonErr := json.Unmarshal(blob, &orders); jsonErr != nil {
			log.Printf("[ENGINE] [WARN] stored orders unreadable, starting empty: %v", jsonErr)
		} else {
			e.ledger.Restore(orders)
		}
	} else if !errors.Is(err, storage.ErrKeyMissing) {
		log.Printf("[ENGINE] [WARN] loading orders failed, starting empty: %v", err)
	}
}

// Close drains pending durability writes before shutdown.
func (e *Engine) Close(ctx context.Context) error {
	if e.flusher == nil {
		return nil
	}
	return e.flusher.Close(ctx)
}

/* =========================
   CATALOG
========================= */

// Menu returns the products currently for sale, in menu order.
func (e *Engine) Menu() []models.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.ListActive()
}

// Products returns the whole catalog for menu management, inactive included.
func (e *Engine) Products(role models.Role) ([]models.Product, error) {
	if !role.CanManage() {
		return nil, fmt.Errorf("%w: %s cannot manage the menu", ErrUnauthorized, role)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.catalog.List(), nil
}

// UpsertProduct inserts or replaces a menu entry. Admin only; the check lives
// here so UI gating alone can never authorize an edit.
func (e *Engine) UpsertProduct(role models.Role, p models.Product) (models.Product, error) {
	if !role.CanManage() {
		return models.Product{}, fmt.Errorf("%w: %s cannot manage the menu", ErrUnauthorized, role)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	if err := e.catalog.Upsert(p); err != nil {
		return models.Product{}, err
	}
	e.persistProducts()
	return p, nil
}

// SetProductActive toggles a product on or off the menu. Admin only.
func (e *Engine) SetProductActive(role models.Role, id string, active bool) error {
	if !role.CanManage() {
		return fmt.Errorf("%w: %s cannot manage the menu", ErrUnauthorized, role)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.catalog.SetActive(id, active); err != nil {
		return err
	}
	e.persistProducts()
	return nil
}

/* =========================
   CART
========================= */

// AddLine prices a selection off the active menu and puts it in the cart.
func (e *Engine) AddLine(productID string, size models.Size, toppingIDs []string, note string, qty int) (models.CartLine, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.catalog.Get(productID)
	if !ok {
		return models.CartLine{}, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}
	if !p.Active {
		return models.CartLine{}, fmt.Errorf("%w: product %s is not on the menu", ErrNotFound, productID)
	}
	return e.cart.AddLine(p, size, toppingIDs, note, qty)
}

func (e *Engine) ChangeQty(lineID string, delta int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.ChangeQty(lineID, delta)
}

func (e *Engine) RemoveLine(lineID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart.RemoveLine(lineID)
}

func (e *Engine) CartLines() []models.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Lines()
}

func (e *Engine) CartTotal() models.Money {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Total()
}

/* =========================
   CHECKOUT & LEDGER
========================= */

// Checkout freezes the cart into a paid order and clears it, as one step
// under the engine lock: an order without a cleared cart (or the reverse) is
// never observable. The receipt hook fires after the commit, off the lock.
func (e *Engine) Checkout(payment models.PaymentMethod) (models.Order, error) {
	if !payment.Valid() {
		return models.Order{}, fmt.Errorf("%w: payment method %q", ErrValidation, payment)
	}

	e.mu.Lock()
	if e.cart.Len() == 0 {
		e.mu.Unlock()
		return models.Order{}, ErrEmptyCart
	}

	order := e.ledger.Append(e.cart.Lines(), e.cart.Total(), payment, e.now())
	e.cart.Clear()
	e.persistOrders()
	hook := e.committed
	e.mu.Unlock()

	if hook != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[CHECKOUT] [WARN] order hook panicked: %v", r)
				}
			}()
			hook(order)
		}()
	}

	log.Printf("[CHECKOUT] [INFO] order %d committed, total %s (%s)", order.ID, order.Total, order.Payment)
	return order, nil
}

// CancelOrder soft-deletes a committed order. Admin only.
func (e *Engine) CancelOrder(role models.Role, orderID int64) error {
	if !role.CanManage() {
		return fmt.Errorf("%w: %s cannot cancel orders", ErrUnauthorized, role)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ledger.Cancel(orderID); err != nil {
		return err
	}
	e.persistOrders()
	log.Printf("[LEDGER] [INFO] order %d canceled", orderID)
	return nil
}

func (e *Engine) History() []models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.History()
}

// RevenueReport summarizes the ledger for the report view.
type RevenueReport struct {
	Orders   int          `json:"orders"`
	Gross    models.Money `json:"gross"`
	Canceled models.Money `json:"canceled"`
	Net      models.Money `json:"net"`
}

// Revenue sums the ledger. Net excludes canceled orders; they remain in the
// gross figure for the audit trail.
func (e *Engine) Revenue() RevenueReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	gross := e.ledger.GrossTotal()
	net := e.ledger.RevenueTotal()
	return RevenueReport{
		Orders:   e.ledger.Len(),
		Gross:    gross,
		Canceled: gross - net,
		Net:      net,
	}
}

/* =========================
   PERSISTENCE
========================= */

func (e *Engine) persistProducts() {
	e.enqueue(storage.KeyProducts, e.catalog.List())
}

func (e *Engine) persistOrders() {
	e.enqueue(storage.KeyOrders, e.ledger.History())
}

func (e *Engine) enqueue(key string, state any) {
	if e.flusher == nil {
		return
	}
	blob, err := json.Marshal(state)
	if err != nil {
		log.Printf("[ENGINE] [ERROR] marshal %s: %v", key, err)
		return
	}
	e.flusher.Enqueue(key, blob)
}
