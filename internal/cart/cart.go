package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/example/heywrld/internal/models"
)

// Engine owns one cart. Every mutation recomputes the total from scratch
// (never incrementally, so stale cached figures cannot drift) and writes
// the cart through to the Store. The embedded product snapshots are taken
// at add time; order items later inherit those cart-time prices.
type Engine struct {
	mu    sync.Mutex
	store Store
	key   string
	cart  models.Cart
}

// NewEngine rehydrates the cart stored under key. Missing or unparseable
// data fails closed to an empty cart, never to the caller.
func NewEngine(ctx context.Context, store Store, key string) *Engine {
	e := &Engine{store: store, key: key}

	data, err := store.Load(ctx, key)
	if err != nil {
		log.Printf("cart %s: load failed, starting empty: %v", key, err)
	} else if len(data) > 0 {
		if err := json.Unmarshal(data, &e.cart); err != nil {
			log.Printf("cart %s: stored cart unparseable, starting empty: %v", key, err)
			e.cart = models.Cart{}
		}
	}

	// Stored totals are untrusted; recompute from the items.
	e.cart.Total = computeTotal(e.cart.Items)
	return e
}

// AddItem merges the product into the cart: an already-present product id
// gets its quantity incremented, otherwise a new line is appended.
// Quantities below 1 count as 1.
func (e *Engine) AddItem(ctx context.Context, product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	merged := false
	for i := range e.cart.Items {
		if e.cart.Items[i].ProductID == product.ID {
			e.cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		e.cart.Items = append(e.cart.Items, models.CartItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Product:   product,
		})
	}

	e.cart.Total = computeTotal(e.cart.Items)
	e.persist(ctx)
}

// UpdateQuantity sets the line's quantity exactly. A quantity of zero or
// below is a no-op; callers remove lines explicitly via RemoveItem.
func (e *Engine) UpdateQuantity(ctx context.Context, productID, quantity int) {
	if quantity <= 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.cart.Items {
		if e.cart.Items[i].ProductID == productID {
			e.cart.Items[i].Quantity = quantity
			e.cart.Total = computeTotal(e.cart.Items)
			e.persist(ctx)
			return
		}
	}
}

// RemoveItem drops the matching line. An absent product id is a no-op.
func (e *Engine) RemoveItem(ctx context.Context, productID int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.cart.Items {
		if e.cart.Items[i].ProductID == productID {
			e.cart.Items = append(e.cart.Items[:i], e.cart.Items[i+1:]...)
			e.cart.Total = computeTotal(e.cart.Items)
			e.persist(ctx)
			return
		}
	}
}

// Clear resets to an empty cart.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cart = models.Cart{}
	if err := e.store.Delete(ctx, e.key); err != nil {
		log.Printf("cart %s: clear failed: %v", e.key, err)
	}
}

// Snapshot returns a deep copy of the cart.
func (e *Engine) Snapshot() models.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()

	cart := models.Cart{Total: e.cart.Total}
	cart.Items = append([]models.CartItem(nil), e.cart.Items...)
	return cart
}

// Subtotal returns the current derived total.
func (e *Engine) Subtotal() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.Total
}

// IsEmpty reports whether the cart has no lines.
func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cart.Items) == 0
}

// persist writes the cart through to the store. Persistence failures are
// logged, not surfaced; the in-memory cart remains authoritative for the
// session. Callers must hold the lock.
func (e *Engine) persist(ctx context.Context) {
	data, err := json.Marshal(e.cart)
	if err != nil {
		log.Printf("cart %s: marshal failed: %v", e.key, err)
		return
	}
	if err := e.store.Save(ctx, e.key, data); err != nil {
		log.Printf("cart %s: save failed: %v", e.key, err)
	}
}

func computeTotal(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Product.UnitPrice() * float64(item.Quantity)
	}
	return total
}

// Manager hands out one Engine per session key. Two sessions sharing a key
// from different processes still last-write-win through the Store; that
// mirrors the original multi-tab behavior and is a documented limitation.
type Manager struct {
	mu      sync.Mutex
	store   Store
	engines map[string]*Engine
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, engines: make(map[string]*Engine)}
}

// Cart returns the engine for the session, rehydrating it on first use.
func (m *Manager) Cart(ctx context.Context, sessionID string) *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()

	if engine, ok := m.engines[sessionID]; ok {
		return engine
	}
	engine := NewEngine(ctx, m.store, sessionID)
	m.engines[sessionID] = engine
	return engine
}
