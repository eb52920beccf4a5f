package cart

import (
	"context"
	"sync"

	"kesar-storefront/models"
	"kesar-storefront/notify"
	"kesar-storefront/stock"
	"kesar-storefront/storage"
)

// Orchestrator owns one cart per session key. It hydrates a cart from
// persistence on first touch, runs every mutation through Reduce, persists
// the new snapshot after each change, and drives the optimistic
// add-confirm-rollback flow against the stock checker.
type Orchestrator struct {
	mu       sync.Mutex
	carts    map[string]models.Cart
	persist  *storage.Persistence
	checker  stock.Checker
	notifier notify.Notifier
	inflight sync.WaitGroup
}

func NewOrchestrator(persist *storage.Persistence, checker stock.Checker, notifier notify.Notifier) *Orchestrator {
	return &Orchestrator{
		carts:    map[string]models.Cart{},
		persist:  persist,
		checker:  checker,
		notifier: notifier,
	}
}

func cartKey(session string) string {
	return "cart:" + session
}

// current returns the cart for a session, hydrating it from persistence the
// first time the session is seen. Callers must hold mu.
func (o *Orchestrator) current(session string) models.Cart {
	if c, ok := o.carts[session]; ok {
		return c
	}
	c := models.Cart{}
	if stored := storage.Load(o.persist, cartKey(session), models.Cart{}); len(stored.Items) > 0 {
		c = Reduce(c, LoadCart{Cart: stored})
	}
	o.carts[session] = c
	return c
}

// dispatch applies an action and persists the new snapshot. Callers must
// hold mu.
func (o *Orchestrator) dispatch(session string, action Action) models.Cart {
	next := Reduce(o.current(session), action)
	o.carts[session] = next
	o.persist.Save(cartKey(session), next)
	return next
}

// AddToCart applies the addition optimistically and returns a snapshot that
// already reflects it; the stock confirmation runs as an independent task.
// A failed confirmation rolls back the whole line for the product and pushes
// a destructive notification. Rollback is keyed by product ID, not by the
// added quantity, so overlapping adds of the same product are removed
// together when any of their confirmations fails.
func (o *Orchestrator) AddToCart(ctx context.Context, session string, product models.Product, quantity int) models.Cart {
	if quantity < 1 {
		quantity = 1
	}
	o.mu.Lock()
	snapshot := o.dispatch(session, OptimisticAdd{Product: product, Quantity: quantity})
	o.mu.Unlock()

	// The confirmation outlives the request that triggered it.
	confirmCtx := context.WithoutCancel(ctx)
	o.inflight.Add(1)
	go func() {
		defer o.inflight.Done()
		if err := o.checker.Confirm(confirmCtx, product.ID); err != nil {
			o.mu.Lock()
			o.dispatch(session, RollbackAdd{ProductID: product.ID})
			o.mu.Unlock()
			o.notifier.Push(notify.Notification{
				Title:       "Could not add item",
				Description: product.Name + " is currently unavailable.",
				Variant:     notify.VariantDestructive,
			})
			return
		}
		o.notifier.Push(notify.Notification{
			Title:       "Added to cart",
			Description: product.Name + " has been added to your cart.",
		})
	}()
	return snapshot
}

// RemoveFromCart removes the line for a product.
func (o *Orchestrator) RemoveFromCart(session, productID string) models.Cart {
	o.mu.Lock()
	snapshot := o.dispatch(session, RemoveItem{ProductID: productID})
	o.mu.Unlock()
	o.notifier.Push(notify.Notification{
		Title:       "Removed from cart",
		Description: "The item has been removed from your cart.",
	})
	return snapshot
}

// UpdateQuantity sets a line's quantity to an absolute value; zero or less
// removes the line.
func (o *Orchestrator) UpdateQuantity(session, productID string, quantity int) models.Cart {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dispatch(session, UpdateQuantity{ProductID: productID, Quantity: quantity})
}

// ClearCart empties the session's cart.
func (o *Orchestrator) ClearCart(session string) models.Cart {
	o.mu.Lock()
	snapshot := o.dispatch(session, ClearCart{})
	o.mu.Unlock()
	o.notifier.Push(notify.Notification{
		Title:       "Cart cleared",
		Description: "All items have been removed from your cart.",
	})
	return snapshot
}

// Cart returns the current snapshot for a session.
func (o *Orchestrator) Cart(session string) models.Cart {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current(session)
}

// IsInCart reports whether the session's cart holds a line for the product.
func (o *Orchestrator) IsInCart(session, productID string) bool {
	return o.ItemQuantity(session, productID) > 0
}

// ItemQuantity returns the quantity of the product's line, or zero.
func (o *Orchestrator) ItemQuantity(session, productID string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, item := range o.current(session).Items {
		if item.Product.ID == productID {
			return item.Quantity
		}
	}
	return 0
}

// Flush blocks until every in-flight confirmation has resolved. Used by
// tests and at graceful shutdown.
func (o *Orchestrator) Flush() {
	o.inflight.Wait()
}
