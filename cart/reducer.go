package cart

import (
	"time"

	"kesar-storefront/models"
)

// Action is a cart transition. Reduce handles every concrete type below.
type Action interface {
	isAction()
}

// AddItem merges quantity into an existing line for the product or appends a
// new line at the end.
type AddItem struct {
	Product  models.Product
	Quantity int
}

// OptimisticAdd applies exactly like AddItem but is issued before the stock
// confirmation resolves; a failed confirmation is undone with RollbackAdd.
type OptimisticAdd struct {
	Product  models.Product
	Quantity int
}

// RollbackAdd removes the whole line for a product. There is no
// partial-quantity rollback: if earlier adds merged into the line, they are
// removed with it.
type RollbackAdd struct {
	ProductID string
}

// RemoveItem removes the line for a product; no-op when absent.
type RemoveItem struct {
	ProductID string
}

// UpdateQuantity sets a line's quantity to an absolute value. Zero or less
// removes the line; a stored quantity is never non-positive.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// ClearCart resets to the empty cart.
type ClearCart struct{}

// LoadCart replaces the state wholesale; used only at hydration.
type LoadCart struct {
	Cart models.Cart
}

func (AddItem) isAction()        {}
func (OptimisticAdd) isAction()  {}
func (RollbackAdd) isAction()    {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (ClearCart) isAction()      {}
func (LoadCart) isAction()       {}

// Reduce applies action to cart and returns the next snapshot. It is pure:
// the input cart is never mutated and the totals are recomputed from the
// item list on every transition.
func Reduce(cart models.Cart, action Action) models.Cart {
	switch a := action.(type) {
	case AddItem:
		return recompute(addItem(cart.Items, a.Product, a.Quantity))
	case OptimisticAdd:
		return recompute(addItem(cart.Items, a.Product, a.Quantity))
	case RollbackAdd:
		return recompute(removeItem(cart.Items, a.ProductID))
	case RemoveItem:
		return recompute(removeItem(cart.Items, a.ProductID))
	case UpdateQuantity:
		if a.Quantity <= 0 {
			return recompute(removeItem(cart.Items, a.ProductID))
		}
		return recompute(setQuantity(cart.Items, a.ProductID, a.Quantity))
	case ClearCart:
		return models.Cart{}
	case LoadCart:
		return recompute(cloneItems(a.Cart.Items))
	}
	return cart
}

func addItem(items []models.CartItem, product models.Product, quantity int) []models.CartItem {
	if quantity < 1 {
		quantity = 1
	}
	next := cloneItems(items)
	for i := range next {
		if next[i].Product.ID == product.ID {
			next[i].Quantity += quantity
			return next
		}
	}
	return append(next, models.CartItem{Product: product, Quantity: quantity, AddedAt: time.Now()})
}

func removeItem(items []models.CartItem, productID string) []models.CartItem {
	var next []models.CartItem
	for _, item := range items {
		if item.Product.ID != productID {
			next = append(next, item)
		}
	}
	return next
}

func setQuantity(items []models.CartItem, productID string, quantity int) []models.CartItem {
	next := cloneItems(items)
	for i := range next {
		if next[i].Product.ID == productID {
			next[i].Quantity = quantity
		}
	}
	return next
}

func cloneItems(items []models.CartItem) []models.CartItem {
	if len(items) == 0 {
		return nil
	}
	next := make([]models.CartItem, len(items))
	copy(next, items)
	return next
}

func recompute(items []models.CartItem) models.Cart {
	cart := models.Cart{Items: items}
	for _, item := range items {
		cart.TotalItems += item.Quantity
		cart.TotalPrice += float64(item.Quantity) * item.Product.Price
	}
	return cart
}
