package cart_test

import (
	"testing"

	"kesar-storefront/cart"
	"kesar-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price float64) models.Product {
	return models.Product{ID: id, Name: "Product " + id, Price: price, InStock: true}
}

func totalsConsistent(t *testing.T, c models.Cart) {
	t.Helper()
	items := 0
	price := 0.0
	for _, item := range c.Items {
		items += item.Quantity
		price += float64(item.Quantity) * item.Product.Price
	}
	assert.Equal(t, items, c.TotalItems)
	assert.InDelta(t, price, c.TotalPrice, 1e-9)
}

func TestReduceScenario(t *testing.T) {
	c := models.Cart{}

	c = cart.Reduce(c, cart.AddItem{Product: product("p1", 100), Quantity: 2})
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.TotalItems)
	assert.InDelta(t, 200.0, c.TotalPrice, 1e-9)
	totalsConsistent(t, c)

	c = cart.Reduce(c, cart.AddItem{Product: product("p2", 50), Quantity: 1})
	assert.Equal(t, 3, c.TotalItems)
	assert.InDelta(t, 250.0, c.TotalPrice, 1e-9)
	totalsConsistent(t, c)

	c = cart.Reduce(c, cart.UpdateQuantity{ProductID: "p1", Quantity: 0})
	require.Len(t, c.Items, 1)
	assert.Equal(t, "p2", c.Items[0].Product.ID)
	assert.Equal(t, 1, c.TotalItems)
	assert.InDelta(t, 50.0, c.TotalPrice, 1e-9)
	totalsConsistent(t, c)
}

func TestReduceMergesByProductID(t *testing.T) {
	c := models.Cart{}
	c = cart.Reduce(c, cart.AddItem{Product: product("a", 10), Quantity: 1})
	c = cart.Reduce(c, cart.AddItem{Product: product("b", 20), Quantity: 1})
	c = cart.Reduce(c, cart.AddItem{Product: product("a", 10), Quantity: 3})

	require.Len(t, c.Items, 2)
	// a keeps its first-insertion position, with merged quantity
	assert.Equal(t, "a", c.Items[0].Product.ID)
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, "b", c.Items[1].Product.ID)
	totalsConsistent(t, c)
}

func TestReduceInvariantHoldsAcrossSequences(t *testing.T) {
	actions := []cart.Action{
		cart.AddItem{Product: product("a", 12.5), Quantity: 2},
		cart.AddItem{Product: product("b", 3), Quantity: 5},
		cart.UpdateQuantity{ProductID: "a", Quantity: 7},
		cart.RemoveItem{ProductID: "b"},
		cart.AddItem{Product: product("c", 99.99), Quantity: 1},
		cart.UpdateQuantity{ProductID: "c", Quantity: -5},
		cart.AddItem{Product: product("a", 12.5), Quantity: 1},
	}
	c := models.Cart{}
	for _, a := range actions {
		c = cart.Reduce(c, a)
		totalsConsistent(t, c)
	}
	require.Len(t, c.Items, 1)
	assert.Equal(t, 8, c.Items[0].Quantity)
}

func TestReduceUpdateQuantity(t *testing.T) {
	base := cart.Reduce(models.Cart{}, cart.AddItem{Product: product("a", 10), Quantity: 2})

	removed := cart.Reduce(base, cart.UpdateQuantity{ProductID: "a", Quantity: 0})
	assert.Empty(t, removed.Items)

	removed = cart.Reduce(base, cart.UpdateQuantity{ProductID: "a", Quantity: -5})
	assert.Empty(t, removed.Items)

	set := cart.Reduce(base, cart.UpdateQuantity{ProductID: "a", Quantity: 9})
	require.Len(t, set.Items, 1)
	assert.Equal(t, 9, set.Items[0].Quantity)

	// absent id is a no-op
	noop := cart.Reduce(base, cart.UpdateQuantity{ProductID: "missing", Quantity: 3})
	assert.Equal(t, base.TotalItems, noop.TotalItems)
	assert.Len(t, noop.Items, 1)
}

func TestReduceRollbackAdd(t *testing.T) {
	// rollback after an optimistic add on an empty cart restores the pre-add state
	c := cart.Reduce(models.Cart{}, cart.OptimisticAdd{Product: product("p", 5), Quantity: 2})
	c = cart.Reduce(c, cart.RollbackAdd{ProductID: "p"})
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)

	// rollback removes the whole line even when it holds more than the
	// rolled-back amount
	c = cart.Reduce(models.Cart{}, cart.AddItem{Product: product("p", 5), Quantity: 3})
	c = cart.Reduce(c, cart.OptimisticAdd{Product: product("p", 5), Quantity: 1})
	require.Equal(t, 4, c.TotalItems)
	c = cart.Reduce(c, cart.RollbackAdd{ProductID: "p"})
	assert.Empty(t, c.Items)

	// rollback of an absent product is a no-op
	c = cart.Reduce(models.Cart{}, cart.AddItem{Product: product("q", 1), Quantity: 1})
	c = cart.Reduce(c, cart.RollbackAdd{ProductID: "p"})
	assert.Len(t, c.Items, 1)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	base := cart.Reduce(models.Cart{}, cart.AddItem{Product: product("a", 10), Quantity: 2})

	_ = cart.Reduce(base, cart.UpdateQuantity{ProductID: "a", Quantity: 99})
	_ = cart.Reduce(base, cart.RemoveItem{ProductID: "a"})

	require.Len(t, base.Items, 1)
	assert.Equal(t, 2, base.Items[0].Quantity)
	assert.Equal(t, 2, base.TotalItems)
}

func TestReduceClearAndLoad(t *testing.T) {
	c := cart.Reduce(models.Cart{}, cart.AddItem{Product: product("a", 10), Quantity: 2})
	c = cart.Reduce(c, cart.ClearCart{})
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems)
	assert.Zero(t, c.TotalPrice)

	// LoadCart replaces wholesale and recomputes totals even if the stored
	// snapshot carried stale ones
	stored := models.Cart{
		Items:      []models.CartItem{{Product: product("x", 25), Quantity: 2}},
		TotalItems: 999,
		TotalPrice: 1,
	}
	c = cart.Reduce(c, cart.LoadCart{Cart: stored})
	assert.Equal(t, 2, c.TotalItems)
	assert.InDelta(t, 50.0, c.TotalPrice, 1e-9)
}
