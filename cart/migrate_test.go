package cart_test

import (
	"encoding/json"
	"testing"

	"kesar-storefront/cart"
	"kesar-storefront/models"
	"kesar-storefront/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyCartArrayUpgrades(t *testing.T) {
	store := storage.NewMemoryStore()
	persist := newPersistence(store)

	// version 0 stored the bare item array with no totals
	legacy := `{"version":0,"data":[
		{"product":{"id":"p1","name":"Product p1","price":100},"quantity":2},
		{"product":{"id":"p2","name":"Product p2","price":50},"quantity":1}
	],"timestamp":1}`
	require.NoError(t, store.Set("test:cart:s1", legacy))

	loaded := storage.Load(persist, "cart:s1", models.Cart{})
	require.Len(t, loaded.Items, 2)
	assert.Equal(t, 3, loaded.TotalItems)
	assert.InDelta(t, 250.0, loaded.TotalPrice, 1e-9)

	// the upgraded cart was re-persisted at the current version
	raw, ok, err := store.Get("test:cart:s1")
	require.NoError(t, err)
	require.True(t, ok)
	var env storage.Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))
	assert.Equal(t, cart.SchemaVersion, env.Version)

	// a second load needs no further migration and agrees with the first
	again := storage.Load(persist, "cart:s1", models.Cart{})
	assert.Equal(t, loaded.TotalItems, again.TotalItems)
	assert.InDelta(t, loaded.TotalPrice, again.TotalPrice, 1e-9)
}

func TestLegacyUpgradeToleratesCurrentShape(t *testing.T) {
	store := storage.NewMemoryStore()
	persist := newPersistence(store)

	// a version-0 envelope that already carries the current cart shape,
	// e.g. the synthetic envelope substituted for a corrupt payload
	current := `{"version":0,"data":{"items":[
		{"product":{"id":"p1","price":10},"quantity":2}
	],"total_items":0,"total_price":0},"timestamp":1}`
	require.NoError(t, store.Set("test:cart:s1", current))

	loaded := storage.Load(persist, "cart:s1", models.Cart{})
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.TotalItems)
	assert.InDelta(t, 20.0, loaded.TotalPrice, 1e-9)
}

func TestCorruptCartPayloadYieldsDefault(t *testing.T) {
	store := storage.NewMemoryStore()
	persist := newPersistence(store)

	require.NoError(t, store.Set("test:cart:s1", "definitely not json"))

	loaded := storage.Load(persist, "cart:s1", models.Cart{})
	assert.Empty(t, loaded.Items)
	assert.Equal(t, 0, loaded.TotalItems)
}
