package cart

import (
	"encoding/json"
	"fmt"

	"kesar-storefront/models"
	"kesar-storefront/storage"
)

// SchemaVersion tags the cart payload shape currently written to storage.
// Version 0 stored the bare item array; version 1 stores the full cart with
// derived totals.
const SchemaVersion = 1

// RegisterMigrations installs the cart schema upgrades on p.
func RegisterMigrations(p *storage.Persistence) {
	p.RegisterMigration(0, migrateLegacyCart)
}

// migrateLegacyCart upgrades a version-0 payload into the cart shape with
// recomputed totals. Payloads already in the cart shape pass through with
// totals recomputed, so re-running the transform is safe.
func migrateLegacyCart(data json.RawMessage) (json.RawMessage, error) {
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err == nil {
		return json.Marshal(recompute(items))
	}
	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("unrecognized legacy cart payload: %w", err)
	}
	return json.Marshal(recompute(cart.Items))
}
