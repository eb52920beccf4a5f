package models

import "time"

// CartItem is one line in a cart. A cart holds at most one line per product ID.
type CartItem struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// Cart is a snapshot of a shopper's cart. TotalItems and TotalPrice are
// derived from Items on every transition, never patched in place.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice float64    `json:"total_price"`
}
