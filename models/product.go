package models

// Product categories sold by the storefront.
const (
	CategoryShilajit  = "shilajit"
	CategorySaffron   = "saffron"
	CategoryDryFruits = "dry-fruits"
)

// Product represents a catalog item available for purchase
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Image         string   `json:"image"`
	Featured      bool     `json:"featured"`
	InStock       bool     `json:"in_stock"`
	Weight        string   `json:"weight"`
	Benefits      []string `json:"benefits"`
	Tags          []string `json:"tags"`
}
