package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"kesar-storefront/models"
)

//go:embed products.json
var productData []byte

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Sort orders accepted by List.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortName      = "name"
)

// Filter narrows and orders a catalog listing. Zero values leave the
// corresponding dimension unconstrained.
type Filter struct {
	Category string
	Query    string
	Featured *bool
	InStock  *bool
	Sort     string
}

// Catalog is the static product collection the storefront sells from. It is
// loaded once at startup and never mutated.
type Catalog struct {
	products []models.Product
	byID     map[string]models.Product
}

// Load parses the embedded product data.
func Load() (*Catalog, error) {
	return Parse(productData)
}

// Parse builds a catalog from raw JSON product data.
func Parse(data []byte) (*Catalog, error) {
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("parse catalog: duplicate product id %q", p.ID)
		}
		byID[p.ID] = p
	}
	return &Catalog{products: products, byID: byID}, nil
}

// List returns the products matching f, in catalog order unless f.Sort says
// otherwise.
func (c *Catalog) List(f Filter) []models.Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Featured != nil && p.Featured != *f.Featured {
			continue
		}
		if f.InStock != nil && p.InStock != *f.InStock {
			continue
		}
		if query != "" && !matches(p, query) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	}
	return out
}

func matches(p models.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// ByID looks up a product by its identifier.
func (c *Catalog) ByID(id string) (models.Product, error) {
	p, ok := c.byID[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
