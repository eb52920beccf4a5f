package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"kesar-storefront/catalog"

	"github.com/gorilla/mux"
)

// ProductController serves the read-only catalog endpoints
type ProductController struct {
	Catalog *catalog.Catalog
}

// NewProductController creates a new ProductController
func NewProductController(c *catalog.Catalog) *ProductController {
	return &ProductController{
		Catalog: c,
	}
}

// GetProducts lists products, narrowed by the category, q, featured,
// in_stock and sort query parameters
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := catalog.Filter{
		Category: query.Get("category"),
		Query:    query.Get("q"),
		Sort:     query.Get("sort"),
	}

	if v := query.Get("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "Invalid featured flag", http.StatusBadRequest)
			return
		}
		filter.Featured = &featured
	}
	if v := query.Get("in_stock"); v != "" {
		inStock, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "Invalid in_stock flag", http.StatusBadRequest)
			return
		}
		filter.InStock = &inStock
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pc.Catalog.List(filter))
}

// GetProductByID retrieves a single product
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	product, err := pc.Catalog.ByID(params["id"])
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

// GetCategories lists the catalog's categories
func (pc *ProductController) GetCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pc.Catalog.Categories())
}
