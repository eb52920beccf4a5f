package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"kesar-storefront/cart"
	"kesar-storefront/catalog"
	"kesar-storefront/middleware"

	"github.com/gorilla/mux"
)

// CartController exposes the session cart over HTTP. Handlers resolve the
// cart key from the session middleware.
type CartController struct {
	Orchestrator *cart.Orchestrator
	Catalog      *catalog.Catalog
}

// NewCartController creates a new CartController
func NewCartController(orchestrator *cart.Orchestrator, c *catalog.Catalog) *CartController {
	return &CartController{
		Orchestrator: orchestrator,
		Catalog:      c,
	}
}

type addToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart returns the current cart snapshot
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionID(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cc.Orchestrator.Cart(session))
}

// AddToCart adds a product to the session's cart. The response carries the
// optimistic snapshot; the stock confirmation resolves after the response,
// so a rejected add shows up as a rollback on the next read.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionID(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusUnauthorized)
		return
	}

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		http.Error(w, "product_id is required", http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		http.Error(w, "Invalid quantity", http.StatusBadRequest)
		return
	}

	product, err := cc.Catalog.ByID(req.ProductID)
	if errors.Is(err, catalog.ErrNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}

	snapshot := cc.Orchestrator.AddToCart(r.Context(), session, product, req.Quantity)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(snapshot)
}

// UpdateQuantity sets a line's quantity; zero or less removes the line
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionID(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusUnauthorized)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	params := mux.Vars(r)
	snapshot := cc.Orchestrator.UpdateQuantity(session, params["product_id"], req.Quantity)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

// RemoveFromCart removes a product's line from the cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionID(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusUnauthorized)
		return
	}

	params := mux.Vars(r)
	snapshot := cc.Orchestrator.RemoveFromCart(session, params["product_id"])

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

// ClearCart empties the session's cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionID(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusUnauthorized)
		return
	}

	snapshot := cc.Orchestrator.ClearCart(session)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}
