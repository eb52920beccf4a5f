package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"kesar-storefront/catalog"
	"kesar-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeProducts(t *testing.T, body *json.Decoder) []models.Product {
	t.Helper()
	var products []models.Product
	require.NoError(t, body.Decode(&products))
	return products
}

func TestGetProducts(t *testing.T) {
	app := newTestApp(t, alwaysInStock())

	w := app.do(t, "GET", "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decodeProducts(t, json.NewDecoder(w.Body))
	assert.Equal(t, app.catalog.Len(), len(all))
}

func TestGetProductsFiltered(t *testing.T) {
	app := newTestApp(t, alwaysInStock())

	w := app.do(t, "GET", "/products?category=saffron&in_stock=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, p := range decodeProducts(t, json.NewDecoder(w.Body)) {
		assert.Equal(t, models.CategorySaffron, p.Category)
		assert.True(t, p.InStock)
	}

	w = app.do(t, "GET", "/products?featured=true&sort=price-asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	featured := decodeProducts(t, json.NewDecoder(w.Body))
	require.NotEmpty(t, featured)
	for i := 1; i < len(featured); i++ {
		assert.LessOrEqual(t, featured[i-1].Price, featured[i].Price)
	}

	w = app.do(t, "GET", "/products?featured=banana", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductByID(t *testing.T) {
	app := newTestApp(t, alwaysInStock())
	want := app.catalog.List(catalog.Filter{})[0]

	w := app.do(t, "GET", "/products/"+want.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)

	w = app.do(t, "GET", "/products/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCategories(t *testing.T) {
	app := newTestApp(t, alwaysInStock())

	w := app.do(t, "GET", "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var categories []string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&categories))
	assert.ElementsMatch(t,
		[]string{models.CategoryShilajit, models.CategorySaffron, models.CategoryDryFruits},
		categories)
}
