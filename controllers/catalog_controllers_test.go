package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-ordering/models"
)

func TestCatalogEndpoints(t *testing.T) {
	r := setupRouter(t)

	w, env := doJSON(t, r, "GET", "/api/catalog", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"slug":"soft-drinks"`)

	w, env = doJSON(t, r, "POST", "/api/catalog/ice-cream", map[string]interface{}{"name": "Kulfi", "price": 80}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var item models.CatalogItem
	decode(t, env.Data, &item)
	assert.Equal(t, "ice-cream", item.Category)

	w, env = doJSON(t, r, "PUT", fmt.Sprintf("/api/catalog/ice-cream/%d", item.ID), map[string]interface{}{"isAvailable": false}, "")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, env.Data, &item)
	assert.False(t, item.IsAvailable)
	assert.Equal(t, 80.0, item.Price)

	w, env = doJSON(t, r, "GET", "/api/catalog/ice-cream", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var items []models.CatalogItem
	decode(t, env.Data, &items)
	assert.Len(t, items, 1)

	w, _ = doJSON(t, r, "DELETE", fmt.Sprintf("/api/catalog/ice-cream/%d", item.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, r, "GET", "/api/catalog/sushi", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, "POST", "/api/catalog/pizza", map[string]interface{}{"name": "No price"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
