package controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-ordering/models"
)

func TestPlaceListCancelOrder(t *testing.T) {
	r := setupRouter(t)

	w, env := doJSON(t, r, "POST", "/api/orders/place-order", map[string]interface{}{
		"foodName":    "Idli",
		"basePrice":   40,
		"totalPrice":  55,
		"tableNumber": 2,
		"addOns":      []map[string]interface{}{{"name": "Sambar", "price": 15, "quantity": 1}},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Status)
	var order models.OrderRecord
	decode(t, env.Data, &order)
	assert.Equal(t, "Idli", order.FoodName)

	w, env = doJSON(t, r, "GET", "/api/orders?tableNumber=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.OrderRecord
	decode(t, env.Data, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	path := fmt.Sprintf("/api/orders/cancel-order/%d", order.ID)
	w, env = doJSON(t, r, "DELETE", path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"deleted":true`)

	// Cancelling again still succeeds.
	w, env = doJSON(t, r, "DELETE", path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"deleted":false`)

	_, env = doJSON(t, r, "GET", "/api/orders?tableNumber=2", nil, "")
	assert.Equal(t, "[]", string(env.Data))
}

func TestPlaceOrderValidationErrors(t *testing.T) {
	r := setupRouter(t)

	w, env := doJSON(t, r, "POST", "/api/orders/place-order", map[string]interface{}{
		"foodName":   "Idli",
		"basePrice":  40,
		"totalPrice": 40,
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Status)
	assert.Equal(t, "validation_error", env.Error)
	assert.Equal(t, "tableNumber is required", env.Message)

	w, _ = doJSON(t, r, "POST", "/api/orders/place-order", "not an object", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, "GET", "/api/orders?tableNumber=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, "DELETE", "/api/orders/cancel-order/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkTablePaidEndpoint(t *testing.T) {
	r := setupRouter(t)

	for _, o := range []struct {
		food  string
		price float64
	}{{"Pizza", 200}, {"Coke", 50}} {
		w, _ := doJSON(t, r, "POST", "/api/orders/place-order", map[string]interface{}{
			"foodName": o.food, "basePrice": o.price, "totalPrice": o.price, "tableNumber": 5,
		}, "")
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := doJSON(t, r, "POST", "/api/orders/mark-paid/5", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var completion models.CompletionRecord
	decode(t, env.Data, &completion)
	assert.Equal(t, 250.0, completion.TotalAmount)
	require.Len(t, completion.Items, 2)
	assert.Equal(t, "Pizza", completion.Items[0].FoodName)
	assert.Equal(t, 200.0, completion.Items[0].TotalPrice)
	assert.Equal(t, "Coke", completion.Items[1].FoodName)
	assert.True(t, strings.HasPrefix(completion.OrderID, "ORD-"))

	_, env = doJSON(t, r, "GET", "/api/orders?tableNumber=5", nil, "")
	assert.Equal(t, "[]", string(env.Data))

	w, env = doJSON(t, r, "POST", "/api/orders/mark-paid/5", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", env.Error)

	w, _ = doJSON(t, r, "POST", "/api/orders/mark-paid/0", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, r, "GET", "/orderdone/order/"+completion.OrderID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"supplierId":"unassigned"`)
}
