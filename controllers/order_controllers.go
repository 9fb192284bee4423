package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// PlaceOrder -> POST /api/orders/place-order
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	var in services.PlaceOrderInput
	if !bindJSON(c, &in) {
		return
	}

	order, err := oc.Orders.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// ListOrders -> GET /api/orders?tableNumber=
func (oc *OrderController) ListOrders(c *gin.Context) {
	var table *int
	if raw := c.Query("tableNumber"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.RespondAppError(c, utils.NewValidationError("tableNumber must be a positive integer"))
			return
		}
		table = &n
	}

	orders, err := oc.Orders.ListOrders(c.Request.Context(), table)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CancelOrder -> DELETE /api/orders/cancel-order/:id
func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	deleted, err := oc.Orders.CancelOrder(c.Request.Context(), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", gin.H{"id": id, "deleted": deleted})
}

// MarkTablePaid -> POST /api/orders/mark-paid/:tableNumber
func (oc *OrderController) MarkTablePaid(c *gin.Context) {
	table, ok := intParam(c, "tableNumber")
	if !ok {
		return
	}

	completion, err := oc.Orders.MarkTablePaid(c.Request.Context(), table)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table marked as paid", completion)
}
