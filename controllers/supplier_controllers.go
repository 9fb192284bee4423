package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

// SupplierController covers dispatch to suppliers and the supplier
// directory. Deletes here are hard deletes; see VendorController for the
// soft-delete flavour.
type SupplierController struct {
	Dispatch  *services.DispatchService
	Suppliers *services.SupplierService
}

func NewSupplierController(dispatch *services.DispatchService, suppliers *services.SupplierService) *SupplierController {
	return &SupplierController{Dispatch: dispatch, Suppliers: suppliers}
}

// SendNotification -> POST /api/suppliers/send-notification
func (sc *SupplierController) SendNotification(c *gin.Context) {
	var in services.AssignSupplierInput
	if !bindJSON(c, &in) {
		return
	}

	confirmation, err := sc.Dispatch.AssignSupplier(c.Request.Context(), in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order sent to supplier", confirmation)
}

// OrdersForSupplier -> GET /api/suppliers/orders/:identifier
func (sc *SupplierController) OrdersForSupplier(c *gin.Context) {
	if !ownSupplierOnly(c, c.Param("identifier")) {
		return
	}
	orders, err := sc.Dispatch.ListOrdersForSupplier(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Supplier orders", orders)
}

// ListSuppliers -> GET /api/suppliers
func (sc *SupplierController) ListSuppliers(c *gin.Context) {
	suppliers, err := sc.Suppliers.List(c.Request.Context(), services.SupplierFilter{})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of suppliers", suppliers)
}

// CreateSupplier -> POST /api/suppliers
func (sc *SupplierController) CreateSupplier(c *gin.Context) {
	var in services.CreateSupplierInput
	if !bindJSON(c, &in) {
		return
	}

	supplier, err := sc.Suppliers.Create(c.Request.Context(), in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Supplier created", supplier)
}

// UpdateSupplier -> PUT /api/suppliers/:id
func (sc *SupplierController) UpdateSupplier(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.UpdateSupplierInput
	if !bindJSON(c, &in) {
		return
	}

	supplier, err := sc.Suppliers.Update(c.Request.Context(), id, in, false)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Supplier updated", supplier)
}

// DeleteSupplier -> DELETE /api/suppliers/:id
func (sc *SupplierController) DeleteSupplier(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := sc.Suppliers.Delete(c.Request.Context(), id); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Supplier deleted", nil)
}
