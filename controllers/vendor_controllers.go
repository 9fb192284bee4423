package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

// VendorController is the vendor-facing view of the supplier directory:
// inactive suppliers are hidden and deletes only deactivate.
type VendorController struct {
	Suppliers *services.SupplierService
}

func NewVendorController(suppliers *services.SupplierService) *VendorController {
	return &VendorController{Suppliers: suppliers}
}

// ListVendors -> GET /api/vendors/suppliers
func (vc *VendorController) ListVendors(c *gin.Context) {
	suppliers, err := vc.Suppliers.List(c.Request.Context(), services.SupplierFilter{ActiveOnly: true})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of vendors", suppliers)
}

// ListByAttendance -> GET /api/vendors/suppliers/attendance/:attendance
func (vc *VendorController) ListByAttendance(c *gin.Context) {
	suppliers, err := vc.Suppliers.List(c.Request.Context(), services.SupplierFilter{
		ActiveOnly: true,
		Attendance: c.Param("attendance"),
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of vendors", suppliers)
}

// CreateVendor -> POST /api/vendors/suppliers
func (vc *VendorController) CreateVendor(c *gin.Context) {
	var in services.CreateSupplierInput
	if !bindJSON(c, &in) {
		return
	}

	supplier, err := vc.Suppliers.Create(c.Request.Context(), in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Vendor created", supplier)
}

// UpdateVendor -> PUT /api/vendors/suppliers/:id
func (vc *VendorController) UpdateVendor(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.UpdateSupplierInput
	if !bindJSON(c, &in) {
		return
	}

	supplier, err := vc.Suppliers.Update(c.Request.Context(), id, in, true)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Vendor updated", supplier)
}

// UpdateAttendance -> PUT /api/vendors/suppliers/:id/attendance
func (vc *VendorController) UpdateAttendance(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.UpdateAttendanceInput
	if !bindJSON(c, &in) {
		return
	}

	supplier, err := vc.Suppliers.UpdateAttendance(c.Request.Context(), id, in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Attendance updated", supplier)
}

// DeleteVendor -> DELETE /api/vendors/suppliers/:id (soft delete)
func (vc *VendorController) DeleteVendor(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := vc.Suppliers.Deactivate(c.Request.Context(), id); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Vendor deactivated", nil)
}

// Login -> POST /api/vendors/suppliers/login
func (vc *VendorController) Login(c *gin.Context) {
	var body struct {
		SupplierID string `json:"supplierId"`
		Password   string `json:"password"`
	}
	if !bindJSON(c, &body) {
		return
	}

	result, err := vc.Suppliers.VerifyLogin(c.Request.Context(), body.SupplierID, body.Password)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Login successful", result)
}
