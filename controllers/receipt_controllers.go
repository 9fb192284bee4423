package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

type ReceiptController struct {
	Receipts *services.ReceiptService
}

func NewReceiptController(receipts *services.ReceiptService) *ReceiptController {
	return &ReceiptController{Receipts: receipts}
}

// CompletionReceipt -> GET /orderdone/order/:orderId/receipt
func (rc *ReceiptController) CompletionReceipt(c *gin.Context) {
	orderID := c.Param("orderId")
	pdf, err := rc.Receipts.CompletionReceipt(c.Request.Context(), orderID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=receipt-%s.pdf", orderID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// TableQR -> GET /api/tables/:tableNumber/qr?size=
func (rc *ReceiptController) TableQR(c *gin.Context) {
	table, ok := intParam(c, "tableNumber")
	if !ok {
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))

	png, err := rc.Receipts.TableQR(table, size)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=table-%d.png", table))
	c.Data(http.StatusOK, "image/png", png)
}
