package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

type RefundController struct {
	Refunds *services.RefundService
}

func NewRefundController(refunds *services.RefundService) *RefundController {
	return &RefundController{Refunds: refunds}
}

// ProcessRefund -> POST /api/refund
func (rc *RefundController) ProcessRefund(c *gin.Context) {
	var in services.ProcessRefundInput
	if !bindJSON(c, &in) {
		return
	}

	record, err := rc.Refunds.ProcessRefund(c.Request.Context(), in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Refund processed", record)
}

// ListRefunds -> GET /api/refunds
func (rc *RefundController) ListRefunds(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	records, pagination, err := rc.Refunds.ListRefunds(c.Request.Context(), page, limit)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondPage(c, http.StatusOK, "List of refunds", records, pagination)
}
