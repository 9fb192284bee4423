package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

type CompletionController struct {
	Completions *services.CompletionService
}

func NewCompletionController(completions *services.CompletionService) *CompletionController {
	return &CompletionController{Completions: completions}
}

// CompleteOrder -> POST /orderdone/complete
func (cc *CompletionController) CompleteOrder(c *gin.Context) {
	var in services.CompleteOrderInput
	if !bindJSON(c, &in) || !ownSupplierOnly(c, in.SupplierID) {
		return
	}

	record, err := cc.Completions.CompleteOrder(c.Request.Context(), in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order completed", record)
}

// ListBySupplier -> GET /orderdone/supplier/:supplierId
func (cc *CompletionController) ListBySupplier(c *gin.Context) {
	if !ownSupplierOnly(c, c.Param("supplierId")) {
		return
	}
	records, page, err := cc.Completions.ListBySupplier(c.Request.Context(), c.Param("supplierId"), pageQuery(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondPage(c, http.StatusOK, "Completed orders", records, page)
}

// ListAll -> GET /orderdone/all
func (cc *CompletionController) ListAll(c *gin.Context) {
	records, page, err := cc.Completions.ListAll(c.Request.Context(), pageQuery(c))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondPage(c, http.StatusOK, "Completed orders", records, page)
}

// Stats -> GET /orderdone/stats and /orderdone/stats/:supplierId
func (cc *CompletionController) Stats(c *gin.Context) {
	start, err := dateQuery(c, "startDate", false)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	end, err := dateQuery(c, "endDate", true)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	stats, err := cc.Completions.Stats(c.Request.Context(), services.StatsQuery{
		SupplierID: c.Param("supplierId"),
		Start:      start,
		End:        end,
	})
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Completion stats", stats)
}

// GetCompletion -> GET /orderdone/order/:orderId
func (cc *CompletionController) GetCompletion(c *gin.Context) {
	record, err := cc.Completions.GetCompletion(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Completed order", record)
}
