package controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/middlewares"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

// bindJSON decodes the request body into dst and writes a validation error
// when it cannot.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondAppError(c, utils.NewValidationError("invalid request body: %v", err))
		return false
	}
	return true
}

// ownSupplierOnly rejects supplier tokens acting for another supplierId.
// Staff and unauthenticated routes pass through.
func ownSupplierOnly(c *gin.Context, supplierID string) bool {
	if c.GetString(middlewares.CtxRole) != utils.RoleSupplier {
		return true
	}
	if services.NormalizeSupplierIdentifier(supplierID) != c.GetString(middlewares.CtxHandle) {
		utils.RespondAppError(c, utils.NewForbiddenError("suppliers may only act for their own supplierId"))
		return false
	}
	return true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondAppError(c, utils.NewValidationError("%s must be a positive integer", name))
		return 0, false
	}
	return uint(id), true
}

func intParam(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		utils.RespondAppError(c, utils.NewValidationError("%s must be a positive integer", name))
		return 0, false
	}
	return n, true
}

// pageQuery reads page, limit, sortBy and sortOrder. Malformed numbers fall
// back to the defaults.
func pageQuery(c *gin.Context) services.PageQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return services.PageQuery{
		Page:      page,
		Limit:     limit,
		SortBy:    c.Query("sortBy"),
		SortOrder: strings.ToLower(c.Query("sortOrder")),
	}
}

const dateLayout = "2006-01-02"

// dateQuery parses an RFC 3339 timestamp or a plain date. With endOfDay, a
// plain date covers the whole day.
func dateQuery(c *gin.Context, name string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.In(time.Local)
		return &t, nil
	}
	// Plain dates are days on the server clock, which writes completedAt.
	t, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		return nil, utils.NewValidationError("%s must be a date (YYYY-MM-DD) or an RFC 3339 timestamp", name)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return &t, nil
}
