package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-ordering/services"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

// CatalogController serves every catalog category through the same handlers.
type CatalogController struct {
	Catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// ListCategories -> GET /api/catalog
func (cc *CatalogController) ListCategories(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of categories", cc.Catalog.Categories())
}

// ListItems -> GET /api/catalog/:category
func (cc *CatalogController) ListItems(c *gin.Context) {
	items, err := cc.Catalog.ListItems(c.Request.Context(), c.Param("category"))
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of items", items)
}

// AddItem -> POST /api/catalog/:category
func (cc *CatalogController) AddItem(c *gin.Context) {
	var in services.CatalogItemInput
	if !bindJSON(c, &in) {
		return
	}

	item, err := cc.Catalog.AddItem(c.Request.Context(), c.Param("category"), in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item created", item)
}

// GetItem -> GET /api/catalog/:category/:id
func (cc *CatalogController) GetItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	item, err := cc.Catalog.GetItem(c.Request.Context(), c.Param("category"), id)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item detail", item)
}

// UpdateItem -> PUT /api/catalog/:category/:id
func (cc *CatalogController) UpdateItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var in services.CatalogItemUpdate
	if !bindJSON(c, &in) {
		return
	}

	item, err := cc.Catalog.UpdateItem(c.Request.Context(), c.Param("category"), id, in)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item updated", item)
}

// DeleteItem -> DELETE /api/catalog/:category/:id
func (cc *CatalogController) DeleteItem(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := cc.Catalog.DeleteItem(c.Request.Context(), c.Param("category"), id); err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item deleted", nil)
}
