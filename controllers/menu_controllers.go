package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodtruckos/backend/middlewares"
	"github.com/foodtruckos/backend/services"
	"github.com/foodtruckos/backend/utils"
)

type MenuController struct {
	catalog *services.CatalogService
}

func NewMenuController(catalog *services.CatalogService) *MenuController {
	return &MenuController{catalog: catalog}
}

// GetMenu returns the tenant's customer-facing menu tree.
func (mc *MenuController) GetMenu(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	categories, err := mc.catalog.GetMenu(tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu", categories)
}
