package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodtruckos/backend/middlewares"
	"github.com/foodtruckos/backend/services"
	"github.com/foodtruckos/backend/utils"
)

type MetricsController struct {
	volume *services.VolumeService
}

func NewMetricsController(volume *services.VolumeService) *MetricsController {
	return &MetricsController{volume: volume}
}

// GetVolume returns the tenant's current load classification and estimated
// wait.
func (mc *MetricsController) GetVolume(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	metrics, err := mc.volume.CalculateVolumeMetrics(tenantID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Volume metrics", metrics)
}
