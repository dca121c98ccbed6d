package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodtruckos/backend/services"
	"github.com/foodtruckos/backend/utils"
)

// respondServiceError maps service failures onto HTTP codes. Client input
// errors are 400s, missing aggregates 404s, everything else a generic 500 so
// no partial-state details leak.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrModifierNotFound):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrOrderNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.ErrorLogger.Printf("internal error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
