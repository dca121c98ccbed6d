package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodtruckos/backend/middlewares"
	"github.com/foodtruckos/backend/services"
	"github.com/foodtruckos/backend/utils"
)

type CheckoutController struct {
	payments *services.PaymentService
}

func NewCheckoutController(payments *services.PaymentService) *CheckoutController {
	return &CheckoutController{payments: payments}
}

type checkoutRequest struct {
	OrderID    string `json:"order_id" binding:"required"`
	SuccessURL string `json:"success_url" binding:"required,url"`
	CancelURL  string `json:"cancel_url" binding:"required,url"`
}

// CreateCheckout opens a hosted checkout session for an order.
func (cc *CheckoutController) CreateCheckout(c *gin.Context) {
	tenantID := middlewares.TenantID(c)

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := cc.payments.CreateCheckout(tenantID, req.OrderID, req.SuccessURL, req.CancelURL)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Checkout session created", result)
}
