package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/foodtruckos/backend/services"
	"github.com/foodtruckos/backend/utils"
)

type WebhookController struct {
	payments *services.PaymentService
}

func NewWebhookController(payments *services.PaymentService) *WebhookController {
	return &WebhookController{payments: payments}
}

// StripeWebhook applies one provider event. Rejections return 400 so the
// provider keeps retrying delivery; applying the same event again is safe.
func (wc *WebhookController) StripeWebhook(c *gin.Context) {
	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("missing Stripe-Signature header"))
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := wc.payments.HandleWebhook(payload, signature); err != nil {
		if errors.Is(err, services.ErrInvalidSignature) || errors.Is(err, services.ErrInvalidPayload) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Webhook processed", nil)
}
