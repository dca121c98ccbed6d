package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/foodtruckos/backend/models"
)

var (
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrInvalidPayload   = errors.New("invalid webhook payload")
)

const (
	eventCheckoutCompleted = "checkout.session.completed"
	eventPaymentFailed     = "payment_intent.payment_failed"
)

// PaymentService drives payment reconciliation: it creates checkout sessions
// against the provider and applies provider webhook events to Payment and
// Order state. Event application is an idempotent overwrite, so duplicate or
// out-of-order delivery converges on the same final state.
type PaymentService struct {
	db            *gorm.DB
	provider      CheckoutProvider
	currency      string
	webhookSecret string
}

func NewPaymentService(db *gorm.DB, provider CheckoutProvider, currency, webhookSecret string) *PaymentService {
	return &PaymentService{
		db:            db,
		provider:      provider,
		currency:      currency,
		webhookSecret: webhookSecret,
	}
}

type CheckoutResult struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// CreateCheckout creates a hosted checkout session for an order and upserts
// its Payment row. A retried checkout reuses the existing row with a fresh
// session id and a PENDING status, keeping the one-payment-per-order
// invariant.
func (s *PaymentService) CreateCheckout(tenantID, orderID, successURL, cancelURL string) (*CheckoutResult, error) {
	var order models.Order
	err := s.db.Where("id = ? AND tenant_id = ?", orderID, tenantID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}

	// TotalAmount is exact 2-decimal fixed point, so *100 is always integral.
	amountMinor := order.TotalAmount.Mul(decimal.NewFromInt(100)).IntPart()

	sess, err := s.provider.CreateCheckoutSession(CheckoutParams{
		AmountMinor: amountMinor,
		Currency:    s.currency,
		ProductName: fmt.Sprintf("Order #%.8s", order.ID),
		SuccessURL:  successURL,
		CancelURL:   cancelURL,
		Metadata: map[string]string{
			"order_id":  order.ID,
			"tenant_id": tenantID,
		},
	})
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		findErr := tx.Where("order_id = ?", order.ID).First(&payment).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			payment = models.Payment{
				TenantID:        tenantID,
				OrderID:         order.ID,
				StripeSessionID: sess.SessionID,
				Amount:          order.TotalAmount,
				Status:          models.PaymentStatusPending,
			}
			return tx.Create(&payment).Error
		}
		if findErr != nil {
			return findErr
		}

		payment.StripeSessionID = sess.SessionID
		payment.Status = models.PaymentStatusPending
		return tx.Save(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{CheckoutURL: sess.URL, SessionID: sess.SessionID}, nil
}

// webhookObject is the provider's nested event object. For
// checkout.session.completed the id is a session id; for
// payment_intent.payment_failed it is the payment intent id.
type webhookObject struct {
	ID            string            `json:"id"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

// HandleWebhook verifies and applies one provider event. Verification
// failures are terminal here; the provider is expected to retry delivery, and
// idempotent application is what makes that safe.
func (s *PaymentService) HandleWebhook(payload []byte, sigHeader string) error {
	event, err := VerifyWebhook(payload, sigHeader, s.webhookSecret)
	if err != nil {
		if IsSignatureError(err) {
			return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var object webhookObject
	if err := json.Unmarshal(event.Data.Raw, &object); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	switch string(event.Type) {
	case eventCheckoutCompleted:
		return s.applyCheckoutCompleted(object)
	case eventPaymentFailed:
		return s.applyPaymentFailed(object)
	default:
		// Unknown event types are acknowledged without side effects.
		return nil
	}
}

func (s *PaymentService) applyCheckoutCompleted(object webhookObject) error {
	if object.Metadata["order_id"] == "" || object.Metadata["tenant_id"] == "" {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		err := tx.Where("stripe_session_id = ?", object.ID).First(&payment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The session may predate a visible Payment row, or the event is
			// a re-delivery for a superseded session. Acknowledge either way.
			return nil
		}
		if err != nil {
			return err
		}

		payment.Status = models.PaymentStatusCompleted
		payment.StripePaymentIntentID = object.PaymentIntent
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		// Advance the order only while it is still NEW so a manual transition
		// taken in the meantime is never clobbered.
		return tx.Model(&models.Order{}).
			Where("id = ? AND tenant_id = ? AND status = ?",
				payment.OrderID, payment.TenantID, models.OrderStatusNew).
			Update("status", models.OrderStatusAccepted).Error
	})
}

func (s *PaymentService) applyPaymentFailed(object webhookObject) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		err := tx.Where("stripe_payment_intent_id = ?", object.ID).First(&payment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		payment.Status = models.PaymentStatusFailed
		return tx.Save(&payment).Error
	})
}
