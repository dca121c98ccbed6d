package services

import (
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
)

// CheckoutParams describes one attempt to collect payment for an order.
// Amounts are in minor currency units (cents); metadata is the only channel
// through which the asynchronous webhook can recover order and tenant context.
type CheckoutParams struct {
	AmountMinor int64
	Currency    string
	ProductName string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

type CheckoutSession struct {
	SessionID string
	URL       string
}

// CheckoutProvider is the outbound payment-provider interface. Production
// uses Stripe; tests substitute a fake.
type CheckoutProvider interface {
	CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error)
}

// StripeProvider creates hosted Stripe Checkout sessions.
type StripeProvider struct{}

func NewStripeProvider(secretKey string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{}
}

func (p *StripeProvider) CreateCheckoutSession(params CheckoutParams) (*CheckoutSession, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(params.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.ProductName),
					},
					UnitAmount: stripe.Int64(params.AmountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	for key, value := range params.Metadata {
		sessionParams.AddMetadata(key, value)
	}

	sess, err := session.New(sessionParams)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}

// VerifyWebhook checks the Stripe-Signature header against the shared webhook
// secret and parses the event. The API-version check is skipped so replayed
// and CLI-generated events verify the same way as live ones.
func VerifyWebhook(payload []byte, sigHeader, secret string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, sigHeader, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
}

// IsSignatureError reports whether a VerifyWebhook failure was a signature
// problem as opposed to an unparseable payload.
func IsSignatureError(err error) bool {
	switch err {
	case webhook.ErrNotSigned, webhook.ErrInvalidHeader, webhook.ErrTooOld, webhook.ErrNoValidSignature:
		return true
	}
	return false
}
