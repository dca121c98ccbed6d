package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment statuses. PENDING is set at checkout-session creation; COMPLETED,
// FAILED and REFUNDED are terminal.
const (
	PaymentStatusPending    = "PENDING"
	PaymentStatusProcessing = "PROCESSING"
	PaymentStatusCompleted  = "COMPLETED"
	PaymentStatusFailed     = "FAILED"
	PaymentStatusRefunded   = "REFUNDED"
)

// Payment is at most one row per order (unique OrderID). A retried checkout
// reuses the row with a fresh session id instead of inserting a second one.
type Payment struct {
	ID                    string          `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID              string          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	OrderID               string          `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	StripeSessionID       string          `gorm:"type:varchar(255);index" json:"stripe_session_id,omitempty"`
	StripePaymentIntentID string          `gorm:"type:varchar(255);index" json:"stripe_payment_intent_id,omitempty"`
	Amount                decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status                string          `gorm:"type:varchar(50);not null;default:'PENDING'" json:"status"`
	CreatedAt             time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"not null" json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
