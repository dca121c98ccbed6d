package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/foodtruckos/backend/models"
)

type PaymentStatusReport struct {
	Connected     bool       `json:"connected"`
	Mode          string     `json:"mode"`
	LastPaymentAt *time.Time `json:"last_payment_at"`
	LastWebhookAt *time.Time `json:"last_webhook_at"`
	WebhookOK     bool       `json:"webhook_ok"`
}

// PaymentStatusService summarizes provider health for the admin dashboard.
type PaymentStatusService struct {
	db        *gorm.DB
	secretKey string
}

func NewPaymentStatusService(db *gorm.DB, secretKey string) *PaymentStatusService {
	return &PaymentStatusService{db: db, secretKey: secretKey}
}

func (s *PaymentStatusService) GetPaymentStatus(tenantID string) (*PaymentStatusReport, error) {
	mode := "live"
	if strings.Contains(strings.ToLower(s.secretKey), "test") {
		mode = "test"
	}

	report := &PaymentStatusReport{
		// The platform account collects for every tenant; per-tenant Stripe
		// Connect onboarding would make this conditional.
		Connected: true,
		Mode:      mode,
	}

	var lastCompleted models.Payment
	err := s.db.Where("tenant_id = ? AND status = ?", tenantID, models.PaymentStatusCompleted).
		Order("updated_at DESC").
		First(&lastCompleted).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		report.LastPaymentAt = &lastCompleted.UpdatedAt
	}

	var lastSession models.Payment
	err = s.db.Where("tenant_id = ? AND stripe_session_id <> ''", tenantID).
		Order("updated_at DESC").
		First(&lastSession).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil {
		report.LastWebhookAt = &lastSession.UpdatedAt
		report.WebhookOK = true
	}

	return report, nil
}
