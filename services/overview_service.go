package services

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/foodtruckos/backend/models"
)

type OverviewMetrics struct {
	VolumeMetrics
	OrdersTotal  int64            `json:"orders_total"`
	RevenueTotal *decimal.Decimal `json:"revenue_total"`
}

// OverviewService aggregates the admin dashboard numbers: current load plus
// order count and revenue from completed payments.
type OverviewService struct {
	db     *gorm.DB
	volume *VolumeService
}

func NewOverviewService(db *gorm.DB, volume *VolumeService) *OverviewService {
	return &OverviewService{db: db, volume: volume}
}

func (s *OverviewService) GetOverviewMetrics(tenantID string) (*OverviewMetrics, error) {
	volumeMetrics, err := s.volume.CalculateVolumeMetrics(tenantID)
	if err != nil {
		return nil, err
	}

	var ordersTotal int64
	err = s.db.Model(&models.Order{}).
		Where("tenant_id = ?", tenantID).
		Count(&ordersTotal).Error
	if err != nil {
		return nil, err
	}

	var revenue decimal.Decimal
	err = s.db.Model(&models.Payment{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.PaymentStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}

	metrics := &OverviewMetrics{
		VolumeMetrics: *volumeMetrics,
		OrdersTotal:   ordersTotal,
	}
	if revenue.IsPositive() {
		metrics.RevenueTotal = &revenue
	}
	return metrics, nil
}
