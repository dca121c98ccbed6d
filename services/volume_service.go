package services

import (
	"gorm.io/gorm"

	"github.com/foodtruckos/backend/models"
)

// Load classification levels, in increasing order.
const (
	LoadStateLow      = "LOW"
	LoadStateMedium   = "MEDIUM"
	LoadStateHigh     = "HIGH"
	LoadStateVeryHigh = "VERY_HIGH"
)

// Estimated prep time per item, in minutes.
const estimatedPrepTimePerItem = 3

// Assumed average items per order for the wait estimate.
const assumedItemsPerOrder = 2

type VolumeMetrics struct {
	LoadState            string `json:"load_state"`
	ActiveOrdersCount    int64  `json:"active_orders_count"`
	PendingItemsCount    int64  `json:"pending_items_count"`
	EstimatedWaitMinutes *int64 `json:"estimated_wait_minutes"`
}

// VolumeService estimates kitchen load from the two aggregates the order
// store guarantees: the count of NEW/ACCEPTED orders and the summed item
// quantity of those orders, both tenant-scoped.
type VolumeService struct {
	db *gorm.DB
}

func NewVolumeService(db *gorm.DB) *VolumeService {
	return &VolumeService{db: db}
}

func (s *VolumeService) CalculateVolumeMetrics(tenantID string) (*VolumeMetrics, error) {
	activeStatuses := []string{models.OrderStatusNew, models.OrderStatusAccepted}

	var activeOrders int64
	err := s.db.Model(&models.Order{}).
		Where("tenant_id = ? AND status IN ?", tenantID, activeStatuses).
		Count(&activeOrders).Error
	if err != nil {
		return nil, err
	}

	var pendingItems int64
	err = s.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.tenant_id = ? AND orders.status IN ?", tenantID, activeStatuses).
		Select("COALESCE(SUM(order_items.quantity), 0)").
		Scan(&pendingItems).Error
	if err != nil {
		return nil, err
	}

	metrics := &VolumeMetrics{
		LoadState:         classifyLoad(activeOrders, pendingItems),
		ActiveOrdersCount: activeOrders,
		PendingItemsCount: pendingItems,
	}
	if activeOrders > 0 {
		wait := activeOrders * assumedItemsPerOrder * estimatedPrepTimePerItem
		metrics.EstimatedWaitMinutes = &wait
	}
	return metrics, nil
}

func classifyLoad(activeOrders, pendingItems int64) string {
	score := activeOrders*2 + pendingItems
	switch {
	case score <= 5:
		return LoadStateLow
	case score <= 15:
		return LoadStateMedium
	case score <= 30:
		return LoadStateHigh
	default:
		return LoadStateVeryHigh
	}
}
