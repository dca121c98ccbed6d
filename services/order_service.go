package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/foodtruckos/backend/models"
)

var (
	// ErrItemUnavailable covers both "does not exist" and "out of stock";
	// the two are deliberately indistinguishable to the caller.
	ErrItemUnavailable  = errors.New("menu item not found or not available")
	ErrModifierNotFound = errors.New("modifier not found")
	ErrOrderNotFound    = errors.New("order not found")
)

type ModifierSelection struct {
	GroupName  string `json:"modifier_group_name" binding:"required"`
	OptionName string `json:"modifier_option_name" binding:"required"`
}

type OrderItemRequest struct {
	MenuItemID string              `json:"menu_item_id" binding:"required"`
	Quantity   int                 `json:"quantity" binding:"required,min=1"`
	Modifiers  []ModifierSelection `json:"modifiers"`
}

type OrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerEmail string             `json:"customer_email"`
	CustomerPhone string             `json:"customer_phone"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderService prices incoming orders against the live catalog and persists
// them with immutable snapshots of every name and price involved.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateOrder validates and prices the request, then persists the order, its
// items and their modifiers in one transaction. Any failure rolls back the
// whole order; no partial writes ever become visible.
//
// Modifier-group selection cardinality (min/max_selections, is_required) is
// not enforced here, only existence of each selected pair.
func (s *OrderService) CreateOrder(tenantID string, req OrderRequest) (*models.Order, error) {
	var orderID string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		catalog := NewCatalogService(tx)

		type pricedLine struct {
			item      *models.MenuItem
			quantity  int
			modifiers []models.OrderItemModifier
		}

		total := decimal.Zero
		lines := make([]pricedLine, 0, len(req.Items))

		for _, itemReq := range req.Items {
			item, err := catalog.FindItem(tenantID, itemReq.MenuItemID)
			if err != nil {
				return err
			}
			if item == nil || !item.IsAvailable {
				return fmt.Errorf("%w: %s", ErrItemUnavailable, itemReq.MenuItemID)
			}

			lineUnit := item.Price
			modifiers := make([]models.OrderItemModifier, 0, len(itemReq.Modifiers))
			for _, sel := range itemReq.Modifiers {
				group, err := catalog.FindModifierGroup(tenantID, item.ID, sel.GroupName)
				if err != nil {
					return err
				}
				if group == nil {
					return fmt.Errorf("%w: group %q for item %s", ErrModifierNotFound, sel.GroupName, item.ID)
				}
				option, err := catalog.FindModifierOption(tenantID, group.ID, sel.OptionName)
				if err != nil {
					return err
				}
				if option == nil {
					return fmt.Errorf("%w: option %q in group %q", ErrModifierNotFound, sel.OptionName, sel.GroupName)
				}

				lineUnit = lineUnit.Add(option.PriceModifier)
				modifiers = append(modifiers, models.OrderItemModifier{
					ModifierGroupName:  group.Name,
					ModifierOptionName: option.Name,
					PriceModifier:      option.PriceModifier,
				})
			}

			total = total.Add(lineUnit.Mul(decimal.NewFromInt(int64(itemReq.Quantity))))
			lines = append(lines, pricedLine{item: item, quantity: itemReq.Quantity, modifiers: modifiers})
		}

		order := models.Order{
			TenantID:      tenantID,
			Status:        models.OrderStatusNew,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			TotalAmount:   total,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			menuItemID := line.item.ID
			orderItem := models.OrderItem{
				OrderID:         order.ID,
				MenuItemID:      &menuItemID,
				ItemName:        line.item.Name,
				ItemDescription: line.item.Description,
				ItemPrice:       line.item.Price,
				Quantity:        line.quantity,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			for _, modifier := range line.modifiers {
				modifier.OrderItemID = orderItem.ID
				if err := tx.Create(&modifier).Error; err != nil {
					return err
				}
			}
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(tenantID, orderID)
}

// GetOrder returns an order with its items and modifiers. A row belonging to
// another tenant is reported as not found, never as forbidden.
func (s *OrderService) GetOrder(tenantID, orderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("id = ? AND tenant_id = ?", orderID, tenantID).
		Preload("Items").
		Preload("Items.Modifiers").
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns a tenant's orders, most recent first, optionally
// filtered by status.
func (s *OrderService) ListOrders(tenantID, status string) ([]models.Order, error) {
	query := s.db.Where("tenant_id = ?", tenantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	err := query.Order("created_at DESC, id").
		Preload("Items").
		Preload("Items.Modifiers").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus overwrites the order status unconditionally. Transition
// legality is not validated; the only guarded transition in the system is the
// reconciliation engine's NEW to ACCEPTED on successful payment.
func (s *OrderService) UpdateOrderStatus(tenantID, orderID, status string) (*models.Order, error) {
	var order models.Order
	err := s.db.Where("id = ? AND tenant_id = ?", orderID, tenantID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}

	order.Status = status
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}
	return s.GetOrder(tenantID, orderID)
}
