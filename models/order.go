package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. NEW is the only initial state; COMPLETED and CANCELLED are
// terminal. CANCELLED is reachable from any non-terminal state.
const (
	OrderStatusNew       = "NEW"
	OrderStatusAccepted  = "ACCEPTED"
	OrderStatusReady     = "READY"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
)

type Order struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID      string          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Status        string          `gorm:"type:varchar(50);not null;default:'NEW'" json:"status"`
	CustomerName  string          `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerEmail string          `gorm:"type:varchar(255)" json:"customer_email,omitempty"`
	CustomerPhone string          `gorm:"type:varchar(50)" json:"customer_phone,omitempty"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
}

// OrderItem snapshots the menu item at order time. ItemName, ItemDescription
// and ItemPrice are copies, never re-derived from the live catalog, so the
// order stays historically accurate when the menu changes. MenuItemID is
// nullable because the catalog item may be deleted later.
type OrderItem struct {
	ID              string              `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         string              `gorm:"type:uuid;not null;index" json:"order_id"`
	MenuItemID      *string             `gorm:"type:uuid" json:"menu_item_id,omitempty"`
	ItemName        string              `gorm:"type:varchar(255);not null" json:"item_name"`
	ItemDescription string              `gorm:"type:text" json:"item_description"`
	ItemPrice       decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"item_price"`
	Quantity        int                 `gorm:"not null;default:1" json:"quantity"`
	Modifiers       []OrderItemModifier `gorm:"foreignKey:OrderItemID" json:"modifiers"`
}

// OrderItemModifier snapshots a selected modifier option at order time.
type OrderItemModifier struct {
	ID                 string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderItemID        string          `gorm:"type:uuid;not null;index" json:"order_item_id"`
	ModifierGroupName  string          `gorm:"type:varchar(255);not null" json:"modifier_group_name"`
	ModifierOptionName string          `gorm:"type:varchar(255);not null" json:"modifier_option_name"`
	PriceModifier      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price_modifier"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

func (m *OrderItemModifier) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
