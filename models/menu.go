package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Catalog models. The order engine reads these but never writes them;
// menu administration owns their lifecycle.

type MenuCategory struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID     string     `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	DisplayOrder int        `gorm:"not null;default:0" json:"display_order"`
	Items        []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`
}

type MenuItem struct {
	ID             string          `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID       string          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CategoryID     *string         `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name           string          `gorm:"type:varchar(255);not null" json:"name"`
	Description    string          `gorm:"type:text" json:"description"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsAvailable    bool            `gorm:"not null" json:"is_available"`
	DisplayOrder   int             `gorm:"not null;default:0" json:"display_order"`
	ModifierGroups []ModifierGroup `gorm:"foreignKey:MenuItemID" json:"modifier_groups,omitempty"`
}

// ModifierGroup is a named choice on a menu item, e.g. "Size" or "Toppings".
type ModifierGroup struct {
	ID            string           `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID      string           `gorm:"type:uuid;not null;index" json:"tenant_id"`
	MenuItemID    string           `gorm:"type:uuid;not null;index" json:"menu_item_id"`
	Name          string           `gorm:"type:varchar(255);not null" json:"name"`
	IsRequired    bool             `gorm:"not null;default:false" json:"is_required"`
	MinSelections int              `gorm:"not null;default:1" json:"min_selections"`
	MaxSelections int              `gorm:"not null;default:1" json:"max_selections"`
	Options       []ModifierOption `gorm:"foreignKey:ModifierGroupID" json:"options,omitempty"`
}

type ModifierOption struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	TenantID        string          `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ModifierGroupID string          `gorm:"type:uuid;not null;index" json:"modifier_group_id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	PriceModifier   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price_modifier"`
	DisplayOrder    int             `gorm:"not null;default:0" json:"display_order"`
}

func (m *MenuCategory) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (g *ModifierGroup) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

func (o *ModifierOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
