package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/foodtruckos/backend/models"
)

// CatalogService is the read-only view of the menu the order engine prices
// against. It never writes; menu administration owns the rows. All lookups
// are tenant-scoped and report "not found" as a nil result, not an error.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) FindItem(tenantID, itemID string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.Where("id = ? AND tenant_id = ?", itemID, tenantID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CatalogService) FindModifierGroup(tenantID, menuItemID, name string) (*models.ModifierGroup, error) {
	var group models.ModifierGroup
	err := s.db.Where("menu_item_id = ? AND name = ? AND tenant_id = ?", menuItemID, name, tenantID).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *CatalogService) FindModifierOption(tenantID, groupID, name string) (*models.ModifierOption, error) {
	var option models.ModifierOption
	err := s.db.Where("modifier_group_id = ? AND name = ? AND tenant_id = ?", groupID, name, tenantID).
		First(&option).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &option, nil
}

// GetMenu returns the customer-facing menu tree for a tenant.
func (s *CatalogService) GetMenu(tenantID string) ([]models.MenuCategory, error) {
	var categories []models.MenuCategory
	err := s.db.Where("tenant_id = ?", tenantID).
		Order("display_order").
		Preload("Items", "tenant_id = ? AND is_available = ?", tenantID, true).
		Preload("Items.ModifierGroups").
		Preload("Items.ModifierGroups.Options").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
