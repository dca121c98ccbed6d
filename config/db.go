package config

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/foodtruckos/backend/models"
)

func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Tenant{},
		&models.User{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.ModifierGroup{},
		&models.ModifierOption{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemModifier{},
		&models.Payment{},
	)
}
