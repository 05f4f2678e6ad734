package initializers

import (
	"log/slog"

	"github.com/Kariqs/farmlink-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.SaleNotification{},
		&models.Rating{},
	)
	if err != nil {
		return err
	}
	slog.Info("Database synced successfully.")
	return nil
}
