package database

import (
	"fmt"

	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, in creation order.
func Models() []interface{} {
	return []interface{}{
		&models.Customer{},
		&models.CatalogItem{},
		&models.OrderRecord{},
		&models.Supplier{},
		&models.ConfirmationRecord{},
		&models.CompletionRecord{},
	}
}

// Migrate creates or updates the schema and backfills refund status on rows
// written before the column existed.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	res := db.Model(&models.CompletionRecord{}).
		Where("refund_status IS NULL OR refund_status = ''").
		Update("refund_status", models.RefundStatusNone)
	if res.Error != nil {
		return fmt.Errorf("backfill refund status: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		utils.InfoLogger.Printf("Backfilled refund status on %d completion(s)", res.RowsAffected)
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
