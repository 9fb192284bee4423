package models

import (
	"time"

	"gorm.io/datatypes"
)

// ConfirmationRecord is an order dispatched to a supplier. Never updated.
type ConfirmationRecord struct {
	ID           uint                          `gorm:"primaryKey" json:"id"`
	OrderID      string                        `gorm:"type:varchar(100);not null;index" json:"orderId"`
	TableNumber  int                           `gorm:"not null;index" json:"tableNumber"`
	Items        datatypes.JSONSlice[LineItem] `gorm:"not null" json:"items"`
	SupplierID   string                        `gorm:"type:varchar(100);not null;index" json:"supplierId"`
	SupplierName string                        `gorm:"type:varchar(255);not null;index" json:"supplierName"`
	CreatedAt    time.Time                     `gorm:"not null" json:"createdAt"`
}

func (ConfirmationRecord) TableName() string {
	return "confirmations"
}
