package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RefundStatusNone      = "none"
	RefundStatusProcessed = "processed"
	RefundStatusFailed    = "failed"
)

// LineItem is the archived shape of an ordered dish.
type LineItem struct {
	FoodName            string  `json:"foodName"`
	TotalPrice          float64 `json:"totalPrice"`
	SpecialInstructions string  `json:"specialInstructions,omitempty"`
	Quantity            int     `json:"quantity,omitempty"`
}

// CompletionRecord archives a finished transaction. Only the refund fields
// change after creation.
type CompletionRecord struct {
	ID              uint                          `gorm:"primaryKey" json:"id"`
	OrderID         string                        `gorm:"type:varchar(100);uniqueIndex;not null" json:"orderId"`
	TableNumber     int                           `gorm:"not null;index" json:"tableNumber"`
	Items           datatypes.JSONSlice[LineItem] `gorm:"not null" json:"items"`
	SupplierID      string                        `gorm:"type:varchar(100);not null;index" json:"supplierId"`
	SupplierName    string                        `gorm:"type:varchar(255);not null" json:"supplierName"`
	TotalAmount     float64                       `gorm:"type:decimal(12,2);not null" json:"totalAmount"`
	CompletedAt     time.Time                     `gorm:"not null;index" json:"completedAt"`
	RefundStatus    string                        `gorm:"type:varchar(20);not null;default:'none';index" json:"refundStatus"`
	RefundPaymentID string                        `gorm:"type:varchar(255)" json:"refundPaymentId,omitempty"`
	RefundAmount    float64                       `gorm:"type:decimal(12,2);not null;default:0" json:"refundAmount"`
	RefundedAt      *time.Time                    `json:"refundedAt,omitempty"`
	CreatedAt       time.Time                     `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time                     `gorm:"not null" json:"updatedAt"`
}

func (CompletionRecord) TableName() string {
	return "completions"
}

// ItemCount is the number of archived line items.
func (c *CompletionRecord) ItemCount() int {
	return len(c.Items)
}
