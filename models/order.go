package models

import (
	"time"

	"gorm.io/datatypes"
)

// AddOn is an extra priced on top of an order line.
type AddOn struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderRecord is one open line item for a table. Rows live until the table is
// settled or the order is cancelled.
type OrderRecord struct {
	ID                  uint                       `gorm:"primaryKey" json:"id"`
	FoodName            string                     `gorm:"type:varchar(255);not null" json:"foodName"`
	BasePrice           float64                    `gorm:"type:decimal(10,2);not null" json:"basePrice"`
	AddOns              datatypes.JSONSlice[AddOn] `json:"addOns"`
	SpecialInstructions string                     `gorm:"type:text" json:"specialInstructions"`
	TotalPrice          float64                    `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	TableNumber         int                        `gorm:"not null;index" json:"tableNumber"`
	CreatedAt           time.Time                  `gorm:"not null" json:"createdAt"`
}

func (OrderRecord) TableName() string {
	return "orders"
}
