package models

import "time"

// CatalogItem is a priced dish in one catalog category (slug).
type CatalogItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Category    string    `gorm:"type:varchar(100);not null;index" json:"category"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:varchar(500)" json:"imageUrl"`
	IsAvailable bool      `gorm:"not null;default:true" json:"isAvailable"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}
