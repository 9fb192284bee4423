package models

import (
	"time"
)

type Customer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Password    string    `gorm:"type:varchar(255);not null" json:"-"`
	TableNumber int       `gorm:"not null" json:"tableNumber"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}
