package models

import "time"

const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"

	SupplierAvailable = "Available"
	SupplierBusy      = "Busy"
	SupplierAbsent    = "Absent"
)

// Supplier is shared by the supplier and vendor endpoints. Password holds a
// bcrypt hash and is never serialized.
type Supplier struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	SupplierID string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"supplierId"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	Password   string     `gorm:"type:varchar(255);not null" json:"-"`
	Attendance string     `gorm:"type:varchar(10);not null;default:'Present'" json:"attendance"`
	Status     string     `gorm:"type:varchar(10);not null;default:'Available'" json:"status"`
	LastLogin  *time.Time `json:"lastLogin,omitempty"`
	IsActive   bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt  time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updatedAt"`
}

// NormalizeStatus applies the attendance rule: absence always wins, Busy is
// kept, anything else becomes Available.
func (s *Supplier) NormalizeStatus() {
	switch {
	case s.Attendance == AttendanceAbsent:
		s.Status = SupplierAbsent
	case s.Status == SupplierBusy:
	default:
		s.Status = SupplierAvailable
	}
}
