package services

import (
	"context"
	"time"

	"github.com/jinzhu/copier"
	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/notify"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateSupplierInput struct {
	SupplierID string `json:"supplierId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
	Attendance string `json:"attendance" validate:"omitempty,oneof=Present Absent"`
	Status     string `json:"status" validate:"omitempty,oneof=Available Busy Absent"`
}

// UpdateSupplierInput changes only the non-empty fields.
type UpdateSupplierInput struct {
	Name       string `json:"name"`
	Password   string `json:"password" copier:"-" validate:"omitempty,min=6"`
	Attendance string `json:"attendance" validate:"omitempty,oneof=Present Absent"`
	Status     string `json:"status" validate:"omitempty,oneof=Available Busy Absent"`
}

type UpdateAttendanceInput struct {
	Attendance string `json:"attendance" validate:"required,oneof=Present Absent"`
	Status     string `json:"status" validate:"omitempty,oneof=Available Busy"`
}

type SupplierFilter struct {
	ActiveOnly bool
	Attendance string
}

type LoginResult struct {
	Supplier *models.Supplier `json:"supplier"`
	Token    string           `json:"token"`
}

// SupplierService backs both the supplier and the vendor endpoints. Both
// operate on the same table; the vendor flavour hides inactive rows and
// deletes softly.
type SupplierService struct {
	db  *gorm.DB
	pub notify.Publisher
	now func() time.Time
}

func NewSupplierService(db *gorm.DB, pub notify.Publisher) *SupplierService {
	return &SupplierService{db: db, pub: pub, now: time.Now}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", utils.NewInternalError("failed to hash password", err)
	}
	return string(hashed), nil
}

func (s *SupplierService) Create(ctx context.Context, in CreateSupplierInput) (*models.Supplier, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var existing int64
	if err := db.Model(&models.Supplier{}).Where("supplier_id = ?", in.SupplierID).Count(&existing).Error; err != nil {
		return nil, dbError(err, "supplier")
	}
	if existing > 0 {
		return nil, utils.NewConflictError("supplier %s already exists", in.SupplierID)
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	supplier := models.Supplier{
		SupplierID: in.SupplierID,
		Name:       in.Name,
		Password:   hashed,
		Attendance: in.Attendance,
		Status:     in.Status,
		IsActive:   true,
	}
	if supplier.Attendance == "" {
		supplier.Attendance = models.AttendancePresent
	}
	supplier.NormalizeStatus()

	if err := db.Create(&supplier).Error; err != nil {
		return nil, dbError(err, "supplier")
	}

	utils.InfoLogger.Printf("Supplier created: %s (%s)", supplier.SupplierID, supplier.Name)
	return &supplier, nil
}

func (s *SupplierService) List(ctx context.Context, f SupplierFilter) ([]models.Supplier, error) {
	q := s.db.WithContext(ctx).Order("name ASC, id ASC")
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.Attendance != "" {
		if f.Attendance != models.AttendancePresent && f.Attendance != models.AttendanceAbsent {
			return nil, utils.NewValidationError("attendance must be Present or Absent")
		}
		q = q.Where("attendance = ?", f.Attendance)
	}

	suppliers := []models.Supplier{}
	if err := q.Find(&suppliers).Error; err != nil {
		return nil, dbError(err, "suppliers")
	}
	return suppliers, nil
}

func (s *SupplierService) find(db *gorm.DB, id uint, activeOnly bool) (*models.Supplier, error) {
	q := db.Where("id = ?", id)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var supplier models.Supplier
	if err := q.First(&supplier).Error; err != nil {
		return nil, dbError(err, "supplier")
	}
	return &supplier, nil
}

// Update applies the non-empty fields of in. With activeOnly, soft-deleted
// suppliers are reported as not found.
func (s *SupplierService) Update(ctx context.Context, id uint, in UpdateSupplierInput, activeOnly bool) (*models.Supplier, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	supplier, err := s.find(db, id, activeOnly)
	if err != nil {
		return nil, err
	}

	if err := copier.CopyWithOption(supplier, &in, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, utils.NewInternalError("failed to apply supplier update", err)
	}
	if in.Password != "" {
		if supplier.Password, err = hashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	supplier.NormalizeStatus()

	if err := db.Save(supplier).Error; err != nil {
		return nil, dbError(err, "supplier")
	}
	s.publishStatus(supplier)
	return supplier, nil
}

// UpdateAttendance sets attendance and recomputes status: Absent forces
// Absent, otherwise the requested status or Available.
func (s *SupplierService) UpdateAttendance(ctx context.Context, id uint, in UpdateAttendanceInput) (*models.Supplier, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	supplier, err := s.find(db, id, true)
	if err != nil {
		return nil, err
	}

	supplier.Attendance = in.Attendance
	supplier.Status = in.Status
	if supplier.Status == "" {
		supplier.Status = models.SupplierAvailable
	}
	supplier.NormalizeStatus()

	err = db.Model(supplier).Updates(map[string]interface{}{
		"attendance": supplier.Attendance,
		"status":     supplier.Status,
	}).Error
	if err != nil {
		return nil, dbError(err, "supplier")
	}

	utils.InfoLogger.Printf("Supplier %s attendance=%s status=%s", supplier.SupplierID, supplier.Attendance, supplier.Status)
	s.publishStatus(supplier)
	return supplier, nil
}

// Delete removes the supplier row.
func (s *SupplierService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Supplier{}, id)
	if res.Error != nil {
		return dbError(res.Error, "supplier")
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("supplier not found")
	}
	return nil
}

// Deactivate soft-deletes the supplier by clearing isActive.
func (s *SupplierService) Deactivate(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Supplier{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return dbError(res.Error, "supplier")
	}
	if res.RowsAffected == 0 {
		return utils.NewNotFoundError("supplier not found")
	}
	return nil
}

// VerifyLogin checks supplier credentials and issues a bearer token.
func (s *SupplierService) VerifyLogin(ctx context.Context, supplierID, password string) (*LoginResult, error) {
	if supplierID == "" || password == "" {
		return nil, utils.NewValidationError("supplierId and password are required")
	}

	db := s.db.WithContext(ctx)
	var supplier models.Supplier
	if err := db.Where("supplier_id = ? AND is_active = ?", supplierID, true).First(&supplier).Error; err != nil {
		return nil, dbError(err, "supplier")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(supplier.Password), []byte(password)); err != nil {
		return nil, utils.NewAuthError("invalid credentials")
	}

	if supplier.Attendance == models.AttendanceAbsent || supplier.Status == models.SupplierAbsent {
		return nil, utils.NewForbiddenError("supplier is marked absent")
	}

	now := s.now()
	if err := db.Model(&supplier).Update("last_login", now).Error; err != nil {
		return nil, dbError(err, "supplier")
	}
	supplier.LastLogin = &now

	token, err := utils.GenerateToken(supplier.ID, utils.RoleSupplier, supplier.SupplierID)
	if err != nil {
		return nil, utils.NewInternalError("failed to issue token", err)
	}

	utils.InfoLogger.Printf("Supplier %s logged in", supplier.SupplierID)
	return &LoginResult{Supplier: &supplier, Token: token}, nil
}

// ResetAttendance marks every active supplier Absent. Used by the daily
// attendance job; returns the number of rows changed.
func (s *SupplierService) ResetAttendance(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Supplier{}).
		Where("is_active = ? AND (attendance <> ? OR status <> ?)", true, models.AttendanceAbsent, models.SupplierAbsent).
		Updates(map[string]interface{}{
			"attendance": models.AttendanceAbsent,
			"status":     models.SupplierAbsent,
		})
	if res.Error != nil {
		return 0, dbError(res.Error, "suppliers")
	}
	return res.RowsAffected, nil
}

func (s *SupplierService) publishStatus(supplier *models.Supplier) {
	publish(s.pub, notify.Event{Type: notify.EventSupplierStatus, SupplierID: supplier.SupplierID, Data: supplier})
}
