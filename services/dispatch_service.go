package services

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/notify"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DispatchItem struct {
	FoodName            string   `json:"foodName" validate:"required"`
	TotalPrice          *float64 `json:"totalPrice" validate:"omitempty,gte=0"`
	SpecialInstructions string   `json:"specialInstructions"`
	Quantity            int      `json:"quantity" validate:"gte=0"`
}

type AssignSupplierInput struct {
	SupplierID   string         `json:"supplierId" validate:"required"`
	SupplierName string         `json:"supplierName" validate:"required"`
	OrderID      string         `json:"orderId" validate:"required"`
	TableNumber  *int           `json:"tableNumber" validate:"required,gt=0"`
	Items        []DispatchItem `json:"items" validate:"required,min=1,dive"`
}

// DispatchService hands orders to suppliers.
type DispatchService struct {
	db  *gorm.DB
	pub notify.Publisher
	now func() time.Time
}

func NewDispatchService(db *gorm.DB, pub notify.Publisher) *DispatchService {
	return &DispatchService{db: db, pub: pub, now: time.Now}
}

// AssignSupplier marks the supplier Busy and records the confirmation. The
// supplier's previous status is not checked; concurrent dispatches to the same
// supplier both succeed.
func (s *DispatchService) AssignSupplier(ctx context.Context, in AssignSupplierInput) (*models.ConfirmationRecord, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	items := make([]models.LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		item := models.LineItem{
			FoodName:            it.FoodName,
			SpecialInstructions: it.SpecialInstructions,
			Quantity:            it.Quantity,
		}
		if it.TotalPrice != nil {
			item.TotalPrice = *it.TotalPrice
		}
		items = append(items, item)
	}

	var confirmation models.ConfirmationRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var supplier models.Supplier
		if err := tx.Where("supplier_id = ? AND is_active = ?", in.SupplierID, true).First(&supplier).Error; err != nil {
			return dbError(err, "supplier")
		}

		if err := tx.Model(&supplier).Update("status", models.SupplierBusy).Error; err != nil {
			return dbError(err, "supplier")
		}

		confirmation = models.ConfirmationRecord{
			OrderID:      in.OrderID,
			TableNumber:  *in.TableNumber,
			Items:        datatypes.JSONSlice[models.LineItem](items),
			SupplierID:   in.SupplierID,
			SupplierName: in.SupplierName,
			CreatedAt:    s.now(),
		}
		return dbError(tx.Create(&confirmation).Error, "confirmation")
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %s for table %d dispatched to supplier %s", confirmation.OrderID, confirmation.TableNumber, confirmation.SupplierID)
	publish(s.pub, notify.Event{Type: notify.EventOrderDispatched, SupplierID: confirmation.SupplierID, Data: confirmation})
	return &confirmation, nil
}

// NormalizeSupplierIdentifier strips whitespace and colons, so that values
// like " SUP:001 " match "SUP001".
func NormalizeSupplierIdentifier(identifier string) string {
	return strings.Map(func(r rune) rune {
		if r == ':' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, identifier)
}

// ListOrdersForSupplier returns confirmations whose supplierId or
// supplierName equals the normalized identifier, newest first.
func (s *DispatchService) ListOrdersForSupplier(ctx context.Context, identifier string) ([]models.ConfirmationRecord, error) {
	id := NormalizeSupplierIdentifier(identifier)
	confirmations := []models.ConfirmationRecord{}
	if id == "" {
		return confirmations, nil
	}

	err := s.db.WithContext(ctx).
		Where("supplier_id = ? OR supplier_name = ?", id, id).
		Order("created_at DESC, id DESC").
		Find(&confirmations).Error
	if err != nil {
		return nil, dbError(err, "confirmations")
	}
	return confirmations, nil
}
