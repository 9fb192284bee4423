package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/notify"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attribution used for settlements of tables that were never dispatched.
const (
	UnassignedSupplierID   = "unassigned"
	UnassignedSupplierName = "Unassigned"
)

type PlaceOrderInput struct {
	FoodName            string         `json:"foodName" validate:"required"`
	BasePrice           *float64       `json:"basePrice" validate:"required,gte=0"`
	AddOns              []models.AddOn `json:"addOns" validate:"dive"`
	SpecialInstructions string         `json:"specialInstructions"`
	TotalPrice          *float64       `json:"totalPrice" validate:"required,gte=0"`
	TableNumber         *int           `json:"tableNumber" validate:"required,gt=0"`
}

// OrderService owns the open order lines of a table and their settlement.
type OrderService struct {
	db  *gorm.DB
	pub notify.Publisher
	now func() time.Time
}

func NewOrderService(db *gorm.DB, pub notify.Publisher) *OrderService {
	return &OrderService{db: db, pub: pub, now: time.Now}
}

func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.OrderRecord, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	addOns := in.AddOns
	if addOns == nil {
		addOns = []models.AddOn{}
	}
	order := models.OrderRecord{
		FoodName:            in.FoodName,
		BasePrice:           *in.BasePrice,
		AddOns:              datatypes.JSONSlice[models.AddOn](addOns),
		SpecialInstructions: in.SpecialInstructions,
		TotalPrice:          *in.TotalPrice,
		TableNumber:         *in.TableNumber,
		CreatedAt:           s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, dbError(err, "order")
	}

	utils.InfoLogger.Printf("Order placed: id=%d table=%d food=%s total=%.2f", order.ID, order.TableNumber, order.FoodName, order.TotalPrice)
	return &order, nil
}

// CancelOrder deletes the order line. Cancelling an unknown id is not an
// error; the result reports whether a row was removed.
func (s *OrderService) CancelOrder(ctx context.Context, id uint) (bool, error) {
	res := s.db.WithContext(ctx).Delete(&models.OrderRecord{}, id)
	if res.Error != nil {
		return false, dbError(res.Error, "order")
	}
	return res.RowsAffected > 0, nil
}

// ListOrders returns open order lines oldest first, for one table when
// tableNumber is non-nil.
func (s *OrderService) ListOrders(ctx context.Context, tableNumber *int) ([]models.OrderRecord, error) {
	q := s.db.WithContext(ctx).Order("created_at ASC, id ASC")
	if tableNumber != nil {
		q = q.Where("table_number = ?", *tableNumber)
	}
	orders := []models.OrderRecord{}
	if err := q.Find(&orders).Error; err != nil {
		return nil, dbError(err, "orders")
	}
	return orders, nil
}

// MarkTablePaid archives every open order line of the table into a single
// CompletionRecord and removes the lines, in one transaction.
func (s *OrderService) MarkTablePaid(ctx context.Context, tableNumber int) (*models.CompletionRecord, error) {
	if tableNumber <= 0 {
		return nil, utils.NewValidationError("tableNumber must be greater than 0")
	}

	var completion models.CompletionRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orders []models.OrderRecord
		if err := tx.Where("table_number = ?", tableNumber).Order("created_at ASC, id ASC").Find(&orders).Error; err != nil {
			return dbError(err, "orders")
		}
		if len(orders) == 0 {
			return utils.NewNotFoundError("no open orders for table %d", tableNumber)
		}

		items := make([]models.LineItem, 0, len(orders))
		prices := make([]float64, 0, len(orders))
		ids := make([]uint, 0, len(orders))
		for _, o := range orders {
			items = append(items, models.LineItem{
				FoodName:            o.FoodName,
				TotalPrice:          o.TotalPrice,
				SpecialInstructions: o.SpecialInstructions,
			})
			prices = append(prices, o.TotalPrice)
			ids = append(ids, o.ID)
		}

		// Only dispatches made during this session count; the session starts
		// with its oldest open line.
		supplierID, supplierName := UnassignedSupplierID, UnassignedSupplierName
		var last models.ConfirmationRecord
		err := tx.Where("table_number = ? AND created_at >= ?", tableNumber, orders[0].CreatedAt).
			Order("created_at DESC, id DESC").
			First(&last).Error
		switch {
		case err == nil:
			supplierID, supplierName = last.SupplierID, last.SupplierName
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return dbError(err, "confirmation")
		}

		completion = models.CompletionRecord{
			OrderID:      "ORD-" + uuid.NewString(),
			TableNumber:  tableNumber,
			Items:        datatypes.JSONSlice[models.LineItem](items),
			SupplierID:   supplierID,
			SupplierName: supplierName,
			TotalAmount:  utils.SumMoney(prices...),
			CompletedAt:  s.now(),
			RefundStatus: models.RefundStatusNone,
		}
		if err := tx.Create(&completion).Error; err != nil {
			return dbError(err, "completion")
		}

		// Delete exactly the archived lines so a line placed mid-settlement survives.
		if err := tx.Delete(&models.OrderRecord{}, ids).Error; err != nil {
			return dbError(err, "orders")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Table %d settled: orderId=%s items=%d total=%.2f", tableNumber, completion.OrderID, len(completion.Items), completion.TotalAmount)
	publish(s.pub, notify.Event{Type: notify.EventTableSettled, SupplierID: supplierTarget(completion.SupplierID), Data: completion})
	return &completion, nil
}

func supplierTarget(supplierID string) string {
	if supplierID == UnassignedSupplierID {
		return ""
	}
	return supplierID
}
