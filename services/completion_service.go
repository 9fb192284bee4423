package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/notify"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CompletionItemInput struct {
	FoodName            string   `json:"foodName" validate:"required"`
	TotalPrice          *float64 `json:"totalPrice" validate:"required,gte=0"`
	SpecialInstructions string   `json:"specialInstructions"`
	Quantity            int      `json:"quantity" validate:"gte=0"`
}

type CompleteOrderInput struct {
	OrderID      string                `json:"orderId" validate:"required"`
	TableNumber  *int                  `json:"tableNumber" validate:"required,gt=0"`
	Items        []CompletionItemInput `json:"items" validate:"required,min=1,dive"`
	SupplierID   string                `json:"supplierId" validate:"required"`
	SupplierName string                `json:"supplierName" validate:"required"`
	// TotalAmount is optional; when given it must equal the item sum.
	TotalAmount *float64 `json:"totalAmount"`
}

// CompletionStats summarises completions matching a StatsQuery.
type CompletionStats struct {
	TotalOrders       int64   `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	TotalItems        int     `json:"totalItems"`
}

// StatsQuery filters completionStats. Both time bounds are inclusive.
type StatsQuery struct {
	SupplierID string
	Start      *time.Time
	End        *time.Time
}

var completionSortColumns = map[string]string{
	"completedAt": "completed_at",
	"createdAt":   "created_at",
	"totalAmount": "total_amount",
	"tableNumber": "table_number",
	"orderId":     "order_id",
}

type CompletionService struct {
	db  *gorm.DB
	pub notify.Publisher
	now func() time.Time
}

func NewCompletionService(db *gorm.DB, pub notify.Publisher) *CompletionService {
	return &CompletionService{db: db, pub: pub, now: time.Now}
}

// CompleteOrder archives an explicitly submitted order. The total is always
// computed from the items.
func (s *CompletionService) CompleteOrder(ctx context.Context, in CompleteOrderInput) (*models.CompletionRecord, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	items := make([]models.LineItem, 0, len(in.Items))
	prices := make([]float64, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, models.LineItem{
			FoodName:            it.FoodName,
			TotalPrice:          *it.TotalPrice,
			SpecialInstructions: it.SpecialInstructions,
			Quantity:            it.Quantity,
		})
		prices = append(prices, *it.TotalPrice)
	}
	calculated := utils.SumMoney(prices...)

	if in.TotalAmount != nil && *in.TotalAmount != 0 && !utils.MoneyEqual(*in.TotalAmount, calculated) {
		return nil, utils.NewValidationError("totalAmount %.2f does not match the item total %.2f", *in.TotalAmount, calculated)
	}

	db := s.db.WithContext(ctx)
	var existing int64
	if err := db.Model(&models.CompletionRecord{}).Where("order_id = ?", in.OrderID).Count(&existing).Error; err != nil {
		return nil, dbError(err, "completion")
	}
	if existing > 0 {
		return nil, utils.NewConflictError("order %s has already been completed", in.OrderID)
	}

	record := models.CompletionRecord{
		OrderID:      in.OrderID,
		TableNumber:  *in.TableNumber,
		Items:        datatypes.JSONSlice[models.LineItem](items),
		SupplierID:   in.SupplierID,
		SupplierName: in.SupplierName,
		TotalAmount:  calculated,
		CompletedAt:  s.now(),
		RefundStatus: models.RefundStatusNone,
	}
	// The unique index still catches a concurrent duplicate.
	if err := db.Create(&record).Error; err != nil {
		return nil, dbError(err, "completion")
	}

	utils.InfoLogger.Printf("Order %s completed by supplier %s: total=%.2f", record.OrderID, record.SupplierID, record.TotalAmount)
	publish(s.pub, notify.Event{Type: notify.EventOrderCompleted, SupplierID: record.SupplierID, Data: record})
	return &record, nil
}

func (s *CompletionService) GetCompletion(ctx context.Context, orderID string) (*models.CompletionRecord, error) {
	var record models.CompletionRecord
	if err := s.db.WithContext(ctx).Where("order_id = ?", orderID).First(&record).Error; err != nil {
		return nil, dbError(err, "completion record")
	}
	return &record, nil
}

func (s *CompletionService) ListBySupplier(ctx context.Context, supplierID string, q PageQuery) ([]models.CompletionRecord, *utils.Pagination, error) {
	if supplierID == "" {
		return nil, nil, utils.NewValidationError("supplierId is required")
	}
	return s.list(s.db.WithContext(ctx).Where("supplier_id = ?", supplierID), q)
}

func (s *CompletionService) ListAll(ctx context.Context, q PageQuery) ([]models.CompletionRecord, *utils.Pagination, error) {
	return s.list(s.db.WithContext(ctx), q)
}

func (s *CompletionService) list(scope *gorm.DB, q PageQuery) ([]models.CompletionRecord, *utils.Pagination, error) {
	q = q.normalized()
	if q.SortBy == "" {
		q.SortBy = "completedAt"
	}
	column, ok := completionSortColumns[q.SortBy]
	if !ok {
		return nil, nil, utils.NewValidationError("cannot sort by %q", q.SortBy)
	}

	scope = scope.Model(&models.CompletionRecord{}).Session(&gorm.Session{})

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, nil, dbError(err, "completions")
	}

	records := []models.CompletionRecord{}
	err := scope.Order(fmt.Sprintf("%s %s, id %s", column, direction(q.SortOrder), direction(q.SortOrder))).
		Offset(q.offset()).
		Limit(q.Limit).
		Find(&records).Error
	if err != nil {
		return nil, nil, dbError(err, "completions")
	}
	return records, utils.NewPagination(q.Page, q.Limit, total), nil
}

// Stats aggregates completions matching the query. No match yields zeros.
func (s *CompletionService) Stats(ctx context.Context, q StatsQuery) (*CompletionStats, error) {
	if q.Start != nil && q.End != nil && q.End.Before(*q.Start) {
		return nil, utils.NewValidationError("endDate must not be before startDate")
	}

	scope := s.db.WithContext(ctx).Model(&models.CompletionRecord{})
	if q.SupplierID != "" {
		scope = scope.Where("supplier_id = ?", q.SupplierID)
	}
	if q.Start != nil {
		scope = scope.Where("completed_at >= ?", *q.Start)
	}
	if q.End != nil {
		scope = scope.Where("completed_at <= ?", *q.End)
	}

	var records []models.CompletionRecord
	if err := scope.Select("id", "items", "total_amount").Find(&records).Error; err != nil {
		return nil, dbError(err, "completions")
	}

	stats := &CompletionStats{}
	if len(records) == 0 {
		return stats, nil
	}

	revenue := decimal.Zero
	for _, r := range records {
		revenue = revenue.Add(decimal.NewFromFloat(r.TotalAmount))
		stats.TotalItems += r.ItemCount()
	}
	stats.TotalOrders = int64(len(records))
	stats.TotalRevenue = revenue.Round(2).InexactFloat64()
	stats.AverageOrderValue = revenue.Div(decimal.NewFromInt(stats.TotalOrders)).Round(2).InexactFloat64()
	return stats, nil
}
