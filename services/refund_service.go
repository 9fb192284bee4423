package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/notify"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"gorm.io/gorm"
)

type ProcessRefundInput struct {
	OrderID      string   `json:"orderId" validate:"required"`
	PaymentID    string   `json:"paymentId" validate:"required"`
	RefundAmount *float64 `json:"refundAmount" validate:"required,gt=0"`
}

// RefundService records refunds against completion records. Money is not
// moved here; the payment reference comes from the caller.
type RefundService struct {
	db  *gorm.DB
	pub notify.Publisher
	now func() time.Time
}

func NewRefundService(db *gorm.DB, pub notify.Publisher) *RefundService {
	return &RefundService{db: db, pub: pub, now: time.Now}
}

// ProcessRefund moves a completion to the processed refund state. A record
// that is already processed is rejected with a conflict.
func (s *RefundService) ProcessRefund(ctx context.Context, in ProcessRefundInput) (*models.CompletionRecord, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	var record models.CompletionRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", in.OrderID).First(&record).Error; err != nil {
			return dbError(err, "completion record")
		}
		if record.RefundStatus == models.RefundStatusProcessed {
			return utils.NewConflictError("refund for order %s has already been processed", in.OrderID)
		}
		if decimal.NewFromFloat(*in.RefundAmount).GreaterThan(decimal.NewFromFloat(record.TotalAmount)) {
			return utils.NewValidationError("refundAmount %.2f exceeds the order total %.2f", *in.RefundAmount, record.TotalAmount)
		}

		refundedAt := s.now()
		res := tx.Model(&models.CompletionRecord{}).
			Where("id = ? AND refund_status <> ?", record.ID, models.RefundStatusProcessed).
			Updates(map[string]interface{}{
				"refund_status":     models.RefundStatusProcessed,
				"refund_payment_id": in.PaymentID,
				"refund_amount":     *in.RefundAmount,
				"refunded_at":       refundedAt,
			})
		if res.Error != nil {
			return dbError(res.Error, "completion record")
		}
		if res.RowsAffected == 0 {
			return utils.NewConflictError("refund for order %s has already been processed", in.OrderID)
		}

		record.RefundStatus = models.RefundStatusProcessed
		record.RefundPaymentID = in.PaymentID
		record.RefundAmount = *in.RefundAmount
		record.RefundedAt = &refundedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Refund processed for order %s: payment=%s amount=%.2f", record.OrderID, record.RefundPaymentID, record.RefundAmount)
	publish(s.pub, notify.Event{Type: notify.EventRefundProcessed, Data: record})
	return &record, nil
}

// ListRefunds pages through processed refunds, most recent first.
func (s *RefundService) ListRefunds(ctx context.Context, page, limit int) ([]models.CompletionRecord, *utils.Pagination, error) {
	q := PageQuery{Page: page, Limit: limit}.normalized()
	scope := s.db.WithContext(ctx).Model(&models.CompletionRecord{}).Where("refund_status = ?", models.RefundStatusProcessed).Session(&gorm.Session{})

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, nil, dbError(err, "refunds")
	}

	records := []models.CompletionRecord{}
	if err := scope.Order("refunded_at DESC, id DESC").Offset(q.offset()).Limit(q.Limit).Find(&records).Error; err != nil {
		return nil, nil, dbError(err, "refunds")
	}
	return records, utils.NewPagination(q.Page, q.Limit, total), nil
}
