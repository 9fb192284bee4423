package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-ordering/notify"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageQuery is the paging and ordering input shared by list operations.
type PageQuery struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

func (q PageQuery) normalized() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	return q
}

func (q PageQuery) offset() int {
	return (q.Page - 1) * q.Limit
}

// direction maps "desc" to descending and anything else to ascending.
func direction(sortOrder string) string {
	if sortOrder == "desc" {
		return "DESC"
	}
	return "ASC"
}

// dbError converts a gorm error into an AppError. what names the resource
// in not-found and conflict messages.
func dbError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return utils.NewNotFoundError("%s not found", what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return utils.NewConflictError("%s already exists", what)
	default:
		return utils.NewInternalError(fmt.Sprintf("failed to access %s", what), err)
	}
}

// publish delivers evt without failing the caller; delivery is best effort.
func publish(pub notify.Publisher, evt notify.Event) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := pub.Publish(ctx, evt); err != nil {
		utils.ErrorLogger.Warnf("Failed to publish %s event: %v", evt.Type, err)
	}
}
