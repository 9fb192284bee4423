package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/notify"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

func TestAssignSupplier(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	pub := &recordingPublisher{}
	suppliers := NewSupplierService(db, nil)
	dispatch := NewDispatchService(db, pub)
	dispatch.now = fixedClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	_, err := suppliers.Create(ctx, CreateSupplierInput{SupplierID: "SUP001", Name: "Ravi", Password: "secret1"})
	require.NoError(t, err)

	input := AssignSupplierInput{
		SupplierID:   "SUP001",
		SupplierName: "Ravi",
		OrderID:      "ORD-1",
		TableNumber:  intPtr(3),
		Items:        []DispatchItem{{FoodName: "Paneer Tikka", TotalPrice: floatPtr(220), Quantity: 2}},
	}
	confirmation, err := dispatch.AssignSupplier(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", confirmation.OrderID)
	require.Len(t, confirmation.Items, 1)
	assert.Equal(t, 2, confirmation.Items[0].Quantity)

	var supplier models.Supplier
	require.NoError(t, db.Where("supplier_id = ?", "SUP001").First(&supplier).Error)
	assert.Equal(t, models.SupplierBusy, supplier.Status)

	// A busy supplier can still be dispatched to.
	input.OrderID = "ORD-2"
	_, err = dispatch.AssignSupplier(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, []string{notify.EventOrderDispatched, notify.EventOrderDispatched}, pub.types())
	assert.Equal(t, "SUP001", pub.events[0].SupplierID)
}

func TestAssignSupplierErrors(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	suppliers := NewSupplierService(db, nil)
	dispatch := NewDispatchService(db, nil)

	input := AssignSupplierInput{
		SupplierID:   "GHOST",
		SupplierName: "Ghost",
		OrderID:      "ORD-1",
		TableNumber:  intPtr(1),
		Items:        []DispatchItem{{FoodName: "Pasta"}},
	}
	_, err := dispatch.AssignSupplier(ctx, input)
	requireKind(t, err, utils.KindNotFound)

	created, err := suppliers.Create(ctx, CreateSupplierInput{SupplierID: "GHOST", Name: "Ghost", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, suppliers.Deactivate(ctx, created.ID))
	_, err = dispatch.AssignSupplier(ctx, input)
	requireKind(t, err, utils.KindNotFound)

	input.Items = nil
	_, err = dispatch.AssignSupplier(ctx, input)
	requireKind(t, err, utils.KindValidation)

	var count int64
	require.NoError(t, db.Model(&models.ConfirmationRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListOrdersForSupplier(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	suppliers := NewSupplierService(db, nil)
	dispatch := NewDispatchService(db, nil)
	dispatch.now = fixedClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))

	for _, s := range []CreateSupplierInput{
		{SupplierID: "SUP001", Name: "Ravi", Password: "secret1"},
		{SupplierID: "SUP002", Name: "Meena", Password: "secret1"},
	} {
		_, err := suppliers.Create(ctx, s)
		require.NoError(t, err)
	}
	for i, s := range []struct{ id, name string }{{"SUP001", "Ravi"}, {"SUP002", "Meena"}, {"SUP001", "Ravi"}} {
		_, err := dispatch.AssignSupplier(ctx, AssignSupplierInput{
			SupplierID:   s.id,
			SupplierName: s.name,
			OrderID:      "ORD-" + string(rune('A'+i)),
			TableNumber:  intPtr(i + 1),
			Items:        []DispatchItem{{FoodName: "Chaat"}},
		})
		require.NoError(t, err)
	}

	byID, err := dispatch.ListOrdersForSupplier(ctx, " SUP:001 ")
	require.NoError(t, err)
	require.Len(t, byID, 2)
	assert.Equal(t, "ORD-C", byID[0].OrderID)
	assert.Equal(t, "ORD-A", byID[1].OrderID)

	byName, err := dispatch.ListOrdersForSupplier(ctx, "Meena")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "ORD-B", byName[0].OrderID)

	none, err := dispatch.ListOrdersForSupplier(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestNormalizeSupplierIdentifier(t *testing.T) {
	assert.Equal(t, "SUP001", NormalizeSupplierIdentifier(" SUP:001\t"))
	assert.Equal(t, "", NormalizeSupplierIdentifier(" : "))
}
