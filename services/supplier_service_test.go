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

func newSupplierService(t *testing.T) (*SupplierService, *recordingPublisher) {
	pub := &recordingPublisher{}
	svc := NewSupplierService(setupTestDB(t), pub)
	svc.now = fixedClock(day1)
	return svc, pub
}

func TestCreateSupplier(t *testing.T) {
	svc, _ := newSupplierService(t)
	ctx := context.Background()

	supplier, err := svc.Create(ctx, CreateSupplierInput{SupplierID: "SUP001", Name: "Ravi", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.AttendancePresent, supplier.Attendance)
	assert.Equal(t, models.SupplierAvailable, supplier.Status)
	assert.True(t, supplier.IsActive)
	assert.NotEqual(t, "secret1", supplier.Password)

	_, err = svc.Create(ctx, CreateSupplierInput{SupplierID: "SUP001", Name: "Other", Password: "secret1"})
	requireKind(t, err, utils.KindConflict)

	absent, err := svc.Create(ctx, CreateSupplierInput{SupplierID: "SUP002", Name: "Meena", Password: "secret1", Attendance: "Absent", Status: "Busy"})
	require.NoError(t, err)
	assert.Equal(t, models.SupplierAbsent, absent.Status)

	_, err = svc.Create(ctx, CreateSupplierInput{SupplierID: "SUP003", Name: "Short", Password: "123"})
	requireKind(t, err, utils.KindValidation)
}

func TestSupplierLogin(t *testing.T) {
	utils.ConfigureJWT("test-secret", time.Hour)
	svc, _ := newSupplierService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSupplierInput{SupplierID: "SUP001", Name: "Ravi", Password: "secret1"})
	require.NoError(t, err)

	result, err := svc.VerifyLogin(ctx, "SUP001", "secret1")
	require.NoError(t, err)
	require.NotNil(t, result.Supplier.LastLogin)
	assert.Equal(t, day1, *result.Supplier.LastLogin)

	claims, err := utils.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, utils.RoleSupplier, claims.Role)
	assert.Equal(t, "SUP001", claims.Handle)

	_, err = svc.VerifyLogin(ctx, "SUP001", "wrong-password")
	requireKind(t, err, utils.KindAuth)

	_, err = svc.VerifyLogin(ctx, "SUP999", "secret1")
	requireKind(t, err, utils.KindNotFound)

	_, err = svc.VerifyLogin(ctx, "", "")
	requireKind(t, err, utils.KindValidation)

	_, err = svc.UpdateAttendance(ctx, created.ID, UpdateAttendanceInput{Attendance: models.AttendanceAbsent})
	require.NoError(t, err)
	_, err = svc.VerifyLogin(ctx, "SUP001", "secret1")
	requireKind(t, err, utils.KindForbidden)

	require.NoError(t, svc.Deactivate(ctx, created.ID))
	_, err = svc.VerifyLogin(ctx, "SUP001", "secret1")
	requireKind(t, err, utils.KindNotFound)
}

func TestUpdateSupplier(t *testing.T) {
	utils.ConfigureJWT("test-secret", time.Hour)
	svc, pub := newSupplierService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSupplierInput{SupplierID: "SUP001", Name: "Ravi", Password: "secret1"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateSupplierInput{Name: "Ravi K", Password: "newpass1"}, false)
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", updated.Name)
	assert.Equal(t, "SUP001", updated.SupplierID)
	assert.Equal(t, models.AttendancePresent, updated.Attendance)

	_, err = svc.VerifyLogin(ctx, "SUP001", "newpass1")
	assert.NoError(t, err)

	updated, err = svc.Update(ctx, created.ID, UpdateSupplierInput{Attendance: "Absent"}, true)
	require.NoError(t, err)
	assert.Equal(t, models.SupplierAbsent, updated.Status)

	_, err = svc.Update(ctx, 999, UpdateSupplierInput{Name: "x"}, false)
	requireKind(t, err, utils.KindNotFound)

	_, err = svc.Update(ctx, created.ID, UpdateSupplierInput{Status: "Sleeping"}, false)
	requireKind(t, err, utils.KindValidation)

	assert.Equal(t, []string{notify.EventSupplierStatus, notify.EventSupplierStatus}, pub.types())
}

func TestUpdateAttendance(t *testing.T) {
	svc, _ := newSupplierService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSupplierInput{SupplierID: "SUP001", Name: "Ravi", Password: "secret1"})
	require.NoError(t, err)

	s, err := svc.UpdateAttendance(ctx, created.ID, UpdateAttendanceInput{Attendance: "Present", Status: "Busy"})
	require.NoError(t, err)
	assert.Equal(t, models.SupplierBusy, s.Status)

	s, err = svc.UpdateAttendance(ctx, created.ID, UpdateAttendanceInput{Attendance: "Absent", Status: "Busy"})
	require.NoError(t, err)
	assert.Equal(t, models.SupplierAbsent, s.Status)

	s, err = svc.UpdateAttendance(ctx, created.ID, UpdateAttendanceInput{Attendance: "Present"})
	require.NoError(t, err)
	assert.Equal(t, models.SupplierAvailable, s.Status)

	_, err = svc.UpdateAttendance(ctx, created.ID, UpdateAttendanceInput{Attendance: "Maybe"})
	requireKind(t, err, utils.KindValidation)

	_, err = svc.UpdateAttendance(ctx, 999, UpdateAttendanceInput{Attendance: "Present"})
	requireKind(t, err, utils.KindNotFound)
}

func TestSupplierListAndDelete(t *testing.T) {
	svc, _ := newSupplierService(t)
	ctx := context.Background()

	var ids []uint
	for _, in := range []CreateSupplierInput{
		{SupplierID: "SUP001", Name: "Ravi", Password: "secret1"},
		{SupplierID: "SUP002", Name: "Meena", Password: "secret1", Attendance: "Absent"},
		{SupplierID: "SUP003", Name: "Arjun", Password: "secret1"},
	} {
		s, err := svc.Create(ctx, in)
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}

	all, err := svc.List(ctx, SupplierFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Arjun", all[0].Name)

	present, err := svc.List(ctx, SupplierFilter{Attendance: "Present"})
	require.NoError(t, err)
	assert.Len(t, present, 2)

	_, err = svc.List(ctx, SupplierFilter{Attendance: "Late"})
	requireKind(t, err, utils.KindValidation)

	require.NoError(t, svc.Deactivate(ctx, ids[0]))
	requireKind(t, svc.Deactivate(ctx, ids[0]), utils.KindNotFound)

	active, err := svc.List(ctx, SupplierFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	all, err = svc.List(ctx, SupplierFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = svc.Update(ctx, ids[0], UpdateSupplierInput{Name: "x"}, true)
	requireKind(t, err, utils.KindNotFound)

	require.NoError(t, svc.Delete(ctx, ids[2]))
	requireKind(t, svc.Delete(ctx, ids[2]), utils.KindNotFound)

	all, err = svc.List(ctx, SupplierFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestResetAttendance(t *testing.T) {
	svc, _ := newSupplierService(t)
	ctx := context.Background()

	for _, in := range []CreateSupplierInput{
		{SupplierID: "SUP001", Name: "Ravi", Password: "secret1"},
		{SupplierID: "SUP002", Name: "Meena", Password: "secret1", Attendance: "Absent"},
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	n, err := svc.ResetAttendance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	present, err := svc.List(ctx, SupplierFilter{Attendance: "Present"})
	require.NoError(t, err)
	assert.Empty(t, present)
}

func TestAttendanceScheduler(t *testing.T) {
	svc, _ := newSupplierService(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, CreateSupplierInput{SupplierID: "SUP001", Name: "Ravi", Password: "secret1"})
	require.NoError(t, err)

	_, err = NewAttendanceScheduler(svc, "not a cron")
	assert.Error(t, err)

	scheduler, err := NewAttendanceScheduler(svc, "0 4 * * *")
	require.NoError(t, err)
	scheduler.Start()
	scheduler.run()
	require.NoError(t, scheduler.Stop())

	absent, err := svc.List(ctx, SupplierFilter{Attendance: "Absent"})
	require.NoError(t, err)
	assert.Len(t, absent, 1)
}
