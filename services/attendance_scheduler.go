package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

// AttendanceScheduler resets supplier attendance on a cron schedule so every
// supplier has to check in again for the new day.
type AttendanceScheduler struct {
	suppliers *SupplierService
	scheduler gocron.Scheduler
}

func NewAttendanceScheduler(suppliers *SupplierService, cronExpr string) (*AttendanceScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	a := &AttendanceScheduler{suppliers: suppliers, scheduler: scheduler}
	_, err = scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(a.run),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		scheduler.Shutdown()
		return nil, fmt.Errorf("schedule attendance reset %q: %w", cronExpr, err)
	}
	return a, nil
}

func (a *AttendanceScheduler) Start() {
	a.scheduler.Start()
	utils.InfoLogger.Println("Attendance reset scheduler started")
}

func (a *AttendanceScheduler) Stop() error {
	return a.scheduler.Shutdown()
}

func (a *AttendanceScheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := a.suppliers.ResetAttendance(ctx)
	if err != nil {
		utils.ErrorLogger.Errorf("Attendance reset failed: %v", err)
		return
	}
	utils.InfoLogger.Printf("Attendance reset: %d supplier(s) marked absent", n)
}
