package controllers

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/modules/hrm/locales"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/mappers"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/viewmodels"
	"github.com/iota-uz/hrms-lite/modules/hrm/services"
	"github.com/iota-uz/hrms-lite/pkg/application"
	"github.com/iota-uz/hrms-lite/pkg/formatting"
)

// LimitOptions are the selectable sizes of the recent lists.
var LimitOptions = []int{3, 5, 10, 15}

const DefaultLimit = 5

// ParseLimit accepts one of LimitOptions and falls back to DefaultLimit.
func ParseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !slices.Contains(LimitOptions, n) {
		return DefaultLimit
	}
	return n
}

type DashboardController struct {
	app               application.Application
	employeeService   *services.EmployeeService
	attendanceService *services.AttendanceService
}

func NewDashboardController(app application.Application) *DashboardController {
	return &DashboardController{
		app:               app,
		employeeService:   app.Service(services.EmployeeService{}).(*services.EmployeeService),
		attendanceService: app.Service(services.AttendanceService{}).(*services.AttendanceService),
	}
}

// Load reads both stats and the first limit employees and records at once.
// Any failed read fails the whole dashboard.
func (c *DashboardController) Load(ctx context.Context, limit int) (*viewmodels.DashboardProps, error) {
	if !slices.Contains(LimitOptions, limit) {
		limit = DefaultLimit
	}
	var (
		empStats  employee.Stats
		attStats  attendance.Stats
		employees *employee.Page
		records   *attendance.Page
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		empStats, err = c.employeeService.Stats(gctx)
		return err
	})
	g.Go(func() (err error) {
		attStats, err = c.attendanceService.Stats(gctx)
		return err
	})
	g.Go(func() (err error) {
		employees, err = c.employeeService.List(gctx, 0, limit)
		return err
	})
	g.Go(func() (err error) {
		records, err = c.attendanceService.List(gctx, 0, limit, attendance.Filter{})
		return err
	})
	if err := g.Wait(); err != nil {
		reportFailure(ctx, c.app, "dashboard.load", err, "Dashboard.LoadFailed")
		return nil, errors.Wrap(err, "load dashboard")
	}

	props := &viewmodels.DashboardProps{
		TotalEmployees:   empStats.TotalEmployees,
		TotalAttendance:  attStats.TotalAttendance,
		TodayPresent:     attStats.TodayPresent,
		TodayAbsent:      attStats.TodayAbsent,
		LastUpdated:      formatting.FormatDateTime(attStats.LastUpdated),
		Limit:            limit,
		RecentEmployees:  mappers.MapViewModels(employees.Employees, mappers.EmployeeToViewModel),
		RecentAttendance: mappers.MapViewModels(records.Attendance, mappers.RecordToViewModel),
	}
	if len(props.RecentEmployees) == 0 {
		props.EmptyEmployees = locales.T(ctx, "Dashboard.NoRecentEmployees", nil)
	}
	if len(props.RecentAttendance) == 0 {
		props.EmptyAttendance = locales.T(ctx, "Dashboard.NoRecentAttendance", nil)
	}
	return props, nil
}
