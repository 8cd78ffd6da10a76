package controllers

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/locales"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/components"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/export"
	hrmforms "github.com/iota-uz/hrms-lite/modules/hrm/presentation/forms"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/mappers"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/viewmodels"
	"github.com/iota-uz/hrms-lite/modules/hrm/services"
	"github.com/iota-uz/hrms-lite/pkg/application"
	"github.com/iota-uz/hrms-lite/pkg/listing"
)

type AttendanceOptions struct {
	PageSize       int
	PickerPageSize int
	// Now defaults to time.Now.
	Now func() time.Time
}

// AttendanceController is the attendance screen: the filtered record list,
// its filter panel, the mark form and export.
type AttendanceController struct {
	app               application.Application
	attendanceService *services.AttendanceService
	employeeService   *services.EmployeeService
	list              *listing.List[attendance.Record]
	filter            *components.AttendanceFilter
	pickerPageSize    int
	now               func() time.Time
}

func NewAttendanceController(app application.Application, opts AttendanceOptions) *AttendanceController {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	c := &AttendanceController{
		app:               app,
		attendanceService: app.Service(services.AttendanceService{}).(*services.AttendanceService),
		employeeService:   app.Service(services.EmployeeService{}).(*services.EmployeeService),
		pickerPageSize:    opts.PickerPageSize,
		now:               now,
	}
	c.list = listing.New(c.fetch, listing.Options[attendance.Record]{
		PageSize: opts.PageSize,
		Match:    attendance.MatchesSearch,
	})
	c.filter = components.NewAttendanceFilter(
		components.NewEmployeePicker(c.employeeService, opts.PickerPageSize),
		c.ApplyFilter,
		now,
	)
	return c
}

func (c *AttendanceController) fetch(ctx context.Context, req listing.Request) (*listing.Page[attendance.Record], error) {
	page, err := c.attendanceService.List(ctx, req.Skip, req.Limit, attendance.FilterFromValues(req.Params))
	if err != nil {
		return nil, err
	}
	return &listing.Page[attendance.Record]{Items: page.Attendance, Pagination: page.Pagination}, nil
}

func (c *AttendanceController) List() *listing.List[attendance.Record] {
	return c.list
}

func (c *AttendanceController) Filter() *components.AttendanceFilter {
	return c.filter
}

// Load fetches the first page under the current filter. It is also the retry.
func (c *AttendanceController) Load(ctx context.Context) error {
	if err := c.list.Refresh(ctx); err != nil {
		reportFailure(ctx, c.app, "attendance.load", err, "Attendance.LoadFailed")
		return errors.Wrap(err, "load attendance")
	}
	return nil
}

func (c *AttendanceController) LoadMore(ctx context.Context) (int, error) {
	before := c.list.Len()
	if _, err := c.list.LoadMore(ctx); err != nil {
		reportFailure(ctx, c.app, "attendance.load_more", err, "Attendance.LoadMoreFailed")
		return 0, errors.Wrap(err, "load more attendance")
	}
	return c.list.Len() - before, nil
}

func (c *AttendanceController) LoadPages(ctx context.Context, pages int) error {
	if err := c.list.LoadPages(ctx, pages); err != nil {
		reportFailure(ctx, c.app, "attendance.load_more", err, "Attendance.LoadMoreFailed")
		return errors.Wrap(err, "load attendance pages")
	}
	return nil
}

// ApplyFilter reloads the list from the first page under f. The filter
// panel calls it on Apply and Reset.
func (c *AttendanceController) ApplyFilter(ctx context.Context, f attendance.Filter) error {
	if err := c.list.SetParams(ctx, f.Values()); err != nil {
		reportFailure(ctx, c.app, "attendance.load", err, "Attendance.LoadFailed")
		return errors.Wrap(err, "filter attendance")
	}
	return nil
}

// Mark records attendance and puts the new record at the head of the list,
// whether or not it matches the current filter.
func (c *AttendanceController) Mark(ctx context.Context, data *attendance.MarkDTO) (attendance.Record, error) {
	rec, err := c.attendanceService.Mark(ctx, data)
	if err != nil {
		reportFailure(ctx, c.app, "attendance.mark", err, "Attendance.MarkFailed")
		return rec, errors.Wrap(err, "mark attendance")
	}
	c.list.Prepend(rec)
	c.app.Notifier().Success(locales.T(ctx, "Attendance.Marked", nil))
	return rec, nil
}

// NewForm returns a mark form with its own employee picker.
func (c *AttendanceController) NewForm() *hrmforms.AttendanceForm {
	picker := components.NewEmployeePicker(c.employeeService, c.pickerPageSize)
	return hrmforms.NewAttendanceForm(picker, c.now, func(ctx context.Context, d attendance.MarkDTO) error {
		_, err := c.Mark(ctx, &d)
		return err
	})
}

// Summary counts the loaded records.
func (c *AttendanceController) Summary() attendance.Summary {
	return attendance.Summarize(c.list.Items())
}

// Export writes the loaded records to dir without fetching anything and
// returns the file path.
func (c *AttendanceController) Export(ctx context.Context, dir string, format export.Format) (string, error) {
	records := c.list.Items()
	if len(records) == 0 {
		c.app.Notifier().Info(locales.T(ctx, "Attendance.NothingToExport", nil))
		return "", export.ErrNoRecords
	}
	path, err := export.ToFile(dir, c.now(), format, records)
	if err != nil {
		return "", errors.Wrap(err, "export attendance")
	}
	c.app.Notifier().Success(locales.T(ctx, "Attendance.Exported", nil))
	return path, nil
}

// EmployeeHistory is one employee's records with the server-side summary.
func (c *AttendanceController) EmployeeHistory(ctx context.Context, employeeID string, skip, limit int) (*viewmodels.EmployeeHistoryProps, error) {
	history, err := c.attendanceService.ForEmployee(ctx, employeeID, skip, limit)
	if err != nil {
		reportFailure(ctx, c.app, "attendance.employee", err, "Attendance.LoadFailed")
		return nil, errors.Wrap(err, "load employee attendance")
	}
	return mappers.EmployeeHistoryToViewModel(history), nil
}

func (c *AttendanceController) Props(ctx context.Context) *viewmodels.AttendancePageProps {
	s := c.list.Snapshot()
	applied := attendance.FilterFromValues(s.Params)
	emptyKey := "Attendance.Empty"
	if applied.Active() {
		emptyKey = "Attendance.EmptyFiltered"
	}
	filterProps := viewmodels.AttendanceFilterProps{
		EmployeeID: applied.EmployeeID,
		Date:       applied.Date,
		Active:     applied.Active(),
	}
	if e, ok := c.filter.Picker().Selected(); ok && e.EmployeeID == applied.EmployeeID {
		filterProps.EmployeeName = e.FullName
	}
	return &viewmodels.AttendancePageProps{
		Records:   mappers.MapViewModels(s.Items, mappers.RecordToViewModel),
		Summary:   mappers.SummaryToViewModel(attendance.Summarize(s.Items)),
		Filter:    filterProps,
		List:      listState(ctx, s, len(s.Items), emptyKey, "Attendance.LoadFailed"),
		CanExport: len(s.Items) > 0,
	}
}
