package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/locales"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/components"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/controllers"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/export"
	hrmforms "github.com/iota-uz/hrms-lite/modules/hrm/presentation/forms"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/mappers"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/viewmodels"
	"github.com/iota-uz/hrms-lite/modules/hrm/services"
	"github.com/iota-uz/hrms-lite/pkg/constants"
	"github.com/iota-uz/hrms-lite/pkg/formatting"
	"github.com/iota-uz/hrms-lite/pkg/forms"
)

type attendanceListOutput struct {
	Attendance []attendance.Record `json:"attendance"`
	Summary    attendance.Summary  `json:"summary"`
	Filter     filterOutput        `json:"filter"`
	Total      int                 `json:"total"`
	Loaded     int                 `json:"loaded"`
	HasMore    bool                `json:"has_more"`
}

type filterOutput struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Date       string `json:"date,omitempty"`
}

// filterFlags are the attendance list filters shared by list and export.
type filterFlags struct {
	employeeID   string
	employeeName string
	date         string
	today        bool
	yesterday    bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.employeeID, "employee-id", "", "Only records of this employee")
	cmd.Flags().StringVar(&f.employeeName, "employee-name", "", "Only records of the employee best matching this name")
	cmd.Flags().StringVar(&f.date, "date", "", "Only records of this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.today, "today", false, "Only records of today")
	cmd.Flags().BoolVar(&f.yesterday, "yesterday", false, "Only records of yesterday")
	cmd.MarkFlagsMutuallyExclusive("employee-id", "employee-name")
	cmd.MarkFlagsMutuallyExclusive("date", "today", "yesterday")
}

// apply fills the filter panel from the flags and loads the first page.
func (f *filterFlags) apply(ctx context.Context, ctrl *controllers.AttendanceController) error {
	panel := ctrl.Filter()
	switch {
	case f.employeeName != "":
		id, err := resolveEmployee(ctx, panel.Picker(), f.employeeName)
		if err != nil {
			return err
		}
		panel.SelectEmployee(id)
	case f.employeeID != "":
		if err := panel.Set("employee_id", f.employeeID); err != nil {
			return err
		}
	}
	switch {
	case f.today:
		panel.Today()
	case f.yesterday:
		panel.Yesterday()
	case f.date != "":
		if _, err := time.Parse(constants.DateLayout, f.date); err != nil {
			return withCode(exitUsage, fmt.Errorf("invalid --date %q, want YYYY-MM-DD", f.date))
		}
		if err := panel.Set("date", f.date); err != nil {
			return err
		}
	}
	if !panel.Active() {
		return ctrl.Load(ctx)
	}
	return panel.Apply(ctx)
}

// resolveEmployee loads every employee into the picker and returns the id of
// the best name match. Several equally plausible matches are an error.
func resolveEmployee(ctx context.Context, picker *components.EmployeePicker, name string) (string, error) {
	if err := picker.LoadAll(ctx); err != nil {
		return "", errors.Wrap(err, "load employees")
	}
	matches := picker.Suggest(name, 5)
	if len(matches) == 0 {
		return "", withCode(exitUsage, fmt.Errorf("no employee matches %q", name))
	}
	best := matches[0]
	if len(matches) > 1 && !strings.EqualFold(best.FullName, strings.TrimSpace(name)) {
		candidates := make([]string, len(matches))
		for i, e := range matches {
			candidates[i] = fmt.Sprintf("%s (%s)", e.FullName, e.EmployeeID)
		}
		return "", withCode(exitUsage, fmt.Errorf("%q matches several employees: %s", name, strings.Join(candidates, ", ")))
	}
	return best.EmployeeID, nil
}

func newAttendanceCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "attendance",
		Aliases: []string{"att"},
		Short:   "Mark, browse and export attendance",
	}
	cmd.AddCommand(
		newAttendanceListCmd(c),
		newAttendanceMarkCmd(c),
		newAttendanceStatsCmd(c),
		newAttendanceEmployeeCmd(c),
		newAttendanceExportCmd(c),
	)
	return cmd
}

func (c *cli) attendanceController(limit int) *controllers.AttendanceController {
	if limit <= 0 {
		limit = c.conf.Pagination.AttendancePageSize
	}
	return controllers.NewAttendanceController(c.app, controllers.AttendanceOptions{
		PageSize:       limit,
		PickerPageSize: c.conf.Pagination.PickerPageSize,
		Now:            c.now,
	})
}

// loadPages extends the first page: all wins over pages.
func loadPages(ctx context.Context, ctrl *controllers.AttendanceController, all bool, pages int) error {
	switch {
	case all:
		return ctrl.LoadPages(ctx, 0)
	case pages > 1:
		return ctrl.LoadPages(ctx, pages)
	default:
		return nil
	}
}

func newAttendanceListCmd(c *cli) *cobra.Command {
	var (
		filter filterFlags
		all    bool
		pages  int
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List attendance records, newest first",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := c.ctx(cmd)
			ctrl := c.attendanceController(limit)
			if err := filter.apply(ctx, ctrl); err != nil {
				return err
			}
			if err := loadPages(ctx, ctrl, all, pages); err != nil {
				return err
			}

			props := ctrl.Props(ctx)
			out := attendanceListOutput{
				Attendance: ctrl.List().Items(),
				Summary:    ctrl.Summary(),
				Filter:     filterOutput(ctrl.Filter().Applied()),
				Total:      props.List.Total,
				Loaded:     props.List.Loaded,
				HasMore:    props.List.HasMore,
			}
			return c.printer.print(out, func(w io.Writer) {
				attendancePage(w, props)
			})
		},
	}
	filter.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "Load every page")
	cmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to load")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (default ATTENDANCE_PAGE_SIZE)")
	return cmd
}

func attendancePage(w io.Writer, props *viewmodels.AttendancePageProps) {
	if props.Filter.Active {
		parts := make([]string, 0, 2)
		if props.Filter.EmployeeID != "" {
			who := props.Filter.EmployeeID
			if props.Filter.EmployeeName != "" {
				who = fmt.Sprintf("%s (%s)", props.Filter.EmployeeName, who)
			}
			parts = append(parts, "employee "+who)
		}
		if props.Filter.Date != "" {
			parts = append(parts, "date "+props.Filter.Date)
		}
		fmt.Fprintf(w, "Filter: %s\n", strings.Join(parts, ", "))
	}
	if len(props.Records) == 0 {
		fmt.Fprintln(w, props.List.Empty)
		return
	}
	recordsTable(w, props.Records)
	s := props.Summary
	fmt.Fprintf(w, "Showing %d of %d records. Present %d, absent %d (%s present)\n",
		s.Total, props.List.Total, s.Present, s.Absent, s.PresentPercentage)
}

func newAttendanceMarkCmd(c *cli) *cobra.Command {
	var employeeID, employeeName, date, status string
	cmd := &cobra.Command{
		Use:   "mark",
		Short: "Mark an employee present or absent",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := c.ctx(cmd)
			ctrl := c.attendanceController(0)
			var marked attendance.Record
			picker := components.NewEmployeePicker(c.employeeService(), c.conf.Pagination.PickerPageSize)
			form := hrmforms.NewAttendanceForm(picker, c.now, func(ctx context.Context, d attendance.MarkDTO) (err error) {
				marked, err = ctrl.Mark(ctx, &d)
				return err
			})

			if employeeName != "" {
				id, err := resolveEmployee(ctx, form.Picker(), employeeName)
				if err != nil {
					return err
				}
				if !form.SelectEmployee(id) {
					return fmt.Errorf("employee %s is not loaded", id)
				}
			} else if err := form.Set("employee_id", employeeID); err != nil {
				return err
			}
			if date != "" {
				if err := form.Set("date", date); err != nil {
					return err
				}
			}
			if status != "" {
				if err := form.Set("status", strings.ToLower(status)); err != nil {
					return err
				}
			}
			if err := form.Submit(ctx); err != nil {
				if errors.Is(err, forms.ErrInvalid) {
					return fieldErrors(err, form.Errors())
				}
				return err
			}
			return c.printer.print(marked, func(w io.Writer) {
				recordsTable(w, []*viewmodels.AttendanceRecord{mappers.RecordToViewModel(marked)})
			})
		},
	}
	cmd.Flags().StringVar(&employeeID, "employee-id", "", "Employee to mark")
	cmd.Flags().StringVar(&employeeName, "employee-name", "", "Employee to mark, by name")
	cmd.Flags().StringVar(&date, "date", "", "Date to mark (default today)")
	cmd.Flags().StringVar(&status, "status", "", "present or absent (default present)")
	cmd.MarkFlagsMutuallyExclusive("employee-id", "employee-name")
	cmd.MarkFlagsOneRequired("employee-id", "employee-name")
	return cmd
}

func (c *cli) attendanceService() *services.AttendanceService {
	return c.app.Service(services.AttendanceService{}).(*services.AttendanceService)
}

func newAttendanceStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show attendance totals and today's counts",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.attendanceService().Stats(c.ctx(cmd))
			if err != nil {
				return errors.Wrap(err, "attendance stats")
			}
			return c.printer.print(stats, func(w io.Writer) {
				kvTable(w, [][2]string{
					{"Total records", fmt.Sprint(stats.TotalAttendance)},
					{"Marked today", fmt.Sprint(stats.TodayTotal)},
					{"Present today", fmt.Sprint(stats.TodayPresent)},
					{"Absent today", fmt.Sprint(stats.TodayAbsent)},
					{"Last updated", formatting.FormatDateTime(stats.LastUpdated)},
				})
			})
		},
	}
}

func newAttendanceEmployeeCmd(c *cli) *cobra.Command {
	var skip, limit int
	cmd := &cobra.Command{
		Use:   "employee <employee-id>",
		Short: "Show one employee's attendance history and summary",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := c.ctx(cmd)
			if limit <= 0 {
				limit = c.conf.Pagination.AttendancePageSize
			}
			history, err := c.attendanceService().ForEmployee(ctx, args[0], skip, limit)
			if err != nil {
				return errors.Wrap(err, "employee attendance")
			}
			props := mappers.EmployeeHistoryToViewModel(history)
			return c.printer.print(history, func(w io.Writer) {
				employeeDetails(w, props.Employee)
				s := props.Summary
				fmt.Fprintf(w, "Days %d, present %d, absent %d (%s present)\n", s.Total, s.Present, s.Absent, s.PresentPercentage)
				if len(props.Records) == 0 {
					fmt.Fprintln(w, locales.T(ctx, "Attendance.Empty", nil))
					return
				}
				recordsTable(w, props.Records)
				if props.HasMore {
					fmt.Fprintf(w, "More records: --skip %d\n", skip+len(props.Records))
				}
			})
		},
	}
	cmd.Flags().IntVar(&skip, "skip", 0, "Records to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "Records to show (default ATTENDANCE_PAGE_SIZE)")
	return cmd
}

func newAttendanceExportCmd(c *cli) *cobra.Command {
	var (
		filter filterFlags
		format string
		dir    string
		pages  int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered attendance records to CSV or XLSX",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := c.ctx(cmd)
			f, err := export.ParseFormat(format)
			if err != nil {
				return withCode(exitUsage, err)
			}
			ctrl := c.attendanceController(0)
			if err := filter.apply(ctx, ctrl); err != nil {
				return err
			}
			// Export writes what is loaded; by default that is everything.
			if err := loadPages(ctx, ctrl, pages <= 0, pages); err != nil {
				return err
			}
			path, err := ctrl.Export(ctx, dir, f)
			if errors.Is(err, export.ErrNoRecords) {
				return nil
			}
			if err != nil {
				return err
			}
			return c.printer.print(map[string]any{"path": path, "records": ctrl.List().Len()}, func(w io.Writer) {
				fmt.Fprintln(w, path)
			})
		},
	}
	filter.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", string(export.FormatCSV), "File format: csv or xlsx")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to write the file to")
	cmd.Flags().IntVar(&pages, "pages", 0, "Number of pages to export (default all)")
	return cmd
}
