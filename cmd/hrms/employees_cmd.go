package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/controllers"
	hrmforms "github.com/iota-uz/hrms-lite/modules/hrm/presentation/forms"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/mappers"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/viewmodels"
	"github.com/iota-uz/hrms-lite/modules/hrm/services"
	"github.com/iota-uz/hrms-lite/pkg/formatting"
	"github.com/iota-uz/hrms-lite/pkg/forms"
)

type employeeListOutput struct {
	Employees []employee.Employee `json:"employees"`
	Total     int                 `json:"total"`
	Loaded    int                 `json:"loaded"`
	HasMore   bool                `json:"has_more"`
	Search    string              `json:"search,omitempty"`
}

func newEmployeesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employees",
		Aliases: []string{"employee", "emp"},
		Short:   "Manage the employee directory",
	}
	cmd.AddCommand(
		newEmployeesListCmd(c),
		newEmployeesGetCmd(c),
		newEmployeesStatsCmd(c),
		newEmployeesCreateCmd(c),
		newEmployeesDeleteCmd(c),
	)
	return cmd
}

func (c *cli) employeeService() *services.EmployeeService {
	return c.app.Service(services.EmployeeService{}).(*services.EmployeeService)
}

func newEmployeesListCmd(c *cli) *cobra.Command {
	var (
		search string
		all    bool
		pages  int
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees, newest first",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := c.ctx(cmd)
			if limit <= 0 {
				limit = c.conf.Pagination.EmployeesPageSize
			}
			ctrl := controllers.NewEmployeeController(c.app, limit)
			if err := ctrl.Load(ctx); err != nil {
				return err
			}
			if all {
				pages = 0
			}
			if all || pages > 1 {
				if err := ctrl.LoadPages(ctx, pages); err != nil {
					return err
				}
			}
			// The search only narrows what is loaded, so it runs last.
			if search != "" {
				if err := ctrl.Search(ctx, search); err != nil {
					return err
				}
			}

			props := ctrl.Props(ctx)
			out := employeeListOutput{
				Employees: ctrl.List().Visible(),
				Total:     props.List.Total,
				Loaded:    props.List.Loaded,
				HasMore:   props.List.HasMore,
				Search:    props.Search,
			}
			return c.printer.print(out, func(w io.Writer) {
				if len(props.Employees) == 0 {
					fmt.Fprintln(w, props.List.Empty)
					return
				}
				employeesTable(w, props.Employees)
				fmt.Fprintf(w, "Showing %d of %d employees", len(props.Employees), props.List.Total)
				if props.List.HasMore {
					fmt.Fprintf(w, " (%d more on the server)", props.List.Remaining)
				}
				fmt.Fprintln(w)
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter loaded employees by name, email, id or department")
	cmd.Flags().BoolVar(&all, "all", false, "Load every page")
	cmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to load")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size (default EMPLOYEES_PAGE_SIZE)")
	return cmd
}

func newEmployeesGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <employee-id>",
		Short: "Show one employee",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.employeeService().Get(c.ctx(cmd), args[0])
			if err != nil {
				return errors.Wrap(err, "get employee")
			}
			return c.printer.print(e, func(w io.Writer) {
				employeeDetails(w, mappers.EmployeeToViewModel(e))
			})
		},
	}
}

func employeeDetails(w io.Writer, e *viewmodels.Employee) {
	kvTable(w, [][2]string{
		{"ID", e.ID},
		{"Name", e.FullName},
		{"Email", e.Email},
		{"Department", e.Department},
		{"Created", e.CreatedAt},
	})
}

func newEmployeesStatsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show employee totals",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := c.employeeService().Stats(c.ctx(cmd))
			if err != nil {
				return errors.Wrap(err, "employee stats")
			}
			return c.printer.print(stats, func(w io.Writer) {
				kvTable(w, [][2]string{
					{"Total employees", fmt.Sprint(stats.TotalEmployees)},
					{"Last updated", formatting.FormatDateTime(stats.LastUpdated)},
				})
			})
		},
	}
}

func newEmployeesCreateCmd(c *cli) *cobra.Command {
	var fullName, email, department string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an employee",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := c.ctx(cmd)
			ctrl := controllers.NewEmployeeController(c.app, c.conf.Pagination.EmployeesPageSize)
			var created employee.Employee
			form := hrmforms.NewEmployeeForm(nil, func(ctx context.Context, d employee.CreateDTO) (err error) {
				created, err = ctrl.Create(ctx, &d)
				return err
			})
			for field, value := range map[string]string{
				"full_name":  fullName,
				"email":      email,
				"department": department,
			} {
				if err := form.Set(field, value); err != nil {
					return err
				}
			}
			if err := form.Submit(ctx); err != nil {
				if errors.Is(err, forms.ErrInvalid) {
					return fieldErrors(err, form.Errors())
				}
				return err
			}
			return c.printer.print(created, func(w io.Writer) {
				employeeDetails(w, mappers.EmployeeToViewModel(created))
			})
		},
	}
	cmd.Flags().StringVar(&fullName, "full-name", "", "Full name")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&department, "department", "", "Department, e.g. "+strings.Join(employee.Departments[:3], ", "))
	return cmd
}

// fieldErrors folds the per-field messages into err, sorted by field.
func fieldErrors(err error, errs map[string]string) error {
	fields := slices.Sorted(maps.Keys(errs))
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, errs[f]))
	}
	return withCode(exitValidation, fmt.Errorf("%w: %s", err, strings.Join(parts, "; ")))
}

func newEmployeesDeleteCmd(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <employee-id>",
		Short: "Delete an employee and their attendance records",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !yes && !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), fmt.Sprintf("Delete employee %s and all their attendance records?", id)) {
				c.printer.line("Aborted.")
				return nil
			}
			ctrl := controllers.NewEmployeeController(c.app, c.conf.Pagination.EmployeesPageSize)
			if err := ctrl.Delete(c.ctx(cmd), id); err != nil {
				return err
			}
			return c.printer.print(map[string]string{"deleted": id}, func(io.Writer) {})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
