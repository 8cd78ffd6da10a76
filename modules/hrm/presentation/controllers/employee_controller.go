package controllers

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/modules/hrm/locales"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/components"
	hrmforms "github.com/iota-uz/hrms-lite/modules/hrm/presentation/forms"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/mappers"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/viewmodels"
	"github.com/iota-uz/hrms-lite/modules/hrm/services"
	"github.com/iota-uz/hrms-lite/pkg/application"
	"github.com/iota-uz/hrms-lite/pkg/listing"
)

// EmployeeController is the employee directory screen: a paginated list with
// a client-side search, a create form and delete.
type EmployeeController struct {
	app             application.Application
	employeeService *services.EmployeeService
	list            *listing.List[employee.Employee]
}

func NewEmployeeController(app application.Application, pageSize int) *EmployeeController {
	svc := app.Service(services.EmployeeService{}).(*services.EmployeeService)
	return &EmployeeController{
		app:             app,
		employeeService: svc,
		list: listing.New(components.EmployeeFetcher(svc), listing.Options[employee.Employee]{
			PageSize:       pageSize,
			Match:          employee.MatchesSearch,
			RefreshOnClear: true,
		}),
	}
}

func (c *EmployeeController) List() *listing.List[employee.Employee] {
	return c.list
}

// Load fetches the first page. It is also the retry after a failed load.
func (c *EmployeeController) Load(ctx context.Context) error {
	if err := c.list.Refresh(ctx); err != nil {
		reportFailure(ctx, c.app, "employees.load", err, "Employees.LoadFailed")
		return errors.Wrap(err, "load employees")
	}
	return nil
}

// LoadMore appends the next page and returns how many employees it added.
func (c *EmployeeController) LoadMore(ctx context.Context) (int, error) {
	before := c.list.Len()
	ok, err := c.list.LoadMore(ctx)
	if err != nil {
		reportFailure(ctx, c.app, "employees.load_more", err, "Employees.LoadMoreFailed")
		return 0, errors.Wrap(err, "load more employees")
	}
	if !ok {
		return 0, nil
	}
	added := c.list.Len() - before
	c.app.Notifier().Success(locales.T(ctx, "Employees.LoadedMore", map[string]any{"Count": added}))
	return added, nil
}

// LoadPages keeps loading until pages pages are held; pages <= 0 loads all.
func (c *EmployeeController) LoadPages(ctx context.Context, pages int) error {
	if err := c.list.LoadPages(ctx, pages); err != nil {
		reportFailure(ctx, c.app, "employees.load_more", err, "Employees.LoadMoreFailed")
		return errors.Wrap(err, "load employee pages")
	}
	return nil
}

// Search narrows the loaded employees. Clearing the term reloads page one.
func (c *EmployeeController) Search(ctx context.Context, term string) error {
	if err := c.list.SetSearch(ctx, term); err != nil {
		reportFailure(ctx, c.app, "employees.load", err, "Employees.LoadFailed")
		return errors.Wrap(err, "reload employees")
	}
	return nil
}

func (c *EmployeeController) Create(ctx context.Context, data *employee.CreateDTO) (employee.Employee, error) {
	created, err := c.employeeService.Create(ctx, data)
	if err != nil {
		reportFailure(ctx, c.app, "employees.create", err, "Employees.CreateFailed")
		return created, errors.Wrap(err, "create employee")
	}
	c.list.Prepend(created)
	c.app.Notifier().Success(locales.T(ctx, "Employees.Created", nil))
	return created, nil
}

// NewForm returns a create form that submits through Create.
func (c *EmployeeController) NewForm() *hrmforms.EmployeeForm {
	return hrmforms.NewEmployeeForm(nil, func(ctx context.Context, d employee.CreateDTO) error {
		_, err := c.Create(ctx, &d)
		return err
	})
}

func (c *EmployeeController) Delete(ctx context.Context, employeeID string) error {
	if err := c.employeeService.Delete(ctx, employeeID); err != nil {
		reportFailure(ctx, c.app, "employees.delete", err, "Employees.DeleteFailed")
		return errors.Wrap(err, "delete employee")
	}
	c.list.Remove(func(e employee.Employee) bool { return e.EmployeeID == employeeID })
	c.app.Notifier().Success(locales.T(ctx, "Employees.Deleted", nil))
	return nil
}

func (c *EmployeeController) Props(ctx context.Context) *viewmodels.EmployeesPageProps {
	s := c.list.Snapshot()
	visible := c.list.Visible()
	return &viewmodels.EmployeesPageProps{
		Employees: mappers.MapViewModels(visible, mappers.EmployeeToViewModel),
		Search:    s.Search,
		List:      listState(ctx, s, len(visible), "Employees.Empty", "Employees.LoadFailed"),
	}
}
