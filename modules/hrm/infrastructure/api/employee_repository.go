package api

import (
	"context"
	"net/url"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
)

type EmployeeRepository struct {
	client Client
}

func NewEmployeeRepository(client Client) employee.Repository {
	return &EmployeeRepository{client: client}
}

func (r *EmployeeRepository) GetPaginated(ctx context.Context, params *employee.FindParams) (*employee.Page, error) {
	if params == nil {
		params = &employee.FindParams{}
	}
	var page employee.Page
	if _, err := r.client.Get(ctx, "employees.list", "/employees/", pageQuery(params.Skip, params.Limit), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, employeeID string) (employee.Employee, error) {
	var e employee.Employee
	_, err := r.client.Get(ctx, "employees.get", "/employees/"+url.PathEscape(employeeID)+"/", nil, &e)
	return e, err
}

func (r *EmployeeRepository) Stats(ctx context.Context) (employee.Stats, error) {
	var s employee.Stats
	_, err := r.client.Get(ctx, "employees.stats", "/employees/stats/", nil, &s)
	return s, err
}

func (r *EmployeeRepository) Create(ctx context.Context, data *employee.CreateDTO) (employee.Employee, error) {
	var e employee.Employee
	_, err := r.client.Post(ctx, "employees.create", "/employees/", data, &e)
	return e, err
}

func (r *EmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	_, err := r.client.Delete(ctx, "employees.delete", "/employees/"+url.PathEscape(employeeID)+"/")
	return err
}
