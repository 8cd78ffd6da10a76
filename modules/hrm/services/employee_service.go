package services

import (
	"context"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/pkg/eventbus"
)

// EmployeeService forwards to the repository and returns its results
// unchanged. Successful mutations are published on the event bus.
type EmployeeService struct {
	repo      employee.Repository
	publisher eventbus.EventBus
}

func NewEmployeeService(repo employee.Repository, publisher eventbus.EventBus) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *EmployeeService) List(ctx context.Context, skip, limit int) (*employee.Page, error) {
	return s.repo.GetPaginated(ctx, &employee.FindParams{Skip: skip, Limit: limit})
}

func (s *EmployeeService) Stats(ctx context.Context) (employee.Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, employeeID string) (employee.Employee, error) {
	return s.repo.GetByID(ctx, employeeID)
}

func (s *EmployeeService) Create(ctx context.Context, data *employee.CreateDTO) (employee.Employee, error) {
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return created, err
	}
	s.publish(&employee.CreatedEvent{Data: *data, Result: created})
	return created, nil
}

func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	if err := s.repo.Delete(ctx, employeeID); err != nil {
		return err
	}
	s.publish(&employee.DeletedEvent{EmployeeID: employeeID})
	return nil
}

func (s *EmployeeService) publish(ev any) {
	if s.publisher != nil {
		s.publisher.Publish(ev)
	}
}
