package services

import (
	"context"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/pkg/eventbus"
)

type AttendanceService struct {
	repo      attendance.Repository
	publisher eventbus.EventBus
}

func NewAttendanceService(repo attendance.Repository, publisher eventbus.EventBus) *AttendanceService {
	return &AttendanceService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *AttendanceService) List(ctx context.Context, skip, limit int, filter attendance.Filter) (*attendance.Page, error) {
	return s.repo.GetPaginated(ctx, &attendance.FindParams{Skip: skip, Limit: limit, Filter: filter})
}

func (s *AttendanceService) Stats(ctx context.Context) (attendance.Stats, error) {
	return s.repo.Stats(ctx)
}

func (s *AttendanceService) ForEmployee(ctx context.Context, employeeID string, skip, limit int) (*attendance.EmployeeAttendance, error) {
	return s.repo.GetByEmployee(ctx, employeeID, skip, limit)
}

func (s *AttendanceService) Mark(ctx context.Context, data *attendance.MarkDTO) (attendance.Record, error) {
	rec, err := s.repo.Mark(ctx, data)
	if err != nil {
		return rec, err
	}
	if s.publisher != nil {
		s.publisher.Publish(&attendance.MarkedEvent{Data: *data, Result: rec})
	}
	return rec, nil
}
