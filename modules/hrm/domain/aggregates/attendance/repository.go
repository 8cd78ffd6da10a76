package attendance

import (
	"context"
)

type FindParams struct {
	Skip   int
	Limit  int
	Filter Filter
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) (*Page, error)
	Stats(ctx context.Context) (Stats, error)
	GetByEmployee(ctx context.Context, employeeID string, skip, limit int) (*EmployeeAttendance, error)
	Mark(ctx context.Context, data *MarkDTO) (Record, error)
}
