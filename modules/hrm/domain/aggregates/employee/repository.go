package employee

import (
	"context"
)

type FindParams struct {
	Skip  int
	Limit int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) (*Page, error)
	GetByID(ctx context.Context, employeeID string) (Employee, error)
	Stats(ctx context.Context) (Stats, error)
	Create(ctx context.Context, data *CreateDTO) (Employee, error)
	Delete(ctx context.Context, employeeID string) error
}
