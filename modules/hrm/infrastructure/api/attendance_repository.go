package api

import (
	"context"
	"net/url"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
)

type AttendanceRepository struct {
	client Client
}

func NewAttendanceRepository(client Client) attendance.Repository {
	return &AttendanceRepository{client: client}
}

func (r *AttendanceRepository) GetPaginated(ctx context.Context, params *attendance.FindParams) (*attendance.Page, error) {
	if params == nil {
		params = &attendance.FindParams{}
	}
	q := pageQuery(params.Skip, params.Limit)
	for k, v := range params.Filter.Values() {
		q[k] = v
	}
	var page attendance.Page
	if _, err := r.client.Get(ctx, "attendance.list", "/attendance/", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *AttendanceRepository) Stats(ctx context.Context) (attendance.Stats, error) {
	var s attendance.Stats
	_, err := r.client.Get(ctx, "attendance.stats", "/attendance/stats/", nil, &s)
	return s, err
}

func (r *AttendanceRepository) GetByEmployee(ctx context.Context, employeeID string, skip, limit int) (*attendance.EmployeeAttendance, error) {
	var out attendance.EmployeeAttendance
	path := "/attendance/employee/" + url.PathEscape(employeeID) + "/"
	if _, err := r.client.Get(ctx, "attendance.employee", path, pageQuery(skip, limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *AttendanceRepository) Mark(ctx context.Context, data *attendance.MarkDTO) (attendance.Record, error) {
	var rec attendance.Record
	_, err := r.client.Post(ctx, "attendance.mark", "/attendance/", data, &rec)
	return rec, err
}
