package forms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/components"
	"github.com/iota-uz/hrms-lite/pkg/forms"
	"github.com/iota-uz/hrms-lite/pkg/listing"
)

type oneEmployee struct{}

func (oneEmployee) List(_ context.Context, skip, limit int) (*employee.Page, error) {
	return &employee.Page{
		Employees:  []employee.Employee{{EmployeeID: "EMP001", FullName: "Ada Lovelace", Department: "Engineering"}},
		Pagination: &listing.PageInfo{Skip: skip, Limit: limit, Total: 1},
	}, nil
}

func TestEmployeeForm_BlocksInvalidDraft(t *testing.T) {
	calls := 0
	f := NewEmployeeForm(nil, func(context.Context, employee.CreateDTO) error {
		calls++
		return nil
	})
	require.NoError(t, f.Set("full_name", "Jo"))
	require.NoError(t, f.Set("email", "bad"))

	err := f.Submit(context.Background())
	require.ErrorIs(t, err, forms.ErrInvalid)
	assert.Zero(t, calls)
	errs := f.Errors()
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "department")
	assert.NotContains(t, errs, "full_name")

	require.NoError(t, f.Set("department", "HR"))
	assert.NotContains(t, f.Errors(), "department")
}

func TestEmployeeForm_ResetsAfterCreate(t *testing.T) {
	var got employee.CreateDTO
	f := NewEmployeeForm(nil, func(_ context.Context, d employee.CreateDTO) error {
		got = d
		return nil
	})
	require.NoError(t, f.Set("full_name", "Ada Lovelace"))
	require.NoError(t, f.Set("email", "ada@example.com"))
	require.NoError(t, f.Set("department", "Engineering"))

	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, employee.CreateDTO{}, f.Draft())
	assert.False(t, f.Editing())
}

func TestEmployeeForm_EditKeepsDraft(t *testing.T) {
	initial := &employee.CreateDTO{EmployeeID: "EMP001", FullName: "Ada", Email: "ada@example.com", Department: "HR"}
	f := NewEmployeeForm(initial, func(context.Context, employee.CreateDTO) error { return nil })
	assert.True(t, f.Editing())
	require.NoError(t, f.Submit(context.Background()))
	assert.Equal(t, "EMP001", f.Draft().EmployeeID)
}

func TestAttendanceForm_Defaults(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC) }
	f := NewAttendanceForm(components.NewEmployeePicker(oneEmployee{}, 10), now, func(context.Context, attendance.MarkDTO) error { return nil })
	d := f.Draft()
	assert.Equal(t, "2024-01-15", d.Date)
	assert.Equal(t, attendance.StatusPresent, d.Status)
	assert.Empty(t, d.EmployeeID)
}

func TestAttendanceForm_SubmitWithPicker(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC) }
	var marked []attendance.MarkDTO
	fail := errors.New("boom")
	f := NewAttendanceForm(components.NewEmployeePicker(oneEmployee{}, 10), now, func(_ context.Context, d attendance.MarkDTO) error {
		marked = append(marked, d)
		if d.Status == attendance.StatusAbsent {
			return fail
		}
		return nil
	})
	ctx := context.Background()

	require.ErrorIs(t, f.Submit(ctx), forms.ErrInvalid)
	assert.Contains(t, f.Errors(), "employee_id")

	assert.False(t, f.SelectEmployee("EMP001"), "picker not opened yet")
	require.NoError(t, f.Picker().Open(ctx))
	require.True(t, f.SelectEmployee("EMP001"))
	assert.NotContains(t, f.Errors(), "employee_id")

	require.NoError(t, f.Set("status", "absent"))
	require.ErrorIs(t, f.Submit(ctx), fail)
	assert.Equal(t, "EMP001", f.Draft().EmployeeID)
	assert.False(t, f.Submitting())

	require.NoError(t, f.Set("status", "present"))
	require.NoError(t, f.Submit(ctx))
	assert.Empty(t, f.Draft().EmployeeID)
	assert.Equal(t, attendance.StatusPresent, f.Draft().Status)
	assert.Len(t, marked, 2)
}

func TestAttendanceForm_RejectsUnknownStatus(t *testing.T) {
	f := NewAttendanceForm(components.NewEmployeePicker(oneEmployee{}, 10), nil, func(context.Context, attendance.MarkDTO) error { return nil })
	require.NoError(t, f.Set("employee_id", "EMP001"))
	require.NoError(t, f.Set("status", "late"))
	require.ErrorIs(t, f.Submit(context.Background()), forms.ErrInvalid)
	assert.Equal(t, "Status must be either Present or Absent", f.Errors()["status"])
}
