package forms

import (
	"time"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/components"
	"github.com/iota-uz/hrms-lite/pkg/formatting"
	"github.com/iota-uz/hrms-lite/pkg/forms"
)

// AttendanceForm marks attendance for an employee chosen with its own picker.
type AttendanceForm struct {
	*forms.Form[attendance.MarkDTO]
	picker *components.EmployeePicker
}

// AttendanceSchema defaults new drafts to today and present.
func AttendanceSchema(now func() time.Time) forms.Schema[attendance.MarkDTO] {
	if now == nil {
		now = time.Now
	}
	return forms.Schema[attendance.MarkDTO]{
		Blank: func() attendance.MarkDTO {
			return attendance.MarkDTO{Date: formatting.Today(now()), Status: attendance.StatusPresent}
		},
		Set: func(d *attendance.MarkDTO, field, value string) error {
			switch field {
			case "employee_id":
				d.EmployeeID = value
			case "date":
				d.Date = value
			case "status":
				d.Status = attendance.Status(value)
			default:
				return forms.UnknownField(field)
			}
			return nil
		},
		Validate: attendance.Validate,
		// Marks are never edited in place.
		Identified: func(attendance.MarkDTO) bool { return false },
	}
}

func NewAttendanceForm(picker *components.EmployeePicker, now func() time.Time, submit forms.SubmitFunc[attendance.MarkDTO]) *AttendanceForm {
	return &AttendanceForm{
		Form:   forms.New(AttendanceSchema(now), nil, submit),
		picker: picker,
	}
}

func (f *AttendanceForm) Picker() *components.EmployeePicker {
	return f.picker
}

// SelectEmployee takes the employee id from the picker. It reports false when
// the id is not among the loaded employees.
func (f *AttendanceForm) SelectEmployee(employeeID string) bool {
	e, ok := f.picker.Select(employeeID)
	if !ok {
		return false
	}
	f.Update(func(d *attendance.MarkDTO) { d.EmployeeID = e.EmployeeID }, "employee_id")
	return true
}
