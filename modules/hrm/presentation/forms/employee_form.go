package forms

import (
	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/pkg/forms"
)

type EmployeeForm struct {
	*forms.Form[employee.CreateDTO]
}

func EmployeeSchema() forms.Schema[employee.CreateDTO] {
	return forms.Schema[employee.CreateDTO]{
		Blank: func() employee.CreateDTO { return employee.CreateDTO{} },
		Set: func(d *employee.CreateDTO, field, value string) error {
			switch field {
			case "employee_id":
				d.EmployeeID = value
			case "full_name":
				d.FullName = value
			case "email":
				d.Email = value
			case "department":
				d.Department = value
			default:
				return forms.UnknownField(field)
			}
			return nil
		},
		Validate:   employee.Validate,
		Identified: func(d employee.CreateDTO) bool { return d.EmployeeID != "" },
	}
}

// NewEmployeeForm starts a create form when initial is nil and an edit form
// when initial carries an employee id.
func NewEmployeeForm(initial *employee.CreateDTO, submit forms.SubmitFunc[employee.CreateDTO]) *EmployeeForm {
	return &EmployeeForm{Form: forms.New(EmployeeSchema(), initial, submit)}
}
