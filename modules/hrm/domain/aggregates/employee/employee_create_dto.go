package employee

import (
	"context"
	"strings"

	"github.com/iota-uz/hrms-lite/modules/hrm/locales"
	"github.com/iota-uz/hrms-lite/pkg/constants"
	"github.com/iota-uz/hrms-lite/pkg/serrors"
)

type CreateDTO struct {
	// EmployeeID is only set when the draft edits an existing employee.
	EmployeeID string `json:"employee_id,omitempty" validate:"-"`
	FullName   string `json:"full_name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,loose_email"`
	Department string `json:"department" validate:"required,min=2"`
}

func (d *CreateDTO) Normalize() {
	d.EmployeeID = strings.TrimSpace(d.EmployeeID)
	d.FullName = strings.TrimSpace(d.FullName)
	d.Email = strings.TrimSpace(d.Email)
	d.Department = strings.TrimSpace(d.Department)
}

// Ok validates the trimmed draft and returns a message per invalid field.
func (d *CreateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := serrors.FromValidate(constants.Validate.Struct(d), locales.FieldKey)
	if len(errs) == 0 {
		return map[string]string{}, true
	}
	return serrors.LocalizeValidationErrors(errs, locales.For(ctx)), false
}

// Validate is Ok on a copy, leaving d as typed.
func Validate(ctx context.Context, d CreateDTO) map[string]string {
	errs, _ := d.Ok(ctx)
	return errs
}
