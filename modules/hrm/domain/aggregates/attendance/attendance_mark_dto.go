package attendance

import (
	"context"
	"strings"

	"github.com/iota-uz/hrms-lite/modules/hrm/locales"
	"github.com/iota-uz/hrms-lite/pkg/constants"
	"github.com/iota-uz/hrms-lite/pkg/serrors"
)

type MarkDTO struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Status     Status `json:"status" validate:"required,oneof=present absent"`
}

func (d *MarkDTO) Normalize() {
	d.EmployeeID = strings.TrimSpace(d.EmployeeID)
	d.Date = strings.TrimSpace(d.Date)
	d.Status = Status(strings.TrimSpace(string(d.Status)))
}

func (d *MarkDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()
	errs := serrors.FromValidate(constants.Validate.Struct(d), locales.FieldKey)
	if len(errs) == 0 {
		return map[string]string{}, true
	}
	return serrors.LocalizeValidationErrors(errs, locales.For(ctx)), false
}

func Validate(ctx context.Context, d MarkDTO) map[string]string {
	errs, _ := d.Ok(ctx)
	return errs
}
