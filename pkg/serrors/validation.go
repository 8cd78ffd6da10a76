package serrors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/iota-uz/go-i18n/v2/i18n"
)

// FieldError describes one failed rule on one field.
type FieldError struct {
	Field    string
	Tag      string
	Param    string
	LabelKey string
}

// ValidationErrors is keyed by the field's wire name.
type ValidationErrors map[string]*FieldError

// ProcessValidatorErrors keeps the first failed rule per field. labelKey maps a
// wire field name to the locale key of its human label.
func ProcessValidatorErrors(errs validator.ValidationErrors, labelKey func(field string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		key := ""
		if labelKey != nil {
			key = labelKey(field)
		}
		out[field] = &FieldError{
			Field:    field,
			Tag:      fe.Tag(),
			Param:    fe.Param(),
			LabelKey: key,
		}
	}
	return out
}

// FromValidate runs the error returned by validator.Struct through
// ProcessValidatorErrors. A nil error yields an empty map.
func FromValidate(err error, labelKey func(field string) string) ValidationErrors {
	if err == nil {
		return ValidationErrors{}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{"_": {Field: "_", Tag: "invalid"}}
	}
	return ProcessValidatorErrors(verrs, labelKey)
}

// LocalizeValidationErrors renders every field error. Lookup order is
// ValidationOverrides.<field>.<tag>, then ValidationErrors.<tag>.
func LocalizeValidationErrors(errs ValidationErrors, l *i18n.Localizer) map[string]string {
	out := make(map[string]string, len(errs))
	for field, fe := range errs {
		out[field] = localizeFieldError(fe, l)
	}
	return out
}

func localizeFieldError(fe *FieldError, l *i18n.Localizer) string {
	label := fe.Field
	if l != nil && fe.LabelKey != "" {
		if s, err := l.Localize(&i18n.LocalizeConfig{MessageID: fe.LabelKey}); err == nil {
			label = s
		}
	}
	data := map[string]string{
		"Field": label,
		"Param": fe.Param,
	}
	if l != nil {
		ids := []string{
			fmt.Sprintf("ValidationOverrides.%s.%s", fe.Field, fe.Tag),
			fmt.Sprintf("ValidationErrors.%s", fe.Tag),
		}
		for _, id := range ids {
			msg, err := l.Localize(&i18n.LocalizeConfig{
				MessageID:    id,
				TemplateData: data,
			})
			if err == nil {
				return msg
			}
		}
	}
	return fmt.Sprintf("%s is invalid", label)
}
