// Package locales embeds the hrm message files.
package locales

import (
	"context"
	"embed"
	"sync"

	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/iota-uz/hrms-lite/pkg/intl"
)

//go:embed *.toml
var Files embed.FS

var fallback = sync.OnceValue(func() *i18n.Localizer {
	bundle := intl.LoadBundle()
	if err := intl.RegisterLocaleFiles(bundle, &Files); err != nil {
		panic(err)
	}
	return intl.NewLocalizer(bundle)
})

// Localizer is an English localizer over the embedded files, used when the
// context carries none.
func Localizer() *i18n.Localizer {
	return fallback()
}

// FieldKey is the locale key of a wire field's label.
func FieldKey(field string) string {
	return "Fields." + field
}

// For returns the context localizer, or the embedded English one.
func For(ctx context.Context) *i18n.Localizer {
	if l, ok := intl.UseLocalizer(ctx); ok {
		return l
	}
	return Localizer()
}

// T renders id for ctx.
func T(ctx context.Context, id string, data map[string]any) string {
	return intl.Localize(For(ctx), id, data)
}
