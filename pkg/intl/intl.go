package intl

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/iota-uz/hrms-lite/pkg/constants"
)

var ErrNoLocalizer = errors.New("localizer not found in context")

type SupportedLanguage struct {
	Code        string
	VerboseName string
	Tag         language.Tag
}

var SupportedLanguages = []SupportedLanguage{
	{
		Code:        "en",
		VerboseName: "English",
		Tag:         language.English,
	},
}

// LoadBundle returns an empty bundle that understands json and toml message files.
func LoadBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

// RegisterLocaleFiles parses every file of the embedded trees into bundle.
func RegisterLocaleFiles(bundle *i18n.Bundle, trees ...*embed.FS) error {
	for _, tree := range trees {
		err := fs.WalkDir(tree, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			data, err := tree.ReadFile(path)
			if err != nil {
				return err
			}
			_, err = bundle.ParseMessageFileBytes(data, filepath.Base(path))
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func NewLocalizer(bundle *i18n.Bundle, langs ...string) *i18n.Localizer {
	if len(langs) == 0 {
		langs = []string{SupportedLanguages[0].Code}
	}
	return i18n.NewLocalizer(bundle, langs...)
}

func WithLocalizer(ctx context.Context, l *i18n.Localizer) context.Context {
	return context.WithValue(ctx, constants.LocalizerKey, l)
}

func UseLocalizer(ctx context.Context) (*i18n.Localizer, bool) {
	l, ok := ctx.Value(constants.LocalizerKey).(*i18n.Localizer)
	if !ok || l == nil {
		return nil, false
	}
	return l, true
}

// MustT localizes id with the context localizer and falls back to id itself.
func MustT(ctx context.Context, id string) string {
	l, ok := UseLocalizer(ctx)
	if !ok {
		return id
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil {
		return id
	}
	return msg
}

// Localize renders id with data, falling back to id when l is nil or the
// message is missing.
func Localize(l *i18n.Localizer, id string, data map[string]any) string {
	if l == nil {
		return id
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}
