package application

import (
	"embed"
	"reflect"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/hrms-lite/pkg/eventbus"
	"github.com/iota-uz/hrms-lite/pkg/notifications"
)

// Application is the service registry modules register into and
// controllers resolve from.
type Application interface {
	EventPublisher() eventbus.EventBus
	Notifier() notifications.Notifier
	Logger() *logrus.Logger
	Bundle() *i18n.Bundle
	Localizer() *i18n.Localizer
	RegisterLocaleFiles(fs ...*embed.FS)
	RegisterServices(services ...any)
	Service(service any) any
	Services() map[reflect.Type]any
}

type Module interface {
	Name() string
	Register(app Application) error
}
