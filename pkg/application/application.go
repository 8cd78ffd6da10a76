package application

import (
	"embed"
	"fmt"
	"reflect"
	"sync"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/hrms-lite/pkg/eventbus"
	"github.com/iota-uz/hrms-lite/pkg/intl"
	"github.com/iota-uz/hrms-lite/pkg/notifications"
)

type ApplicationOptions struct {
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
	Bundle   *i18n.Bundle
	// Notifier defaults to publishing on EventBus.
	Notifier notifications.Notifier
	Language string
}

func New(opts *ApplicationOptions) Application {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	bus := opts.EventBus
	if bus == nil {
		bus = eventbus.NewEventPublisher(logger)
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle = intl.LoadBundle()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notifications.New(bus)
	}
	lang := opts.Language
	if lang == "" {
		lang = intl.SupportedLanguages[0].Code
	}
	return &application{
		eventPublisher: bus,
		notifier:       notifier,
		logger:         logger,
		bundle:         bundle,
		language:       lang,
		services:       make(map[reflect.Type]any),
	}
}

type application struct {
	eventPublisher eventbus.EventBus
	notifier       notifications.Notifier
	logger         *logrus.Logger
	bundle         *i18n.Bundle
	language       string

	mu        sync.RWMutex
	services  map[reflect.Type]any
	localizer *i18n.Localizer
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Notifier() notifications.Notifier {
	return app.notifier
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

func (app *application) Bundle() *i18n.Bundle {
	return app.bundle
}

// Localizer is built lazily so that it sees every registered locale file.
func (app *application) Localizer() *i18n.Localizer {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.localizer == nil {
		app.localizer = intl.NewLocalizer(app.bundle, app.language)
	}
	return app.localizer
}

func (app *application) RegisterLocaleFiles(fs ...*embed.FS) {
	if err := intl.RegisterLocaleFiles(app.bundle, fs...); err != nil {
		panic(err)
	}
	app.mu.Lock()
	app.localizer = nil
	app.mu.Unlock()
}

// RegisterServices registers services by their pointer's element type.
func (app *application) RegisterServices(services ...any) {
	app.mu.Lock()
	defer app.mu.Unlock()
	for _, service := range services {
		app.services[reflect.TypeOf(service).Elem()] = service
	}
}

// Service looks a service up by the type of its zero value, e.g.
// app.Service(services.EmployeeService{}).
func (app *application) Service(service any) any {
	serviceType := reflect.TypeOf(service)
	app.mu.RLock()
	svc, exists := app.services[serviceType]
	app.mu.RUnlock()
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) Services() map[reflect.Type]any {
	app.mu.RLock()
	defer app.mu.RUnlock()
	out := make(map[reflect.Type]any, len(app.services))
	for k, v := range app.services {
		out[k] = v
	}
	return out
}
