package hrm

import (
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/modules/hrm/infrastructure/api"
	"github.com/iota-uz/hrms-lite/modules/hrm/locales"
	"github.com/iota-uz/hrms-lite/modules/hrm/services"
	"github.com/iota-uz/hrms-lite/pkg/application"
)

type ModuleOptions struct {
	Client api.Client
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&locales.Files)
	app.RegisterServices(
		services.NewEmployeeService(api.NewEmployeeRepository(m.options.Client), app.EventPublisher()),
		services.NewAttendanceService(api.NewAttendanceRepository(m.options.Client), app.EventPublisher()),
	)

	log := app.Logger()
	bus := app.EventPublisher()
	bus.Subscribe(func(e *employee.CreatedEvent) {
		log.WithFields(logrus.Fields{"employee_id": e.Result.EmployeeID}).Info("employee created")
	})
	bus.Subscribe(func(e *employee.DeletedEvent) {
		log.WithFields(logrus.Fields{"employee_id": e.EmployeeID}).Info("employee deleted")
	})
	bus.Subscribe(func(e *attendance.MarkedEvent) {
		log.WithFields(logrus.Fields{
			"employee_id": e.Result.EmployeeID,
			"date":        e.Result.Date,
			"status":      e.Result.Status,
		}).Info("attendance marked")
	})
	return nil
}

func (m *Module) Name() string {
	return "hrm"
}
