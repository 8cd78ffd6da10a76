package modules

import (
	"github.com/iota-uz/hrms-lite/modules/hrm"
	"github.com/iota-uz/hrms-lite/modules/hrm/infrastructure/api"
	"github.com/iota-uz/hrms-lite/pkg/application"
)

// BuiltInModules are the modules every application registers, backed by
// client.
func BuiltInModules(client api.Client) []application.Module {
	return []application.Module{
		hrm.NewModule(&hrm.ModuleOptions{Client: client}),
	}
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
