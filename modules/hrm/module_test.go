package hrm

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/hrms-lite/internal/fakeapi"
	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/modules/hrm/services"
	"github.com/iota-uz/hrms-lite/pkg/apiclient"
	"github.com/iota-uz/hrms-lite/pkg/application"
	"github.com/iota-uz/hrms-lite/pkg/intl"
)

func TestModule_RegistersServicesAndEventLog(t *testing.T) {
	fake := fakeapi.New()
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	log := logrus.New()
	log.SetOutput(&out)
	log.SetLevel(logrus.InfoLevel)

	app := application.New(&application.ApplicationOptions{Logger: log})
	client := apiclient.New(apiclient.Options{BaseURL: srv.URL + "/api", Logger: log})
	require.NoError(t, NewModule(&ModuleOptions{Client: client}).Register(app))

	employees := app.Service(services.EmployeeService{}).(*services.EmployeeService)
	marks := app.Service(services.AttendanceService{}).(*services.AttendanceService)
	ctx := context.Background()

	created, err := employees.Create(ctx, &employee.CreateDTO{FullName: "Ada Lovelace", Email: "ada@example.com", Department: "Engineering"})
	require.NoError(t, err)
	_, err = marks.Mark(ctx, &attendance.MarkDTO{EmployeeID: created.EmployeeID, Date: "2024-01-15", Status: attendance.StatusPresent})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "employee created")
	assert.Contains(t, out.String(), "attendance marked")

	assert.Equal(t, "Employee added successfully", intl.Localize(app.Localizer(), "Employees.Created", nil))
}
