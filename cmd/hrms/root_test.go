package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/hrms-lite/internal/fakeapi"
	"github.com/iota-uz/hrms-lite/pkg/configuration"
)

var fixedNow = time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

type harness struct {
	t    *testing.T
	fake *fakeapi.Server
	url  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fake := fakeapi.New(fakeapi.WithClock(func() time.Time { return fixedNow }))
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)
	return &harness{t: t, fake: fake, url: srv.URL + "/api"}
}

type result struct {
	code   int
	stdout string
	stderr string
}

func (h *harness) run(stdin string, args ...string) result {
	h.t.Helper()
	cmd := newRootCmd(
		func(c *cli) {
			c.loadConfig = func() (*configuration.Configuration, error) { return configuration.Load(nil) }
			c.now = func() time.Time { return fixedNow }
		},
	)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	args = append([]string{"--base-url", h.url, "--no-color", "--log-level", "silent"}, args...)
	code := run(cmd, args, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func decode(t *testing.T, s string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(s), v), s)
}

func TestEmployeesList_JSON(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed(12, 0)

	res := h.run("", "-o", "json", "employees", "list", "--limit", "5")
	require.Equal(t, exitOK, res.code, res.stderr)

	var out employeeListOutput
	decode(t, res.stdout, &out)
	assert.Len(t, out.Employees, 5)
	assert.Equal(t, 12, out.Total)
	assert.True(t, out.HasMore)
	assert.Equal(t, "EMP012", out.Employees[0].EmployeeID, "newest first")
}

func TestEmployeesList_AllThenSearch(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed(12, 0)

	res := h.run("", "-o", "json", "employees", "list", "--limit", "5", "--all", "--search", "grace")
	require.Equal(t, exitOK, res.code, res.stderr)

	var out employeeListOutput
	decode(t, res.stdout, &out)
	require.Len(t, out.Employees, 1)
	assert.Equal(t, "Grace Hopper", out.Employees[0].FullName)
	assert.Equal(t, 12, out.Loaded)
	assert.Equal(t, 3, h.fake.RequestsTo(http.MethodGet, "/api/employees/"))
}

func TestEmployeesList_Table(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "employees", "list")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "No employees found")

	h.fake.Seed(2, 0)
	res = h.run("", "employees", "list")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Ada Lovelace")
	assert.Contains(t, res.stdout, "Showing 2 of 2 employees")
}

func TestEmployeesCreate(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "-o", "json", "employees", "create",
		"--full-name", "  Jane Doe ", "--email", "jane@example.com", "--department", "Engineering")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Employee added successfully")

	var created struct {
		EmployeeID string `json:"employee_id"`
		FullName   string `json:"full_name"`
	}
	decode(t, res.stdout, &created)
	assert.Equal(t, "EMP001", created.EmployeeID)
	assert.Equal(t, "Jane Doe", created.FullName)
}

func TestEmployeesCreate_InvalidIsNotSent(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "employees", "create", "--full-name", "J", "--email", "nope", "--department", "Engineering")
	assert.Equal(t, exitValidation, res.code)
	assert.Contains(t, res.stderr, "email:")
	assert.Contains(t, res.stderr, "full_name:")
	assert.Zero(t, h.fake.RequestsTo(http.MethodPost, "/api/employees/"))
}

func TestEmployeesDelete_Confirmation(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed(1, 0)

	res := h.run("n\n", "employees", "delete", "EMP001")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Aborted.")
	assert.Zero(t, h.fake.RequestsTo(http.MethodDelete, "/api/employees/EMP001/"))

	res = h.run("y\n", "employees", "delete", "EMP001")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Equal(t, 1, h.fake.RequestsTo(http.MethodDelete, "/api/employees/EMP001/"))
	assert.Contains(t, res.stderr, "Employee deleted successfully")
}

func TestEmployeesGet_NotFoundIsAPIError(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "employees", "get", "EMP404")
	assert.Equal(t, exitAPI, res.code)
	assert.Contains(t, res.stderr, "Error:")
}

func TestAttendanceList_FilterByName(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed(3, 2)

	res := h.run("", "-o", "json", "attendance", "list", "--employee-name", "grace", "--today")
	require.Equal(t, exitOK, res.code, res.stderr)

	var out struct {
		Attendance []struct {
			EmployeeID string `json:"employee_id"`
			Date       string `json:"date"`
		} `json:"attendance"`
		Filter filterOutput `json:"filter"`
	}
	decode(t, res.stdout, &out)
	assert.Equal(t, filterOutput{EmployeeID: "EMP002", Date: "2024-01-15"}, out.Filter)
	require.Len(t, out.Attendance, 1)
	assert.Equal(t, "EMP002", out.Attendance[0].EmployeeID)
}

func TestAttendanceList_ExclusiveFlags(t *testing.T) {
	h := newHarness(t)

	res := h.run("", "attendance", "list", "--today", "--yesterday")
	assert.NotEqual(t, exitOK, res.code)
	assert.Zero(t, h.fake.RequestsTo(http.MethodGet, "/api/attendance/"))
}

func TestAttendanceMark(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed(2, 1)

	res := h.run("", "attendance", "mark", "--employee-id", "EMP001")
	assert.Equal(t, exitAPI, res.code, "today is already marked")
	assert.Contains(t, res.stderr, "date")

	res = h.run("", "-o", "json", "attendance", "mark", "--employee-id", "EMP001", "--date", "2024-01-10", "--status", "Absent")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Attendance marked successfully")

	var rec struct {
		EmployeeID string `json:"employee_id"`
		Status     string `json:"status"`
	}
	decode(t, res.stdout, &rec)
	assert.Equal(t, "EMP001", rec.EmployeeID)
	assert.Equal(t, "absent", rec.Status)
}

func TestAttendanceExport(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed(2, 2)
	dir := t.TempDir()

	res := h.run("", "attendance", "export", "--dir", dir, "--date", "2024-01-14")
	require.Equal(t, exitOK, res.code, res.stderr)

	path := filepath.Join(dir, "attendance_2024-01-15.csv")
	assert.Equal(t, path, strings.TrimSpace(res.stdout))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, res.stderr, "Attendance exported successfully")
}

func TestAttendanceExport_Empty(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()

	res := h.run("", "attendance", "export", "--dir", dir)
	require.Equal(t, exitOK, res.code, res.stderr)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDashboard(t *testing.T) {
	h := newHarness(t)
	h.fake.Seed(6, 1)

	res := h.run("", "-o", "json", "dashboard", "--limit", "3")
	require.Equal(t, exitOK, res.code, res.stderr)

	var out dashboardOutput
	decode(t, res.stdout, &out)
	assert.Equal(t, 6, out.TotalEmployees)
	assert.Equal(t, 3, out.Limit)
	assert.Len(t, out.RecentEmployees, 3)
	assert.Len(t, out.RecentAttendance, 3)

	res = h.run("", "-o", "yaml", "dashboard", "--limit", "7")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "limit: 5")
}

func TestDashboard_FailureExitCode(t *testing.T) {
	h := newHarness(t)
	h.fake.FailNext(http.StatusInternalServerError, "database unavailable")

	res := h.run("", "dashboard")
	assert.Equal(t, exitAPI, res.code)
	assert.Contains(t, res.stderr, "database unavailable")
}

func TestUsageErrors(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, exitUsage, h.run("", "employees", "list", "--bogus").code)
	assert.Equal(t, exitUsage, h.run("", "employees", "get").code)
	assert.Equal(t, exitUsage, h.run("", "-o", "xml", "employees", "list").code)
	assert.Equal(t, exitUsage, h.run("", "attendance", "export", "--format", "pdf").code)
}
