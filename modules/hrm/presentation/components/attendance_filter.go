package components

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/pkg/formatting"
	"github.com/iota-uz/hrms-lite/pkg/forms"
)

// FilterFunc receives the filter on Apply and Reset.
type FilterFunc func(ctx context.Context, f attendance.Filter) error

// AttendanceFilter edits a filter draft and hands it to the attendance page
// only on Apply or Reset.
type AttendanceFilter struct {
	picker   *EmployeePicker
	onFilter FilterFunc
	now      func() time.Time

	mu      sync.Mutex
	draft   attendance.Filter
	applied attendance.Filter
}

func NewAttendanceFilter(picker *EmployeePicker, onFilter FilterFunc, now func() time.Time) *AttendanceFilter {
	if now == nil {
		now = time.Now
	}
	return &AttendanceFilter{picker: picker, onFilter: onFilter, now: now}
}

func (f *AttendanceFilter) Picker() *EmployeePicker {
	return f.picker
}

// Open loads the first page of the employee picker.
func (f *AttendanceFilter) Open(ctx context.Context) error {
	return f.picker.Open(ctx)
}

func (f *AttendanceFilter) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case "employee_id":
		f.draft.EmployeeID = value
	case "date":
		f.draft.Date = value
	default:
		return forms.UnknownField(field)
	}
	return nil
}

// SelectEmployee sets the employee of the draft. An empty id clears it.
func (f *AttendanceFilter) SelectEmployee(employeeID string) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		f.picker.Clear()
	} else {
		f.picker.Select(employeeID)
	}
	f.mu.Lock()
	f.draft.EmployeeID = employeeID
	f.mu.Unlock()
}

func (f *AttendanceFilter) Today() {
	f.setDate(formatting.Today(f.now()))
}

func (f *AttendanceFilter) Yesterday() {
	f.setDate(formatting.Yesterday(f.now()))
}

func (f *AttendanceFilter) ClearDate() {
	f.setDate("")
}

func (f *AttendanceFilter) setDate(date string) {
	f.mu.Lock()
	f.draft.Date = date
	f.mu.Unlock()
}

// Apply submits the draft.
func (f *AttendanceFilter) Apply(ctx context.Context) error {
	f.mu.Lock()
	f.applied = f.draft
	filter := f.draft
	f.mu.Unlock()
	return f.onFilter(ctx, filter)
}

// Reset clears the draft and submits the empty filter.
func (f *AttendanceFilter) Reset(ctx context.Context) error {
	f.mu.Lock()
	f.draft = attendance.Filter{}
	f.applied = attendance.Filter{}
	f.mu.Unlock()
	f.picker.Clear()
	return f.onFilter(ctx, attendance.Filter{})
}

// Active reports whether the draft sets any field.
func (f *AttendanceFilter) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Active()
}

func (f *AttendanceFilter) Draft() attendance.Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Applied is the filter last handed to the page.
func (f *AttendanceFilter) Applied() attendance.Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applied
}
