package mappers

import (
	"github.com/shopspring/decimal"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/viewmodels"
	"github.com/iota-uz/hrms-lite/pkg/formatting"
)

func EmployeeToViewModel(e employee.Employee) *viewmodels.Employee {
	return &viewmodels.Employee{
		ID:         e.EmployeeID,
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
		CreatedAt:  formatting.FormatDate(e.CreatedAt),
	}
}

func RecordToViewModel(r attendance.Record) *viewmodels.AttendanceRecord {
	return &viewmodels.AttendanceRecord{
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Department:   r.EmployeeDepartment,
		Date:         formatting.FormatDate(r.Date),
		Status:       string(r.Status),
		StatusLabel:  r.Status.Label(),
		Present:      r.Status == attendance.StatusPresent,
		MarkedAt:     formatting.FormatDate(r.CreatedAt),
	}
}

func SummaryToViewModel(s attendance.Summary) *viewmodels.AttendanceSummary {
	return &viewmodels.AttendanceSummary{
		Total:             s.Total,
		Present:           s.Present,
		Absent:            s.Absent,
		PresentPercentage: formatting.FormatPercent(s.PresentPercentage),
	}
}

// EmployeeSummaryToViewModel renders the server-side history summary.
func EmployeeSummaryToViewModel(s attendance.EmployeeSummary) *viewmodels.AttendanceSummary {
	return &viewmodels.AttendanceSummary{
		Total:             s.TotalDays,
		Present:           s.PresentDays,
		Absent:            s.AbsentDays,
		PresentPercentage: formatting.FormatPercent(decimal.NewFromFloat(s.PresentPercentage)),
	}
}

func EmployeeHistoryToViewModel(h *attendance.EmployeeAttendance) *viewmodels.EmployeeHistoryProps {
	props := &viewmodels.EmployeeHistoryProps{
		Employee: EmployeeToViewModel(h.Employee),
		Records:  MapViewModels(h.Records, RecordToViewModel),
		Summary:  EmployeeSummaryToViewModel(h.Summary),
	}
	if h.Pagination != nil {
		props.HasMore = h.Pagination.HasMore
	}
	return props
}

func MapViewModels[T any, V any](items []T, fn func(T) V) []V {
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
