package attendance

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/pkg/listing"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Label is the capitalized status, e.g. "Present".
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return cases.Title(language.English).String(string(s))
}

// Record is one attendance mark. EmployeeName and EmployeeDepartment are
// filled in by the server at read time.
type Record struct {
	ID                 int64  `json:"id,omitempty"`
	EmployeeID         string `json:"employee_id"`
	EmployeeName       string `json:"employee_name"`
	EmployeeDepartment string `json:"employee_department"`
	Date               string `json:"date"`
	Status             Status `json:"status"`
	CreatedAt          string `json:"created_at,omitempty"`
}

// UnmarshalJSON also accepts the employee id under "employee", which is how
// the API serializes the relation.
func (r *Record) UnmarshalJSON(b []byte) error {
	type plain Record
	var aux struct {
		plain
		Employee json.RawMessage `json:"employee"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*r = Record(aux.plain)
	if r.EmployeeID == "" && len(aux.Employee) > 0 {
		var id string
		if err := json.Unmarshal(aux.Employee, &id); err == nil {
			r.EmployeeID = id
		}
	}
	return nil
}

// Page is the payload of GET /attendance/.
type Page struct {
	Attendance []Record          `json:"attendance"`
	Pagination *listing.PageInfo `json:"pagination"`
}

type Stats struct {
	TotalAttendance int    `json:"total_attendance"`
	TodayTotal      int    `json:"today_total"`
	TodayPresent    int    `json:"today_present"`
	TodayAbsent     int    `json:"today_absent"`
	LastUpdated     string `json:"last_updated"`
}

// EmployeeSummary is computed by the server over all of an employee's records.
type EmployeeSummary struct {
	TotalDays         int     `json:"total_days"`
	PresentDays       int     `json:"present_days"`
	AbsentDays        int     `json:"absent_days"`
	PresentPercentage float64 `json:"present_percentage"`
}

// EmployeeAttendance is the payload of GET /attendance/employee/{id}/.
type EmployeeAttendance struct {
	Employee   employee.Employee `json:"employee"`
	Records    []Record          `json:"attendance_records"`
	Summary    EmployeeSummary   `json:"summary"`
	Pagination *listing.PageInfo `json:"pagination"`
}

// MatchesSearch matches name, employee id or department, ignoring case.
func MatchesSearch(r Record, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	folder := cases.Fold()
	t := folder.String(term)
	for _, s := range []string{r.EmployeeName, r.EmployeeID, r.EmployeeDepartment} {
		if strings.Contains(folder.String(s), t) {
			return true
		}
	}
	return false
}
