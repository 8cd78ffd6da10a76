package employee

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/iota-uz/hrms-lite/pkg/listing"
)

// Employee is the directory record. EmployeeID (EMP001 style) is assigned by
// the server.
type Employee struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Page is the payload of GET /employees/.
type Page struct {
	Employees  []Employee        `json:"employees"`
	Pagination *listing.PageInfo `json:"pagination"`
}

type Stats struct {
	TotalEmployees int    `json:"total_employees"`
	LastUpdated    string `json:"last_updated"`
}

// A Caser is stateful, so each call gets its own.
func containsFold(s, term string) bool {
	folder := cases.Fold()
	return strings.Contains(folder.String(s), folder.String(term))
}

// MatchesSearch is the directory search: name, email, id or department.
func MatchesSearch(e Employee, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return containsFold(e.FullName, term) ||
		containsFold(e.Email, term) ||
		containsFold(e.EmployeeID, term) ||
		containsFold(e.Department, term)
}

// MatchesPicker is the picker search, which leaves email out.
func MatchesPicker(e Employee, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	return containsFold(e.FullName, term) ||
		containsFold(e.EmployeeID, term) ||
		containsFold(e.Department, term)
}
