package fakeapi

import (
	"fmt"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/pkg/constants"
)

var sampleNames = []string{
	"Ada Lovelace", "Grace Hopper", "Alan Turing", "Katherine Johnson",
	"Linus Torvalds", "Margaret Hamilton", "Dennis Ritchie", "Barbara Liskov",
	"Ken Thompson", "Frances Allen", "Donald Knuth", "Radia Perlman",
}

// Seed adds n employees spread over the departments, and marks the last
// days of attendance for each of them. Every third employee is absent on a
// given day.
func (s *Server) Seed(n, days int) {
	for i := 0; i < n; i++ {
		name := sampleNames[i%len(sampleNames)]
		if i >= len(sampleNames) {
			name = fmt.Sprintf("%s %d", name, i/len(sampleNames)+1)
		}
		s.AddEmployee(employee.Employee{
			FullName:   name,
			Email:      fmt.Sprintf("employee%03d@example.com", i+1),
			Department: employee.Departments[i%len(employee.Departments)],
		})
	}
	employees := s.Employees()
	now := s.now()
	for d := days - 1; d >= 0; d-- {
		date := now.AddDate(0, 0, -d).Format(constants.DateLayout)
		for i, e := range employees {
			status := attendance.StatusPresent
			if (i+d)%3 == 0 {
				status = attendance.StatusAbsent
			}
			s.AddAttendance(e.EmployeeID, date, status)
		}
	}
}
