package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/controllers"
	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/viewmodels"
)

type dashboardOutput struct {
	TotalEmployees   int                   `json:"total_employees"`
	TotalAttendance  int                   `json:"total_attendance"`
	TodayPresent     int                   `json:"today_present"`
	TodayAbsent      int                   `json:"today_absent"`
	LastUpdated      string                `json:"last_updated"`
	Limit            int                   `json:"limit"`
	RecentEmployees  []dashboardEmployee   `json:"recent_employees"`
	RecentAttendance []dashboardAttendance `json:"recent_attendance"`
}

type dashboardEmployee struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Department string `json:"department"`
}

type dashboardAttendance struct {
	EmployeeID   string            `json:"employee_id"`
	EmployeeName string            `json:"employee_name"`
	Date         string            `json:"date"`
	Status       attendance.Status `json:"status"`
}

func newDashboardCmd(c *cli) *cobra.Command {
	var limit string
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show headline stats with the most recent employees and records",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := c.ctx(cmd)
			if limit == "" {
				limit = strconv.Itoa(c.conf.Pagination.DashboardRecentLimit)
			}
			props, err := controllers.NewDashboardController(c.app).Load(ctx, controllers.ParseLimit(limit))
			if err != nil {
				return err
			}
			return c.printer.print(dashboardData(props), func(w io.Writer) {
				dashboardView(w, props)
			})
		},
	}
	cmd.Flags().StringVarP(&limit, "limit", "n", "", "Recent items per list: 3, 5, 10 or 15 (default DASHBOARD_RECENT_LIMIT)")
	return cmd
}

func dashboardData(p *viewmodels.DashboardProps) dashboardOutput {
	out := dashboardOutput{
		TotalEmployees:   p.TotalEmployees,
		TotalAttendance:  p.TotalAttendance,
		TodayPresent:     p.TodayPresent,
		TodayAbsent:      p.TodayAbsent,
		LastUpdated:      p.LastUpdated,
		Limit:            p.Limit,
		RecentEmployees:  make([]dashboardEmployee, 0, len(p.RecentEmployees)),
		RecentAttendance: make([]dashboardAttendance, 0, len(p.RecentAttendance)),
	}
	for _, e := range p.RecentEmployees {
		out.RecentEmployees = append(out.RecentEmployees, dashboardEmployee{
			EmployeeID: e.ID,
			FullName:   e.FullName,
			Department: e.Department,
		})
	}
	for _, r := range p.RecentAttendance {
		out.RecentAttendance = append(out.RecentAttendance, dashboardAttendance{
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			Date:         r.Date,
			Status:       attendance.Status(r.Status),
		})
	}
	return out
}

func dashboardView(w io.Writer, p *viewmodels.DashboardProps) {
	kvTable(w, [][2]string{
		{"Total employees", fmt.Sprint(p.TotalEmployees)},
		{"Total attendance", fmt.Sprint(p.TotalAttendance)},
		{"Present today", fmt.Sprint(p.TodayPresent)},
		{"Absent today", fmt.Sprint(p.TodayAbsent)},
		{"Last updated", p.LastUpdated},
	})

	fmt.Fprintf(w, "\nRecent employees (%d)\n", p.Limit)
	if len(p.RecentEmployees) == 0 {
		fmt.Fprintln(w, p.EmptyEmployees)
	} else {
		t := newTable(w, "ID", "Name", "Department")
		for _, e := range p.RecentEmployees {
			t.Append([]string{e.ID, e.FullName, e.Department})
		}
		t.Render()
	}

	fmt.Fprintf(w, "\nRecent attendance (%d)\n", p.Limit)
	if len(p.RecentAttendance) == 0 {
		fmt.Fprintln(w, p.EmptyAttendance)
		return
	}
	t := newTable(w, "Employee", "Date", "Status")
	for _, r := range p.RecentAttendance {
		t.Append([]string{r.EmployeeName, r.Date, statusBadge(r)})
	}
	t.Render()
}
