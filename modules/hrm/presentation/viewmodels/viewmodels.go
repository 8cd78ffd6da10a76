package viewmodels

type Employee struct {
	ID         string
	FullName   string
	Email      string
	Department string
	CreatedAt  string
}

type AttendanceRecord struct {
	EmployeeID   string
	EmployeeName string
	Department   string
	Date         string
	Status       string
	StatusLabel  string
	Present      bool
	MarkedAt     string
}

type AttendanceSummary struct {
	Total             int
	Present           int
	Absent            int
	PresentPercentage string
}

type ListState struct {
	Total       int
	Loaded      int
	Remaining   int
	HasMore     bool
	Loading     bool
	LoadingMore bool
	Error       string
	// Empty is the message shown in place of an empty list.
	Empty string
}

type EmployeesPageProps struct {
	Employees []*Employee
	Search    string
	List      ListState
}

type AttendanceFilterProps struct {
	EmployeeID   string
	EmployeeName string
	Date         string
	Active       bool
}

type AttendancePageProps struct {
	Records   []*AttendanceRecord
	Summary   *AttendanceSummary
	Filter    AttendanceFilterProps
	List      ListState
	CanExport bool
}

type EmployeeHistoryProps struct {
	Employee *Employee
	Records  []*AttendanceRecord
	Summary  *AttendanceSummary
	HasMore  bool
}

type DashboardProps struct {
	TotalEmployees   int
	TotalAttendance  int
	TodayPresent     int
	TodayAbsent      int
	LastUpdated      string
	Limit            int
	RecentEmployees  []*Employee
	RecentAttendance []*AttendanceRecord
	EmptyEmployees   string
	EmptyAttendance  string
}
