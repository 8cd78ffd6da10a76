// Package fakeapi is an in-memory HRMS REST API. It backs the tests and the
// hidden `hrms dev serve` command.
package fakeapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/pkg/httpapi"
)

// RequestLog is one request the server received.
type RequestLog struct {
	Method string
	Path   string
	Query  url.Values
}

type failure struct {
	status int
	msg    string
}

type storedEmployee struct {
	employee.Employee
	createdAt time.Time
}

type storedRecord struct {
	employeeID string
	date       string
	status     attendance.Status
	createdAt  time.Time
}

type Server struct {
	mu         sync.Mutex
	employees  []*storedEmployee // newest first
	records    []*storedRecord   // newest first
	lastEmpNum int
	requests   []RequestLog
	failNext   []failure
	latency    time.Duration
	now        func() time.Time
}

type Option func(*Server)

// WithClock sets the source of created_at timestamps and of "today".
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLatency delays every response.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

func New(opts ...Option) *Server {
	s := &Server{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler serves the API under /api.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.middleware)
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/employees/", s.listEmployees).Methods(http.MethodGet)
	api.HandleFunc("/employees/", s.createEmployee).Methods(http.MethodPost)
	api.HandleFunc("/employees/stats/", s.employeeStats).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id}/", s.getEmployee).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id}/", s.deleteEmployee).Methods(http.MethodDelete)
	api.HandleFunc("/attendance/", s.listAttendance).Methods(http.MethodGet)
	api.HandleFunc("/attendance/", s.markAttendance).Methods(http.MethodPost)
	api.HandleFunc("/attendance/stats/", s.attendanceStats).Methods(http.MethodGet)
	api.HandleFunc("/attendance/employee/{id}/", s.employeeAttendance).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteFailure(w, http.StatusNotFound, "Not found", nil)
	})
	return r
}

func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, RequestLog{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
		})
		var fail *failure
		if len(s.failNext) > 0 {
			f := s.failNext[0]
			s.failNext = s.failNext[1:]
			fail = &f
		}
		latency := s.latency
		s.mu.Unlock()

		if latency > 0 {
			select {
			case <-time.After(latency):
			case <-r.Context().Done():
				return
			}
		}
		if fail != nil {
			_ = httpapi.WriteFailure(w, fail.status, fail.msg, nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// FailNext makes the next request fail with status and msg.
func (s *Server) FailNext(status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = append(s.failNext, failure{status: status, msg: msg})
}

func (s *Server) Requests() []RequestLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RequestLog(nil), s.requests...)
}

// RequestsTo counts requests with the given method and path.
func (s *Server) RequestsTo(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// AddEmployee stores e as the newest employee, assigning the next EMP id
// when e has none.
func (s *Server) AddEmployee(e employee.Employee) employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addEmployeeLocked(e)
}

func (s *Server) addEmployeeLocked(e employee.Employee) employee.Employee {
	if e.EmployeeID == "" {
		s.lastEmpNum++
		e.EmployeeID = fmt.Sprintf("EMP%03d", s.lastEmpNum)
	} else if n, err := strconv.Atoi(e.EmployeeID[min(3, len(e.EmployeeID)):]); err == nil && n > s.lastEmpNum {
		s.lastEmpNum = n
	}
	created := s.now()
	e.CreatedAt = created.UTC().Format(time.RFC3339Nano)
	s.employees = append([]*storedEmployee{{Employee: e, createdAt: created}}, s.employees...)
	return e
}

// AddAttendance stores a mark without validation.
func (s *Server) AddAttendance(employeeID, date string, status attendance.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]*storedRecord{{
		employeeID: employeeID,
		date:       date,
		status:     status,
		createdAt:  s.now(),
	}}, s.records...)
}

// Employees returns the stored employees, newest first.
func (s *Server) Employees() []employee.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]employee.Employee, len(s.employees))
	for i, e := range s.employees {
		out[i] = e.Employee
	}
	return out
}

func (s *Server) findEmployeeLocked(id string) (*storedEmployee, int) {
	for i, e := range s.employees {
		if e.EmployeeID == id {
			return e, i
		}
	}
	return nil, -1
}
