package fakeapi

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/hrms-lite/pkg/constants"
	"github.com/iota-uz/hrms-lite/pkg/httpapi"
	"github.com/iota-uz/hrms-lite/pkg/listing"
)

// wireRecord is an attendance record as the API serializes it: the employee
// relation under "employee" and no record id.
type wireRecord struct {
	Employee           string `json:"employee"`
	EmployeeName       string `json:"employee_name"`
	EmployeeDepartment string `json:"employee_department"`
	Date               string `json:"date"`
	Status             string `json:"status"`
	CreatedAt          string `json:"created_at"`
}

func parsePage(r *http.Request) (int, int, bool) {
	q := r.URL.Query()
	skipRaw, limitRaw := q.Get("skip"), q.Get("limit")
	if skipRaw == "" {
		skipRaw = "0"
	}
	if limitRaw == "" {
		limitRaw = "10"
	}
	skip, err1 := strconv.Atoi(skipRaw)
	limit, err2 := strconv.Atoi(limitRaw)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return skip, limit, true
}

func pageBounds(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	skip, limit, ok := parsePage(r)
	if !ok {
		_ = httpapi.WriteFailure(w, http.StatusBadRequest, "Invalid skip or limit value. Must be numbers.", nil)
		return 0, 0, false
	}
	if skip < 0 || limit <= 0 {
		_ = httpapi.WriteFailure(w, http.StatusBadRequest, "Skip must be >= 0 and limit must be > 0", nil)
		return 0, 0, false
	}
	return skip, limit, true
}

func window(total, skip, limit int) (int, int, *listing.PageInfo) {
	from := min(skip, total)
	to := min(skip+limit, total)
	return from, to, &listing.PageInfo{
		Skip:    skip,
		Limit:   limit,
		Total:   total,
		HasMore: skip+limit < total,
	}
}

func validationFailure(w http.ResponseWriter, errs map[string]string) {
	data := make(map[string][]string, len(errs))
	for k, v := range errs {
		data[k] = []string{v}
	}
	_ = httpapi.WriteFailure(w, http.StatusBadRequest, "Validation failed", data)
}

func (s *Server) listEmployees(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageBounds(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	from, to, info := window(len(s.employees), skip, limit)
	items := make([]employee.Employee, 0, to-from)
	for _, e := range s.employees[from:to] {
		items = append(items, e.Employee)
	}
	s.mu.Unlock()

	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Employee fetched successfully!", employee.Page{
		Employees:  items,
		Pagination: info,
	})
}

func (s *Server) createEmployee(w http.ResponseWriter, r *http.Request) {
	var dto employee.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteFailure(w, http.StatusBadRequest, "JSON parse error", nil)
		return
	}
	errs, _ := dto.Ok(r.Context())

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := errs["email"]; !exists {
		for _, e := range s.employees {
			if strings.EqualFold(e.Email, dto.Email) {
				errs["email"] = "Email already exists"
				break
			}
		}
	}
	if len(errs) > 0 {
		validationFailure(w, errs)
		return
	}
	created := s.addEmployeeLocked(employee.Employee{
		FullName:   dto.FullName,
		Email:      dto.Email,
		Department: dto.Department,
	})
	_ = httpapi.WriteEnvelope(w, http.StatusCreated, "Employee created successfully!", created)
}

func (s *Server) employeeStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	stats := employee.Stats{
		TotalEmployees: len(s.employees),
		LastUpdated:    s.now().Format("2006-01-02T15:04:05.999999"),
	}
	s.mu.Unlock()
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Employee statistics retrieved successfully", stats)
}

func (s *Server) getEmployee(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	e, _ := s.findEmployeeLocked(mux.Vars(r)["id"])
	s.mu.Unlock()
	if e == nil {
		_ = httpapi.WriteFailure(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Success", e.Employee)
}

func (s *Server) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	defer s.mu.Unlock()
	_, idx := s.findEmployeeLocked(id)
	if idx < 0 {
		_ = httpapi.WriteFailure(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	s.employees = append(s.employees[:idx:idx], s.employees[idx+1:]...)
	kept := s.records[:0:0]
	for _, rec := range s.records {
		if rec.employeeID != id {
			kept = append(kept, rec)
		}
	}
	s.records = kept
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Employee deleted successfully", nil)
}

// must hold s.mu
func (s *Server) wireLocked(rec *storedRecord) wireRecord {
	out := wireRecord{
		Employee:  rec.employeeID,
		Date:      rec.date,
		Status:    string(rec.status),
		CreatedAt: rec.createdAt.UTC().Format(time.RFC3339Nano),
	}
	if e, _ := s.findEmployeeLocked(rec.employeeID); e != nil {
		out.EmployeeName = e.FullName
		out.EmployeeDepartment = e.Department
	}
	return out
}

func (s *Server) listAttendance(w http.ResponseWriter, r *http.Request) {
	skip, limit, ok := pageBounds(w, r)
	if !ok {
		return
	}
	filter := attendance.FilterFromValues(r.URL.Query())
	if filter.Date != "" && !constants.IsDate(filter.Date) {
		_ = httpapi.WriteFailure(w, http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD", nil)
		return
	}

	s.mu.Lock()
	matched := make([]*storedRecord, 0, len(s.records))
	for _, rec := range s.records {
		if filter.EmployeeID != "" && rec.employeeID != filter.EmployeeID {
			continue
		}
		if filter.Date != "" && rec.date != filter.Date {
			continue
		}
		matched = append(matched, rec)
	}
	from, to, info := window(len(matched), skip, limit)
	items := make([]wireRecord, 0, to-from)
	for _, rec := range matched[from:to] {
		items = append(items, s.wireLocked(rec))
	}
	s.mu.Unlock()

	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Data fetched successfully!", map[string]any{
		"attendance": items,
		"pagination": info,
	})
}

func (s *Server) markAttendance(w http.ResponseWriter, r *http.Request) {
	var dto attendance.MarkDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		_ = httpapi.WriteFailure(w, http.StatusBadRequest, "JSON parse error", nil)
		return
	}
	errs, _ := dto.Ok(r.Context())
	if _, bad := errs["date"]; !bad && !constants.IsDate(dto.Date) {
		errs["date"] = "Date must be in YYYY-MM-DD format"
	}
	if len(errs) > 0 {
		validationFailure(w, errs)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, _ := s.findEmployeeLocked(dto.EmployeeID); e == nil {
		validationFailure(w, map[string]string{"employee_id": "Employee not found"})
		return
	}
	for _, rec := range s.records {
		if rec.employeeID == dto.EmployeeID && rec.date == dto.Date {
			validationFailure(w, map[string]string{"date": "Attendance already marked for this date"})
			return
		}
	}
	rec := &storedRecord{
		employeeID: dto.EmployeeID,
		date:       dto.Date,
		status:     dto.Status,
		createdAt:  s.now(),
	}
	s.records = append([]*storedRecord{rec}, s.records...)
	_ = httpapi.WriteEnvelope(w, http.StatusCreated, "Attendance marked successfully!", s.wireLocked(rec))
}

func (s *Server) attendanceStats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	now := s.now()
	today := now.Format(constants.DateLayout)
	stats := attendance.Stats{
		TotalAttendance: len(s.records),
		LastUpdated:     now.Format("2006-01-02T15:04:05.999999"),
	}
	for _, rec := range s.records {
		if rec.date != today {
			continue
		}
		stats.TodayTotal++
		switch rec.status {
		case attendance.StatusPresent:
			stats.TodayPresent++
		case attendance.StatusAbsent:
			stats.TodayAbsent++
		}
	}
	s.mu.Unlock()
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Attendance statistics retrieved successfully", stats)
}

func (s *Server) employeeAttendance(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	e, _ := s.findEmployeeLocked(id)
	s.mu.Unlock()
	if e == nil {
		_ = httpapi.WriteFailure(w, http.StatusNotFound, "Employee not found", nil)
		return
	}
	skip, limit, ok := pageBounds(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	var mine []*storedRecord
	present := 0
	for _, rec := range s.records {
		if rec.employeeID != id {
			continue
		}
		mine = append(mine, rec)
		if rec.status == attendance.StatusPresent {
			present++
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		if mine[i].date != mine[j].date {
			return mine[i].date > mine[j].date
		}
		return mine[i].createdAt.After(mine[j].createdAt)
	})
	from, to, info := window(len(mine), skip, limit)
	items := make([]wireRecord, 0, to-from)
	for _, rec := range mine[from:to] {
		items = append(items, s.wireLocked(rec))
	}
	s.mu.Unlock()

	total := len(mine)
	pct := 0.0
	if total > 0 {
		pct = math.Round(float64(present)/float64(total)*100*100) / 100
	}
	_ = httpapi.WriteEnvelope(w, http.StatusOK, "Success", map[string]any{
		"employee": employee.Employee{
			EmployeeID: e.EmployeeID,
			FullName:   e.FullName,
			Email:      e.Email,
			Department: e.Department,
		},
		"attendance_records": items,
		"summary": attendance.EmployeeSummary{
			TotalDays:         total,
			PresentDays:       present,
			AbsentDays:        total - present,
			PresentPercentage: pct,
		},
		"pagination": info,
	})
}
