package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/iota-uz/hrms-lite/modules/hrm/presentation/viewmodels"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

type printer struct {
	format string
	w      io.Writer
}

func newPrinter(format string, w io.Writer) (*printer, error) {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return &printer{format: format, w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

func (p *printer) structured() bool {
	return p.format != outputTable
}

// emit writes data as JSON or YAML. Field names and order follow the json
// tags of data.
func (p *printer) emit(data any) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if p.format == outputJSON {
		_, err = fmt.Fprintln(p.w, string(b))
		return err
	}
	// JSON is YAML; decoding into a node keeps the key order.
	var node yaml.Node
	if err := yaml.Unmarshal(b, &node); err != nil {
		return err
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

// print emits data in structured formats and calls table otherwise.
func (p *printer) print(data any, table func(w io.Writer)) error {
	if p.structured() {
		return p.emit(data)
	}
	table(p.w)
	return nil
}

func (p *printer) line(format string, args ...any) {
	if p.structured() {
		return
	}
	fmt.Fprintf(p.w, format+"\n", args...)
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	if len(header) > 0 {
		t.SetHeader(header)
	}
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	return t
}

func employeesTable(w io.Writer, employees []*viewmodels.Employee) {
	t := newTable(w, "ID", "Name", "Email", "Department", "Created")
	for _, e := range employees {
		t.Append([]string{e.ID, e.FullName, e.Email, e.Department, e.CreatedAt})
	}
	t.Render()
}

func recordsTable(w io.Writer, records []*viewmodels.AttendanceRecord) {
	t := newTable(w, "Employee", "ID", "Department", "Date", "Status", "Marked")
	for _, r := range records {
		t.Append([]string{r.EmployeeName, r.EmployeeID, r.Department, r.Date, statusBadge(r), r.MarkedAt})
	}
	t.Render()
}

func kvTable(w io.Writer, rows [][2]string) {
	t := newTable(w)
	t.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	for _, r := range rows {
		t.Append([]string{r[0], r[1]})
	}
	t.Render()
}

func statusBadge(r *viewmodels.AttendanceRecord) string {
	if r.Present {
		return color.GreenString("%s", r.StatusLabel)
	}
	return color.RedString("%s", r.StatusLabel)
}
