// Package export writes the loaded attendance records to CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/hrms-lite/modules/hrm/domain/aggregates/attendance"
	"github.com/iota-uz/hrms-lite/pkg/formatting"
)

const SheetName = "Attendance"

var Header = []string{"Employee ID", "Employee Name", "Date", "Status", "Department", "Marked At"}

var ErrNoRecords = errors.New("no attendance records to export")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want csv or xlsx)", s)
	}
}

// FileName is attendance_<UTC date>.<format>.
func FileName(now time.Time, f Format) string {
	return fmt.Sprintf("attendance_%s.%s", formatting.Today(now.UTC()), f)
}

// Rows renders one row per record. Date and status are written as the API
// returns them; Marked At is formatted like the list view.
func Rows(records []attendance.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.EmployeeID,
			r.EmployeeName,
			r.Date,
			string(r.Status),
			r.EmployeeDepartment,
			formatting.FormatDate(r.CreatedAt),
		})
	}
	return rows
}

func WriteCSV(w io.Writer, records []attendance.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	if err := cw.WriteAll(Rows(records)); err != nil {
		return errors.Wrap(err, "write csv")
	}
	return nil
}

func WriteXLSX(w io.Writer, records []attendance.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return errors.Wrap(err, "rename sheet")
	}
	rows := append([][]string{Header}, Rows(records)...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return errors.Wrapf(err, "write row %d", i+1)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "write xlsx")
	}
	return nil
}

func Write(w io.Writer, f Format, records []attendance.Record) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, records)
	case FormatCSV, "":
		return WriteCSV(w, records)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// ToFile writes records into dir under FileName and returns the path. An
// empty record set is refused.
func ToFile(dir string, now time.Time, f Format, records []attendance.Record) (string, error) {
	if len(records) == 0 {
		return "", ErrNoRecords
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create export dir")
	}
	path := filepath.Join(dir, FileName(now, f))
	out, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create export file")
	}
	if err := Write(out, f, records); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrap(err, "close export file")
	}
	return path, nil
}
