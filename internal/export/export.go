// Package export dumps work-time rows to CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/worktrack/worktrack/internal/worktime"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Columns is the header row, matching the work_time table.
var Columns = []string{"id", "employee_id", "date", "start_time", "end_time", "status", "comment"}

const sheetName = "work_time"

// ParseFormat validates a -format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: want csv or xlsx", s)
	}
}

// Write encodes rows in the given format.
func Write(w io.Writer, format Format, rows []worktime.WorkTime) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func record(wt worktime.WorkTime) []string {
	return []string{
		strconv.FormatInt(wt.ID, 10),
		strconv.FormatInt(wt.EmployeeID, 10),
		wt.Date.Format(time.DateOnly),
		clockCell(wt.StartTime),
		clockCell(wt.EndTime),
		string(wt.Status),
		wt.Comment,
	}
}

func clockCell(c *worktime.Clock) string {
	if c == nil {
		return ""
	}
	return c.String() + ":00"
}

// WriteCSV writes a header row followed by one record per work-time.
func WriteCSV(w io.Writer, rows []worktime.WorkTime) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, wt := range rows {
		if err := cw.Write(record(wt)); err != nil {
			return fmt.Errorf("writing csv row %d: %w", wt.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// WriteXLSX writes a single-sheet workbook with the same layout as WriteCSV. Ids are
// numeric cells; everything else is text.
func WriteXLSX(w io.Writer, rows []worktime.WorkTime) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}

	for i, wt := range rows {
		rec := record(wt)
		row := []any{wt.ID, wt.EmployeeID, rec[2], rec[3], rec[4], rec[5], rec[6]}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("writing xlsx row %d: %w", wt.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}
