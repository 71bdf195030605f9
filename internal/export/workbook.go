// Package export renders payout reports as Excel workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/payroll-report/internal/report"
)

const (
	// SheetName is the only sheet of a payout workbook
	SheetName = "Payout"

	defaultSheet = "Sheet1"
	totalLabel   = "Total payout"
)

// Header is the first row of the payout sheet
var Header = []string{"Department", "ID", "Name", "Email", "Hours Worked", "Hourly Rate", "Payout"}

// WorkbookExporter writes payout reports to xlsx
type WorkbookExporter struct {
	logger *zap.Logger
}

// NewWorkbookExporter creates a new WorkbookExporter
func NewWorkbookExporter(logger *zap.Logger) *WorkbookExporter {
	return &WorkbookExporter{logger: logger}
}

// Render returns the xlsx bytes for r. Rows follow report order with a
// subtotal row after each department and a grand total row at the end.
func (w *WorkbookExporter) Render(r *report.PayoutReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	row := 1
	if err := w.writeRow(f, row, header, boldStyle); err != nil {
		return nil, err
	}

	for _, dept := range r.Departments {
		for _, e := range dept.Employees {
			row++
			values := []interface{}{
				e.Department,
				e.ID,
				e.Name,
				e.Email,
				float64(e.HoursWorked),
				float64(e.HourlyRate),
				float64(e.Payout),
			}
			if err := w.writeRow(f, row, values, 0); err != nil {
				return nil, err
			}
		}

		row++
		if err := w.writeTotalRow(f, row, dept.Name+" total", float64(dept.DepartmentTotal), boldStyle); err != nil {
			return nil, err
		}
	}

	row++
	if err := w.writeTotalRow(f, row, totalLabel, float64(r.TotalPayout), boldStyle); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(SheetName, "A", "D", 22); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "E", "G", 14); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	w.logger.Debug("Payout workbook rendered",
		zap.Int("department_count", len(r.Departments)),
		zap.Int("row_count", row),
		zap.Int("size", buf.Len()))

	return buf.Bytes(), nil
}

func (w *WorkbookExporter) writeTotalRow(f *excelize.File, row int, label string, total float64, style int) error {
	values := make([]interface{}, len(Header))
	values[0] = label
	values[len(Header)-1] = total
	return w.writeRow(f, row, values, style)
}

// writeRow writes values starting at column A; a zero style leaves the row unstyled
func (w *WorkbookExporter) writeRow(f *excelize.File, row int, values []interface{}, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, start, &values); err != nil {
		return fmt.Errorf("failed to set row %d: %w", row, err)
	}

	if style == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, start, end, style); err != nil {
		return fmt.Errorf("failed to style row %d: %w", row, err)
	}
	return nil
}
