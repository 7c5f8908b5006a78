package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"surveyclean/internal/config"
	"surveyclean/pkg/contracts/domain"
)

// ReportHeader is the header of the per-column table on the report sheet
var ReportHeader = []interface{}{"Column", "Total", "Valid", "Corrected", "Rejected", "Imputed", "Rejection Reasons"}

// ExcelWriter writes the cleaned table and the cleaning report into one
// workbook
type ExcelWriter struct {
	timestampLayout string
	schema          *domain.Schema
	logger          *slog.Logger
}

// NewExcelWriter creates a workbook writer
func NewExcelWriter(timestampLayout string, logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{
		timestampLayout: timestampLayout,
		schema:          domain.SurveySchema(),
		logger:          logger,
	}
}

// WriteWorkbook saves table on the "Cleaned Student Data" sheet and report
// on the "Cleaning Report" sheet
func (w *ExcelWriter) WriteWorkbook(filePath string, table *domain.CleanedTable, report *domain.StatsReport) error {
	w.logger.Info("Writing workbook",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(table.Rows)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", config.CleanedSheetName); err != nil {
		return fmt.Errorf("failed to name data sheet: %w", err)
	}
	if err := w.writeData(f, table); err != nil {
		return err
	}

	if _, err := f.NewSheet(config.ReportSheetName); err != nil {
		return fmt.Errorf("failed to add report sheet: %w", err)
	}
	if err := w.writeReport(f, report); err != nil {
		return err
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *ExcelWriter) writeData(f *excelize.File, table *domain.CleanedTable) error {
	sheet := config.CleanedSheetName

	header := make([]interface{}, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range table.Rows {
		cells := make([]interface{}, len(table.Columns))
		for j, col := range table.Columns {
			cells[j] = w.cell(row.Get(col))
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.Position, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(max(len(table.Columns), 1), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	if len(table.Rows) == 0 {
		return nil
	}
	twoDecimals, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return fmt.Errorf("failed to create number style: %w", err)
	}
	for j, name := range table.Columns {
		col, ok := w.schema.Lookup(name)
		if !ok || !col.Numeric() {
			continue
		}
		top, _ := excelize.CoordinatesToCellName(j+1, 2)
		bottom, _ := excelize.CoordinatesToCellName(j+1, len(table.Rows)+1)
		if err := f.SetCellStyle(sheet, top, bottom, twoDecimals); err != nil {
			return fmt.Errorf("failed to style column %s: %w", name, err)
		}
	}
	return nil
}

// cell converts a value into what excelize should store; nil leaves the
// cell empty
func (w *ExcelWriter) cell(v domain.Value) interface{} {
	if s, ok := v.Str(); ok {
		return s
	}
	if f, ok := v.Num(); ok {
		return f
	}
	if t, ok := v.Timestamp(); ok {
		return t.Format(w.timestampLayout)
	}
	return nil
}

func (w *ExcelWriter) writeReport(f *excelize.File, report *domain.StatsReport) error {
	sheet := config.ReportSheetName

	rows := [][]interface{}{
		{"Run ID", report.RunID},
		{"Rows In", report.RowsIn},
		{"Rows Out", report.RowsOut},
		{"Rows Dropped", report.RowsDropped},
		{"Comments Blanked", report.SpamBlanked},
	}
	if s := report.Summary; s != nil {
		if s.FirstResponse != nil && s.LastResponse != nil {
			rows = append(rows,
				[]interface{}{"First Response", s.FirstResponse.Format(w.timestampLayout)},
				[]interface{}{"Last Response", s.LastResponse.Format(w.timestampLayout)})
		}
		if s.MinAge != nil && s.MaxAge != nil {
			rows = append(rows,
				[]interface{}{"Min Age", *s.MinAge},
				[]interface{}{"Max Age", *s.MaxAge})
		}
		if s.MeanGPA != nil {
			rows = append(rows, []interface{}{"Mean GPA", *s.MeanGPA})
		}
		if s.MeanSatisfaction != nil {
			rows = append(rows, []interface{}{"Mean Satisfaction", *s.MeanSatisfaction})
		}
		rows = append(rows, []interface{}{"Unique Students", s.UniqueStudents})
	}

	rows = append(rows, nil, ReportHeader)
	for _, name := range report.ColumnNames() {
		c := report.Column(name)
		rows = append(rows, []interface{}{
			name, c.Total, c.Valid, c.Corrected, c.Rejected, c.Imputed, formatReasons(c.Reasons),
		})
	}

	for i, r := range rows {
		if r == nil {
			continue
		}
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(sheet, addr, &row); err != nil {
			return fmt.Errorf("failed to write report row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 22); err != nil {
		return fmt.Errorf("failed to size report sheet: %w", err)
	}
	return nil
}
