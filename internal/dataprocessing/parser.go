package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"surveyclean/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

// ReadTable loads a survey export into a RawTable. .csv and .xlsx files are
// supported; for workbooks sheet selects the sheet and defaults to the
// first one. The first row is the header. Trailing blank rows are skipped,
// interior blank rows are kept so that row positions match the source.
func ReadTable(path, sheet string, logger *slog.Logger) (*domain.RawTable, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		rows [][]string
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx":
		rows, sheet, err = readSheetRows(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported input format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no header row", path)
	}

	table, err := buildTable(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Info("Survey export loaded",
		slog.String("file", path),
		slog.String("sheet", sheet),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", len(table.Rows)))
	return table, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, rec)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}
	return rows, nil
}

func readSheetRows(path, sheet string) ([][]string, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, "", fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, sheet, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, sheet, nil
}

func buildTable(rows [][]string) (*domain.RawTable, error) {
	header := rows[0]
	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed %d", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		seen[name] = true
		columns[i] = name
	}

	body := rows[1:]
	end := len(body)
	for end > 0 && blankRow(body[end-1]) {
		end--
	}
	body = body[:end]

	table := &domain.RawTable{
		Columns: columns,
		Rows:    make([]domain.RawRecord, len(body)),
	}
	for pos, row := range body {
		cells := make(map[string]interface{}, len(columns))
		for i, name := range columns {
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				cells[name] = row[i]
			} else {
				cells[name] = nil
			}
		}
		table.Rows[pos] = domain.RawRecord{Position: pos, Cells: cells}
	}
	return table, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
