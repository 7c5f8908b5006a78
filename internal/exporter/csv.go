package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"surveyclean/pkg/contracts/domain"
)

// QuarantineHeader is the header of the quarantined comments file
var QuarantineHeader = []string{"Position", "Student ID", "Rule", "Comment"}

// CSVWriter writes cleaned tables and side files as CSV
type CSVWriter struct {
	timestampLayout string
	logger          *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance. Timestamps are written
// with timestampLayout.
func NewCSVWriter(timestampLayout string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{timestampLayout: timestampLayout, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options, replacing any
// existing file
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}

// WriteTable writes a cleaned table in its column order. Missing cells are
// empty, numbers carry two decimals.
func (w *CSVWriter) WriteTable(filePath string, table *domain.CleanedTable) error {
	records := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		record := make([]string, len(table.Columns))
		for j, col := range table.Columns {
			record[j] = formatValue(row.Get(col), w.timestampLayout)
		}
		records[i] = record
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers:   table.Columns,
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteQuarantineCSV writes the original text of blanked comments
func (w *CSVWriter) WriteQuarantineCSV(filePath string, comments []domain.QuarantinedComment) error {
	records := make([][]string, len(comments))
	for i, c := range comments {
		records[i] = []string{formatInt(c.Position), c.StudentID, c.Rule, c.Text}
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers:   QuarantineHeader,
		Records:   records,
		BOMPrefix: true,
	})
}
