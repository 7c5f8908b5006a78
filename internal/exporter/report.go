package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"surveyclean/pkg/contracts/domain"
)

// WriteReportJSON writes the statistics report as indented JSON
func WriteReportJSON(filePath string, report *domain.StatsReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
