package exporter

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"surveyclean/internal/config"
	"surveyclean/pkg/contracts/domain"
)

func sampleReport() *domain.StatsReport {
	first := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	minAge, maxAge := 21.0, 22.5
	return &domain.StatsReport{
		RunID:       "run-1",
		RowsIn:      3,
		RowsOut:     2,
		RowsDropped: 1,
		Columns: map[string]*domain.ColumnStats{
			domain.ColAge: {Total: 2, Valid: 1, Imputed: 1, Reasons: map[domain.Reason]int{domain.ReasonOutOfRange: 1}},
		},
		Summary: &domain.RunSummary{
			FirstResponse:  &first,
			LastResponse:   &first,
			MinAge:         &minAge,
			MaxAge:         &maxAge,
			UniqueStudents: 2,
		},
	}
}

func TestExcelWriter_WriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned", "cleaned_student_data.xlsx")
	w := NewExcelWriter(testLayout, nil)

	require.NoError(t, w.WriteWorkbook(path, sampleTable(), sampleReport()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{config.CleanedSheetName, config.ReportSheetName}, f.GetSheetList())

	rows, err := f.GetRows(config.CleanedSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Timestamp", "Student ID", "Age", "Comments"}, rows[0])
	assert.Equal(t, "STU00001", rows[1][1])
	assert.Equal(t, "21.00", rows[1][2])
	assert.Equal(t, "22.50", rows[2][2])

	raw, err := f.GetCellValue(config.CleanedSheetName, "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "22.5", raw)

	comment, err := f.GetCellValue(config.CleanedSheetName, "D3")
	require.NoError(t, err)
	assert.Empty(t, comment)

	report, err := f.GetRows(config.ReportSheetName)
	require.NoError(t, err)
	assert.Equal(t, []string{"Run ID", "run-1"}, report[0])
	assert.Equal(t, []string{"Rows Dropped", "1"}, report[3])

	var ageRow []string
	for _, r := range report {
		if len(r) > 0 && r[0] == domain.ColAge {
			ageRow = r
		}
	}
	assert.Equal(t, []string{"Age", "2", "1", "0", "0", "1", "out_of_range=1"}, ageRow)
}
