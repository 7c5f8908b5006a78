package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyclean/pkg/contracts/domain"
)

const testLayout = "2006-01-02 15:04:05"

func sampleTable() *domain.CleanedTable {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	return &domain.CleanedTable{
		Columns: []string{domain.ColTimestamp, domain.ColStudentID, domain.ColAge, domain.ColComments},
		Rows: []domain.CleanedRecord{
			{Position: 0, Cells: map[string]domain.Value{
				domain.ColTimestamp: domain.Time(ts),
				domain.ColStudentID: domain.Text("STU00001"),
				domain.ColAge:       domain.Number(21),
				domain.ColComments:  domain.Text("Great, \"really\""),
			}},
			{Position: 2, Cells: map[string]domain.Value{
				domain.ColTimestamp: domain.Time(ts.Add(time.Hour)),
				domain.ColStudentID: domain.Text("STU00002"),
				domain.ColAge:       domain.Number(22.5),
				domain.ColComments:  domain.Missing(),
			}},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "missing BOM")

	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriter_WriteTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleaned", "cleaned_student_data.csv")
	w := NewCSVWriter(testLayout, nil)

	require.NoError(t, w.WriteTable(path, sampleTable()))

	records := readCSV(t, path)
	assert.Equal(t, [][]string{
		{"Timestamp", "Student ID", "Age", "Comments"},
		{"2024-01-01 09:00:00", "STU00001", "21.00", "Great, \"really\""},
		{"2024-01-01 10:00:00", "STU00002", "22.50", ""},
	}, records)
}

func TestCSVWriter_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new file\n"), 0644))

	w := NewCSVWriter(testLayout, nil)
	require.NoError(t, w.WriteCSV(path, WriteOptions{Headers: []string{"a"}, Records: [][]string{{"1"}}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(data))
}

func TestCSVWriter_WriteQuarantineCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quarantined_comments.csv")
	w := NewCSVWriter(testLayout, nil)

	err := w.WriteQuarantineCSV(path, []domain.QuarantinedComment{
		{Position: 4, StudentID: "STU00005", Text: "aaaaaaaa", Rule: "char_repetition"},
	})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		QuarantineHeader,
		{"4", "STU00005", "char_repetition", "aaaaaaaa"},
	}, readCSV(t, path))
}
