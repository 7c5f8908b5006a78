package testutil

import (
	"surveyclean/pkg/contracts/domain"
)

// SurveyHeader is the column order of the survey export
var SurveyHeader = []string{
	domain.ColTimestamp,
	domain.ColStudentID,
	domain.ColAge,
	domain.ColGender,
	domain.ColDepartment,
	domain.ColGPA,
	domain.ColSatisfaction,
	domain.ColComments,
}

// NewRawTable builds a RawTable from string rows. Empty strings become nil
// cells, as the table reader produces them; short rows are padded.
func NewRawTable(header []string, rows ...[]string) *domain.RawTable {
	t := &domain.RawTable{
		Columns: append([]string(nil), header...),
		Rows:    make([]domain.RawRecord, len(rows)),
	}
	for pos, row := range rows {
		cells := make(map[string]interface{}, len(header))
		for i, name := range header {
			if i < len(row) && row[i] != "" {
				cells[name] = row[i]
			} else {
				cells[name] = nil
			}
		}
		t.Rows[pos] = domain.RawRecord{Position: pos, Cells: cells}
	}
	return t
}

// SurveyRow builds one row in SurveyHeader order
func SurveyRow(timestamp, id, age, gender, department, gpa, satisfaction, comment string) []string {
	return []string{timestamp, id, age, gender, department, gpa, satisfaction, comment}
}
