package domain

// RawRecord is one row of the input table as read from the source file.
// Cells hold untyped values (string, number or nil for empty).
type RawRecord struct {
	// Position is the 0-based row position in the source table.
	Position int
	Cells    map[string]interface{}
}

// Get returns the raw cell for a column, nil when absent
func (r RawRecord) Get(column string) interface{} {
	if r.Cells == nil {
		return nil
	}
	return r.Cells[column]
}

// RawTable is the in-memory input table. Columns keeps the header order.
type RawTable struct {
	Columns []string
	Rows    []RawRecord
}

// HasColumn reports whether the header contains the column
func (t *RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// CleanedRecord is the output row for a RawRecord that survived cleaning
type CleanedRecord struct {
	// Position is the source position of the originating RawRecord.
	Position int              `json:"position"`
	Cells    map[string]Value `json:"cells"`
	// SpamBlanked is set when the comment cell was blanked by the spam
	// detector.
	SpamBlanked bool `json:"spam_blanked,omitempty"`
}

// Get returns the cleaned cell for a column, missing when absent
func (r CleanedRecord) Get(column string) Value {
	return r.Cells[column]
}

// CleanedTable is the analysis-ready output table
type CleanedTable struct {
	Columns []string
	Rows    []CleanedRecord
}

// QuarantinedComment keeps the original text of a blanked comment
type QuarantinedComment struct {
	Position  int    `json:"position"`
	StudentID string `json:"student_id"`
	Text      string `json:"text"`
	Rule      string `json:"rule"`
}
