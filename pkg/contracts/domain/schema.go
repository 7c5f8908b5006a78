package domain

// ColumnType is the semantic type of a survey column
type ColumnType string

const (
	ColumnTimestamp             ColumnType = "timestamp"
	ColumnStudentID             ColumnType = "student_id"
	ColumnAge                   ColumnType = "age"
	ColumnCategoricalGender     ColumnType = "categorical_gender"
	ColumnCategoricalDepartment ColumnType = "categorical_department"
	ColumnLetterGrade           ColumnType = "letter_grade"
	ColumnSatisfactionScore     ColumnType = "satisfaction_score"
	ColumnCommentText           ColumnType = "comment_text"
)

// Survey export column names
const (
	ColTimestamp    = "Timestamp"
	ColStudentID    = "Student ID"
	ColAge          = "Age"
	ColGender       = "Gender"
	ColDepartment   = "Department"
	ColGPA          = "GPA"
	ColSatisfaction = "Satisfaction (1-5)"
	ColComments     = "Comments"
)

// Range is an inclusive numeric validity range
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies inside the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Column describes one known column of the survey export
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
	// Required columns identify a row; a table without them is rejected and
	// a row whose value cannot be recovered is dropped.
	Required bool `json:"required"`
	// Range is set for bounded numeric columns.
	Range *Range `json:"range,omitempty"`
}

// Numeric reports whether the column holds numbers after validation
func (c Column) Numeric() bool {
	return c.Range != nil
}

// Schema is the fixed column layout of the survey export
type Schema struct {
	columns []Column
	byName  map[string]Column
}

// NewSchema builds a schema from a column list
func NewSchema(columns ...Column) *Schema {
	s := &Schema{
		columns: columns,
		byName:  make(map[string]Column, len(columns)),
	}
	for _, c := range columns {
		s.byName[c.Name] = c
	}
	return s
}

// SurveySchema returns the column layout of the student survey export
func SurveySchema() *Schema {
	return NewSchema(
		Column{Name: ColTimestamp, Type: ColumnTimestamp, Required: true},
		Column{Name: ColStudentID, Type: ColumnStudentID, Required: true},
		Column{Name: ColAge, Type: ColumnAge, Range: &Range{Min: 18, Max: 60}},
		Column{Name: ColGender, Type: ColumnCategoricalGender},
		Column{Name: ColDepartment, Type: ColumnCategoricalDepartment},
		Column{Name: ColGPA, Type: ColumnLetterGrade, Range: &Range{Min: 1.0, Max: 5.0}},
		Column{Name: ColSatisfaction, Type: ColumnSatisfactionScore, Range: &Range{Min: 1, Max: 5}},
		Column{Name: ColComments, Type: ColumnCommentText},
	)
}

// Columns returns the known columns in schema order
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Lookup returns the known column with the given name
func (s *Schema) Lookup(name string) (Column, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Required returns the required columns in schema order
func (s *Schema) Required() []Column {
	var out []Column
	for _, c := range s.columns {
		if c.Required {
			out = append(out, c)
		}
	}
	return out
}
