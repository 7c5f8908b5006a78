package operations

import (
	"fmt"

	"github.com/spf13/cast"

	"surveyclean/pkg/contracts/domain"
)

// RunState is the working table shared by the stages of one run. Stages
// run one after another, so it carries no lock.
type RunState struct {
	RunID string
	Raw   *domain.RawTable

	// Columns are the known columns present in the input, in header order.
	Columns []domain.Column
	// Unrecognized are passed through untouched and never counted.
	Unrecognized []string

	// Rows are the raw rows that survived the structure stage and Records
	// the cleaned rows built from them, index for index.
	Rows    []domain.RawRecord
	Records []domain.CleanedRecord

	Quarantine []domain.QuarantinedComment
	Stats      *StatsAccumulator

	status map[string][]domain.Status
}

// NewRunState creates the state for one run over raw
func NewRunState(runID string, raw *domain.RawTable, stats *StatsAccumulator) *RunState {
	return &RunState{
		RunID:  runID,
		Raw:    raw,
		Stats:  stats,
		status: make(map[string][]domain.Status),
	}
}

// keep installs the surviving rows and allocates their cleaned records
func (r *RunState) keep(rows []domain.RawRecord) {
	r.Rows = rows
	r.Records = make([]domain.CleanedRecord, len(rows))
	for i, row := range rows {
		r.Records[i] = domain.CleanedRecord{
			Position: row.Position,
			Cells:    make(map[string]domain.Value, len(r.Raw.Columns)),
		}
	}
	for _, col := range r.Columns {
		r.status[col.Name] = make([]domain.Status, len(rows))
	}
	for i, row := range rows {
		for _, name := range r.Unrecognized {
			r.Records[i].Cells[name] = passthrough(row.Get(name))
		}
	}
}

// passthrough keeps an unrecognized cell as text
func passthrough(raw interface{}) domain.Value {
	if raw == nil {
		return domain.Missing()
	}
	s, err := cast.ToStringE(raw)
	if err != nil || s == "" {
		return domain.Missing()
	}
	return domain.Text(s)
}

// set stores the first outcome of a cell and counts it
func (r *RunState) set(i int, column string, o domain.Outcome) {
	r.Records[i].Cells[column] = o.Value
	r.status[column][i] = o.Status
	r.Stats.Record(column, o)
}

// reclassify replaces a cell value and moves its count to a new class
func (r *RunState) reclassify(i int, column string, v domain.Value, to domain.Status, reason domain.Reason) error {
	from := r.status[column][i]
	if err := r.Stats.Reclassify(column, from, to, reason); err != nil {
		return fmt.Errorf("row %d: %w", r.Records[i].Position, err)
	}
	r.Records[i].Cells[column] = v
	r.status[column][i] = to
	return nil
}

// Values copies one column of the working table
func (r *RunState) Values(column string) []domain.Value {
	out := make([]domain.Value, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Cells[column]
	}
	return out
}

// Positions returns the source positions of the surviving rows
func (r *RunState) Positions() []int {
	out := make([]int, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.Position
	}
	return out
}

// columnOfType returns the first present column with the given type
func (r *RunState) columnOfType(t domain.ColumnType) (domain.Column, bool) {
	for _, col := range r.Columns {
		if col.Type == t {
			return col, true
		}
	}
	return domain.Column{}, false
}

// Table returns the cleaned table in source order
func (r *RunState) Table() *domain.CleanedTable {
	return &domain.CleanedTable{
		Columns: append([]string(nil), r.Raw.Columns...),
		Rows:    r.Records,
	}
}
