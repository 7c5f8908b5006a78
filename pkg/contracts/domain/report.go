package domain

import (
	"sort"
	"time"
)

// ColumnStats holds the counters of one column. Every processed cell is
// counted exactly once across Valid, Corrected, Rejected and Imputed.
type ColumnStats struct {
	Total     int            `json:"total"`
	Valid     int            `json:"valid"`
	Corrected int            `json:"corrected"`
	Rejected  int            `json:"rejected"`
	Imputed   int            `json:"imputed"`
	Reasons   map[Reason]int `json:"reasons,omitempty"`
}

// Accounted returns the sum of the final-class counters
func (c ColumnStats) Accounted() int {
	return c.Valid + c.Corrected + c.Rejected + c.Imputed
}

// StatsReport summarizes what one pipeline run changed
type StatsReport struct {
	RunID        string                  `json:"run_id,omitempty"`
	StartedAt    time.Time               `json:"started_at"`
	FinishedAt   time.Time               `json:"finished_at"`
	RowsIn       int                     `json:"rows_in"`
	RowsOut      int                     `json:"rows_out"`
	RowsDropped  int                     `json:"rows_dropped"`
	SpamBlanked  int                     `json:"spam_blanked"`
	Columns      map[string]*ColumnStats `json:"columns"`
	Unrecognized []string                `json:"unrecognized_columns,omitempty"`
	Summary      *RunSummary             `json:"summary,omitempty"`
}

// Column returns the stats of a column, nil when the column was never
// processed
func (r *StatsReport) Column(name string) *ColumnStats {
	return r.Columns[name]
}

// ColumnNames returns the processed column names in sorted order
func (r *StatsReport) ColumnNames() []string {
	names := make([]string, 0, len(r.Columns))
	for name := range r.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunSummary carries the descriptive figures logged at the end of a run
type RunSummary struct {
	FirstResponse    *time.Time `json:"first_response,omitempty"`
	LastResponse     *time.Time `json:"last_response,omitempty"`
	MinAge           *float64   `json:"min_age,omitempty"`
	MaxAge           *float64   `json:"max_age,omitempty"`
	MeanGPA          *float64   `json:"mean_gpa,omitempty"`
	MeanSatisfaction *float64   `json:"mean_satisfaction,omitempty"`
	UniqueStudents   int        `json:"unique_students"`
}
