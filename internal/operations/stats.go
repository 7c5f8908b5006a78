package operations

import (
	"fmt"
	"time"

	"surveyclean/pkg/contracts/domain"
)

// StatsAccumulator collects per-column counters for one run. Every
// processed cell is counted once, under its current class; when a later
// stage changes the class the count moves with Reclassify. Rejection
// reasons are tallied per rejection event and never move.
//
// The accumulator is owned by the pipeline driver and is not safe for
// concurrent use.
type StatsAccumulator struct {
	report    *domain.StatsReport
	finalized bool
}

// NewStatsAccumulator starts an empty report
func NewStatsAccumulator(runID string, startedAt time.Time) *StatsAccumulator {
	return &StatsAccumulator{
		report: &domain.StatsReport{
			RunID:     runID,
			StartedAt: startedAt,
			Columns:   make(map[string]*domain.ColumnStats),
		},
	}
}

func (a *StatsAccumulator) column(name string) *domain.ColumnStats {
	c, ok := a.report.Columns[name]
	if !ok {
		c = &domain.ColumnStats{Reasons: make(map[domain.Reason]int)}
		a.report.Columns[name] = c
	}
	return c
}

// bump adjusts the counter of one class
func bump(c *domain.ColumnStats, status domain.Status, delta int) {
	switch status {
	case domain.StatusValid:
		c.Valid += delta
	case domain.StatusCorrected:
		c.Corrected += delta
	case domain.StatusRejected:
		c.Rejected += delta
	case domain.StatusImputed:
		c.Imputed += delta
	}
}

// Record counts the first outcome of a cell
func (a *StatsAccumulator) Record(column string, o domain.Outcome) {
	c := a.column(column)
	c.Total++
	bump(c, o.Status, 1)
	if o.Status == domain.StatusRejected && o.Reason != domain.ReasonNone {
		c.Reasons[o.Reason]++
	}
}

// Reclassify moves one cell of column from one class to another. A
// non-empty reason is tallied when the cell becomes rejected.
func (a *StatsAccumulator) Reclassify(column string, from, to domain.Status, reason domain.Reason) error {
	c := a.column(column)
	if from == to {
		return nil
	}
	if count(c, from) == 0 {
		return fmt.Errorf("stats: no %s cell in column %q to reclassify", from, column)
	}
	bump(c, from, -1)
	bump(c, to, 1)
	if to == domain.StatusRejected && reason != domain.ReasonNone {
		c.Reasons[reason]++
	}
	return nil
}

func count(c *domain.ColumnStats, status domain.Status) int {
	switch status {
	case domain.StatusValid:
		return c.Valid
	case domain.StatusCorrected:
		return c.Corrected
	case domain.StatusRejected:
		return c.Rejected
	case domain.StatusImputed:
		return c.Imputed
	}
	return 0
}

// SetRowsIn records the input row count
func (a *StatsAccumulator) SetRowsIn(n int) {
	a.report.RowsIn = n
}

// DropRow counts a row removed for a structural violation
func (a *StatsAccumulator) DropRow() {
	a.report.RowsDropped++
}

// SpamBlanked counts a comment blanked by the spam detector
func (a *StatsAccumulator) SpamBlanked() {
	a.report.SpamBlanked++
}

// SetUnrecognized records the pass-through columns
func (a *StatsAccumulator) SetUnrecognized(columns []string) {
	a.report.Unrecognized = append([]string(nil), columns...)
}

// Snapshot returns the counters of one column as they stand
func (a *StatsAccumulator) Snapshot(column string) domain.ColumnStats {
	c, ok := a.report.Columns[column]
	if !ok {
		return domain.ColumnStats{}
	}
	out := *c
	out.Reasons = make(map[domain.Reason]int, len(c.Reasons))
	for k, v := range c.Reasons {
		out.Reasons[k] = v
	}
	return out
}

// Finalize closes the report. Further calls return the same report.
func (a *StatsAccumulator) Finalize(rowsOut int, finishedAt time.Time) *domain.StatsReport {
	if !a.finalized {
		a.report.RowsOut = rowsOut
		a.report.FinishedAt = finishedAt
		for _, c := range a.report.Columns {
			if len(c.Reasons) == 0 {
				c.Reasons = nil
			}
		}
		a.finalized = true
	}
	return a.report
}
