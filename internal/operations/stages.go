package operations

import (
	"context"
	"log/slog"
	"math"

	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"

	"surveyclean/internal/dataprocessing"
	"surveyclean/internal/normalize"
	"surveyclean/internal/validation"
	"surveyclean/pkg/contracts/domain"
)

// Stage display names
const (
	StageNameStructure = "Structure"
	StageNameValidate  = "Validate"
	StageNameOutliers  = "Outliers"
	StageNameImpute    = "Impute"
	StageNameDerive    = "Derive"
)

// Labels used to fill empty categorical cells when defaults are enabled
const (
	DefaultGenderLabel     = "Other"
	DefaultDepartmentLabel = "Undeclared"
)

// cancelCheckEvery is how many rows a validate shard processes between
// context checks
const cancelCheckEvery = 256

// cellRules dispatches a raw cell to the validator of its column type
type cellRules struct {
	layout     string
	id         validation.IDFormat
	gender     *normalize.CategoryNormalizer
	department *normalize.CategoryNormalizer
	grades     *dataprocessing.GradeConverter
}

func (r *cellRules) validate(col domain.Column, raw interface{}) domain.Outcome {
	switch col.Type {
	case domain.ColumnTimestamp:
		return validation.Timestamp(raw, r.layout)
	case domain.ColumnStudentID:
		return validation.StudentID(raw, r.id)
	case domain.ColumnAge:
		return validation.Age(raw, rangeOf(col))
	case domain.ColumnCategoricalGender:
		return validation.Category(raw, r.gender)
	case domain.ColumnCategoricalDepartment:
		return validation.Category(raw, r.department)
	case domain.ColumnLetterGrade:
		return r.grades.Convert(raw)
	case domain.ColumnSatisfactionScore:
		return validation.Score(raw, rangeOf(col))
	case domain.ColumnCommentText:
		return validation.Comment(raw)
	}
	return domain.Reject(domain.ReasonParseFailure)
}

func rangeOf(col domain.Column) domain.Range {
	if col.Range == nil {
		return domain.Range{Min: math.Inf(-1), Max: math.Inf(1)}
	}
	return *col.Range
}

// StructureStage checks the table header and drops rows whose required
// fields cannot be recovered
type StructureStage struct {
	BaseStage
	schema *domain.Schema
	rules  *cellRules
	logger *slog.Logger
}

// Execute implements Stage
func (s *StructureStage) Execute(ctx context.Context, run *RunState) error {
	required := s.schema.Required()

	var missing []string
	for _, col := range required {
		if !run.Raw.HasColumn(col.Name) {
			missing = append(missing, col.Name)
		}
	}
	if len(missing) > 0 {
		return NewFatalError(s.ID(), "input table cannot be cleaned", &SchemaError{Missing: missing})
	}

	for _, name := range run.Raw.Columns {
		if col, ok := s.schema.Lookup(name); ok {
			run.Columns = append(run.Columns, col)
		} else {
			run.Unrecognized = append(run.Unrecognized, name)
		}
	}
	run.Stats.SetRowsIn(len(run.Raw.Rows))
	run.Stats.SetUnrecognized(run.Unrecognized)
	if len(run.Unrecognized) > 0 {
		s.logger.WarnContext(ctx, "unrecognized_columns_passed_through",
			slog.Any("columns", run.Unrecognized))
	}

	kept := make([]domain.RawRecord, 0, len(run.Raw.Rows))
	keptOutcomes := make([][]domain.Outcome, 0, len(run.Raw.Rows))
	for _, row := range run.Raw.Rows {
		outcomes := make([]domain.Outcome, len(required))
		intact := true
		for j, col := range required {
			outcomes[j] = s.rules.validate(col, row.Get(col.Name))
			intact = intact && outcomes[j].OK()
		}

		if !intact {
			// only the failing cells are counted; the drop itself goes to
			// rows_dropped
			var failed []string
			for j, col := range required {
				if !outcomes[j].OK() {
					run.Stats.Record(col.Name, outcomes[j])
					failed = append(failed, col.Name)
				}
			}
			run.Stats.DropRow()
			s.logger.DebugContext(ctx, "row_dropped",
				slog.Int("position", row.Position),
				slog.Any("columns", failed))
			continue
		}
		kept = append(kept, row)
		keptOutcomes = append(keptOutcomes, outcomes)
	}

	run.keep(kept)
	for i := range kept {
		for j, col := range required {
			run.set(i, col.Name, keptOutcomes[i][j])
		}
	}

	s.logger.InfoContext(ctx, "structure_checked",
		slog.Int("rows_in", len(run.Raw.Rows)),
		slog.Int("rows_kept", len(kept)),
		slog.Int("rows_dropped", len(run.Raw.Rows)-len(kept)))
	return nil
}

// ValidateStage runs the per-column validators over the remaining columns.
// With more than one worker the rows are split into contiguous ranges;
// outcomes are counted afterwards in row order, so results do not depend on
// the worker count.
type ValidateStage struct {
	BaseStage
	rules   *cellRules
	workers int
	logger  *slog.Logger
}

// Execute implements Stage
func (s *ValidateStage) Execute(ctx context.Context, run *RunState) error {
	var cols []domain.Column
	for _, col := range run.Columns {
		if !col.Required {
			cols = append(cols, col)
		}
	}

	n := len(run.Rows)
	outcomes := make([][]domain.Outcome, n)
	progress := NewProgressTracker(s.ID(), n)
	work := func(ctx context.Context, lo, hi int) error {
		last := lo
		flush := func(i int) {
			if i > last {
				s.logProgress(ctx, progress, i-last)
				last = i
			}
		}
		for i := lo; i < hi; i++ {
			if (i-lo)%cancelCheckEvery == 0 {
				flush(i)
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			row := make([]domain.Outcome, len(cols))
			for j, col := range cols {
				row[j] = s.rules.validate(col, run.Rows[i].Get(col.Name))
			}
			outcomes[i] = row
		}
		flush(hi)
		return nil
	}

	if s.workers <= 1 || n < 2 {
		if err := work(ctx, 0, n); err != nil {
			return err
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		size := (n + s.workers - 1) / s.workers
		for lo := 0; lo < n; lo += size {
			hi := min(lo+size, n)
			g.Go(func() error {
				return work(gctx, lo, hi)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	for i := range outcomes {
		for j, col := range cols {
			run.set(i, col.Name, outcomes[i][j])
		}
	}

	ids := make(map[string]int, n)
	for _, rec := range run.Records {
		if id, ok := rec.Get(domain.ColStudentID).Str(); ok {
			ids[id]++
		}
	}
	done := progress.Snapshot()
	s.logger.InfoContext(ctx, "columns_validated",
		slog.Int("columns", len(cols)),
		slog.Int("rows", done.Current),
		slog.Bool("complete", progress.IsComplete()),
		slog.Int("unique_student_ids", len(ids)),
		slog.Int("duplicate_student_ids", n-len(ids)))
	return nil
}

func (s *ValidateStage) logProgress(ctx context.Context, progress *ProgressTracker, rows int) {
	snap, crossed := progress.Add(rows)
	if !crossed {
		return
	}
	s.logger.DebugContext(ctx, "validate_progress",
		slog.Int("rows_done", snap.Current),
		slog.Int("rows_total", snap.Total),
		slog.Float64("percentage", snap.Percentage),
		slog.Duration("eta", snap.ETA))
}

// OutlierStage blanks numeric values outside their column range
type OutlierStage struct {
	BaseStage
	policy *dataprocessing.OutlierPolicy
	logger *slog.Logger
}

// Execute implements Stage
func (s *OutlierStage) Execute(ctx context.Context, run *RunState) error {
	for _, col := range run.Columns {
		if !col.Numeric() {
			continue
		}
		blanked := s.policy.Filter(col.Name, run.Values(col.Name))
		for _, i := range blanked {
			if err := run.reclassify(i, col.Name, domain.Missing(), domain.StatusRejected, domain.ReasonOutOfRange); err != nil {
				return err
			}
		}
		if len(blanked) > 0 {
			s.logger.InfoContext(ctx, "outliers_blanked",
				slog.String("column", col.Name),
				slog.Int("count", len(blanked)))
		}
	}
	return nil
}

// ImputeStage fills missing numeric values and, when enabled, empty
// categorical cells
type ImputeStage struct {
	BaseStage
	imputer      *dataprocessing.Imputer
	fillDefaults bool
	logger       *slog.Logger
}

// Execute implements Stage
func (s *ImputeStage) Execute(ctx context.Context, run *RunState) error {
	positions := run.Positions()
	for _, col := range run.Columns {
		if !col.Numeric() {
			continue
		}
		values := run.Values(col.Name)
		filled, err := s.imputer.Interpolate(positions, values)
		if err != nil {
			return err
		}
		for _, i := range filled {
			if err := run.reclassify(i, col.Name, values[i], domain.StatusImputed, domain.ReasonNone); err != nil {
				return err
			}
		}
		s.logger.InfoContext(ctx, "column_imputed",
			slog.String("column", col.Name),
			slog.Int("filled", len(filled)),
			slog.Int("rejected", run.Stats.Snapshot(col.Name).Rejected))
	}

	if !s.fillDefaults {
		return nil
	}
	defaults := map[domain.ColumnType]string{
		domain.ColumnCategoricalGender:     DefaultGenderLabel,
		domain.ColumnCategoricalDepartment: DefaultDepartmentLabel,
	}
	for _, col := range run.Columns {
		label, ok := defaults[col.Type]
		if !ok {
			continue
		}
		filled := 0
		for i, rec := range run.Records {
			if !rec.Get(col.Name).IsMissing() {
				continue
			}
			if err := run.reclassify(i, col.Name, domain.Text(label), domain.StatusImputed, domain.ReasonNone); err != nil {
				return err
			}
			filled++
		}
		s.logger.InfoContext(ctx, "categorical_defaults_filled",
			slog.String("column", col.Name),
			slog.String("label", label),
			slog.Int("filled", filled))
	}
	return nil
}

// DeriveStage runs the spam detector over comments and records the flags
type DeriveStage struct {
	BaseStage
	spam   *dataprocessing.SpamDetector
	logger *slog.Logger
}

// Execute implements Stage
func (s *DeriveStage) Execute(ctx context.Context, run *RunState) error {
	col, ok := run.columnOfType(domain.ColumnCommentText)
	if !ok {
		return nil
	}

	for i := range run.Records {
		rec := &run.Records[i]
		text, ok := rec.Get(col.Name).Str()
		if !ok {
			continue
		}
		res := s.spam.Classify(text)
		if !res.Blank() {
			continue
		}

		if err := run.reclassify(i, col.Name, domain.Missing(), domain.StatusRejected, domain.ReasonSpam); err != nil {
			return err
		}
		rec.SpamBlanked = true
		run.Stats.SpamBlanked()

		id, _ := rec.Get(domain.ColStudentID).Str()
		run.Quarantine = append(run.Quarantine, domain.QuarantinedComment{
			Position:  rec.Position,
			StudentID: id,
			Text:      cast.ToString(run.Rows[i].Get(col.Name)),
			Rule:      res.Rule,
		})
	}

	s.logger.InfoContext(ctx, "comments_screened",
		slog.Int("blanked", len(run.Quarantine)))
	return nil
}
