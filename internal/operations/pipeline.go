package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"surveyclean/internal/config"
	"surveyclean/internal/dataprocessing"
	"surveyclean/internal/infrastructure"
	"surveyclean/internal/normalize"
	"surveyclean/internal/validation"
	"surveyclean/pkg/contracts/domain"
)

// Options tunes the cleaning rules of a Pipeline
type Options struct {
	TimestampLayout         string
	IDFormat                validation.IDFormat
	MaxEditDistance         int
	ImputePrecision         int
	FillCategoricalDefaults bool
	Workers                 int
	Spam                    dataprocessing.SpamRules
}

// DefaultOptions returns the options of the stock configuration
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().Cleaning)
}

// OptionsFromConfig maps the cleaning section of the configuration
func OptionsFromConfig(cfg config.CleaningConfig) Options {
	return Options{
		TimestampLayout:         cfg.TimestampLayout,
		IDFormat:                validation.IDFormat{Prefix: cfg.IDPrefix, Digits: cfg.IDDigits},
		MaxEditDistance:         cfg.MaxEditDistance,
		ImputePrecision:         cfg.ImputePrecision,
		FillCategoricalDefaults: cfg.FillCategoricalDefaults,
		Workers:                 cfg.Workers,
		Spam: dataprocessing.SpamRules{
			MaxRepetitionRatio:     cfg.Spam.MaxRepetitionRatio,
			MinAlphaRatio:          cfg.Spam.MinAlphaRatio,
			MinRepetitionLength:    cfg.Spam.MinRepetitionLength,
			MinTokensForRepetition: cfg.Spam.MinTokensForRepetition,
			Tokens:                 cfg.Spam.Tokens,
		},
	}
}

// Result is the output of one run
type Result struct {
	Table      *domain.CleanedTable
	Report     *domain.StatsReport
	Quarantine []domain.QuarantinedComment
	Stages     []*StageState
}

// Pipeline drives the cleaning stages over a whole table: structure,
// validate, outliers, impute, derive. Each stage finishes before the next
// one starts and the context is checked in between. A Pipeline holds no
// per-run state and may be reused.
type Pipeline struct {
	stages     []Stage
	summarizer *dataprocessing.Summarizer
	logger     *slog.Logger
	tracer     trace.Tracer
}

// NewPipeline builds a pipeline over the survey schema
func NewPipeline(opts Options, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TimestampLayout == "" {
		return nil, NewValidationError("", "timestamp layout is required")
	}
	if opts.IDFormat.Prefix == "" || opts.IDFormat.Digits < 1 {
		return nil, NewValidationError("", fmt.Sprintf("invalid student ID format %q/%d", opts.IDFormat.Prefix, opts.IDFormat.Digits))
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	schema := domain.SurveySchema()
	rules := &cellRules{
		layout:     opts.TimestampLayout,
		id:         opts.IDFormat,
		gender:     normalize.NewCategoryNormalizer(normalize.GenderVocabulary(), opts.MaxEditDistance),
		department: normalize.NewCategoryNormalizer(normalize.DepartmentVocabulary(), opts.MaxEditDistance),
		grades:     dataprocessing.NewGradeConverter(),
	}

	stageLogger := func(id string) *slog.Logger {
		return logger.With(slog.String("stage", id))
	}

	registry := NewRegistry()
	for _, stage := range []Stage{
		&StructureStage{
			BaseStage: NewBaseStage(StageIDStructure, StageNameStructure),
			schema:    schema,
			rules:     rules,
			logger:    stageLogger(StageIDStructure),
		},
		&ValidateStage{
			BaseStage: NewBaseStage(StageIDValidate, StageNameValidate, StageIDStructure),
			rules:     rules,
			workers:   opts.Workers,
			logger:    stageLogger(StageIDValidate),
		},
		&OutlierStage{
			BaseStage: NewBaseStage(StageIDOutliers, StageNameOutliers, StageIDValidate),
			policy:    dataprocessing.NewOutlierPolicy(schema),
			logger:    stageLogger(StageIDOutliers),
		},
		&ImputeStage{
			BaseStage:    NewBaseStage(StageIDImpute, StageNameImpute, StageIDOutliers),
			imputer:      dataprocessing.NewImputer(opts.ImputePrecision),
			fillDefaults: opts.FillCategoricalDefaults,
			logger:       stageLogger(StageIDImpute),
		},
		&DeriveStage{
			BaseStage: NewBaseStage(StageIDDerive, StageNameDerive, StageIDImpute),
			spam:      dataprocessing.NewSpamDetector(opts.Spam),
			logger:    stageLogger(StageIDDerive),
		},
	} {
		if err := registry.Register(stage); err != nil {
			return nil, NewFatalError("", "failed to register stage", err)
		}
	}

	stages, err := registry.DependencyOrder()
	if err != nil {
		return nil, NewFatalError("", "failed to order stages", err)
	}
	logger.Debug("pipeline_built",
		slog.Int("stage_count", registry.Count()),
		slog.Any("registered", registry.ListIDs()),
		slog.Any("order", stageIDs(stages)))

	return &Pipeline{
		stages:     stages,
		summarizer: dataprocessing.NewSummarizer(logger),
		logger:     logger,
		tracer:     otel.Tracer(infrastructure.TracerName),
	}, nil
}

// NewPipelineFromConfig builds a pipeline from the cleaning configuration
func NewPipelineFromConfig(cfg config.CleaningConfig, logger *slog.Logger) (*Pipeline, error) {
	return NewPipeline(OptionsFromConfig(cfg), logger)
}

// Stages returns the stage IDs in execution order
func (p *Pipeline) Stages() []string {
	return stageIDs(p.stages)
}

func stageIDs(stages []Stage) []string {
	ids := make([]string, len(stages))
	for i, s := range stages {
		ids[i] = s.ID()
	}
	return ids
}

// Run cleans raw. On error no partial result is returned.
func (p *Pipeline) Run(ctx context.Context, raw *domain.RawTable) (*Result, error) {
	if raw == nil {
		return nil, NewValidationError("", "input table is nil")
	}

	runID := infrastructure.GetRunID(ctx)
	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.Int("rows.in", len(raw.Rows)),
			attribute.Int("columns", len(raw.Columns)),
		),
	)
	defer span.End()

	p.logger.InfoContext(ctx, "pipeline_start",
		slog.Int("rows", len(raw.Rows)),
		slog.Int("columns", len(raw.Columns)),
		slog.Int("stage_count", len(p.stages)))

	run := NewRunState(runID, raw, NewStatsAccumulator(runID, time.Now()))
	states := make([]*StageState, 0, len(p.stages))
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			p.logger.WarnContext(ctx, "operation_cancelled",
				slog.String("stage", stage.ID()))
			opErr := NewCancellationError(stage.ID(), err)
			span.RecordError(opErr)
			span.SetStatus(codes.Error, opErr.Error())
			return nil, opErr
		}

		state := NewStageState(stage.ID(), stage.Name())
		states = append(states, state)
		if err := p.executeStage(ctx, stage, state, run); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	table := run.Table()
	report := run.Stats.Finalize(len(table.Rows), time.Now())
	report.Summary = p.summarizer.Summarize(ctx, table)

	span.SetAttributes(
		attribute.Int("rows.out", report.RowsOut),
		attribute.Int("rows.dropped", report.RowsDropped),
		attribute.Int("comments.blanked", report.SpamBlanked),
	)
	p.logger.InfoContext(ctx, "pipeline_complete",
		slog.Int("rows_in", report.RowsIn),
		slog.Int("rows_out", report.RowsOut),
		slog.Int("rows_dropped", report.RowsDropped),
		slog.Int("spam_blanked", report.SpamBlanked),
		slog.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))

	return &Result{
		Table:      table,
		Report:     report,
		Quarantine: run.Quarantine,
		Stages:     states,
	}, nil
}

func (p *Pipeline) executeStage(ctx context.Context, stage Stage, state *StageState, run *RunState) error {
	ctx, span := p.tracer.Start(ctx, "pipeline.stage."+stage.ID(),
		trace.WithAttributes(
			attribute.String("stage.id", stage.ID()),
			attribute.String("stage.name", stage.Name()),
		),
	)
	defer span.End()

	state.Start()
	p.logger.DebugContext(ctx, "executing_stage", slog.String("stage", stage.ID()))

	if err := stage.Execute(ctx, run); err != nil {
		opErr := stageError(ctx, stage.ID(), err)
		state.Fail(opErr)
		span.RecordError(opErr)
		span.SetStatus(codes.Error, opErr.Error())
		p.logger.ErrorContext(ctx, "stage_failed",
			slog.String("stage", stage.ID()),
			slog.String("error", opErr.Error()))
		return opErr
	}

	state.Complete()
	span.SetAttributes(attribute.Int("rows", len(run.Records)))
	p.logger.InfoContext(ctx, "stage_completed",
		slog.String("stage", stage.ID()),
		slog.Int("rows", len(run.Records)),
		slog.Int64("duration_ms", state.Duration().Milliseconds()))
	return nil
}

// stageError wraps a stage failure in an OperationError
func stageError(ctx context.Context, stageID string, err error) *OperationError {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		if opErr.Step == "" {
			opErr.Step = stageID
		}
		return opErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return NewCancellationError(stageID, err)
	}
	return NewExecutionError(stageID, err)
}
