package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"surveyclean/internal/config"
	"surveyclean/internal/dataprocessing"
	"surveyclean/internal/exporter"
	"surveyclean/internal/infrastructure"
	"surveyclean/internal/operations"
	"surveyclean/internal/validation"
	"surveyclean/pkg/contracts/domain"
)

// cliFlags holds the command line overrides of the configured paths
type cliFlags struct {
	configFile string
	input      string
	sheet      string
	outCSV     string
	outXLSX    string
	report     string
	quarantine string
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &cliFlags{}
	fs.StringVar(&f.configFile, "config", "", "YAML configuration file (defaults to surveyclean.yaml when present)")
	fs.StringVar(&f.input, "in", "", "survey export to clean (.csv or .xlsx)")
	fs.StringVar(&f.sheet, "sheet", "", "worksheet to read from an .xlsx input (defaults to the first sheet)")
	fs.StringVar(&f.outCSV, "out-csv", "", "cleaned CSV output")
	fs.StringVar(&f.outXLSX, "out-xlsx", "", "cleaned workbook output, empty to skip")
	fs.StringVar(&f.report, "report", "", "cleaning report JSON output, empty to skip")
	fs.StringVar(&f.quarantine, "quarantine", "", "quarantined comments CSV output, empty to skip")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply overlays the non-empty flags onto the configured paths
func (f *cliFlags) apply(cfg *config.Config) {
	overrides := []struct {
		value  string
		target *string
	}{
		{f.input, &cfg.Paths.Input},
		{f.sheet, &cfg.Paths.Sheet},
		{f.outCSV, &cfg.Paths.OutputCSV},
		{f.outXLSX, &cfg.Paths.OutputExcel},
		{f.report, &cfg.Paths.Report},
		{f.quarantine, &cfg.Paths.Quarantine},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = o.value
		}
	}
}

func main() {
	flags, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := config.Load(flags.configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	flags.apply(cfg)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = infrastructure.EnsureRunID(ctx)

	shutdown, err := infrastructure.InitializeTracing(cfg.Telemetry, os.Stderr, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	runErr := run(ctx, cfg, logger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil {
		logger.Warn("Failed to flush traces", slog.String("error", err.Error()))
	}

	if runErr != nil {
		logger.ErrorContext(ctx, "Cleaning failed",
			slog.String("error", runErr.Error()),
			slog.String("error_type", string(operations.GetErrorType(runErr))))
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}

// run cleans the configured input and writes every configured output. No
// output is written when the pipeline fails.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	paths, err := cfg.GetPaths()
	if err != nil {
		return err
	}
	paths.LogPathResolution(logger)

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateSurveyFile(paths.InputFile); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}
	if err := validator.ValidateOutputDirectories(paths.OutputDirs()); err != nil {
		return fmt.Errorf("invalid output location: %w", err)
	}

	logger.InfoContext(ctx, "Starting survey cleaning",
		slog.String("input", paths.InputFile),
		slog.String("version", config.AppVersion))

	raw, err := dataprocessing.ReadTable(paths.InputFile, cfg.Paths.Sheet, logger)
	if err != nil {
		return err
	}

	pipeline, err := operations.NewPipelineFromConfig(cfg.Cleaning, logger)
	if err != nil {
		return err
	}
	result, err := pipeline.Run(ctx, raw)
	if err != nil {
		return err
	}

	if err := writeOutputs(ctx, cfg, paths, result, logger); err != nil {
		return err
	}

	logSummary(ctx, logger, cfg.Cleaning.TimestampLayout, result.Report)
	return nil
}

func writeOutputs(ctx context.Context, cfg *config.Config, paths *config.Paths, result *operations.Result, logger *slog.Logger) error {
	layout := cfg.Cleaning.TimestampLayout
	csvWriter := exporter.NewCSVWriter(layout, logger)

	if err := csvWriter.WriteTable(paths.CleanedCSV, result.Table); err != nil {
		return fmt.Errorf("failed to write cleaned CSV: %w", err)
	}
	if paths.CleanedExcel != "" {
		if err := exporter.NewExcelWriter(layout, logger).WriteWorkbook(paths.CleanedExcel, result.Table, result.Report); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
	}
	if paths.ReportJSON != "" {
		if err := exporter.WriteReportJSON(paths.ReportJSON, result.Report); err != nil {
			return err
		}
	}
	if paths.Quarantine != "" && len(result.Quarantine) > 0 {
		if err := csvWriter.WriteQuarantineCSV(paths.Quarantine, result.Quarantine); err != nil {
			return fmt.Errorf("failed to write quarantined comments: %w", err)
		}
	}
	if paths.MetricsFile != "" {
		metrics := infrastructure.NewRunMetrics()
		metrics.Record(result.Report)
		if err := metrics.WriteTextfile(paths.MetricsFile); err != nil {
			logger.WarnContext(ctx, "Failed to write metrics", slog.String("error", err.Error()))
		}
	}
	return nil
}

// logSummary logs the figures an analyst checks first after a run
func logSummary(ctx context.Context, logger *slog.Logger, layout string, report *domain.StatsReport) {
	attrs := []any{
		slog.Int("rows_in", report.RowsIn),
		slog.Int("rows_out", report.RowsOut),
		slog.Int("rows_dropped", report.RowsDropped),
		slog.Int("comments_blanked", report.SpamBlanked),
	}
	if s := report.Summary; s != nil {
		if s.FirstResponse != nil && s.LastResponse != nil {
			attrs = append(attrs,
				slog.String("first_response", s.FirstResponse.Format(layout)),
				slog.String("last_response", s.LastResponse.Format(layout)))
		}
		if s.MinAge != nil && s.MaxAge != nil {
			attrs = append(attrs, slog.Float64("min_age", *s.MinAge), slog.Float64("max_age", *s.MaxAge))
		}
		if s.MeanGPA != nil {
			attrs = append(attrs, slog.Float64("mean_gpa", *s.MeanGPA))
		}
		if s.MeanSatisfaction != nil {
			attrs = append(attrs, slog.Float64("mean_satisfaction", *s.MeanSatisfaction))
		}
		attrs = append(attrs, slog.Int("unique_students", s.UniqueStudents))
	}
	logger.InfoContext(ctx, "Cleaning completed", attrs...)

	for _, name := range report.ColumnNames() {
		c := report.Column(name)
		logger.DebugContext(ctx, "Column statistics",
			slog.String("column", name),
			slog.Int("valid", c.Valid),
			slog.Int("corrected", c.Corrected),
			slog.Int("rejected", c.Rejected),
			slog.Int("imputed", c.Imputed))
	}
}
