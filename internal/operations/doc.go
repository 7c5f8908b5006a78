// Package operations drives a cleaning run over a survey table.
//
// A Pipeline runs five stages, each over the whole table before the next
// one starts:
//
//	structure -> validate -> outliers -> impute -> derive
//
// structure rejects a table without its required columns (a SchemaError
// wrapped in an OperationError) and drops rows whose timestamp or student
// ID cannot be recovered. validate applies the per-column validators,
// category matching and grade conversion. outliers blanks numeric values
// outside their range, impute fills numeric gaps by interpolation, and
// derive blanks spam comments into a quarantine list.
//
// Stages declare the stage they depend on and a Registry orders them;
// every stage sees the table as the previous one left it.
//
// The StatsAccumulator is owned by the run and only the stages mutate it.
// Each processed cell is counted once, in its final class.
//
// Usage:
//
//	p, err := operations.NewPipelineFromConfig(cfg.Cleaning, logger)
//	if err != nil {
//	    return err
//	}
//	res, err := p.Run(ctx, table)
//	var schemaErr *operations.SchemaError
//	if errors.As(err, &schemaErr) {
//	    // required columns missing
//	}
package operations
