// Package exporter writes the results of a cleaning run.
//
// CSVWriter writes the cleaned table (UTF-8 BOM, missing cells empty,
// numbers with two decimals) and the quarantined comments. ExcelWriter
// writes a workbook with a "Cleaned Student Data" sheet and a "Cleaning
// Report" sheet. WriteReportJSON writes the statistics report.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(cfg.Cleaning.TimestampLayout, logger)
//	if err := w.WriteTable(paths.CleanedCSV, res.Table); err != nil {
//	    return err
//	}
//	err := exporter.WriteReportJSON(paths.ReportJSON, res.Report)
package exporter
