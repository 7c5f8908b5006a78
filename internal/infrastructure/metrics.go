package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"surveyclean/pkg/contracts/domain"
)

const metricsNamespace = "surveyclean"

// RunMetrics exposes the figures of a cleaning run as Prometheus metrics.
// A batch run has no scrape endpoint, so the registry is written to a
// node_exporter textfile at the end of the run.
type RunMetrics struct {
	registry *prometheus.Registry

	cells       *prometheus.GaugeVec
	rejections  *prometheus.GaugeVec
	rows        *prometheus.GaugeVec
	spamBlanked prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
}

// NewRunMetrics registers the run metrics on a fresh registry
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		cells: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cells",
			Help:      "Processed cells per column by final status in the last run.",
		}, []string{"column", "status"}),
		rejections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rejections",
			Help:      "Rejection events per column and reason in the last run.",
		}, []string{"column", "reason"}),
		rows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rows",
			Help:      "Row counts of the last run.",
		}, []string{"kind"}),
		spamBlanked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "spam_blanked_comments",
			Help:      "Comments blanked by the spam detector in the last run.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time the last successful run finished.",
		}),
	}

	m.registry.MustRegister(m.cells, m.rejections, m.rows, m.spamBlanked, m.duration, m.lastSuccess)
	return m
}

// Record copies a finished stats report into the metrics
func (m *RunMetrics) Record(report *domain.StatsReport) {
	if report == nil {
		return
	}

	for _, name := range report.ColumnNames() {
		cs := report.Columns[name]
		m.cells.WithLabelValues(name, string(domain.StatusValid)).Set(float64(cs.Valid))
		m.cells.WithLabelValues(name, string(domain.StatusCorrected)).Set(float64(cs.Corrected))
		m.cells.WithLabelValues(name, string(domain.StatusRejected)).Set(float64(cs.Rejected))
		m.cells.WithLabelValues(name, string(domain.StatusImputed)).Set(float64(cs.Imputed))
		for reason, n := range cs.Reasons {
			m.rejections.WithLabelValues(name, string(reason)).Set(float64(n))
		}
	}

	m.rows.WithLabelValues("in").Set(float64(report.RowsIn))
	m.rows.WithLabelValues("out").Set(float64(report.RowsOut))
	m.rows.WithLabelValues("dropped").Set(float64(report.RowsDropped))
	m.spamBlanked.Set(float64(report.SpamBlanked))

	if !report.FinishedAt.IsZero() {
		m.duration.Set(report.FinishedAt.Sub(report.StartedAt).Seconds())
		m.lastSuccess.Set(float64(report.FinishedAt.Unix()))
	}
}

// WriteTextfile writes the registry in the Prometheus text format
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
