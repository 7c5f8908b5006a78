package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"surveyclean/pkg/contracts/domain"
)

// Summarizer computes the descriptive figures reported at the end of a run:
// response date range, age range, mean GPA, mean satisfaction and the
// number of distinct students.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Summarize walks the cleaned table once. Missing cells are ignored; a
// figure with no data stays nil.
func (s *Summarizer) Summarize(ctx context.Context, table *domain.CleanedTable) *domain.RunSummary {
	summary := &domain.RunSummary{}
	students := make(map[string]struct{})

	var gpa, satisfaction mean
	for _, row := range table.Rows {
		if ts, ok := row.Get(domain.ColTimestamp).Timestamp(); ok {
			if summary.FirstResponse == nil || ts.Before(*summary.FirstResponse) {
				summary.FirstResponse = timePtr(ts)
			}
			if summary.LastResponse == nil || ts.After(*summary.LastResponse) {
				summary.LastResponse = timePtr(ts)
			}
		}
		if age, ok := row.Get(domain.ColAge).Num(); ok {
			if summary.MinAge == nil || age < *summary.MinAge {
				summary.MinAge = floatPtr(age)
			}
			if summary.MaxAge == nil || age > *summary.MaxAge {
				summary.MaxAge = floatPtr(age)
			}
		}
		if v, ok := row.Get(domain.ColGPA).Num(); ok {
			gpa.add(v)
		}
		if v, ok := row.Get(domain.ColSatisfaction).Num(); ok {
			satisfaction.add(v)
		}
		if id, ok := row.Get(domain.ColStudentID).Str(); ok {
			students[id] = struct{}{}
		}
	}

	summary.MeanGPA = gpa.value()
	summary.MeanSatisfaction = satisfaction.value()
	summary.UniqueStudents = len(students)

	s.logger.DebugContext(ctx, "Run summary computed",
		slog.Int("rows", len(table.Rows)),
		slog.Int("unique_students", summary.UniqueStudents))
	return summary
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

func (m *mean) value() *float64 {
	if m.n == 0 {
		return nil
	}
	return floatPtr(m.sum / float64(m.n))
}

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }
