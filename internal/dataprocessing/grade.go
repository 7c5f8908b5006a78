package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"surveyclean/pkg/contracts/domain"
)

// gradePoints maps letter grades onto the 1.0-5.0 scale
var gradePoints = map[string]float64{
	"A+": 5.0,
	"A":  5.0,
	"A-": 4.7,
	"B+": 4.3,
	"B":  4.0,
	"B-": 3.7,
	"C+": 3.3,
	"C":  3.0,
	"C-": 2.7,
	"D+": 2.3,
	"D":  2.0,
	"D-": 1.7,
	"E":  1.5,
	"F":  1.0,
}

// dashes folds the minus look-alikes spreadsheets produce into "-"
var dashes = strings.NewReplacer("−", "-", "–", "-", "—", "-")

// GradeConverter turns GPA cells into numbers. Letter grades go through a
// fixed table; cells that already hold a number are passed on unchanged
// and left to the outlier policy.
type GradeConverter struct {
	table map[string]float64
}

// NewGradeConverter creates a converter over the standard grade table
func NewGradeConverter() *GradeConverter {
	return &GradeConverter{table: gradePoints}
}

// Points looks up a letter grade token. The token is matched after
// trimming, upper-casing and dash folding.
func (g *GradeConverter) Points(token string) (float64, bool) {
	v, ok := g.table[canonicalGrade(token)]
	return v, ok
}

// Convert maps a GPA cell to its numeric value. Unknown tokens are parse
// failures.
func (g *GradeConverter) Convert(raw interface{}) domain.Outcome {
	if raw == nil {
		return domain.Reject(domain.ReasonEmpty)
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return domain.Reject(domain.ReasonParseFailure)
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return domain.Reject(domain.ReasonEmpty)
	}

	if v, ok := g.Points(trimmed); ok {
		return domain.Accept(domain.Number(v), canonicalGrade(trimmed) != s)
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return domain.Reject(domain.ReasonParseFailure)
	}
	return domain.Accept(domain.Number(v), strconv.FormatFloat(v, 'f', -1, 64) != s)
}

func canonicalGrade(token string) string {
	return strings.ToUpper(strings.ReplaceAll(dashes.Replace(strings.TrimSpace(token)), " ", ""))
}
