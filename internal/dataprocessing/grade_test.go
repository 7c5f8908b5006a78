package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"surveyclean/pkg/contracts/domain"
)

func TestGradeConverter_Convert(t *testing.T) {
	g := NewGradeConverter()

	tests := []struct {
		name       string
		raw        interface{}
		want       float64
		wantStatus domain.Status
		wantReason domain.Reason
	}{
		{"A", "A", 5.0, domain.StatusValid, domain.ReasonNone},
		{"A plus", "A+", 5.0, domain.StatusValid, domain.ReasonNone},
		{"A minus", "A-", 4.7, domain.StatusValid, domain.ReasonNone},
		{"B plus", "B+", 4.3, domain.StatusValid, domain.ReasonNone},
		{"C", "C", 3.0, domain.StatusValid, domain.ReasonNone},
		{"D minus", "D-", 1.7, domain.StatusValid, domain.ReasonNone},
		{"E", "E", 1.5, domain.StatusValid, domain.ReasonNone},
		{"F", "F", 1.0, domain.StatusValid, domain.ReasonNone},
		{"lower case", "b", 4.0, domain.StatusCorrected, domain.ReasonNone},
		{"unicode minus", "B−", 3.7, domain.StatusCorrected, domain.ReasonNone},
		{"spaced", " C + ", 3.3, domain.StatusCorrected, domain.ReasonNone},
		{"numeric", "3.5", 3.5, domain.StatusValid, domain.ReasonNone},
		{"numeric cell", 4.0, 4.0, domain.StatusValid, domain.ReasonNone},
		{"numeric out of scale", "7.2", 7.2, domain.StatusValid, domain.ReasonNone},
		{"unknown letter", "Z", 0, domain.StatusRejected, domain.ReasonParseFailure},
		{"word", "excellent", 0, domain.StatusRejected, domain.ReasonParseFailure},
		{"empty", " ", 0, domain.StatusRejected, domain.ReasonEmpty},
		{"nil", nil, 0, domain.StatusRejected, domain.ReasonEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := g.Convert(tt.raw)
			assert.Equal(t, tt.wantStatus, out.Status)
			assert.Equal(t, tt.wantReason, out.Reason)
			if out.OK() {
				got, ok := out.Value.Num()
				assert.True(t, ok)
				assert.InDelta(t, tt.want, got, 1e-9)
			} else {
				assert.True(t, out.Value.IsMissing())
			}
		})
	}
}

func TestGradeConverter_ScaleBounds(t *testing.T) {
	g := NewGradeConverter()
	for token := range gradePoints {
		v, ok := g.Points(token)
		assert.True(t, ok, token)
		assert.GreaterOrEqual(t, v, 1.0, token)
		assert.LessOrEqual(t, v, 5.0, token)
	}
}
