package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveyclean/pkg/contracts/domain"
)

func nums(vs ...interface{}) []domain.Value {
	out := make([]domain.Value, len(vs))
	for i, v := range vs {
		if f, ok := v.(float64); ok {
			out[i] = domain.Number(f)
		}
	}
	return out
}

func floats(t *testing.T, vs []domain.Value) []interface{} {
	t.Helper()
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		if f, ok := v.Num(); ok {
			out[i] = f
		}
	}
	return out
}

func TestImputer_Interpolate(t *testing.T) {
	tests := []struct {
		name       string
		positions  []int
		values     []domain.Value
		want       []interface{}
		wantFilled []int
	}{
		{
			name:       "single gap between neighbours",
			positions:  []int{0, 1, 2},
			values:     nums(20.0, nil, 22.0),
			want:       []interface{}{20.0, 21.0, 22.0},
			wantFilled: []int{1},
		},
		{
			name:       "wide gap",
			positions:  []int{0, 1, 2, 3},
			values:     nums(10.0, nil, nil, 40.0),
			want:       []interface{}{10.0, 20.0, 30.0, 40.0},
			wantFilled: []int{1, 2},
		},
		{
			name:       "leading gap copies the right neighbour",
			positions:  []int{0, 1, 2},
			values:     nums(nil, nil, 3.0),
			want:       []interface{}{3.0, 3.0, 3.0},
			wantFilled: []int{0, 1},
		},
		{
			name:       "trailing gap copies the left neighbour",
			positions:  []int{0, 1, 2},
			values:     nums(4.0, nil, nil),
			want:       []interface{}{4.0, 4.0, 4.0},
			wantFilled: []int{1, 2},
		},
		{
			name:       "weights follow source positions",
			positions:  []int{0, 3, 4},
			values:     nums(20.0, nil, 24.0),
			want:       []interface{}{20.0, 23.0, 24.0},
			wantFilled: []int{1},
		},
		{
			name:       "rounded to precision",
			positions:  []int{0, 1, 2, 3},
			values:     nums(1.0, nil, nil, 2.0),
			want:       []interface{}{1.0, 1.33, 1.67, 2.0},
			wantFilled: []int{1, 2},
		},
		{
			name:      "all missing stays missing",
			positions: []int{0, 1},
			values:    nums(nil, nil),
			want:      []interface{}{nil, nil},
		},
		{
			name:      "nothing to fill",
			positions: []int{0, 1},
			values:    nums(1.0, 2.0),
			want:      []interface{}{1.0, 2.0},
		},
	}

	imputer := NewImputer(2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filled, err := imputer.Interpolate(tt.positions, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFilled, filled)
			assert.Equal(t, tt.want, floats(t, tt.values))
		})
	}
}

func TestImputer_Idempotent(t *testing.T) {
	positions := []int{0, 1, 2, 5, 6, 9}
	values := nums(nil, 19.0, nil, 25.0, nil, nil)

	imputer := NewImputer(2)
	_, err := imputer.Interpolate(positions, values)
	require.NoError(t, err)
	first := floats(t, values)

	filled, err := imputer.Interpolate(positions, values)
	require.NoError(t, err)
	assert.Empty(t, filled)
	assert.Equal(t, first, floats(t, values))
}

func TestImputer_RejectsBadPositions(t *testing.T) {
	imputer := NewImputer(2)

	_, err := imputer.Interpolate([]int{0}, nums(1.0, 2.0))
	assert.Error(t, err)

	_, err = imputer.Interpolate([]int{0, 0}, nums(1.0, nil))
	assert.Error(t, err)
}

func TestImputer_NoRounding(t *testing.T) {
	values := nums(1.0, nil, nil, 2.0)
	_, err := NewImputer(-1).Interpolate([]int{0, 1, 2, 3}, values)
	require.NoError(t, err)

	got, _ := values[1].Num()
	assert.InDelta(t, 4.0/3.0, got, 1e-12)
}
