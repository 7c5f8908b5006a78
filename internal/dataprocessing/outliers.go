package dataprocessing

import (
	"surveyclean/pkg/contracts/domain"
)

// OutlierPolicy replaces numeric values outside a column's declared range
// with the missing marker. Rows are never dropped here.
type OutlierPolicy struct {
	schema *domain.Schema
}

// NewOutlierPolicy creates a policy over the ranges declared in schema
func NewOutlierPolicy(schema *domain.Schema) *OutlierPolicy {
	return &OutlierPolicy{schema: schema}
}

// InRange reports whether v is acceptable for column. Missing values,
// non-numeric values and unbounded columns are always acceptable.
func (p *OutlierPolicy) InRange(column string, v domain.Value) bool {
	col, ok := p.schema.Lookup(column)
	if !ok || col.Range == nil {
		return true
	}
	n, ok := v.Num()
	if !ok {
		return true
	}
	return col.Range.Contains(n)
}

// Filter blanks the out-of-range values of one column in place and
// returns the indexes it blanked
func (p *OutlierPolicy) Filter(column string, values []domain.Value) []int {
	var blanked []int
	for i, v := range values {
		if !p.InRange(column, v) {
			values[i] = domain.Missing()
			blanked = append(blanked, i)
		}
	}
	return blanked
}
