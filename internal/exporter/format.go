package exporter

import (
	"fmt"
	"sort"
	"strings"

	"surveyclean/pkg/contracts/domain"
)

// formatFloat formats a float64 value for CSV output with exactly 2 decimal places
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatValue renders a cleaned cell. Missing renders as an empty cell.
func formatValue(v domain.Value, layout string) string {
	if s, ok := v.Str(); ok {
		return s
	}
	if f, ok := v.Num(); ok {
		return formatFloat(f)
	}
	if t, ok := v.Timestamp(); ok {
		return t.Format(layout)
	}
	return ""
}

// formatReasons renders rejection reasons as "reason=count" pairs in
// reason order
func formatReasons(reasons map[domain.Reason]int) string {
	keys := make([]string, 0, len(reasons))
	for r := range reasons {
		keys = append(keys, string(r))
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, reasons[domain.Reason(k)])
	}
	return strings.Join(parts, "; ")
}
