package validation

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/spf13/cast"

	"surveyclean/internal/normalize"
	"surveyclean/pkg/contracts/domain"
)

// IDFormat is the canonical student identifier layout: a fixed prefix
// followed by exactly Digits decimal digits
type IDFormat struct {
	Prefix string
	Digits int
}

// cellText converts an untyped cell to text. The second result is false for
// nil cells, blank strings and values cast cannot render.
func cellText(raw interface{}) (string, bool) {
	if raw == nil {
		return "", false
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", false
	}
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Timestamp parses a cell with exactly one layout. Cells already holding a
// time.Time (spreadsheet dates) are accepted as is.
func Timestamp(raw interface{}, layout string) domain.Outcome {
	if t, ok := raw.(time.Time); ok {
		if t.IsZero() {
			return domain.Reject(domain.ReasonEmpty)
		}
		return domain.Accept(domain.Time(t), false)
	}

	s, ok := cellText(raw)
	if !ok {
		return domain.Reject(domain.ReasonEmpty)
	}
	trimmed := strings.TrimSpace(s)
	t, err := time.Parse(layout, trimmed)
	if err != nil {
		return domain.Reject(domain.ReasonParseFailure)
	}
	return domain.Accept(domain.Time(t), trimmed != s)
}

// StudentID canonicalizes an identifier to f.Prefix plus f.Digits digits.
// Fixes applied: prefix case, separators (-, _ and spaces), a missing
// prefix on an all-digit value, short digit runs padded with zeros and
// surplus leading zeros removed. Anything else is a parse failure.
func StudentID(raw interface{}, f IDFormat) domain.Outcome {
	s, ok := cellText(raw)
	if !ok {
		return domain.Reject(domain.ReasonEmpty)
	}

	compact := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	digits := compact
	if len(compact) >= len(f.Prefix) && strings.EqualFold(compact[:len(f.Prefix)], f.Prefix) {
		digits = compact[len(f.Prefix):]
	}
	if digits == "" || !allDigits(digits) {
		return domain.Reject(domain.ReasonParseFailure)
	}

	for len(digits) > f.Digits && digits[0] == '0' {
		digits = digits[1:]
	}
	if len(digits) > f.Digits {
		return domain.Reject(domain.ReasonParseFailure)
	}
	if pad := f.Digits - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}

	id := f.Prefix + digits
	return domain.Accept(domain.Text(id), id != s)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// number parses a numeric cell, rejecting NaN and infinities
func number(raw interface{}) (float64, string, domain.Reason) {
	s, ok := cellText(raw)
	if !ok {
		return 0, "", domain.ReasonEmpty
	}
	v, err := cast.ToFloat64E(strings.TrimSpace(s))
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, s, domain.ReasonParseFailure
	}
	return v, s, domain.ReasonNone
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Age accepts whole numbers inside r. "20.0" is accepted and reported as
// corrected; "20.5" is a parse failure.
func Age(raw interface{}, r domain.Range) domain.Outcome {
	v, s, reason := number(raw)
	if reason != domain.ReasonNone {
		return domain.Reject(reason)
	}
	if v != math.Trunc(v) {
		return domain.Reject(domain.ReasonParseFailure)
	}
	if !r.Contains(v) {
		return domain.Reject(domain.ReasonOutOfRange)
	}
	return domain.Accept(domain.Number(v), formatNumber(v) != s)
}

// Score accepts any number inside r. Out-of-range scores are rejected,
// never clamped.
func Score(raw interface{}, r domain.Range) domain.Outcome {
	v, s, reason := number(raw)
	if reason != domain.ReasonNone {
		return domain.Reject(reason)
	}
	if !r.Contains(v) {
		return domain.Reject(domain.ReasonOutOfRange)
	}
	return domain.Accept(domain.Number(v), formatNumber(v) != s)
}

// Category resolves a categorical cell through n. A cell is valid only
// when it already spelled the canonical label.
func Category(raw interface{}, n *normalize.CategoryNormalizer) domain.Outcome {
	s, ok := cellText(raw)
	if !ok {
		return domain.Reject(domain.ReasonEmpty)
	}
	m := n.Normalize(s)
	if !m.Matched() {
		return domain.Reject(domain.ReasonUnmatched)
	}
	return domain.Accept(domain.Text(m.Label), m.Label != s)
}

// Comment normalizes free text. Text that normalizes to nothing is empty.
func Comment(raw interface{}) domain.Outcome {
	s, ok := cellText(raw)
	if !ok {
		return domain.Reject(domain.ReasonEmpty)
	}
	text := normalize.FreeText(s)
	if text == "" {
		return domain.Reject(domain.ReasonEmpty)
	}
	return domain.Accept(domain.Text(text), text != s)
}
