package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ValueKind identifies what a cleaned cell holds
type ValueKind int

const (
	KindMissing ValueKind = iota
	KindText
	KindNumber
	KindTime
)

// String returns the kind name used in logs and reports
func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindTime:
		return "time"
	default:
		return "missing"
	}
}

// Value is a typed cell of a cleaned record. The zero Value is the missing
// marker, which is distinct from an empty text and from the number zero.
type Value struct {
	kind ValueKind
	text string
	num  float64
	ts   time.Time
}

// Missing returns the missing marker
func Missing() Value { return Value{} }

// Text wraps a normalized string
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number wraps a normalized numeric value
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Time wraps a parsed timestamp
func Time(t time.Time) Value { return Value{kind: KindTime, ts: t} }

// Kind reports what the value holds
func (v Value) Kind() ValueKind { return v.kind }

// IsMissing reports whether v is the missing marker
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Str returns the text payload and whether v holds text
func (v Value) Str() (string, bool) { return v.text, v.kind == KindText }

// Num returns the numeric payload and whether v holds a number
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Timestamp returns the time payload and whether v holds a time
func (v Value) Timestamp() (time.Time, bool) { return v.ts, v.kind == KindTime }

// String renders the value for logs; missing renders as "<missing>"
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	case KindTime:
		return v.ts.Format(time.RFC3339)
	default:
		return "<missing>"
	}
}

// MarshalJSON encodes missing as null
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		return json.Marshal(v.num)
	case KindTime:
		return json.Marshal(v.ts)
	default:
		return []byte("null"), nil
	}
}
