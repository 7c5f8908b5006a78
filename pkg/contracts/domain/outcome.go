package domain

// Status is the final class a processed cell is counted under
type Status string

const (
	StatusValid     Status = "valid"
	StatusCorrected Status = "corrected"
	StatusRejected  Status = "rejected"
	StatusImputed   Status = "imputed"
)

// Reason tags a rejected cell
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonParseFailure Reason = "parse_failure"
	ReasonOutOfRange   Reason = "out_of_range"
	ReasonEmpty        Reason = "empty"
	ReasonUnmatched    Reason = "unmatched"
	ReasonSpam         Reason = "spam"
)

// Outcome is the tagged result of validating one cell
type Outcome struct {
	Value  Value
	Status Status
	Reason Reason
}

// Accept returns a successful outcome; corrected marks a value whose
// normalized form differs from the raw input.
func Accept(v Value, corrected bool) Outcome {
	if corrected {
		return Outcome{Value: v, Status: StatusCorrected}
	}
	return Outcome{Value: v, Status: StatusValid}
}

// Reject returns a rejection carrying the missing marker
func Reject(reason Reason) Outcome {
	return Outcome{Value: Missing(), Status: StatusRejected, Reason: reason}
}

// OK reports whether the outcome carries a usable value
func (o Outcome) OK() bool {
	return o.Status == StatusValid || o.Status == StatusCorrected
}
