package domain

// MatchParameters configures a reconciliation run. The value is immutable
// once passed in; a run never mutates it.
//
// AmountTolerance is expressed in whole percentage units at this boundary:
// 1.0 means 1%. The matcher divides by 100 before use. Callers must not
// pass fractional units.
type MatchParameters struct {
	AmountTolerance float64 `json:"amount_tolerance"`
	DateWindow      int     `json:"date_window"`
	FuzzyPct        int     `json:"fuzzy_pct"`
	EnforceBUnique  bool    `json:"enforce_b_unique"`
	UseReferences   bool    `json:"use_references"`
	Keywords        string  `json:"keywords"`
}

// DefaultMatchParameters returns the generic policy defaults:
// 1% amount tolerance, 7-day date window, 80% fuzzy threshold.
func DefaultMatchParameters() MatchParameters {
	return MatchParameters{
		AmountTolerance: 1.0,
		DateWindow:      7,
		FuzzyPct:        80,
	}
}
