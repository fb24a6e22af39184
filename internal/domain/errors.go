package domain

import "errors"

// Run-level precondition failures. Cell-level data quality issues never
// surface as errors; they degrade to null cells during normalization.
var (
	// ErrConfiguration marks a non-retryable setup problem, such as the
	// key field being absent from both datasets. Callers must refuse to
	// run reconciliation rather than produce a partial summary.
	ErrConfiguration = errors.New("configuration error")

	// ErrStructuralMismatch marks an absent or empty dataset.
	// Reconciliation never runs on a single dataset.
	ErrStructuralMismatch = errors.New("structural mismatch")
)
