package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discrepancy records a key whose Gross Premium values disagree between
// the two sides. A null value means the side had no usable amount.
type Discrepancy struct {
	Key    string              `json:"key"`
	ValueA decimal.NullDecimal `json:"value_in_a"`
	ValueB decimal.NullDecimal `json:"value_in_b"`
}

// ReconciliationSummary is the immutable result of one reconciliation run.
//
// MissingInA counts keys present only in dataset B (missing from A's
// counterpart); MissingInB counts keys present only in A. The naming reads
// from the perspective of what is absent, not where the key was found.
//
// SkippedNullKeys and the duplicate counters are diagnostics: keys where
// both sides held a null premium contribute to no other bucket, and a
// duplicate counter increments once per key that had more than one row on
// that side (first row wins for matching).
type ReconciliationSummary struct {
	Matches         int           `json:"matches"`
	Mismatches      int           `json:"mismatches"`
	MissingInA      int           `json:"missing_in_a"`
	MissingInB      int           `json:"missing_in_b"`
	Discrepancies   []Discrepancy `json:"discrepancies"`
	SkippedNullKeys int           `json:"skipped_null_keys"`
	DuplicateKeysA  int           `json:"duplicate_keys_a"`
	DuplicateKeysB  int           `json:"duplicate_keys_b"`
}

// ReconciliationReport is the top-level artifact of a run: the summary
// plus the resolved normalized column lists for audit and preview.
type ReconciliationReport struct {
	JobID      uuid.UUID             `json:"job_id"`
	Bank       string                `json:"bank"`
	ColumnsA   []string              `json:"columns_a"`
	ColumnsB   []string              `json:"columns_b"`
	Params     MatchParameters       `json:"params"`
	Summary    ReconciliationSummary `json:"summary"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
}
