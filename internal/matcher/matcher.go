// Package matcher joins two normalized datasets on the Policy Number key
// and classifies every key as matched, mismatched, missing-in-A or
// missing-in-B under an amount tolerance.
package matcher

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"policy-reconciliation/internal/domain"
)

// toleranceFloor is the absolute lower bound of the match window, so two
// equal amounts always match even at zero tolerance.
var toleranceFloor = decimal.New(1, -9)

type keyGroup struct {
	first domain.Row
	count int
}

// Reconcile runs the generic key-based matching policy.
//
// Keys are the sorted union of Policy Number values across both sides;
// rows sharing a key collapse to the first row (surfaced through the
// duplicate-key diagnostics). Gross Premium values match when exactly
// equal or within max(1e-9, |a| * tolerance), where the tolerance comes
// from params.AmountTolerance in whole percentage units (1.0 = 1%).
//
// Cell-level problems never error here; they arrive as nulls and degrade
// to mismatches or skips. Errors are reserved for run-level
// preconditions: an empty dataset (domain.ErrStructuralMismatch) or the
// key column absent from both sides (domain.ErrConfiguration).
func Reconcile(a, b domain.NormalizedDataset, params domain.MatchParameters) (*domain.ReconciliationSummary, error) {
	if len(a.Rows) == 0 || len(b.Rows) == 0 {
		return nil, fmt.Errorf("%w: reconciliation requires two non-empty datasets", domain.ErrStructuralMismatch)
	}
	if !a.HasColumn(domain.FieldPolicyNumber) && !b.HasColumn(domain.FieldPolicyNumber) {
		return nil, fmt.Errorf("%w: %q column missing from both datasets", domain.ErrConfiguration, domain.FieldPolicyNumber)
	}

	groupsA := groupByKey(a)
	groupsB := groupByKey(b)

	summary := &domain.ReconciliationSummary{
		Discrepancies:  make([]domain.Discrepancy, 0),
		DuplicateKeysA: countDuplicates(groupsA),
		DuplicateKeysB: countDuplicates(groupsB),
	}

	tolerance := decimal.NewFromFloat(params.AmountTolerance).Div(decimal.NewFromInt(100))

	for _, key := range sortedKeyUnion(groupsA, groupsB) {
		inA, okA := groupsA[key]
		inB, okB := groupsB[key]

		switch {
		case !okA:
			summary.MissingInA++
		case !okB:
			summary.MissingInB++
		default:
			classify(summary, key, premium(inA.first), premium(inB.first), tolerance)
		}
	}

	return summary, nil
}

// classify buckets a key present on both sides by its premium pair.
func classify(summary *domain.ReconciliationSummary, key string, va, vb decimal.NullDecimal, tolerance decimal.Decimal) {
	switch {
	case !va.Valid && !vb.Valid:
		summary.SkippedNullKeys++
	case !va.Valid || !vb.Valid:
		summary.Mismatches++
		summary.Discrepancies = append(summary.Discrepancies, domain.Discrepancy{Key: key, ValueA: va, ValueB: vb})
	case withinTolerance(va.Decimal, vb.Decimal, tolerance):
		summary.Matches++
	default:
		summary.Mismatches++
		summary.Discrepancies = append(summary.Discrepancies, domain.Discrepancy{Key: key, ValueA: va, ValueB: vb})
	}
}

func withinTolerance(a, b, tolerance decimal.Decimal) bool {
	if a.Equal(b) {
		return true
	}
	bound := a.Abs().Mul(tolerance)
	if bound.LessThan(toleranceFloor) {
		bound = toleranceFloor
	}
	return a.Sub(b).Abs().LessThanOrEqual(bound)
}

// groupByKey indexes rows by Policy Number, keeping the first row per key
// and the row count for the duplicate diagnostic.
func groupByKey(ds domain.NormalizedDataset) map[string]*keyGroup {
	groups := make(map[string]*keyGroup)
	if !ds.HasColumn(domain.FieldPolicyNumber) {
		return groups
	}
	for _, row := range ds.Rows {
		key := row[domain.FieldPolicyNumber].Text
		if g, ok := groups[key]; ok {
			g.count++
			continue
		}
		groups[key] = &keyGroup{first: row, count: 1}
	}
	return groups
}

func countDuplicates(groups map[string]*keyGroup) int {
	n := 0
	for _, g := range groups {
		if g.count > 1 {
			n++
		}
	}
	return n
}

// sortedKeyUnion visits the key universe in ascending order for
// determinism.
func sortedKeyUnion(a, b map[string]*keyGroup) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func premium(row domain.Row) decimal.NullDecimal {
	cell, ok := row[domain.FieldGrossPremium]
	if !ok || cell.Kind != domain.KindNumber {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: cell.Number, Valid: true}
}
