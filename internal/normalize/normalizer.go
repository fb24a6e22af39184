// Package normalize renames raw dataset columns onto the canonical schema
// and coerces cell values by canonical field name.
package normalize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"policy-reconciliation/internal/domain"
)

// Date layouts tried in order by the best-effort date coercion.
// Day-first layouts come before month-first ones; statements in this
// domain are predominantly dd/mm/yyyy.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"02-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Normalize applies a column mapping to a raw dataset and coerces every
// mapped column by its canonical field name. It is a pure function: raw
// columns and mapping keys are matched case-insensitively after trimming,
// the first raw column in original order wins a contested mapping key,
// and unmapped columns are dropped. Cell-level coercion never fails;
// unparsable values become null.
func Normalize(ds domain.RawDataset, mapping domain.ColumnMapping) domain.NormalizedDataset {
	byKey := foldMapping(mapping)

	// Resolve each raw column to its canonical target. A mapping key binds
	// to the first column that matches it; later columns mapping to an
	// already-bound key stay unmapped.
	targets := make([]string, len(ds.Columns))
	bound := make(map[string]bool, len(byKey))
	for i, col := range ds.Columns {
		key := foldName(col)
		canonical, ok := byKey[key]
		if !ok || bound[key] {
			continue
		}
		bound[key] = true
		targets[i] = canonical
	}

	out := domain.NormalizedDataset{}
	seen := make(map[string]bool)
	for _, canonical := range targets {
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out.Columns = append(out.Columns, canonical)
	}

	out.Rows = make([]domain.Row, len(ds.Rows))
	for r, raw := range ds.Rows {
		row := make(domain.Row, len(out.Columns))
		for i, canonical := range targets {
			if canonical == "" {
				continue
			}
			var value string
			if i < len(raw) {
				value = raw[i]
			}
			// When two raw columns feed the same canonical field the
			// later column overwrites the earlier one (last write wins).
			row[canonical] = Coerce(canonical, value)
		}
		out.Rows[r] = row
	}
	return out
}

// ValidateMapping reports a configuration error when a mapping entry
// names a raw column the dataset does not carry. Normalization itself
// would silently drop the canonical field, so callers that need the hard
// failure must validate before normalizing.
func ValidateMapping(ds domain.RawDataset, mapping domain.ColumnMapping) error {
	present := make(map[string]bool, len(ds.Columns))
	for _, col := range ds.Columns {
		present[foldName(col)] = true
	}

	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.TrimSpace(mapping[k]) == "" {
			continue
		}
		if !present[foldName(k)] {
			return fmt.Errorf("%w: mapping references column %q which the dataset does not contain", domain.ErrConfiguration, k)
		}
	}
	return nil
}

// Coerce converts one raw cell to its canonical-field representation.
func Coerce(field, raw string) domain.Cell {
	switch {
	case isNumericField(field):
		return coerceNumber(raw)
	case isDateField(field):
		return coerceDate(raw)
	default:
		return domain.TextCell(strings.TrimSpace(raw))
	}
}

func isNumericField(field string) bool {
	switch field {
	case domain.FieldGrossPremium, domain.FieldBrokerageAmount, domain.FieldGST, domain.RoleAmount:
		return true
	}
	return false
}

func isDateField(field string) bool {
	return field == domain.FieldPolicyStartDate || field == domain.RoleDate
}

// coerceNumber strips every character except digits, '.' and '-', then
// parses the remainder. A cleaned value that is empty or consists only of
// '.'/'-' is null. No decimal point takes the integer path; anything
// unparsable is null.
func coerceNumber(raw string) domain.Cell {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if strings.Trim(cleaned, ".-") == "" {
		return domain.NullCell()
	}
	if !strings.Contains(cleaned, ".") {
		n, err := strconv.ParseInt(cleaned, 10, 64)
		if err != nil {
			return domain.NullCell()
		}
		return domain.NumberCell(decimal.NewFromInt(n))
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return domain.NullCell()
	}
	return domain.NumberCell(d)
}

// coerceDate tries each known layout in order; empty or unparsable input
// is null.
func coerceDate(raw string) domain.Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.NullCell()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateCell(t)
		}
	}
	return domain.NullCell()
}

// foldMapping folds mapping keys for case-insensitive lookup. Keys are
// visited in sorted order so a degenerate mapping whose keys collide after
// folding still resolves deterministically.
func foldMapping(mapping domain.ColumnMapping) map[string]string {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	byKey := make(map[string]string, len(mapping))
	for _, k := range keys {
		canonical := strings.TrimSpace(mapping[k])
		if canonical == "" {
			continue
		}
		byKey[foldName(k)] = canonical
	}
	return byKey
}

func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
