package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical field names recognized by the normalizer and matcher.
// Both datasets' raw columns are mapped onto these before matching.
const (
	FieldPolicyNumber      = "Policy Number"
	FieldEndorsementNumber = "Endorsement Number"
	FieldGrossPremium      = "Gross Premium"
	FieldBrokerageAmount   = "Brokerage Amount"
	FieldGST               = "GST"
	FieldPolicyStartDate   = "Policy Start Date"
)

// Generic roles used by advanced bank policies in place of named fields.
const (
	RoleAmount      = "amount"
	RoleDate        = "date"
	RoleDescription = "description"
)

// IsReferenceField reports whether a canonical field is one of the
// free-form Reference fields (Reference, Reference 1, ...).
func IsReferenceField(name string) bool {
	return strings.HasPrefix(strings.TrimSpace(name), "Reference")
}

// RawDataset is an ordered tabular snapshot as produced by file ingestion:
// a header of unique column names and rows of opaque string cells.
// It is consumed read-only by the normalizer.
type RawDataset struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnMapping maps a raw column name to a canonical field name.
// An empty value means the raw column is unmapped and will be dropped.
type ColumnMapping map[string]string

// CellKind tags the coerced type of a normalized cell.
type CellKind int

const (
	KindNull CellKind = iota
	KindText
	KindNumber
	KindDate
)

// Cell is a single normalized value. Exactly one of Text, Number or Date
// is meaningful, selected by Kind; KindNull carries no value.
type Cell struct {
	Kind   CellKind
	Text   string
	Number decimal.Decimal
	Date   time.Time
}

func NullCell() Cell { return Cell{Kind: KindNull} }

func TextCell(s string) Cell { return Cell{Kind: KindText, Text: s} }

func NumberCell(d decimal.Decimal) Cell { return Cell{Kind: KindNumber, Number: d} }

func DateCell(t time.Time) Cell { return Cell{Kind: KindDate, Date: t} }

// IsNull reports whether the cell holds no value.
func (c Cell) IsNull() bool { return c.Kind == KindNull }

// Row holds the normalized cells of one record, keyed by canonical field.
type Row map[string]Cell

// NormalizedDataset is a RawDataset after column renaming and per-field
// type coercion. Only mapped canonical fields survive; within a column all
// non-null cells share one kind.
type NormalizedDataset struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the dataset carries the given canonical field.
func (d NormalizedDataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}
