package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"policy-reconciliation/internal/domain"
	"policy-reconciliation/internal/matcher"
)

func TestRegistry_Select(t *testing.T) {
	r := NewRegistry(nil)

	tests := []struct {
		name     string
		bank     string
		wantName string
	}{
		{"exact uppercase", "ORIENTAL", "ORIENTAL"},
		{"lowercase", "magma", "MAGMA"},
		{"mixed case with spaces", "  Rsa ", "RSA"},
		{"icici", "icici", "ICICI"},
		{"unknown falls back to generic", "HDFC", GenericBank},
		{"empty falls back to generic", "", GenericBank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := r.Select(tt.bank)
			assert.Equal(t, tt.wantName, p.Name)
			assert.NotNil(t, p.Reconcile, "every policy must be runnable")
		})
	}
}

func TestRegistry_SelectedPolicyReconciles(t *testing.T) {
	r := NewRegistry(nil)
	ds := domain.NormalizedDataset{
		Columns: []string{domain.FieldPolicyNumber, domain.FieldGrossPremium},
		Rows: []domain.Row{{
			domain.FieldPolicyNumber: domain.TextCell("P1"),
			domain.FieldGrossPremium: domain.NumberCell(decimal.NewFromInt(100)),
		}},
	}

	// Unknown identifier must still produce a result.
	p := r.Select("UNKNOWN BANK")
	got, err := p.Reconcile(ds, ds, p.Defaults)

	assert.NoError(t, err)
	assert.Equal(t, 1, got.Matches)
}

func TestRegistry_RegisterOverride(t *testing.T) {
	r := NewRegistry(nil)

	called := false
	r.Register(Policy{
		Name:     "ICICI",
		Defaults: domain.DefaultMatchParameters(),
		Reconcile: func(a, b domain.NormalizedDataset, params domain.MatchParameters) (*domain.ReconciliationSummary, error) {
			called = true
			return matcher.Reconcile(a, b, params)
		},
	})

	ds := domain.NormalizedDataset{
		Columns: []string{domain.FieldPolicyNumber, domain.FieldGrossPremium},
		Rows: []domain.Row{{
			domain.FieldPolicyNumber: domain.TextCell("P1"),
			domain.FieldGrossPremium: domain.NumberCell(decimal.NewFromInt(1)),
		}},
	}
	p := r.Select("icici")
	_, err := p.Reconcile(ds, ds, p.Defaults)

	assert.NoError(t, err)
	assert.True(t, called, "registered variant must replace the built-in one")
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty path yields built-in defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		assert.NoError(t, err)
		assert.Equal(t, domain.DefaultMatchParameters(), cfg.ParamsFor("ORIENTAL"))
	})

	t.Run("missing file yields built-in defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.NoError(t, err)
		assert.Equal(t, domain.DefaultMatchParameters(), cfg.ParamsFor("RSA"))
	})

	t.Run("defaults and per-bank overlay", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[defaults]
amount_tolerance = 2.0
date_window = 14

[banks.icici]
amount_tolerance = 0.5
use_references = true
`
		assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadConfig(path)
		assert.NoError(t, err)

		generic := cfg.ParamsFor("GENERIC")
		assert.Equal(t, 2.0, generic.AmountTolerance)
		assert.Equal(t, 14, generic.DateWindow)
		assert.Equal(t, 80, generic.FuzzyPct, "unset fields keep built-in defaults")

		icici := cfg.ParamsFor("ICICI")
		assert.Equal(t, 0.5, icici.AmountTolerance)
		assert.Equal(t, 14, icici.DateWindow, "bank table overlays the defaults table")
		assert.True(t, icici.UseReferences)
	})

	t.Run("invalid toml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		assert.NoError(t, os.WriteFile(path, []byte("not [valid"), 0644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestRegistry_ConfigDefaultsApplied(t *testing.T) {
	cfg := &Config{
		Banks: map[string]ParamOverrides{
			"magma": {AmountTolerance: floatPtr(3.0)},
		},
	}

	r := NewRegistry(cfg)

	assert.Equal(t, 3.0, r.Select("MAGMA").Defaults.AmountTolerance)
	assert.Equal(t, 1.0, r.Select("RSA").Defaults.AmountTolerance)
}

func floatPtr(v float64) *float64 { return &v }
