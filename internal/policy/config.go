package policy

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"policy-reconciliation/internal/domain"
)

// Config supplies match parameter overrides from a TOML file: a
// [defaults] table applied to every bank, plus [banks.<identifier>]
// tables for per-bank values. Unset fields keep the built-in defaults.
type Config struct {
	Defaults ParamOverrides            `toml:"defaults"`
	Banks    map[string]ParamOverrides `toml:"banks"`
}

// ParamOverrides mirrors domain.MatchParameters with optional fields.
type ParamOverrides struct {
	AmountTolerance *float64 `toml:"amount_tolerance"`
	DateWindow      *int     `toml:"date_window"`
	FuzzyPct        *int     `toml:"fuzzy_pct"`
	EnforceBUnique  *bool    `toml:"enforce_b_unique"`
	UseReferences   *bool    `toml:"use_references"`
	Keywords        *string  `toml:"keywords"`
}

// LoadConfig reads a TOML config file. An empty path or a missing file
// yields an empty config rather than an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ParamsFor resolves the effective defaults for a bank: built-in values,
// then [defaults], then the bank's own table. A nil receiver returns the
// built-in defaults.
func (c *Config) ParamsFor(bank string) domain.MatchParameters {
	params := domain.DefaultMatchParameters()
	if c == nil {
		return params
	}
	c.Defaults.apply(&params)
	for name, overrides := range c.Banks {
		if strings.EqualFold(name, bank) {
			overrides.apply(&params)
			break
		}
	}
	return params
}

func (o ParamOverrides) apply(params *domain.MatchParameters) {
	if o.AmountTolerance != nil {
		params.AmountTolerance = *o.AmountTolerance
	}
	if o.DateWindow != nil {
		params.DateWindow = *o.DateWindow
	}
	if o.FuzzyPct != nil {
		params.FuzzyPct = *o.FuzzyPct
	}
	if o.EnforceBUnique != nil {
		params.EnforceBUnique = *o.EnforceBUnique
	}
	if o.UseReferences != nil {
		params.UseReferences = *o.UseReferences
	}
	if o.Keywords != nil {
		params.Keywords = *o.Keywords
	}
}
