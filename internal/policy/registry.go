// Package policy selects the matching policy variant for a bank
// identifier. Every variant is an independently substitutable strategy
// over the same reconcile contract; new bank behavior is added by
// registering a variant, never by branching inside the matcher.
package policy

import (
	"strings"

	"policy-reconciliation/internal/domain"
	"policy-reconciliation/internal/matcher"
)

// GenericBank names the fallback policy used for unknown identifiers.
const GenericBank = "GENERIC"

// Enumerated bank identifiers with a registered policy variant. All of
// them currently delegate to the generic matcher; they exist so a bank
// can override key fields, tolerance defaults or secondary-match rules
// without an interface change.
var knownBanks = []string{"ORIENTAL", "MAGMA", "RSA", "ICICI"}

// ReconcileFunc is the pluggable reconcile capability shared by all
// policy variants.
type ReconcileFunc func(a, b domain.NormalizedDataset, params domain.MatchParameters) (*domain.ReconciliationSummary, error)

// Policy is one named matching strategy with its parameter defaults.
type Policy struct {
	Name      string
	Defaults  domain.MatchParameters
	Reconcile ReconcileFunc
}

// Registry maps bank identifiers to policy variants, with a guaranteed
// generic fallback so reconciliation always produces a result.
type Registry struct {
	policies map[string]Policy
	fallback Policy
}

// NewRegistry builds a registry with the generic policy and one variant
// per enumerated bank, optionally overlaying per-bank parameter defaults
// from cfg (nil means built-in defaults everywhere).
func NewRegistry(cfg *Config) *Registry {
	generic := Policy{
		Name:      GenericBank,
		Defaults:  cfg.ParamsFor(GenericBank),
		Reconcile: matcher.Reconcile,
	}
	r := &Registry{
		policies: make(map[string]Policy),
		fallback: generic,
	}
	r.Register(generic)
	for _, bank := range knownBanks {
		r.Register(Policy{
			Name:      bank,
			Defaults:  cfg.ParamsFor(bank),
			Reconcile: matcher.Reconcile,
		})
	}
	return r
}

// Register adds or replaces a policy variant under its name.
func (r *Registry) Register(p Policy) {
	r.policies[strings.ToUpper(strings.TrimSpace(p.Name))] = p
}

// Select resolves a bank identifier case-insensitively, falling back to
// the generic policy for unknown identifiers.
func (r *Registry) Select(bankIdentifier string) Policy {
	if p, ok := r.policies[strings.ToUpper(strings.TrimSpace(bankIdentifier))]; ok {
		return p
	}
	return r.fallback
}
