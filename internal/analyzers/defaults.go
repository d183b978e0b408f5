package analyzers

import (
	"fmt"

	"siteaudit-backend/internal/analysis"
	"siteaudit-backend/internal/pipeline"
	"siteaudit-backend/internal/registry"
	"siteaudit-backend/internal/scoring"
)

// Options configures the default analyzer set.
type Options struct {
	Runner *pipeline.Runner
	// Policies overrides the built-in scoring policy per analyzer type,
	// typically loaded from the scoring policy file.
	Policies map[string]scoring.Policy
}

// DefaultPolicies returns the built-in scoring policy per analyzer type.
// The floor override numbers are policy data, not engine behavior: security
// keeps the floor disabled so a page riddled with medium findings is not
// clamped up to passing.
func DefaultPolicies() map[string]scoring.Policy {
	seo := scoring.DefaultPolicy()

	accessibility := scoring.DefaultPolicy()

	security := scoring.DefaultPolicy()
	security.FloorOverride = scoring.FloorPolicy{}

	performance := scoring.DefaultPolicy()
	performance.FloorOverride = scoring.FloorPolicy{Floor: 0.7, MaxHigh: 2}

	return map[string]scoring.Policy{
		TypeSEO:           seo,
		TypeAccessibility: accessibility,
		TypeSecurity:      security,
		TypePerformance:   performance,
	}
}

// NewDefaultRegistry builds a registry with the four built-in analyzers
// registered against the given pipeline runner.
func NewDefaultRegistry(opts Options) (*registry.Registry, error) {
	runner := opts.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil)
	}

	policies := DefaultPolicies()
	for name, policy := range opts.Policies {
		policies[name] = policy
	}

	reg := registry.New()
	factories := map[string]registry.Factory{
		TypeSEO: func(cfg analysis.Config) (registry.Analyzer, error) {
			return NewSEO(runner, policies[TypeSEO]), nil
		},
		TypeAccessibility: func(cfg analysis.Config) (registry.Analyzer, error) {
			return NewAccessibility(runner, policies[TypeAccessibility]), nil
		},
		TypeSecurity: func(cfg analysis.Config) (registry.Analyzer, error) {
			return NewSecurity(runner, policies[TypeSecurity]), nil
		},
		TypePerformance: func(cfg analysis.Config) (registry.Analyzer, error) {
			return NewPerformance(runner, policies[TypePerformance]), nil
		},
	}
	for name, factory := range factories {
		if err := reg.Register(name, factory); err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
	}
	return reg, nil
}
