// Package scoring turns a set of severity-weighted findings into a
// normalized score in [0,1].
package scoring

import "siteaudit-backend/internal/analysis"

// Weights holds the per-finding penalty for each severity bucket.
// Info findings never affect the score. A zero weight disables a bucket.
type Weights struct {
	Critical float64 `yaml:"critical"`
	High     float64 `yaml:"high"`
	Medium   float64 `yaml:"medium"`
	Low      float64 `yaml:"low"`
}

// Caps bound the total impact of each bucket so an unbounded number of
// low-value findings cannot drive the score below a single structural
// failure.
type Caps struct {
	Critical float64 `yaml:"critical"`
	High     float64 `yaml:"high"`
	Medium   float64 `yaml:"medium"`
	Low      float64 `yaml:"low"`
}

// FloorPolicy clamps the score upward when no severe findings exist, so a
// page with only minor issues cannot be scored as failing. Thresholds are
// analyzer policy, not engine constants. A zero Floor disables the clamp.
type FloorPolicy struct {
	Floor   float64 `yaml:"floor"`
	MaxHigh int     `yaml:"max_high"`
}

// Policy is the complete scoring configuration for one analyzer.
type Policy struct {
	Weights       Weights     `yaml:"weights"`
	Caps          Caps        `yaml:"caps"`
	CriticalBoost float64     `yaml:"critical_boost"`
	FloorOverride FloorPolicy `yaml:"floor_override"`
}

// DefaultPolicy returns the weights and caps shared by this analyzer
// family.
func DefaultPolicy() Policy {
	return Policy{
		Weights:       Weights{Critical: 0.25, High: 0.15, Medium: 0.08, Low: 0.03},
		Caps:          Caps{Critical: 1.0, High: 0.8, Medium: 0.5, Low: 0.3},
		CriticalBoost: 1.5,
		FloorOverride: FloorPolicy{Floor: 0.7, MaxHigh: 1},
	}
}

// Score computes the normalized score for a finding set under a policy.
// It starts at 1.0, subtracts capped per-bucket impact, applies the floor
// override when no severe findings exist, and clamps to [0,1]. Invoking it
// with no findings yields 1.0.
func Score(findings []analysis.Finding, p Policy) float64 {
	var nCritical, nHigh, nMedium, nLow int
	for _, f := range findings {
		switch f.Severity {
		case analysis.SeverityCritical:
			nCritical++
		case analysis.SeverityHigh:
			nHigh++
		case analysis.SeverityMedium:
			nMedium++
		case analysis.SeverityLow:
			nLow++
		}
	}

	boost := p.CriticalBoost
	if boost <= 0 {
		boost = 1.0
	}

	score := 1.0
	score -= capImpact(float64(nCritical)*p.Weights.Critical*boost, p.Caps.Critical)
	score -= capImpact(float64(nHigh)*p.Weights.High, p.Caps.High)
	score -= capImpact(float64(nMedium)*p.Weights.Medium, p.Caps.Medium)
	score -= capImpact(float64(nLow)*p.Weights.Low, p.Caps.Low)

	if p.FloorOverride.Floor > 0 && nCritical == 0 && nHigh <= p.FloorOverride.MaxHigh {
		if score < p.FloorOverride.Floor {
			score = p.FloorOverride.Floor
		}
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func capImpact(impact, limit float64) float64 {
	if impact < 0 {
		return 0
	}
	if limit > 0 && impact > limit {
		return limit
	}
	return impact
}
