package scoring

import (
	"math"
	"testing"

	"siteaudit-backend/internal/analysis"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func findingsOf(severities ...analysis.Severity) []analysis.Finding {
	out := make([]analysis.Finding, 0, len(severities))
	for _, s := range severities {
		out = append(out, analysis.Finding{Name: "f", Severity: s})
	}
	return out
}

func TestScoreEmptyFindings(t *testing.T) {
	if got := Score(nil, DefaultPolicy()); got != 1.0 {
		t.Fatalf("expected perfect score for no findings, got %f", got)
	}
}

func TestScoreSingleCriticalBoosted(t *testing.T) {
	p := DefaultPolicy()
	got := Score(findingsOf(analysis.SeverityCritical), p)

	// 1.0 - 0.25*1.5
	if !almostEqual(got, 0.625) {
		t.Fatalf("expected 0.625, got %f", got)
	}
}

func TestScoreInfoNeverCounts(t *testing.T) {
	p := DefaultPolicy()
	got := Score(findingsOf(analysis.SeverityInfo, analysis.SeverityInfo, analysis.SeverityInfo), p)
	if got != 1.0 {
		t.Fatalf("info findings must not affect score, got %f", got)
	}
}

func TestScoreBucketCap(t *testing.T) {
	p := DefaultPolicy()
	p.FloorOverride = FloorPolicy{}

	// 10 medium findings: raw impact 0.8, capped at 0.5.
	got := Score(findingsOf(
		analysis.SeverityMedium, analysis.SeverityMedium, analysis.SeverityMedium,
		analysis.SeverityMedium, analysis.SeverityMedium, analysis.SeverityMedium,
		analysis.SeverityMedium, analysis.SeverityMedium, analysis.SeverityMedium,
		analysis.SeverityMedium,
	), p)
	if got != 0.5 {
		t.Fatalf("expected medium cap to hold score at 0.5, got %f", got)
	}
}

func TestScoreClampedToZero(t *testing.T) {
	p := DefaultPolicy()
	p.FloorOverride = FloorPolicy{}

	findings := findingsOf(
		analysis.SeverityCritical, analysis.SeverityCritical, analysis.SeverityCritical,
		analysis.SeverityHigh, analysis.SeverityHigh, analysis.SeverityHigh,
		analysis.SeverityHigh, analysis.SeverityHigh, analysis.SeverityHigh,
	)
	if got := Score(findings, p); got != 0 {
		t.Fatalf("expected clamp at 0, got %f", got)
	}
}

func TestScoreFloorApplies(t *testing.T) {
	p := DefaultPolicy()

	// 6 medium findings: 0.48 impact, score 0.52, floored to 0.7 because
	// there are no critical and <= MaxHigh high findings.
	findings := findingsOf(
		analysis.SeverityMedium, analysis.SeverityMedium, analysis.SeverityMedium,
		analysis.SeverityMedium, analysis.SeverityMedium, analysis.SeverityMedium,
	)
	if got := Score(findings, p); got != 0.7 {
		t.Fatalf("expected floor 0.7, got %f", got)
	}
}

func TestScoreFloorSkippedOnCritical(t *testing.T) {
	p := DefaultPolicy()
	p.Caps = Caps{Critical: 1.0, High: 0.8, Medium: 0.5, Low: 0.3}

	findings := findingsOf(
		analysis.SeverityCritical,
		analysis.SeverityMedium, analysis.SeverityMedium, analysis.SeverityMedium,
	)
	got := Score(findings, p)
	// 1.0 - 0.375 - 0.24 = 0.385; no floor with a critical present.
	if got >= p.FloorOverride.Floor {
		t.Fatalf("floor must not apply with a critical finding, got %f", got)
	}
}

func TestScoreFloorSkippedAboveMaxHigh(t *testing.T) {
	p := DefaultPolicy()
	p.FloorOverride = FloorPolicy{Floor: 0.7, MaxHigh: 1}

	findings := findingsOf(analysis.SeverityHigh, analysis.SeverityHigh, analysis.SeverityHigh)
	got := Score(findings, p)
	// 1.0 - 0.45 = 0.55; two or more high findings disable the floor.
	if !almostEqual(got, 0.55) {
		t.Fatalf("expected 0.55 without floor, got %f", got)
	}
}

func TestScoreZeroBoostDefaultsToNoBoost(t *testing.T) {
	p := DefaultPolicy()
	p.CriticalBoost = 0
	p.FloorOverride = FloorPolicy{}

	got := Score(findingsOf(analysis.SeverityCritical), p)
	if !almostEqual(got, 0.75) {
		t.Fatalf("expected unboosted critical penalty, got %f", got)
	}
}

func TestScoreAlwaysInUnitRange(t *testing.T) {
	p := Policy{
		Weights:       Weights{Critical: 5, High: 5, Medium: 5, Low: 5},
		CriticalBoost: 10,
	}
	findings := findingsOf(analysis.SeverityCritical, analysis.SeverityHigh)
	got := Score(findings, p)
	if got < 0 || got > 1 {
		t.Fatalf("score out of [0,1]: %f", got)
	}
}
