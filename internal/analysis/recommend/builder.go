// Package recommend builds and orders remediation recommendations.
package recommend

import (
	"strings"

	"siteaudit-backend/internal/analysis"
)

// Recommendation is an alias of the analysis model type.
type Recommendation = analysis.Recommendation

// Builder constructs a Recommendation fluently. Every setter normalizes its
// argument and falls back to a documented default rather than failing, so a
// malformed rule definition can never drop a recommendation.
type Builder struct {
	rec analysis.Recommendation
}

// NewBuilder starts a recommendation with the required title. Defaults:
// severity medium, priority P2, difficulty medium.
func NewBuilder(title string) *Builder {
	return &Builder{rec: analysis.Recommendation{
		Title:      strings.TrimSpace(title),
		Severity:   analysis.SeverityMedium,
		Priority:   analysis.PriorityP2,
		Difficulty: analysis.DifficultyMedium,
	}}
}

// WithDescription sets the long-form description.
func (b *Builder) WithDescription(description string) *Builder {
	b.rec.Description = strings.TrimSpace(description)
	return b
}

// WithSeverity sets severity; unrecognized values normalize to medium.
func (b *Builder) WithSeverity(severity string) *Builder {
	b.rec.Severity = analysis.ParseSeverity(severity)
	return b
}

// WithPriority sets priority; out-of-range values normalize to P2.
func (b *Builder) WithPriority(priority int) *Builder {
	b.rec.Priority = analysis.ParsePriority(priority)
	return b
}

// WithCodeExample attaches an example fix snippet.
func (b *Builder) WithCodeExample(code string) *Builder {
	b.rec.CodeExample = code
	return b
}

// WithSteps replaces the ordered remediation steps, dropping blanks.
func (b *Builder) WithSteps(steps ...string) *Builder {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	b.rec.Steps = out
	return b
}

// WithQuickWin flags the recommendation as low-effort/high-value.
func (b *Builder) WithQuickWin(quickWin bool) *Builder {
	b.rec.QuickWin = quickWin
	return b
}

// WithImpact sets the expected impact description.
func (b *Builder) WithImpact(impact string) *Builder {
	b.rec.Impact = strings.TrimSpace(impact)
	return b
}

// WithDifficulty sets difficulty; unrecognized values normalize to medium.
func (b *Builder) WithDifficulty(difficulty string) *Builder {
	b.rec.Difficulty = analysis.ParseDifficulty(difficulty)
	return b
}

// WithResourceLink appends a documentation link, ignoring blank entries.
func (b *Builder) WithResourceLink(title, url string) *Builder {
	if strings.TrimSpace(url) == "" {
		return b
	}
	b.rec.ResourceLinks = append(b.rec.ResourceLinks, analysis.ResourceLink{
		Title: strings.TrimSpace(title),
		URL:   strings.TrimSpace(url),
	})
	return b
}

// Build returns the finished recommendation by value; the builder can be
// discarded and the result never mutates.
func (b *Builder) Build() analysis.Recommendation {
	rec := b.rec
	if rec.Steps == nil {
		rec.Steps = []string{}
	}
	rec.Steps = append([]string(nil), rec.Steps...)
	rec.ResourceLinks = append([]analysis.ResourceLink(nil), rec.ResourceLinks...)
	return rec
}
