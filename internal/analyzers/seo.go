package analyzers

import (
	"context"
	"fmt"
	"strings"

	"siteaudit-backend/internal/analysis"
	"siteaudit-backend/internal/analysis/recommend"
	"siteaudit-backend/internal/pipeline"
	"siteaudit-backend/internal/scoring"
)

const (
	TypeSEO    = "seo"
	seoVersion = "1.3.0"

	defaultMinTitleLength       = 10
	defaultMaxTitleLength       = 60
	defaultMaxDescriptionLength = 160
)

// SEO checks on-page search fundamentals: title, meta description,
// heading structure, and canonical link.
type SEO struct {
	runner *pipeline.Runner
	policy scoring.Policy
}

// NewSEO wires the shared pipeline runner and scoring policy.
func NewSEO(runner *pipeline.Runner, policy scoring.Policy) *SEO {
	return &SEO{runner: runner, policy: policy}
}

func (a *SEO) Type() string { return TypeSEO }

// Analyze runs the SEO rule set through the pipeline.
func (a *SEO) Analyze(ctx context.Context, input any, cfg analysis.Config) (*analysis.Result, error) {
	return a.runner.Run(ctx, TypeSEO, input, cfg, a.compute)
}

func (a *SEO) compute(ctx context.Context, input any, cfg analysis.Config) (*analysis.Result, error) {
	doc, err := parseDocument(input)
	if err != nil {
		return nil, analysis.NewAnalysisError("parse document", err)
	}

	minTitle := cfg.ParamInt("min_title_length", defaultMinTitleLength)
	maxTitle := cfg.ParamInt("max_title_length", defaultMaxTitleLength)
	maxDescription := cfg.ParamInt("max_description_length", defaultMaxDescriptionLength)

	var findings []analysis.Finding
	manager := recommend.NewManager()

	title := strings.TrimSpace(doc.Find("head title").First().Text())
	switch {
	case title == "":
		findings = append(findings, analysis.Finding{
			Name:        "missing_title",
			Description: "Page has no <title> element",
			Severity:    analysis.SeverityCritical,
			Remediation: "Add a descriptive <title> to the document head",
		})
		manager.Add(recommend.NewBuilder("Add a page title").
			WithDescription("Search engines use the title as the primary result headline; a page without one is effectively unindexable.").
			WithSeverity("critical").
			WithPriority(0).
			WithCodeExample("<title>Product name - what it does</title>").
			WithSteps("Write a unique title under 60 characters", "Place it inside <head>").
			WithQuickWin(true).
			WithDifficulty("easy").
			WithResourceLink("Title links", "https://developers.google.com/search/docs/appearance/title-link").
			Build())
	case len(title) < minTitle || len(title) > maxTitle:
		findings = append(findings, analysis.Finding{
			Name:        "title_length",
			Description: fmt.Sprintf("Title length %d is outside the %d-%d range", len(title), minTitle, maxTitle),
			Severity:    analysis.SeverityMedium,
			Remediation: "Rewrite the title to fit the recommended length range",
		})
		manager.Add(recommend.NewBuilder("Adjust title length").
			WithDescription("Overly short titles waste ranking signal and long ones get truncated in results.").
			WithSeverity("medium").
			WithPriority(2).
			WithQuickWin(true).
			WithDifficulty("easy").
			Build())
	}

	description, hasDescription := doc.Find(`head meta[name="description"]`).First().Attr("content")
	description = strings.TrimSpace(description)
	if !hasDescription || description == "" {
		findings = append(findings, analysis.Finding{
			Name:        "missing_meta_description",
			Description: "Page has no meta description",
			Severity:    analysis.SeverityHigh,
			Remediation: "Add a meta description summarizing the page",
		})
		manager.Add(recommend.NewBuilder("Add a meta description").
			WithDescription("The description feeds the result snippet; without it search engines pick arbitrary page text.").
			WithSeverity("high").
			WithPriority(1).
			WithCodeExample(`<meta name="description" content="One-sentence summary of the page.">`).
			WithQuickWin(true).
			WithDifficulty("easy").
			Build())
	} else if len(description) > maxDescription {
		findings = append(findings, analysis.Finding{
			Name:        "meta_description_length",
			Description: fmt.Sprintf("Meta description is %d characters, over the %d limit", len(description), maxDescription),
			Severity:    analysis.SeverityLow,
			Remediation: "Shorten the meta description",
		})
	}

	h1Count := doc.Find("h1").Length()
	if h1Count == 0 {
		findings = append(findings, analysis.Finding{
			Name:        "missing_h1",
			Description: "Page has no <h1> heading",
			Severity:    analysis.SeverityHigh,
			Remediation: "Add a single <h1> describing the page topic",
		})
		manager.Add(recommend.NewBuilder("Add an h1 heading").
			WithSeverity("high").
			WithPriority(1).
			WithDifficulty("easy").
			WithQuickWin(true).
			Build())
	} else if h1Count > 1 {
		findings = append(findings, analysis.Finding{
			Name:        "multiple_h1",
			Description: fmt.Sprintf("Page has %d <h1> headings", h1Count),
			Severity:    analysis.SeverityLow,
			Remediation: "Keep one <h1> and demote the rest",
		})
	}

	if doc.Find(`head link[rel="canonical"]`).Length() == 0 {
		findings = append(findings, analysis.Finding{
			Name:        "missing_canonical",
			Description: "Page declares no canonical URL",
			Severity:    analysis.SeverityLow,
			Remediation: "Add a rel=canonical link to consolidate duplicate URLs",
		})
		manager.Add(recommend.NewBuilder("Declare a canonical URL").
			WithSeverity("low").
			WithPriority(3).
			WithCodeExample(`<link rel="canonical" href="https://example.com/page">`).
			WithDifficulty("easy").
			Build())
	}

	if robots, ok := doc.Find(`head meta[name="robots"]`).First().Attr("content"); ok &&
		strings.Contains(strings.ToLower(robots), "noindex") {
		findings = append(findings, analysis.Finding{
			Name:        "noindex",
			Description: "Page is marked noindex and will be excluded from search",
			Severity:    analysis.SeverityCritical,
			Remediation: "Remove the noindex directive if the page should rank",
		})
	}

	result := analysis.NewResult(TypeSEO, seoVersion)
	result.Data = map[string]any{
		"title":              title,
		"title_length":       len(title),
		"description_length": len(description),
		"h1_count":           h1Count,
		"finding_count":      len(findings),
	}
	result.Score = scoring.Score(findings, a.policy)
	applyFindings(result, findings)
	result.Enhanced = manager.All()
	return result, nil
}
