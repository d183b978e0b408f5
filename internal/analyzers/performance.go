package analyzers

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"siteaudit-backend/internal/analysis"
	"siteaudit-backend/internal/analysis/recommend"
	"siteaudit-backend/internal/pipeline"
	"siteaudit-backend/internal/scoring"
)

const (
	TypePerformance    = "performance"
	performanceVersion = "1.0.1"

	defaultMaxScripts     = 15
	defaultMaxStylesheets = 8
)

// Performance checks render-blocking resource counts and image sizing
// hints that drive layout shift.
type Performance struct {
	runner *pipeline.Runner
	policy scoring.Policy
}

// NewPerformance wires the shared pipeline runner and scoring policy.
func NewPerformance(runner *pipeline.Runner, policy scoring.Policy) *Performance {
	return &Performance{runner: runner, policy: policy}
}

func (a *Performance) Type() string { return TypePerformance }

// Analyze runs the performance rule set through the pipeline.
func (a *Performance) Analyze(ctx context.Context, input any, cfg analysis.Config) (*analysis.Result, error) {
	return a.runner.Run(ctx, TypePerformance, input, cfg, a.compute)
}

func (a *Performance) compute(ctx context.Context, input any, cfg analysis.Config) (*analysis.Result, error) {
	doc, err := parseDocument(input)
	if err != nil {
		return nil, analysis.NewAnalysisError("parse document", err)
	}

	maxScripts := cfg.ParamInt("max_scripts", defaultMaxScripts)
	maxStylesheets := cfg.ParamInt("max_stylesheets", defaultMaxStylesheets)

	var findings []analysis.Finding
	manager := recommend.NewManager()

	scripts := doc.Find("script[src]").Length()
	if scripts > maxScripts {
		findings = append(findings, analysis.Finding{
			Name:        "script_count",
			Description: fmt.Sprintf("Page loads %d external scripts (budget %d)", scripts, maxScripts),
			Severity:    analysis.SeverityHigh,
			Remediation: "Bundle or defer scripts to cut request count",
		})
		manager.Add(recommend.NewBuilder("Reduce external script count").
			WithDescription("Each script is a separate request and a potential parser stall; bundling and defer shrink the critical path.").
			WithSeverity("high").
			WithPriority(1).
			WithSteps("Bundle first-party scripts", "Add defer to non-critical scripts", "Drop unused third-party tags").
			WithDifficulty("medium").
			Build())
	}

	blockingScripts := 0
	doc.Find("head script[src]").Each(func(_ int, sel *goquery.Selection) {
		if _, ok := sel.Attr("defer"); ok {
			return
		}
		if _, ok := sel.Attr("async"); ok {
			return
		}
		blockingScripts++
	})
	if blockingScripts > 0 {
		findings = append(findings, analysis.Finding{
			Name:        "blocking_scripts",
			Description: fmt.Sprintf("%d script(s) in <head> block parsing", blockingScripts),
			Severity:    analysis.SeverityMedium,
			Remediation: "Add defer or async to scripts in the document head",
		})
		manager.Add(recommend.NewBuilder("Defer render-blocking scripts").
			WithSeverity("medium").
			WithPriority(2).
			WithCodeExample(`<script src="app.js" defer></script>`).
			WithQuickWin(true).
			WithDifficulty("easy").
			Build())
	}

	stylesheets := doc.Find(`link[rel="stylesheet"]`).Length()
	if stylesheets > maxStylesheets {
		findings = append(findings, analysis.Finding{
			Name:        "stylesheet_count",
			Description: fmt.Sprintf("Page loads %d stylesheets (budget %d)", stylesheets, maxStylesheets),
			Severity:    analysis.SeverityMedium,
			Remediation: "Combine stylesheets and inline critical CSS",
		})
	}

	unsizedImages := 0
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		_, hasWidth := sel.Attr("width")
		_, hasHeight := sel.Attr("height")
		if !hasWidth || !hasHeight {
			unsizedImages++
		}
	})
	if unsizedImages > 0 {
		findings = append(findings, analysis.Finding{
			Name:        "unsized_images",
			Description: fmt.Sprintf("%d image(s) lack width/height attributes", unsizedImages),
			Severity:    analysis.SeverityLow,
			Remediation: "Set width and height on images to reserve layout space",
		})
		manager.Add(recommend.NewBuilder("Size images explicitly").
			WithSeverity("low").
			WithPriority(3).
			WithCodeExample(`<img src="hero.jpg" width="1200" height="600" alt="…">`).
			WithQuickWin(true).
			WithDifficulty("easy").
			WithResourceLink("Cumulative Layout Shift", "https://web.dev/articles/cls").
			Build())
	}

	result := analysis.NewResult(TypePerformance, performanceVersion)
	result.Data = map[string]any{
		"external_scripts": scripts,
		"blocking_scripts": blockingScripts,
		"stylesheets":      stylesheets,
		"unsized_images":   unsizedImages,
		"finding_count":    len(findings),
	}
	result.Score = scoring.Score(findings, a.policy)
	applyFindings(result, findings)
	result.Enhanced = manager.All()
	return result, nil
}
