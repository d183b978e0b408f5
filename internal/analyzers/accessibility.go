package analyzers

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"siteaudit-backend/internal/analysis"
	"siteaudit-backend/internal/analysis/recommend"
	"siteaudit-backend/internal/pipeline"
	"siteaudit-backend/internal/scoring"
)

const (
	TypeAccessibility    = "accessibility"
	accessibilityVersion = "1.1.0"
)

// Accessibility checks basic WCAG hygiene: alternative text, document
// language, form labeling, and control names.
type Accessibility struct {
	runner *pipeline.Runner
	policy scoring.Policy
}

// NewAccessibility wires the shared pipeline runner and scoring policy.
func NewAccessibility(runner *pipeline.Runner, policy scoring.Policy) *Accessibility {
	return &Accessibility{runner: runner, policy: policy}
}

func (a *Accessibility) Type() string { return TypeAccessibility }

// Analyze runs the accessibility rule set through the pipeline.
func (a *Accessibility) Analyze(ctx context.Context, input any, cfg analysis.Config) (*analysis.Result, error) {
	return a.runner.Run(ctx, TypeAccessibility, input, cfg, a.compute)
}

func (a *Accessibility) compute(ctx context.Context, input any, cfg analysis.Config) (*analysis.Result, error) {
	doc, err := parseDocument(input)
	if err != nil {
		return nil, analysis.NewAnalysisError("parse document", err)
	}

	var findings []analysis.Finding
	manager := recommend.NewManager()

	missingAlt := 0
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if _, ok := sel.Attr("alt"); !ok {
			missingAlt++
		}
	})
	if missingAlt > 0 {
		findings = append(findings, analysis.Finding{
			Name:        "img_missing_alt",
			Description: fmt.Sprintf("%d image(s) have no alt attribute", missingAlt),
			Severity:    analysis.SeverityHigh,
			Remediation: "Add alt text to every informative image; use alt=\"\" for decorative ones",
		})
		manager.Add(recommend.NewBuilder("Add alternative text to images").
			WithDescription("Screen readers announce the file name when alt text is missing, which is unusable.").
			WithSeverity("high").
			WithPriority(1).
			WithCodeExample(`<img src="chart.png" alt="Quarterly revenue by region">`).
			WithSteps("Audit each <img> for an alt attribute", "Describe informative images", "Mark decorative images with empty alt").
			WithQuickWin(true).
			WithDifficulty("easy").
			WithResourceLink("WAI images tutorial", "https://www.w3.org/WAI/tutorials/images/").
			Build())
	}

	if lang, ok := doc.Find("html").First().Attr("lang"); !ok || strings.TrimSpace(lang) == "" {
		findings = append(findings, analysis.Finding{
			Name:        "missing_lang",
			Description: "The <html> element declares no lang attribute",
			Severity:    analysis.SeverityMedium,
			Remediation: "Declare the document language on the <html> element",
		})
		manager.Add(recommend.NewBuilder("Declare the document language").
			WithSeverity("medium").
			WithPriority(2).
			WithCodeExample(`<html lang="en">`).
			WithQuickWin(true).
			WithDifficulty("easy").
			Build())
	}

	unlabeled := 0
	doc.Find("input").Each(func(_ int, sel *goquery.Selection) {
		inputType, _ := sel.Attr("type")
		switch strings.ToLower(inputType) {
		case "hidden", "submit", "button", "image", "reset":
			return
		}
		if _, ok := sel.Attr("aria-label"); ok {
			return
		}
		if _, ok := sel.Attr("aria-labelledby"); ok {
			return
		}
		if id, ok := sel.Attr("id"); ok && id != "" {
			if doc.Find(fmt.Sprintf(`label[for=%q]`, id)).Length() > 0 {
				return
			}
		}
		unlabeled++
	})
	if unlabeled > 0 {
		findings = append(findings, analysis.Finding{
			Name:        "unlabeled_inputs",
			Description: fmt.Sprintf("%d form input(s) have no associated label", unlabeled),
			Severity:    analysis.SeverityHigh,
			Remediation: "Associate every input with a <label for> or an aria-label",
		})
		manager.Add(recommend.NewBuilder("Label form inputs").
			WithSeverity("high").
			WithPriority(1).
			WithCodeExample("<label for=\"email\">Email</label>\n<input id=\"email\" type=\"email\">").
			WithDifficulty("medium").
			Build())
	}

	emptyButtons := 0
	doc.Find("button").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) != "" {
			return
		}
		if _, ok := sel.Attr("aria-label"); ok {
			return
		}
		emptyButtons++
	})
	if emptyButtons > 0 {
		findings = append(findings, analysis.Finding{
			Name:        "empty_buttons",
			Description: fmt.Sprintf("%d button(s) have no accessible name", emptyButtons),
			Severity:    analysis.SeverityMedium,
			Remediation: "Give every button visible text or an aria-label",
		})
	}

	result := analysis.NewResult(TypeAccessibility, accessibilityVersion)
	result.Data = map[string]any{
		"images_missing_alt": missingAlt,
		"unlabeled_inputs":   unlabeled,
		"empty_buttons":      emptyButtons,
		"finding_count":      len(findings),
	}
	result.Score = scoring.Score(findings, a.policy)
	applyFindings(result, findings)
	result.Enhanced = manager.All()
	return result, nil
}
