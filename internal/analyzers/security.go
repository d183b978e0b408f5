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
	TypeSecurity    = "security"
	securityVersion = "1.0.2"
)

// Security checks markup-level security hygiene: mixed content, unsafe
// cross-origin links, and forms posting over plain HTTP.
type Security struct {
	runner *pipeline.Runner
	policy scoring.Policy
}

// NewSecurity wires the shared pipeline runner and scoring policy.
func NewSecurity(runner *pipeline.Runner, policy scoring.Policy) *Security {
	return &Security{runner: runner, policy: policy}
}

func (a *Security) Type() string { return TypeSecurity }

// Analyze runs the security rule set through the pipeline.
func (a *Security) Analyze(ctx context.Context, input any, cfg analysis.Config) (*analysis.Result, error) {
	return a.runner.Run(ctx, TypeSecurity, input, cfg, a.compute)
}

func (a *Security) compute(ctx context.Context, input any, cfg analysis.Config) (*analysis.Result, error) {
	doc, err := parseDocument(input)
	if err != nil {
		return nil, analysis.NewAnalysisError("parse document", err)
	}

	var findings []analysis.Finding
	manager := recommend.NewManager()

	mixed := 0
	doc.Find("script[src], img[src], iframe[src], link[href]").Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok {
			src, _ = sel.Attr("href")
		}
		if strings.HasPrefix(strings.ToLower(src), "http://") {
			mixed++
		}
	})
	if mixed > 0 {
		findings = append(findings, analysis.Finding{
			Name:        "mixed_content",
			Description: fmt.Sprintf("%d subresource(s) load over plain HTTP", mixed),
			Severity:    analysis.SeverityCritical,
			Remediation: "Serve all subresources over HTTPS",
		})
		manager.Add(recommend.NewBuilder("Eliminate mixed content").
			WithDescription("Browsers block or downgrade pages that mix HTTP subresources into an HTTPS page, and the plain-HTTP assets can be tampered with in transit.").
			WithSeverity("critical").
			WithPriority(0).
			WithSteps("Switch subresource URLs to https://", "Use protocol-relative or absolute HTTPS URLs in templates").
			WithDifficulty("medium").
			WithResourceLink("Mixed content", "https://developer.mozilla.org/docs/Web/Security/Mixed_content").
			Build())
	}

	unsafeTargets := 0
	doc.Find(`a[target="_blank"]`).Each(func(_ int, sel *goquery.Selection) {
		rel, _ := sel.Attr("rel")
		rel = strings.ToLower(rel)
		if !strings.Contains(rel, "noopener") && !strings.Contains(rel, "noreferrer") {
			unsafeTargets++
		}
	})
	if unsafeTargets > 0 {
		findings = append(findings, analysis.Finding{
			Name:        "target_blank_opener",
			Description: fmt.Sprintf("%d link(s) open a new tab without rel=noopener", unsafeTargets),
			Severity:    analysis.SeverityMedium,
			Remediation: "Add rel=\"noopener\" to target=\"_blank\" links",
		})
		manager.Add(recommend.NewBuilder("Add rel=noopener to external links").
			WithSeverity("medium").
			WithPriority(2).
			WithCodeExample(`<a href="https://example.com" target="_blank" rel="noopener">…</a>`).
			WithQuickWin(true).
			WithDifficulty("easy").
			Build())
	}

	insecureForms := 0
	doc.Find("form[action]").Each(func(_ int, sel *goquery.Selection) {
		action, _ := sel.Attr("action")
		if strings.HasPrefix(strings.ToLower(action), "http://") {
			insecureForms++
		}
	})
	if insecureForms > 0 {
		findings = append(findings, analysis.Finding{
			Name:        "insecure_form_action",
			Description: fmt.Sprintf("%d form(s) submit to a plain HTTP endpoint", insecureForms),
			Severity:    analysis.SeverityCritical,
			Remediation: "Point form actions at HTTPS endpoints",
		})
	}

	inlineHandlers := doc.Find("[onclick], [onload], [onerror], [onmouseover]").Length()
	if inlineHandlers > 0 {
		findings = append(findings, analysis.Finding{
			Name:        "inline_event_handlers",
			Description: fmt.Sprintf("%d element(s) use inline event handlers", inlineHandlers),
			Severity:    analysis.SeverityLow,
			Remediation: "Move inline handlers into scripts so a strict Content-Security-Policy can be deployed",
		})
	}

	result := analysis.NewResult(TypeSecurity, securityVersion)
	result.Data = map[string]any{
		"mixed_content":         mixed,
		"unsafe_target_blank":   unsafeTargets,
		"insecure_form_actions": insecureForms,
		"inline_event_handlers": inlineHandlers,
		"finding_count":         len(findings),
	}
	result.Score = scoring.Score(findings, a.policy)
	applyFindings(result, findings)
	result.Enhanced = manager.All()
	return result, nil
}
