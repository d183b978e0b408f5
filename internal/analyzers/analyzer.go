// Package analyzers contains the concrete page analyzers. Each one is a
// thin rule set whose compute callback runs through the shared pipeline;
// the pipeline owns validation, caching, and metadata stamping.
package analyzers

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"siteaudit-backend/internal/analysis"
)

// parseDocument turns analyzer input into a parsed document. Raw HTML
// strings are the common case; an already parsed document or a reader are
// accepted for callers that fetched the page themselves.
func parseDocument(input any) (*goquery.Document, error) {
	switch v := input.(type) {
	case string:
		return goquery.NewDocumentFromReader(strings.NewReader(v))
	case *goquery.Document:
		return v, nil
	case io.Reader:
		return goquery.NewDocumentFromReader(v)
	default:
		return nil, fmt.Errorf("unsupported input type %T", input)
	}
}

// applyFindings folds findings into the flat result lists: critical/high
// descriptions become issues, medium/low become warnings, and every
// non-empty remediation lands in recommendations. Info findings carry
// remediation only.
func applyFindings(result *analysis.Result, findings []analysis.Finding) {
	for _, f := range findings {
		switch f.Severity {
		case analysis.SeverityCritical, analysis.SeverityHigh:
			result.Issues = append(result.Issues, f.Description)
		case analysis.SeverityMedium, analysis.SeverityLow:
			result.Warnings = append(result.Warnings, f.Description)
		}
		if f.Remediation != "" {
			result.Recommendations = append(result.Recommendations, f.Remediation)
		}
	}
}
