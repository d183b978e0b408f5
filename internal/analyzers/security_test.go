package analyzers

import (
	"context"
	"testing"

	"siteaudit-backend/internal/analysis"
	"siteaudit-backend/internal/pipeline"
	"siteaudit-backend/internal/scoring"
)

func runSecurity(t *testing.T, html string) *analysis.Result {
	t.Helper()
	a := NewSecurity(pipeline.NewRunner(nil), securityPolicy())
	result, err := a.Analyze(context.Background(), html, analysis.Config{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return result
}

func securityPolicy() scoring.Policy {
	p := scoring.DefaultPolicy()
	p.FloorOverride = scoring.FloorPolicy{}
	return p
}

func TestSecurityCleanPage(t *testing.T) {
	html := `<html><body>
<script src="https://cdn.example.com/app.js"></script>
<a href="https://other.example" target="_blank" rel="noopener">out</a>
<form action="https://example.com/submit"><input type="submit"></form>
</body></html>`

	result := runSecurity(t, html)
	if result.Score != 1.0 {
		t.Fatalf("clean page must score 1.0, got %f", result.Score)
	}
}

func TestSecurityMixedContentIsCritical(t *testing.T) {
	html := `<html><head>
<link rel="stylesheet" href="http://cdn.example.com/site.css">
</head><body>
<script src="http://cdn.example.com/app.js"></script>
<img src="https://cdn.example.com/safe.png">
</body></html>`

	result := runSecurity(t, html)
	if result.Data["mixed_content"] != 2 {
		t.Fatalf("expected 2 mixed-content resources, got %v", result.Data["mixed_content"])
	}
	if len(result.Issues) == 0 {
		t.Fatalf("mixed content must raise an issue")
	}
	if result.Score > 0.7 {
		t.Fatalf("critical finding must cut the score, got %f", result.Score)
	}
}

func TestSecurityTargetBlankRel(t *testing.T) {
	html := `<html><body>
<a href="https://a.example" target="_blank">unsafe</a>
<a href="https://b.example" target="_blank" rel="noreferrer">safe</a>
</body></html>`

	result := runSecurity(t, html)
	if result.Data["unsafe_target_blank"] != 1 {
		t.Fatalf("expected 1 unsafe target=_blank link, got %v", result.Data["unsafe_target_blank"])
	}
}

func TestSecurityInsecureFormAction(t *testing.T) {
	html := `<html><body>
<form action="http://example.com/login"><input type="password"></form>
</body></html>`

	result := runSecurity(t, html)
	if result.Data["insecure_form_actions"] != 1 {
		t.Fatalf("expected 1 insecure form, got %v", result.Data["insecure_form_actions"])
	}
	if len(result.Issues) == 0 {
		t.Fatalf("insecure form must raise an issue")
	}
}

func TestSecurityInlineHandlers(t *testing.T) {
	html := `<html><body>
<div onclick="doThing()">click</div>
<img src="https://a.example/x.png" onerror="report()">
</body></html>`

	result := runSecurity(t, html)
	if result.Data["inline_event_handlers"] != 2 {
		t.Fatalf("expected 2 inline handlers, got %v", result.Data["inline_event_handlers"])
	}
	if len(result.Warnings) == 0 {
		t.Fatalf("inline handlers must warn")
	}
}
