package pipeline

import (
	"strings"
	"testing"
	"time"

	"siteaudit-backend/internal/analysis"
)

type canonicalInput struct {
	url  string
	body string
}

func (c canonicalInput) CanonicalMap() map[string]any {
	return map[string]any{"url": c.url, "body": c.body}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	cfg := analysis.Config{Params: map[string]any{"max_title_length": 70}}

	first := DeriveKey("seo", "<html></html>", cfg)
	second := DeriveKey("seo", "<html></html>", cfg)
	if first != second {
		t.Fatalf("same inputs must derive same key: %s vs %s", first, second)
	}
	if !strings.HasPrefix(first, "seo:") {
		t.Fatalf("key must be prefixed with the analyzer type, got %s", first)
	}
	if len(strings.Split(first, ":")) != 3 {
		t.Fatalf("expected type:content:config key, got %s", first)
	}
}

func TestDeriveKeyNoParamsOmitsConfigHash(t *testing.T) {
	key := DeriveKey("seo", "<html></html>", analysis.Config{})
	if len(strings.Split(key, ":")) != 2 {
		t.Fatalf("expected type:content key without params, got %s", key)
	}
}

func TestDeriveKeyIgnoresCacheControlParams(t *testing.T) {
	base := DeriveKey("seo", "<p>x</p>", analysis.Config{})
	withReserved := DeriveKey("seo", "<p>x</p>", analysis.Config{
		Cache: analysis.CacheConfig{Enabled: true, TTL: 5 * time.Minute},
		Params: map[string]any{
			"cache_enabled":   true,
			"cache_ttl":       600,
			"cache_type":      "memory",
			"cache_namespace": "audits",
		},
	})
	if base != withReserved {
		t.Fatalf("cache-control params must not change the key: %s vs %s", base, withReserved)
	}
}

func TestDeriveKeyChangesWithParams(t *testing.T) {
	a := DeriveKey("seo", "<p>x</p>", analysis.Config{Params: map[string]any{"max_title_length": 60}})
	b := DeriveKey("seo", "<p>x</p>", analysis.Config{Params: map[string]any{"max_title_length": 70}})
	if a == b {
		t.Fatalf("different params must derive different keys: %s", a)
	}
}

func TestDeriveKeyChangesWithContent(t *testing.T) {
	a := DeriveKey("seo", "<p>one</p>", analysis.Config{})
	b := DeriveKey("seo", "<p>two</p>", analysis.Config{})
	if a == b {
		t.Fatalf("different content must derive different keys: %s", a)
	}
}

func TestDeriveKeyCanonicalizer(t *testing.T) {
	first := DeriveKey("seo", canonicalInput{url: "https://a.example", body: "x"}, analysis.Config{})
	second := DeriveKey("seo", canonicalInput{url: "https://a.example", body: "x"}, analysis.Config{})
	if first != second {
		t.Fatalf("canonical inputs must derive stable keys: %s vs %s", first, second)
	}

	other := DeriveKey("seo", canonicalInput{url: "https://b.example", body: "x"}, analysis.Config{})
	if first == other {
		t.Fatalf("distinct canonical inputs must not collide: %s", first)
	}
}
