package analysis

import (
	"testing"
	"time"
)

func TestCloneIsolatesMutableFields(t *testing.T) {
	original := NewResult("seo", "1.3.0")
	original.Score = 0.8
	original.Issues = []string{"missing title"}
	original.Metadata.AdditionalInfo = map[string]any{"source": "live"}

	clone := original.Clone()
	clone.Metadata.Cached = true
	clone.Metadata.CacheKey = "seo:abc"
	clone.Issues[0] = "mutated"
	clone.Metadata.AdditionalInfo["source"] = "replay"

	if original.Metadata.Cached {
		t.Fatalf("stamping the clone must not mark the original cached")
	}
	if original.Metadata.CacheKey != "" {
		t.Fatalf("original cache key leaked: %s", original.Metadata.CacheKey)
	}
	if original.Issues[0] != "missing title" {
		t.Fatalf("issue slice shared between clone and original")
	}
	if original.Metadata.AdditionalInfo["source"] != "live" {
		t.Fatalf("additional info map shared between clone and original")
	}
	if clone.Score != original.Score {
		t.Fatalf("clone must keep the score")
	}
}

func TestToMapShape(t *testing.T) {
	result := NewResult("seo", "1.3.0")
	result.Metadata.Timestamp = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	result.Metadata.CacheKey = "seo:abc"
	result.Metadata.Cached = true
	result.Score = 0.75
	result.Issues = []string{"missing title"}

	m := result.ToMap()
	meta, ok := m["metadata"].(map[string]any)
	if !ok {
		t.Fatalf("metadata missing from wire form")
	}
	if meta["timestamp"] != "2025-03-01T12:00:00Z" {
		t.Fatalf("timestamp not RFC3339: %v", meta["timestamp"])
	}
	if meta["analyzer_type"] != "seo" || meta["version"] != "1.3.0" {
		t.Fatalf("analyzer identity lost: %v", meta)
	}
	if meta["cached"] != true || meta["cache_key"] != "seo:abc" {
		t.Fatalf("cache metadata lost: %v", meta)
	}
	if m["score"] != 0.75 {
		t.Fatalf("score lost: %v", m["score"])
	}
	issues, ok := m["issues"].([]string)
	if !ok || len(issues) != 1 {
		t.Fatalf("issues lost: %v", m["issues"])
	}
}

func TestToMapNilSlicesBecomeEmpty(t *testing.T) {
	result := &Result{Metadata: Metadata{AnalyzerType: "seo"}}
	m := result.ToMap()

	for _, field := range []string{"issues", "warnings", "recommendations"} {
		values, ok := m[field].([]string)
		if !ok || values == nil {
			t.Fatalf("%s must serialize as an empty list, got %v", field, m[field])
		}
	}
	enhanced, ok := m["enhanced_recommendations"].([]map[string]any)
	if !ok || enhanced == nil {
		t.Fatalf("enhanced recommendations must serialize as an empty list")
	}
}
