package analysis

import "time"

// Metadata describes how and when a result was produced. Cached and
// CacheKey are stamped exactly once by the pipeline after the result
// exists, whether it was served from cache or freshly computed.
type Metadata struct {
	Timestamp      time.Time      `json:"timestamp"`
	AnalyzerType   string         `json:"analyzer_type"`
	Version        string         `json:"version"`
	AdditionalInfo map[string]any `json:"additional_info,omitempty"`
	Cached         bool           `json:"cached"`
	CacheKey       string         `json:"cache_key,omitempty"`
}

// Result is the outcome of one analyzer invocation.
type Result struct {
	Data            map[string]any   `json:"data"`
	Metadata        Metadata         `json:"metadata"`
	Score           float64          `json:"score"`
	Issues          []string         `json:"issues"`
	Warnings        []string         `json:"warnings"`
	Recommendations []string         `json:"recommendations"`
	Enhanced        []Recommendation `json:"enhanced_recommendations"`
}

// NewResult returns an empty result stamped with analyzer identity and the
// current time.
func NewResult(analyzerType, version string) *Result {
	return &Result{
		Data: map[string]any{},
		Metadata: Metadata{
			Timestamp:    time.Now().UTC(),
			AnalyzerType: analyzerType,
			Version:      version,
		},
		Issues:          []string{},
		Warnings:        []string{},
		Recommendations: []string{},
		Enhanced:        []Recommendation{},
	}
}

// Clone returns a copy safe to stamp with cache metadata. Metadata and the
// list fields are copied; the Data payload is shared and must be treated as
// read-only by callers holding cached results.
func (r *Result) Clone() *Result {
	out := &Result{
		Data:            r.Data,
		Metadata:        r.Metadata,
		Score:           r.Score,
		Issues:          append([]string(nil), r.Issues...),
		Warnings:        append([]string(nil), r.Warnings...),
		Recommendations: append([]string(nil), r.Recommendations...),
		Enhanced:        append([]Recommendation(nil), r.Enhanced...),
	}
	if out.Metadata.AdditionalInfo != nil {
		info := make(map[string]any, len(r.Metadata.AdditionalInfo))
		for k, v := range r.Metadata.AdditionalInfo {
			info[k] = v
		}
		out.Metadata.AdditionalInfo = info
	}
	return out
}

// ToMap returns the wire representation of the result.
func (r *Result) ToMap() map[string]any {
	enhanced := make([]map[string]any, 0, len(r.Enhanced))
	for _, rec := range r.Enhanced {
		enhanced = append(enhanced, rec.ToMap())
	}
	var info any
	if r.Metadata.AdditionalInfo != nil {
		info = r.Metadata.AdditionalInfo
	}
	var cacheKey any
	if r.Metadata.CacheKey != "" {
		cacheKey = r.Metadata.CacheKey
	}
	return map[string]any{
		"data": r.Data,
		"metadata": map[string]any{
			"timestamp":       r.Metadata.Timestamp.Format(time.RFC3339),
			"analyzer_type":   r.Metadata.AnalyzerType,
			"version":         r.Metadata.Version,
			"additional_info": info,
			"cached":          r.Metadata.Cached,
			"cache_key":       cacheKey,
		},
		"score":                    r.Score,
		"issues":                   emptyIfNil(r.Issues),
		"warnings":                 emptyIfNil(r.Warnings),
		"recommendations":          emptyIfNil(r.Recommendations),
		"enhanced_recommendations": enhanced,
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
