package audits

import "time"

// Audit represents one page audit job: a URL run through one or more
// analyzers.
type Audit struct {
	ID           string           `json:"id"`
	URL          string           `json:"url"`
	Analyzers    []string         `json:"analyzers"`
	Status       string           `json:"status"`
	Results      map[string]any   `json:"results,omitempty"`
	OverallScore float64          `json:"overallScore"`
	ErrorMessage string           `json:"errorMessage,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	StartedAt    *time.Time       `json:"startedAt,omitempty"`
	CompletedAt  *time.Time       `json:"completedAt,omitempty"`
}
