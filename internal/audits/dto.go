package audits

// createRequest is the POST /audits payload.
type createRequest struct {
	URL       string         `json:"url" binding:"required"`
	Analyzers []string       `json:"analyzers"`
	Params    map[string]any `json:"params"`
}

// auditResponse is the wire shape for a single audit.
type auditResponse struct {
	ID           string         `json:"id"`
	URL          string         `json:"url"`
	Analyzers    []string       `json:"analyzers"`
	Status       string         `json:"status"`
	OverallScore float64        `json:"overallScore"`
	Results      map[string]any `json:"results,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	CreatedAt    string         `json:"createdAt"`
}

func toAuditResponse(a Audit, includeResults bool) auditResponse {
	resp := auditResponse{
		ID:           a.ID,
		URL:          a.URL,
		Analyzers:    a.Analyzers,
		Status:       a.Status,
		OverallScore: a.OverallScore,
		ErrorMessage: a.ErrorMessage,
		CreatedAt:    a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if includeResults && a.Status == StatusCompleted {
		resp.Results = a.Results
	}
	return resp
}
