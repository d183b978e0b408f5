package analysis

// ResourceLink points at external documentation for a recommendation.
type ResourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Recommendation is a remediation record attached to an analysis result.
// Instances are built via the recommend package and treated as immutable
// once constructed.
type Recommendation struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Severity      Severity       `json:"severity"`
	Priority      Priority       `json:"priority"`
	CodeExample   string         `json:"code_example,omitempty"`
	Steps         []string       `json:"steps"`
	QuickWin      bool           `json:"quick_win"`
	Impact        string         `json:"impact,omitempty"`
	Difficulty    Difficulty     `json:"difficulty"`
	ResourceLinks []ResourceLink `json:"resource_links"`
}

// ToMap returns the wire representation of the recommendation.
func (r Recommendation) ToMap() map[string]any {
	steps := r.Steps
	if steps == nil {
		steps = []string{}
	}
	links := make([]map[string]string, 0, len(r.ResourceLinks))
	for _, l := range r.ResourceLinks {
		links = append(links, map[string]string{"title": l.Title, "url": l.URL})
	}
	return map[string]any{
		"title":          r.Title,
		"description":    r.Description,
		"severity":       string(r.Severity),
		"priority":       int(r.Priority),
		"code_example":   r.CodeExample,
		"steps":          steps,
		"quick_win":      r.QuickWin,
		"impact":         r.Impact,
		"difficulty":     string(r.Difficulty),
		"resource_links": links,
	}
}
