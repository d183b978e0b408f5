package recommend

import (
	"sort"

	"siteaudit-backend/internal/analysis"
)

// Manager holds recommendations in insertion order and serves derived
// views. Every view is computed fresh from a copy; none mutates the
// backing collection.
type Manager struct {
	items []analysis.Recommendation
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{items: []analysis.Recommendation{}}
}

// Add appends recommendations, preserving insertion order.
func (m *Manager) Add(recs ...analysis.Recommendation) {
	m.items = append(m.items, recs...)
}

// Len reports the number of held recommendations.
func (m *Manager) Len() int { return len(m.items) }

// All returns the recommendations in raw insertion order.
func (m *Manager) All() []analysis.Recommendation {
	return append([]analysis.Recommendation(nil), m.items...)
}

// PriorityOrdered returns a stable sort by priority, P0 first.
func (m *Manager) PriorityOrdered() []analysis.Recommendation {
	out := m.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// SeverityOrdered returns a stable sort by severity rank, critical first.
func (m *Manager) SeverityOrdered() []analysis.Recommendation {
	out := m.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Rank() < out[j].Severity.Rank()
	})
	return out
}

// QuickWins filters to quick-win items, preserving relative order.
func (m *Manager) QuickWins() []analysis.Recommendation {
	out := make([]analysis.Recommendation, 0, len(m.items))
	for _, rec := range m.items {
		if rec.QuickWin {
			out = append(out, rec)
		}
	}
	return out
}

// ByDifficulty filters by exact difficulty match, preserving relative order.
func (m *Manager) ByDifficulty(level string) []analysis.Recommendation {
	want := analysis.ParseDifficulty(level)
	out := make([]analysis.Recommendation, 0, len(m.items))
	for _, rec := range m.items {
		if rec.Difficulty == want {
			out = append(out, rec)
		}
	}
	return out
}

// ToList serializes every recommendation to its wire form in raw order.
func (m *Manager) ToList() []map[string]any {
	out := make([]map[string]any, 0, len(m.items))
	for _, rec := range m.items {
		out = append(out, rec.ToMap())
	}
	return out
}
