package analysis

// Finding is a single detected issue produced by an analyzer rule check.
type Finding struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Severity    Severity       `json:"severity"`
	Remediation string         `json:"remediation"`
	Details     map[string]any `json:"details,omitempty"`
}
