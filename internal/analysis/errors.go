package analysis

import "fmt"

// InvalidInputError reports that analyzer input was absent or empty.
// It is raised before any cache interaction.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid analysis input: " + e.Reason
}

// AnalysisError wraps a domain compute failure with a readable message.
// It propagates to the caller unchanged.
type AnalysisError struct {
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("analysis failed: %s: %v", e.Message, e.Err)
	}
	return "analysis failed: " + e.Message
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// NewAnalysisError builds an AnalysisError wrapping cause.
func NewAnalysisError(message string, cause error) *AnalysisError {
	return &AnalysisError{Message: message, Err: cause}
}

// CacheError reports a cache backend failure. The pipeline absorbs these
// and proceeds as though on a miss; they never cross the pipeline boundary.
type CacheError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }
