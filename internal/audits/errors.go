package audits

import "errors"

var (
	ErrNotFound = errors.New("not found")
)

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
