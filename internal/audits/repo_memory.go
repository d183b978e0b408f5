package audits

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores audits in memory and is safe for concurrent use.
// It backs dev mode when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Audit
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Audit)}
}

// Create stores the audit.
func (r *MemoryRepo) Create(ctx context.Context, audit Audit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[audit.ID] = audit
	return nil
}

// GetByID returns an audit by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, auditID string) (Audit, error) {
	if err := ctx.Err(); err != nil {
		return Audit{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	audit, ok := r.byID[auditID]
	if !ok {
		return Audit{}, ErrNotFound
	}
	return audit, nil
}

// UpdateStatus updates status, results and score for an existing audit.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, auditID, status string, results map[string]any, overallScore float64, errorMessage string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	audit, ok := r.byID[auditID]
	if !ok {
		return ErrNotFound
	}
	audit.Status = status
	if results != nil {
		audit.Results = results
	}
	audit.OverallScore = overallScore
	audit.ErrorMessage = errorMessage
	now := time.Now().UTC()
	if status == StatusProcessing && audit.StartedAt == nil {
		audit.StartedAt = &now
	}
	if (status == StatusCompleted || status == StatusFailed) && audit.CompletedAt == nil {
		audit.CompletedAt = &now
	}
	r.byID[auditID] = audit
	return nil
}

// List returns audits ordered newest-first.
func (r *MemoryRepo) List(ctx context.Context, limit, offset int) ([]Audit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Audit, 0, len(r.byID))
	for _, audit := range r.byID {
		all = append(all, audit)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []Audit{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

var _ Repo = (*MemoryRepo)(nil)
