package audits

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"siteaudit-backend/internal/analysis"
	"siteaudit-backend/internal/registry"
	"siteaudit-backend/internal/shared/metrics"
	"siteaudit-backend/internal/shared/telemetry"
)

const completeTimeout = 60 * time.Second

// PageFetcher retrieves the markup for a URL.
type PageFetcher interface {
	Page(ctx context.Context, pageURL string) (string, error)
}

// Service contains business logic for audits.
type Service struct {
	Repo     Repo
	Registry *registry.Registry
	Fetcher  PageFetcher
	// Cache defaults applied to every analyzer invocation.
	Cache analysis.CacheConfig
}

// Create enqueues a new audit and kicks off asynchronous completion.
// An empty analyzer list means "run everything registered".
func (s *Service) Create(ctx context.Context, pageURL string, analyzerTypes []string, params map[string]any) (Audit, error) {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return Audit{}, errors.New("url is required")
	}

	if len(analyzerTypes) == 0 {
		analyzerTypes = s.Registry.List()
	}
	registered := map[string]bool{}
	for _, name := range s.Registry.List() {
		registered[name] = true
	}
	for _, name := range analyzerTypes {
		if !registered[name] {
			return Audit{}, fmt.Errorf("unknown analyzer %q", name)
		}
	}

	audit := Audit{
		ID:        uuid.NewString(),
		URL:       pageURL,
		Analyzers: analyzerTypes,
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, audit); err != nil {
		return Audit{}, err
	}

	go s.completeAsync(audit, params)

	return audit, nil
}

// Get returns an audit by ID.
func (s *Service) Get(ctx context.Context, auditID string) (Audit, error) {
	if auditID == "" {
		return Audit{}, errors.New("auditID is required")
	}
	return s.Repo.GetByID(ctx, auditID)
}

// List returns audits ordered newest-first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Audit, error) {
	return s.Repo.List(ctx, limit, offset)
}

// Analyzers returns the registered analyzer type names.
func (s *Service) Analyzers() []string {
	return s.Registry.List()
}

// Run fetches the page and executes the requested analyzers synchronously.
// The CLI uses it directly; the HTTP path goes through Create.
func (s *Service) Run(ctx context.Context, pageURL string, analyzerTypes []string, params map[string]any) (map[string]*analysis.Result, error) {
	html, err := s.Fetcher.Page(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	return s.RunHTML(ctx, html, analyzerTypes, params)
}

// RunHTML executes the requested analyzers against already-fetched markup.
func (s *Service) RunHTML(ctx context.Context, html string, analyzerTypes []string, params map[string]any) (map[string]*analysis.Result, error) {
	if len(analyzerTypes) == 0 {
		analyzerTypes = s.Registry.List()
	}
	cfg := analysis.Config{Cache: s.Cache, Params: params}

	out := make(map[string]*analysis.Result, len(analyzerTypes))
	for _, name := range analyzerTypes {
		analyzer, err := s.Registry.Create(name, cfg)
		if err != nil {
			return nil, err
		}
		result, err := analyzer.Analyze(ctx, html, cfg)
		if err != nil {
			return nil, fmt.Errorf("analyzer %s: %w", name, err)
		}
		out[name] = result
	}
	return out, nil
}

func (s *Service) completeAsync(audit Audit, params map[string]any) {
	ctx, cancel := context.WithTimeout(context.Background(), completeTimeout)
	defer cancel()

	metrics.IncAuditStarted()
	started := time.Now()

	if err := s.Repo.UpdateStatus(ctx, audit.ID, StatusProcessing, nil, 0, ""); err != nil {
		telemetry.Error("audit.mark_processing_failed", map[string]any{
			"audit_id": audit.ID,
			"error":    err.Error(),
		})
		return
	}

	results, err := s.Run(ctx, audit.URL, audit.Analyzers, params)
	if err != nil {
		metrics.IncAuditFailed()
		telemetry.Error("audit.failed", map[string]any{
			"audit_id": audit.ID,
			"url":      audit.URL,
			"error":    err.Error(),
		})
		if updateErr := s.Repo.UpdateStatus(ctx, audit.ID, StatusFailed, nil, 0, err.Error()); updateErr != nil {
			telemetry.Error("audit.mark_failed_failed", map[string]any{
				"audit_id": audit.ID,
				"error":    updateErr.Error(),
			})
		}
		return
	}

	payload := make(map[string]any, len(results))
	total := 0.0
	for name, result := range results {
		payload[name] = result.ToMap()
		total += result.Score
	}
	overall := 0.0
	if len(results) > 0 {
		overall = total / float64(len(results))
	}

	if err := s.Repo.UpdateStatus(ctx, audit.ID, StatusCompleted, payload, overall, ""); err != nil {
		telemetry.Error("audit.mark_completed_failed", map[string]any{
			"audit_id": audit.ID,
			"error":    err.Error(),
		})
		return
	}

	metrics.IncAuditCompleted()
	metrics.ObserveAuditDurationMs(float64(time.Since(started).Milliseconds()))

	telemetry.Info("audit.completed", map[string]any{
		"audit_id":  audit.ID,
		"url":       audit.URL,
		"analyzers": audit.Analyzers,
		"score":     overall,
	})
}
