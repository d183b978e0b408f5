// Package pipeline wraps analyzer compute callbacks with input validation,
// cache lookup/population, and result metadata stamping.
package pipeline

import (
	"context"
	"strings"

	"siteaudit-backend/internal/analysis"
	"siteaudit-backend/internal/cache"
	"siteaudit-backend/internal/shared/metrics"
	"siteaudit-backend/internal/shared/telemetry"
)

// ComputeFunc performs the domain-specific analysis. It is the only place
// domain logic executes; its errors propagate to the caller unchanged.
type ComputeFunc func(ctx context.Context, input any, cfg analysis.Config) (*analysis.Result, error)

// Runner executes the compute-or-fetch contract. It holds no per-invocation
// state and is safe for concurrent use; the cache port is the only shared
// resource.
type Runner struct {
	cache cache.Port
}

// NewRunner wires a cache backend. A nil port disables caching via the
// no-op backend.
func NewRunner(port cache.Port) *Runner {
	if port == nil {
		port = cache.Nop{}
	}
	return &Runner{cache: port}
}

// Run validates input, serves a valid cached result when one exists, and
// otherwise invokes compute and populates the cache. Cache faults are
// logged and treated as misses; a cache outage never fails an analysis.
func (r *Runner) Run(ctx context.Context, analyzerType string, input any, cfg analysis.Config, compute ComputeFunc) (*analysis.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if !cfg.Cache.Enabled {
		return compute(ctx, input, cfg)
	}

	key := DeriveKey(analyzerType, input, cfg)
	bucket := cache.BucketForTTL(cfg.Cache.TTL)

	lookup, err := r.cache.Get(ctx, key, bucket)
	if err != nil {
		telemetry.Error("pipeline.cache_lookup_failed", map[string]any{
			"analyzer": analyzerType,
			"key":      key,
			"error":    err.Error(),
		})
		lookup = cache.Lookup{}
	}
	if lookup.Hit && !lookup.Expired && lookup.Value != nil {
		metrics.IncCacheHit()
		// Never stamp the shared cached instance: a concurrent reader
		// may hold it.
		out := lookup.Value.Clone()
		out.Metadata.Cached = true
		out.Metadata.CacheKey = key
		return out, nil
	}
	metrics.IncCacheMiss()

	result, err := compute(ctx, input, cfg)
	if err != nil {
		return nil, err
	}

	// This execution was a genuine computation; only the key is stamped.
	result.Metadata.CacheKey = key

	// The store must survive caller cancellation so a half-written entry
	// is never left behind.
	storeCtx := context.WithoutCancel(ctx)
	if err := r.cache.Set(storeCtx, key, result, cfg.Cache.TTL, bucket); err != nil {
		telemetry.Error("pipeline.cache_store_failed", map[string]any{
			"analyzer": analyzerType,
			"key":      key,
			"error":    err.Error(),
		})
	}

	return result, nil
}

func validateInput(input any) error {
	if input == nil {
		return &analysis.InvalidInputError{Reason: "input is required"}
	}
	if s, ok := input.(string); ok && strings.TrimSpace(s) == "" {
		return &analysis.InvalidInputError{Reason: "input is empty"}
	}
	return nil
}
