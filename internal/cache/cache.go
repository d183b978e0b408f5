// Package cache defines the result cache contract consumed by the
// analysis pipeline, plus the backends that satisfy it.
package cache

import (
	"context"
	"time"

	"siteaudit-backend/internal/analysis"
)

// Lookup is the tri-state outcome of a cache read: hit-valid
// (Hit && !Expired), hit-expired (Hit && Expired), or miss (!Hit).
// Only hit-valid carries a usable Value.
type Lookup struct {
	Hit     bool
	Expired bool
	Value   *analysis.Result
}

// Port is the contract the pipeline requires from a cache backend. Both
// calls may fail with a backend-defined error; the pipeline treats any
// such failure as a miss / no-op store. Last-write-wins semantics under
// concurrent writers are acceptable.
type Port interface {
	Get(ctx context.Context, key, bucket string) (Lookup, error)
	Set(ctx context.Context, key string, value *analysis.Result, ttl time.Duration, bucket string) error
}

// TTL band boundaries for bucket selection.
const (
	shortBucketMaxTTL  = 300 * time.Second
	mediumBucketMaxTTL = 3600 * time.Second
	longBucketMaxTTL   = 86400 * time.Second
)

// BucketForTTL maps a TTL onto a named cache partition so a backend can
// apply per-band eviction policy: <=300s short, <=1h medium, <=24h long,
// anything beyond lands in the unnamed default bucket.
func BucketForTTL(ttl time.Duration) string {
	switch {
	case ttl <= shortBucketMaxTTL:
		return "short"
	case ttl <= mediumBucketMaxTTL:
		return "medium"
	case ttl <= longBucketMaxTTL:
		return "long"
	default:
		return ""
	}
}

// Nop is the backend injected when caching is disabled: every read misses
// and every write is discarded.
type Nop struct{}

func (Nop) Get(ctx context.Context, key, bucket string) (Lookup, error) {
	return Lookup{}, nil
}

func (Nop) Set(ctx context.Context, key string, value *analysis.Result, ttl time.Duration, bucket string) error {
	return nil
}
