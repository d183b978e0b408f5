package analysis

import "time"

// CacheConfig controls caching behavior for one analyzer invocation.
// None of these fields participate in cache key derivation: two calls that
// differ only in cache settings analyzed the same thing.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// Config is the per-invocation analyzer configuration. Params carries
// analyzer-specific, score-affecting knobs; unknown keys are ignored by
// policy. Cache settings live in their own struct so they stay out of the
// configuration fingerprint.
type Config struct {
	Cache  CacheConfig
	Params map[string]any
}

// ParamInt reads an integer param, tolerating JSON-decoded float64 values.
func (c Config) ParamInt(key string, def int) int {
	raw, ok := c.Params[key]
	if !ok {
		return def
	}
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// ParamString reads a string param with a default.
func (c Config) ParamString(key, def string) string {
	if v, ok := c.Params[key].(string); ok && v != "" {
		return v
	}
	return def
}
