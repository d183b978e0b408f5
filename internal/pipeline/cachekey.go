package pipeline

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"siteaudit-backend/internal/analysis"
)

// Canonicalizer lets a non-string input expose a canonical record form for
// fingerprinting.
type Canonicalizer interface {
	CanonicalMap() map[string]any
}

// Cache-control params are not part of "what was analyzed" and never reach
// the configuration fingerprint, even when a caller stuffs them into Params.
var reservedCacheParams = map[string]struct{}{
	"cache_enabled":   {},
	"cache_ttl":       {},
	"cache_type":      {},
	"cache_namespace": {},
}

// DeriveKey builds the deterministic cache key for one invocation:
// "{type}:{contentHash}" or "{type}:{contentHash}:{configHash8}" when any
// score-affecting params are set.
func DeriveKey(analyzerType string, input any, cfg analysis.Config) string {
	content := contentFingerprint(input)
	configHash := configFingerprint(cfg.Params)
	if configHash == "" {
		return analyzerType + ":" + content
	}
	return analyzerType + ":" + content + ":" + configHash
}

// contentFingerprint hashes the input, trying in order: raw text, the
// canonical record form, then the value's string representation.
func contentFingerprint(input any) string {
	switch v := input.(type) {
	case string:
		return md5hex([]byte(v))
	case Canonicalizer:
		if raw, err := json.Marshal(v.CanonicalMap()); err == nil {
			return md5hex(raw)
		}
		return md5hex([]byte(fmt.Sprintf("%v", input)))
	default:
		return md5hex([]byte(fmt.Sprintf("%v", input)))
	}
}

// configFingerprint hashes the cache-control-filtered params and keeps the
// first 8 hex characters. An empty filtered map yields no fingerprint, so
// param-free calls share the shorter two-part key.
func configFingerprint(params map[string]any) string {
	filtered := make(map[string]any, len(params))
	for key, value := range params {
		if _, reserved := reservedCacheParams[key]; reserved {
			continue
		}
		filtered[key] = value
	}
	if len(filtered) == 0 {
		return ""
	}
	raw, err := json.Marshal(filtered)
	if err != nil {
		return ""
	}
	return md5hex(raw)[:8]
}

func md5hex(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
