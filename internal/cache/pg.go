package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"siteaudit-backend/internal/analysis"
)

// PG is a Postgres-backed Port. Entries expire lazily: expired rows are
// reported as hit-expired and replaced on the next store for the same key.
type PG struct {
	DB *sql.DB
}

// Get reads the cached payload for key within bucket.
func (p *PG) Get(ctx context.Context, key, bucket string) (Lookup, error) {
	const query = `
SELECT payload, expires_at
FROM audit_cache
WHERE cache_key = $1 AND bucket = $2
LIMIT 1`

	var payload []byte
	var expiresAt time.Time
	err := p.DB.QueryRowContext(ctx, query, key, bucket).Scan(&payload, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lookup{}, nil
		}
		return Lookup{}, &analysis.CacheError{Op: "get", Key: key, Err: err}
	}

	if time.Now().After(expiresAt) {
		return Lookup{Hit: true, Expired: true}, nil
	}

	var result analysis.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return Lookup{}, &analysis.CacheError{Op: "get", Key: key, Err: fmt.Errorf("decode payload: %w", err)}
	}
	return Lookup{Hit: true, Value: &result}, nil
}

// Set upserts the payload for key; the last concurrent writer wins.
func (p *PG) Set(ctx context.Context, key string, value *analysis.Result, ttl time.Duration, bucket string) error {
	const query = `
INSERT INTO audit_cache (cache_key, bucket, payload, expires_at, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (cache_key, bucket) DO UPDATE
SET payload = EXCLUDED.payload,
    expires_at = EXCLUDED.expires_at,
    updated_at = now()`

	payload, err := json.Marshal(value)
	if err != nil {
		return &analysis.CacheError{Op: "set", Key: key, Err: fmt.Errorf("encode payload: %w", err)}
	}

	if _, err := p.DB.ExecContext(ctx, query, key, bucket, payload, time.Now().Add(ttl)); err != nil {
		return &analysis.CacheError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// PurgeExpired removes rows past their expiry and returns the count.
func (p *PG) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := p.DB.ExecContext(ctx, `DELETE FROM audit_cache WHERE expires_at < now()`)
	if err != nil {
		return 0, &analysis.CacheError{Op: "purge", Err: err}
	}
	n, _ := res.RowsAffected()
	return n, nil
}

var _ Port = (*PG)(nil)
