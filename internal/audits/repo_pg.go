package audits

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new audit.
func (r *PGRepo) Create(ctx context.Context, audit Audit) error {
	const query = `
INSERT INTO audits (id, url, analyzers, status, results, overall_score, error_message, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	results, err := marshalJSONB(audit.Results)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		audit.ID,
		audit.URL,
		strings.Join(audit.Analyzers, ","),
		audit.Status,
		results,
		audit.OverallScore,
		audit.ErrorMessage,
		audit.CreatedAt,
	)
	return err
}

// GetByID returns an audit by ID.
func (r *PGRepo) GetByID(ctx context.Context, auditID string) (Audit, error) {
	const query = `
SELECT id, url, analyzers, status, results, overall_score, error_message, created_at, started_at, completed_at
FROM audits
WHERE id = $1
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, auditID)
	audit, err := scanAudit(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Audit{}, ErrNotFound
		}
		return Audit{}, err
	}
	return audit, nil
}

// UpdateStatus updates status, results, score and error for an audit.
func (r *PGRepo) UpdateStatus(ctx context.Context, auditID, status string, results map[string]any, overallScore float64, errorMessage string) error {
	const query = `
UPDATE audits
SET status = $1,
    results = COALESCE($2::jsonb, results),
    overall_score = $3,
    error_message = NULLIF($4, ''),
    started_at = CASE
        WHEN $1 = 'processing' AND started_at IS NULL THEN now()
        ELSE started_at
    END,
    completed_at = CASE
        WHEN ($1 = 'completed' OR $1 = 'failed') AND completed_at IS NULL THEN now()
        ELSE completed_at
    END
WHERE id = $5::uuid`

	var payload any
	if results != nil {
		raw, err := json.Marshal(results)
		if err != nil {
			return err
		}
		payload = raw
	}

	res, err := r.DB.ExecContext(ctx, query, status, payload, overallScore, errorMessage, auditID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns audits ordered newest-first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Audit, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
SELECT id, url, analyzers, status, results, overall_score, error_message, created_at, started_at, completed_at
FROM audits
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Audit
	for rows.Next() {
		audit, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, audit)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAudit(row rowScanner) (Audit, error) {
	var a Audit
	var analyzers string
	var results sql.NullString
	var errorMessage sql.NullString
	var startedAt sql.NullTime
	var completedAt sql.NullTime

	if err := row.Scan(
		&a.ID,
		&a.URL,
		&analyzers,
		&a.Status,
		&results,
		&a.OverallScore,
		&errorMessage,
		&a.CreatedAt,
		&startedAt,
		&completedAt,
	); err != nil {
		return Audit{}, err
	}

	if analyzers != "" {
		a.Analyzers = strings.Split(analyzers, ",")
	}
	if results.Valid {
		a.Results = map[string]any{}
		if err := json.Unmarshal([]byte(results.String), &a.Results); err != nil {
			a.Results = nil
		}
	}
	if errorMessage.Valid {
		a.ErrorMessage = errorMessage.String
	}
	if startedAt.Valid {
		a.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}
	return a, nil
}

func marshalJSONB(value map[string]any) ([]byte, error) {
	if value == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(value)
}
