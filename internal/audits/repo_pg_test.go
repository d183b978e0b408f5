package audits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	audit := Audit{
		ID:        "audit-1",
		URL:       "https://example.com",
		Analyzers: []string{"seo", "security"},
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO audits").
		WithArgs(
			audit.ID,
			audit.URL,
			"seo,security",
			audit.Status,
			sqlmock.AnyArg(), // results jsonb
			0.0,
			"",
			audit.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), audit); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Now().UTC()
	started := created.Add(time.Second)
	completed := created.Add(2 * time.Second)

	rows := sqlmock.NewRows([]string{
		"id", "url", "analyzers", "status", "results", "overall_score",
		"error_message", "created_at", "started_at", "completed_at",
	}).AddRow(
		"audit-1", "https://example.com", "seo,security", StatusCompleted,
		`{"seo": {"score": 0.9}}`, 0.9, nil, created, started, completed,
	)
	mock.ExpectQuery("SELECT id, url, analyzers").
		WithArgs("audit-1").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	audit, err := repo.GetByID(context.Background(), "audit-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(audit.Analyzers) != 2 || audit.Analyzers[0] != "seo" {
		t.Fatalf("analyzers not split: %v", audit.Analyzers)
	}
	if audit.Results == nil {
		t.Fatalf("results payload not decoded")
	}
	if audit.StartedAt == nil || audit.CompletedAt == nil {
		t.Fatalf("lifecycle timestamps not scanned")
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT id, url, analyzers").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "url", "analyzers", "status", "results", "overall_score",
			"error_message", "created_at", "started_at", "completed_at",
		}))

	repo := &PGRepo{DB: db}
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE audits").
		WithArgs(StatusCompleted, sqlmock.AnyArg(), 0.85, "", "audit-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	results := map[string]any{"seo": map[string]any{"score": 0.85}}
	if err := repo.UpdateStatus(context.Background(), "audit-1", StatusCompleted, results, 0.85, ""); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
}

func TestPGRepoUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE audits").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	if err := repo.UpdateStatus(context.Background(), "missing", StatusFailed, nil, 0, "boom"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	rows := sqlmock.NewRows([]string{
		"id", "url", "analyzers", "status", "results", "overall_score",
		"error_message", "created_at", "started_at", "completed_at",
	}).
		AddRow("a2", "https://two.example", "", StatusQueued, nil, 0.0, nil, time.Now().UTC(), nil, nil).
		AddRow("a1", "https://one.example", "seo", StatusCompleted, `{}`, 1.0, nil, time.Now().UTC().Add(-time.Hour), nil, nil)

	mock.ExpectQuery("SELECT id, url, analyzers").
		WithArgs(20, 0).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	audits, err := repo.List(context.Background(), 0, -1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(audits) != 2 || audits[0].ID != "a2" {
		t.Fatalf("unexpected list: %+v", audits)
	}
	if audits[0].Analyzers != nil {
		t.Fatalf("empty analyzer column must scan as nil slice, got %v", audits[0].Analyzers)
	}
}
