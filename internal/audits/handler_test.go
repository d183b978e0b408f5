package audits

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := newTestService(t, stubFetcher{html: testPage})
	handler := NewHandler(svc)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router, svc
}

func TestStartAuditAccepted(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"url": "https://example.com/page", "analyzers": ["seo"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/audits", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		AuditID string `json:"auditId"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.AuditID == "" {
		t.Fatalf("response must carry the audit id")
	}
	if payload.Status != StatusQueued {
		t.Fatalf("expected queued, got %s", payload.Status)
	}
}

func TestStartAuditMissingURL(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/audits", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestStartAuditUnknownAnalyzer(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"url": "https://example.com", "analyzers": ["made-up"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/audits", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetAuditLifecycle(t *testing.T) {
	router, svc := newTestRouter(t)

	audit, err := svc.Create(context.Background(), "https://example.com/page", []string{"seo"}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	waitForTerminalStatus(t, svc, audit.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audits/"+audit.ID, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload auditResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", payload.Status)
	}
	if payload.Results == nil {
		t.Fatalf("completed audit response must include results")
	}
}

func TestGetAuditNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audits/does-not-exist", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestListAuditsOmitsResults(t *testing.T) {
	router, svc := newTestRouter(t)

	audit, err := svc.Create(context.Background(), "https://example.com/page", []string{"seo"}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	waitForTerminalStatus(t, svc, audit.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/audits?limit=10", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload struct {
		Audits []auditResponse `json:"audits"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Audits) != 1 {
		t.Fatalf("expected 1 audit, got %d", len(payload.Audits))
	}
	if payload.Audits[0].Results != nil {
		t.Fatalf("list view must omit result payloads")
	}
}

func TestListAnalyzers(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyzers", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var payload struct {
		Analyzers []string `json:"analyzers"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Analyzers) != 4 {
		t.Fatalf("expected 4 analyzers, got %v", payload.Analyzers)
	}
}
