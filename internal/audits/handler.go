package audits

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"siteaudit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the audits service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches audit routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/audits", h.startAudit)
	rg.GET("/audits", h.listAudits)
	rg.GET("/audits/:id", h.getAudit)
	rg.GET("/analyzers", h.listAnalyzers)
}

func (h *Handler) startAudit(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url is required", nil)
		return
	}

	audit, err := h.Svc.Create(c.Request.Context(), req.URL, req.Analyzers, req.Params)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"auditId": audit.ID,
		"status":  audit.Status,
	})
}

func (h *Handler) getAudit(c *gin.Context) {
	auditID := c.Param("id")
	if auditID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "audit id is required", nil)
		return
	}

	audit, err := h.Svc.Get(c.Request.Context(), auditID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "audit not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch audit", nil)
		}
		return
	}

	respond.OK(c, toAuditResponse(audit, true))
}

func (h *Handler) listAudits(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	audits, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list audits", nil)
		return
	}

	out := make([]auditResponse, 0, len(audits))
	for _, audit := range audits {
		out = append(out, toAuditResponse(audit, false))
	}
	respond.OK(c, gin.H{"audits": out})
}

func (h *Handler) listAnalyzers(c *gin.Context) {
	respond.OK(c, gin.H{"analyzers": h.Svc.Analyzers()})
}
