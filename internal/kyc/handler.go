package kyc

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kyc-backend/internal/shared/server/middleware"
	"kyc-backend/internal/shared/server/respond"
)

// Handler exposes the pipeline and the admin review surface over HTTP.
type Handler struct {
	Svc        *Service
	Normalizer *Normalizer
	Summarizer *Summarizer
	Assistant  *Assistant
}

// RegisterRoutes attaches KYC routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/kyc/process", h.process)
	rg.GET("/kyc/usernames", h.usernames)
	rg.GET("/kyc/users/:username/records", h.records)
	rg.GET("/kyc/records/:id/normalized", h.normalized)
	rg.GET("/kyc/records/:id/summary", h.summary)
	rg.POST("/kyc/chat", h.chat)
}

// process runs extraction over the caller's selected documents.
func (h *Handler) process(c *gin.Context) {
	username := middleware.UsernameFromContext(c)

	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.DocumentIDs) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documentIds is required", nil)
		return
	}

	results, err := h.Svc.ProcessDocuments(c.Request.Context(), username, req.DocumentIDs)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process documents", nil)
		return
	}
	respond.OK(c, gin.H{"results": results})
}

// usernames lists users with stored KYC data. Admin only.
func (h *Handler) usernames(c *gin.Context) {
	if !middleware.IsAdminFromContext(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
		return
	}

	names, err := h.Svc.Repo.ListUsernames(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list usernames", nil)
		return
	}
	respond.OK(c, gin.H{"usernames": names})
}

// records lists a user's KYC records with duplicate texts collapsed for
// display. Admin only.
func (h *Handler) records(c *gin.Context) {
	if !middleware.IsAdminFromContext(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
		return
	}

	recs, err := h.Svc.Repo.ListByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list records", nil)
		return
	}

	recs = dedupeByContent(recs)
	out := make([]RecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRecordResponse(rec))
	}
	respond.OK(c, gin.H{"records": out})
}

// normalized runs field normalization on a record's stored raw text. The
// result is computed fresh per request, never written back.
func (h *Handler) normalized(c *gin.Context) {
	if !middleware.IsAdminFromContext(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
		return
	}

	rec, err := h.Svc.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.recordError(c, err)
		return
	}

	record, err := h.Normalizer.Normalize(c.Request.Context(), rec.ExtractedData)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "llm_error", "language model call failed", nil)
		return
	}
	respond.OK(c, gin.H{"recordId": rec.ID, "normalized": record})
}

// summary produces a narrative summary of a record's stored raw text.
func (h *Handler) summary(c *gin.Context) {
	if !middleware.IsAdminFromContext(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
		return
	}

	rec, err := h.Svc.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.recordError(c, err)
		return
	}

	text, err := h.Summarizer.Summarize(c.Request.Context(), rec.ExtractedData)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "llm_error", "language model call failed", nil)
		return
	}
	respond.OK(c, gin.H{"recordId": rec.ID, "summary": text})
}

// chat answers a question grounded on a user's extracted KYC texts.
func (h *Handler) chat(c *gin.Context) {
	if !middleware.IsAdminFromContext(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
		return
	}

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Query == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "username and query are required", nil)
		return
	}

	answer, err := h.Assistant.Answer(c.Request.Context(), req.Username, req.Query)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no KYC data for user", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusBadGateway, "llm_error", "language model call failed", nil)
		}
		return
	}
	respond.OK(c, gin.H{"answer": answer})
}

func (h *Handler) recordError(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "not_found", "kyc record not found", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load record", nil)
}
