package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"church-reconciliation-backend/internal/models"
	service "church-reconciliation-backend/internal/services/reconciliation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReconciliationHandler struct {
	service *service.Service
}

func NewReconciliationHandler(s *service.Service) *ReconciliationHandler {
	return &ReconciliationHandler{service: s}
}

// tenantScope reads the tenant partition from request headers. Every row in
// the store is scoped by it; requests without a church id are rejected.
func tenantScope(c *gin.Context) (models.TenantScope, bool) {
	churchID, err := uuid.Parse(c.GetHeader("X-Church-Id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid X-Church-Id header"})
		return models.TenantScope{}, false
	}

	scope := models.TenantScope{ChurchID: churchID}
	if raw := c.GetHeader("X-Branch-Id"); raw != "" {
		branchID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid X-Branch-Id header"})
			return models.TenantScope{}, false
		}
		scope.BranchID = &branchID
	}
	return scope, true
}

func (h *ReconciliationHandler) candidateOptions(c *gin.Context) (service.CandidateOptions, bool) {
	var opts service.CandidateOptions

	if raw := c.Query("account_id"); raw != "" {
		accountID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account ID"})
			return opts, false
		}
		opts.AccountID = &accountID
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected yyyy-mm-dd"})
			return opts, false
		}
		opts.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected yyyy-mm-dd"})
			return opts, false
		}
		opts.To = &to
	}

	opts.Search = c.Query("search")
	opts.Direction = c.DefaultQuery("direction", service.FilterAll)
	switch opts.Direction {
	case service.FilterAll, service.FilterCredit, service.FilterDebit:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid direction, expected all, credito or debito"})
		return opts, false
	}

	return opts, true
}

// loadTransaction resolves the optional transaction_id param.
func (h *ReconciliationHandler) loadTransaction(c *gin.Context, scope models.TenantScope, rawID string) (*models.FinancialTransaction, bool) {
	if rawID == "" {
		return nil, true
	}
	txID, err := uuid.Parse(rawID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return nil, false
	}
	tx, err := h.service.TransactionRepo().GetByID(scope, txID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return tx, true
}

// ListCandidates runs the candidate selector for a transaction or an
// explicit account/date-window override.
func (h *ReconciliationHandler) ListCandidates(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}
	opts, ok := h.candidateOptions(c)
	if !ok {
		return
	}
	tx, ok := h.loadTransaction(c, scope, c.Query("transaction_id"))
	if !ok {
		return
	}

	lines, err := h.service.ListCandidates(scope, tx, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch candidate lines"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": lines,
		"count": len(lines),
	})
}

type evaluateRequest struct {
	TransactionID string   `json:"transaction_id"`
	LineIDs       []string `json:"line_ids"`
	AccountID     string   `json:"account_id"`
	Search        string   `json:"search"`
	Direction     string   `json:"direction" binding:"omitempty,direction"`
}

// Evaluate previews the match summary for a selection without writing
// anything: sum of selected lines, transaction value, signed difference and
// the status the commit would produce.
func (h *ReconciliationHandler) Evaluate(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}

	var payload evaluateRequest
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	tx, ok := h.loadTransaction(c, scope, payload.TransactionID)
	if !ok {
		return
	}

	opts := service.CandidateOptions{Search: payload.Search, Direction: payload.Direction}
	if payload.AccountID != "" {
		accountID, err := uuid.Parse(payload.AccountID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account ID"})
			return
		}
		opts.AccountID = &accountID
	}

	lines, err := h.service.ListCandidates(scope, tx, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch candidate lines"})
		return
	}

	selection := service.NewSelection()
	for _, raw := range payload.LineIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line ID"})
			return
		}
		selection.Toggle(id)
	}

	summary := service.Evaluate(lines, selection, tx)
	c.JSON(http.StatusOK, summary)
}

type commitRequest struct {
	TransactionID string   `json:"transaction_id" binding:"required"`
	LineIDs       []string `json:"line_ids" binding:"required"`
}

// Commit persists the reconciliation decision.
func (h *ReconciliationHandler) Commit(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(c.GetHeader("X-User-Id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid X-User-Id header"})
		return
	}

	var payload commitRequest
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	tx, ok := h.loadTransaction(c, scope, payload.TransactionID)
	if !ok {
		return
	}

	lineIDs := make([]uuid.UUID, 0, len(payload.LineIDs))
	for _, raw := range payload.LineIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line ID"})
			return
		}
		lineIDs = append(lineIDs, id)
	}

	result, err := h.service.Commit(c.Request.Context(), service.CommitInput{
		Scope:       scope,
		Transaction: tx,
		LineIDs:     lineIDs,
		UserID:      userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoTransaction),
			errors.Is(err, service.ErrNoTenantScope),
			errors.Is(err, service.ErrEmptySelection):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAllLinesClaimed),
			errors.Is(err, service.ErrCommitInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reconciliation committed", "result": result})
}

// ListPending returns transactions not yet resolved by any batch.
func (h *ReconciliationHandler) ListPending(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	txs, err := h.service.TransactionRepo().ListPending(scope, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": txs, "count": len(txs)})
}

// GetStats returns the reconciliation coverage aggregates.
func (h *ReconciliationHandler) GetStats(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}

	stats, err := h.service.BatchRepo().GetCoverageStats(scope)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetBatch returns one committed batch with its line links.
func (h *ReconciliationHandler) GetBatch(c *gin.Context) {
	scope, ok := tenantScope(c)
	if !ok {
		return
	}

	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid batch ID"})
		return
	}

	batch, err := h.service.BatchRepo().GetByID(scope, batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	links, err := h.service.BatchRepo().GetLinks(batch.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"batch": batch, "links": links})
}
