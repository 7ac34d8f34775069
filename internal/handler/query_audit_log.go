package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dangerclosesec/geneql/internal/model"
	"github.com/dangerclosesec/geneql/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogReader serves stored query audit logs
type AuditLogReader interface {
	GetAuditLogs(ctx context.Context, params repository.QueryParams) ([]model.QueryAuditLog, int64, error)
	GetAuditLogByID(ctx context.Context, id uuid.UUID) (*model.QueryAuditLog, error)
}

// QueryAuditLogHandler handles API requests related to query audit logs
type QueryAuditLogHandler struct {
	auditLogService AuditLogReader
}

// NewQueryAuditLogHandler creates a new audit log handler
func NewQueryAuditLogHandler(auditLogService AuditLogReader) *QueryAuditLogHandler {
	return &QueryAuditLogHandler{
		auditLogService: auditLogService,
	}
}

// GetAuditLogs handles requests to retrieve audit logs with filtering
func (h *QueryAuditLogHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := repository.QueryParams{
		QueryType: q.Get("query_type"),
		Subject:   q.Get("subject"),
	}

	if successStr := q.Get("success"); successStr != "" {
		success, err := strconv.ParseBool(successStr)
		if err == nil {
			params.Success = &success
		}
	}

	if startTimeStr := q.Get("start_time"); startTimeStr != "" {
		startTime, err := time.Parse(time.RFC3339, startTimeStr)
		if err == nil {
			params.StartTime = startTime
		}
	}

	if endTimeStr := q.Get("end_time"); endTimeStr != "" {
		endTime, err := time.Parse(time.RFC3339, endTimeStr)
		if err == nil {
			params.EndTime = endTime
		}
	}

	// Pagination
	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err == nil && limit > 0 {
			params.Limit = limit
		}
	}

	if offsetStr := q.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err == nil && offset >= 0 {
			params.Offset = offset
		}
	}

	logs, total, err := h.auditLogService.GetAuditLogs(r.Context(), params)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve audit logs")
		return
	}

	respondWithJSON(w, http.StatusOK, struct {
		Logs  []model.QueryAuditLog `json:"logs"`
		Total int64                 `json:"total"`
	}{
		Logs:  logs,
		Total: total,
	})
}

// GetAuditLogByID handles requests to retrieve a specific audit log by ID
func (h *QueryAuditLogHandler) GetAuditLogByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid audit log ID format")
		return
	}

	log, err := h.auditLogService.GetAuditLogByID(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondWithError(w, http.StatusNotFound, "Audit log not found")
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve audit log")
		return
	}

	respondWithJSON(w, http.StatusOK, log)
}
