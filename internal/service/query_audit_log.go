package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dangerclosesec/geneql/internal/audit"
	"github.com/dangerclosesec/geneql/internal/auth"
	"github.com/dangerclosesec/geneql/internal/executor"
	"github.com/dangerclosesec/geneql/internal/model"
	"github.com/dangerclosesec/geneql/internal/repository"
	querymodel "github.com/dangerclosesec/geneql/query/model"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Ensure QueryAuditLogService implements the audit.Logger interface
var _ audit.Logger = (*QueryAuditLogService)(nil)

// QueryAuditLogService persists query executions and serves them back
type QueryAuditLogService struct {
	repo repository.QueryAuditLogRepositoryIface
}

// NewQueryAuditLogService creates a new QueryAuditLogService
func NewQueryAuditLogService(repo repository.QueryAuditLogRepositoryIface) *QueryAuditLogService {
	return &QueryAuditLogService{
		repo: repo,
	}
}

// LogQuery stores one finished query execution
func (s *QueryAuditLogService) LogQuery(ctx context.Context, ev executor.Event, req *http.Request) error {
	log := &model.QueryAuditLog{
		QueryType:  string(ev.Query.Type()),
		Query:      ev.Query.String(),
		Success:    ev.Result.Success,
		Error:      ev.Result.Error,
		DurationMS: ev.Duration.Milliseconds(),
		Context:    queryContext(ev.Query),
		Timestamp:  time.Now().UTC(),
	}

	switch data := ev.Result.Data.(type) {
	case bool:
		log.Allowed = &data
	case int:
		log.Affected = &data
	case []querymodel.Record:
		n := len(data)
		log.Affected = &n
	}

	if p, ok := auth.PrincipalFromContext(ctx); ok {
		log.Subject = p.ID
	}

	if req != nil {
		log.RequestID = middleware.GetReqID(ctx)
		log.ClientIP = req.RemoteAddr
		log.UserAgent = req.UserAgent()
	}

	return s.repo.Create(ctx, log)
}

// queryContext extracts the addressed entity or edge of q
func queryContext(q querymodel.Query) model.JSONMap {
	switch q := q.(type) {
	case *querymodel.Get:
		return model.JSONMap{"entity": q.Entity}
	case *querymodel.Update:
		return model.JSONMap{"entity": q.Entity}
	case *querymodel.Delete:
		return model.JSONMap{"entity": q.Entity}
	case *querymodel.Check:
		return edgeContext(q.UserID, q.ResourceID, q.Permission)
	case *querymodel.Grant:
		return edgeContext(q.UserID, q.ResourceID, q.Permission)
	case *querymodel.Revoke:
		return edgeContext(q.UserID, q.ResourceID, q.Permission)
	}
	return nil
}

func edgeContext(userID, resourceID, permission string) model.JSONMap {
	return model.JSONMap{
		"user_id":     userID,
		"resource_id": resourceID,
		"permission":  permission,
	}
}

// GetAuditLogs retrieves audit logs based on query parameters
func (s *QueryAuditLogService) GetAuditLogs(
	ctx context.Context,
	params repository.QueryParams,
) ([]model.QueryAuditLog, int64, error) {
	return s.repo.Query(ctx, params)
}

// GetAuditLogByID retrieves an audit log by ID
func (s *QueryAuditLogService) GetAuditLogByID(
	ctx context.Context,
	id uuid.UUID,
) (*model.QueryAuditLog, error) {
	log, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit log by ID: %w", err)
	}

	return log, nil
}
