package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/dangerclosesec/geneql"
	"github.com/dangerclosesec/geneql/internal/domain"
	"github.com/dangerclosesec/geneql/query/eval"
	"github.com/dangerclosesec/geneql/query/model"
	"github.com/dangerclosesec/geneql/query/parser"
	"github.com/dangerclosesec/geneql/store"
)

// Executor runs GeneQL query text
type Executor interface {
	Execute(ctx context.Context, text string) geneql.QueryResult
}

// QueryRequest is the body of POST /api/query
type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

// EdgeRequest is the body of the check, grant and revoke routes
type EdgeRequest struct {
	UserID     string `json:"user_id" validate:"required"`
	ResourceID string `json:"resource_id" validate:"required"`
	Permission string `json:"permission" validate:"required"`
}

// QueryHandler exposes the query surface over HTTP
type QueryHandler struct {
	exec Executor
}

func NewQueryHandler(exec Executor) *QueryHandler {
	return &QueryHandler{exec: exec}
}

// Query runs an arbitrary GeneQL statement
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if errResp := decodeAndValidate(r, &req); errResp != nil {
		respondWithJSON(w, http.StatusBadRequest, errResp)
		return
	}

	h.respond(w, h.exec.Execute(r.Context(), req.Query))
}

// Check runs CHECK for the requested edge
func (h *QueryHandler) Check(w http.ResponseWriter, r *http.Request) {
	h.edge(w, r, func(req EdgeRequest) model.Query {
		return &model.Check{UserID: req.UserID, ResourceID: req.ResourceID, Permission: req.Permission}
	})
}

// Grant runs GRANT for the requested edge
func (h *QueryHandler) Grant(w http.ResponseWriter, r *http.Request) {
	h.edge(w, r, func(req EdgeRequest) model.Query {
		return &model.Grant{UserID: req.UserID, ResourceID: req.ResourceID, Permission: req.Permission}
	})
}

// Revoke runs REVOKE for the requested edge
func (h *QueryHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	h.edge(w, r, func(req EdgeRequest) model.Query {
		return &model.Revoke{UserID: req.UserID, ResourceID: req.ResourceID, Permission: req.Permission}
	})
}

func (h *QueryHandler) edge(w http.ResponseWriter, r *http.Request, build func(EdgeRequest) model.Query) {
	var req EdgeRequest
	if errResp := decodeAndValidate(r, &req); errResp != nil {
		respondWithJSON(w, http.StatusBadRequest, errResp)
		return
	}

	h.respond(w, h.exec.Execute(r.Context(), build(req).String()))
}

func (h *QueryHandler) respond(w http.ResponseWriter, res geneql.QueryResult) {
	status := http.StatusOK
	if !res.Success {
		status = statusFor(res.Err)
	}
	respondWithJSON(w, status, res)
}

// statusFor maps a failed query to an HTTP status
func statusFor(err error) int {
	var (
		lexErr    *parser.LexError
		syntaxErr *parser.SyntaxError
		fieldErr  *eval.FieldError
		notFound  *store.NotFoundError
	)
	switch {
	case errors.As(err, &lexErr), errors.As(err, &syntaxErr), errors.As(err, &fieldErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrImmutableField):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
