// internal/executor/executor.go
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/geneql/internal/domain"
	"github.com/dangerclosesec/geneql/query/eval"
	"github.com/dangerclosesec/geneql/query/model"
	"github.com/dangerclosesec/geneql/store"
)

// QueryResult is the outcome of one query. Data is nil on failure.
type QueryResult struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
	Err     error       `json:"-"`
}

// StoreError wraps a store failure with the operation that was attempted
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Event describes a finished execution
type Event struct {
	Query    model.Query
	Result   QueryResult
	Duration time.Duration
}

// AuditHook receives every finished execution
type AuditHook func(ctx context.Context, ev Event)

// Executor applies parsed queries to a GraphStore
type Executor struct {
	store  store.GraphStore
	logger *slog.Logger
	audit  AuditHook
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) func(*Executor) {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithAuditHook sets a hook called after every execution
func WithAuditHook(hook AuditHook) func(*Executor) {
	return func(e *Executor) {
		e.audit = hook
	}
}

// New creates an Executor over s
func New(s store.GraphStore, options ...func(*Executor)) *Executor {
	e := &Executor{store: s, logger: slog.Default()}
	for _, o := range options {
		o(e)
	}
	return e
}

// Execute runs q against the store. It never panics; collaborator panics
// become a StoreError result.
func (e *Executor) Execute(ctx context.Context, q model.Query) (res QueryResult) {
	if q == nil {
		return Failure(fmt.Errorf("%w: nil query", domain.ErrInvalidInput))
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = Failure(&StoreError{Op: string(q.Type()), Err: fmt.Errorf("panic: %v", r)})
		}
		e.finish(ctx, q, res, time.Since(start))
	}()

	data, err := e.dispatch(ctx, q)
	if err != nil {
		return Failure(err)
	}
	return QueryResult{Success: true, Data: data}
}

// Failure builds an unsuccessful result from err
func Failure(err error) QueryResult {
	return QueryResult{Success: false, Error: err.Error(), Err: err}
}

func (e *Executor) dispatch(ctx context.Context, q model.Query) (interface{}, error) {
	op := string(q.Type())

	switch q := q.(type) {
	case *model.Get:
		records, err := e.store.GetEntities(ctx, q.Entity)
		if err != nil {
			return nil, wrap(op, err)
		}
		match := eval.Compile(q.Conditions)
		out := make([]model.Record, 0, len(records))
		for _, r := range records {
			ok, err := match(r)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, r)
			}
		}
		return out, nil

	case *model.Check:
		ok, err := e.store.HasPermission(ctx, q.UserID, q.ResourceID, q.Permission)
		if err != nil {
			return nil, wrap(op, err)
		}
		return ok, nil

	case *model.Grant:
		if err := e.store.Grant(ctx, q.UserID, q.ResourceID, q.Permission); err != nil {
			return nil, wrap(op, err)
		}
		return nil, nil

	case *model.Revoke:
		if err := e.store.Revoke(ctx, q.UserID, q.ResourceID, q.Permission); err != nil {
			return nil, wrap(op, err)
		}
		return nil, nil

	case *model.Update:
		n, err := e.store.ApplyUpdate(ctx, q.Entity, eval.Compile(q.Conditions), q.Changes)
		if err != nil {
			return nil, wrap(op, err)
		}
		return n, nil

	case *model.Delete:
		n, err := e.store.ApplyDelete(ctx, q.Entity, eval.Compile(q.Conditions))
		if err != nil {
			return nil, wrap(op, err)
		}
		return n, nil

	default:
		return nil, fmt.Errorf("%w: unsupported query type %T", domain.ErrInvalidInput, q)
	}
}

// wrap tags store failures with op. Field and not-found errors keep their kind.
func wrap(op string, err error) error {
	var fieldErr *eval.FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr
	}
	var nf *store.NotFoundError
	if errors.As(err, &nf) {
		return nf
	}
	return &StoreError{Op: op, Err: err}
}

func (e *Executor) finish(ctx context.Context, q model.Query, res QueryResult, d time.Duration) {
	attrs := []any{
		"query_type", string(q.Type()),
		"duration", d,
		"success", res.Success,
	}
	if !res.Success {
		attrs = append(attrs, "error", res.Error)
	}
	e.logger.DebugContext(ctx, "query executed", attrs...)

	if e.audit != nil {
		e.runAudit(ctx, Event{Query: q, Result: res, Duration: d})
	}
}

// runAudit calls the audit hook. A panicking hook is logged and does not
// affect the result.
func (e *Executor) runAudit(ctx context.Context, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.ErrorContext(ctx, "audit hook panicked",
				"query_type", string(ev.Query.Type()),
				"panic", fmt.Sprint(r),
			)
		}
	}()
	e.audit(ctx, ev)
}
