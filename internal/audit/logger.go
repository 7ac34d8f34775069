package audit

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/geneql/internal/executor"
)

// Logger defines the interface for auditing query executions
type Logger interface {
	// LogQuery records a finished query. req is nil outside HTTP.
	LogQuery(ctx context.Context, ev executor.Event, req *http.Request) error
}

// NoOpLogger is a logger that does nothing
type NoOpLogger struct{}

// LogQuery implements Logger.LogQuery
func (l *NoOpLogger) LogQuery(ctx context.Context, ev executor.Event, req *http.Request) error {
	return nil
}

type requestKey struct{}

// WithRequest attaches the HTTP request that triggered the queries run under ctx
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

// RequestFromContext returns the request stored by WithRequest, or nil
func RequestFromContext(ctx context.Context) *http.Request {
	r, _ := ctx.Value(requestKey{}).(*http.Request)
	return r
}

// Hook adapts l to an executor audit hook. Audit failures are logged and
// never change the query result.
func Hook(l Logger, logger *slog.Logger) executor.AuditHook {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, ev executor.Event) {
		if err := l.LogQuery(ctx, ev, RequestFromContext(ctx)); err != nil {
			logger.WarnContext(ctx, "failed to write audit log",
				"query_type", string(ev.Query.Type()),
				"error", err,
			)
		}
	}
}
