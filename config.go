package geneql

import (
	"log/slog"
	"time"

	"github.com/dangerclosesec/geneql/internal/executor"
)

// Event describes a finished execution passed to an AuditHook
type Event = executor.Event

// AuditHook receives every finished execution
type AuditHook = executor.AuditHook

// Option configures a Client
type Option func(*Client)

// WithLogger sets the logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithAuditHook sets a hook called after every executed query.
func WithAuditHook(hook AuditHook) Option {
	return func(c *Client) {
		c.audit = hook
	}
}

// WithTimeout bounds every store call by d.
// Default is no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}
