// Package geneql runs GeneQL queries against an ontology store.
//
//	client := geneql.New(memory.New())
//	res := client.Execute(ctx, "CHECK alice read ON doc1")
package geneql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/geneql/internal/domain"
	"github.com/dangerclosesec/geneql/internal/executor"
	"github.com/dangerclosesec/geneql/query/model"
	"github.com/dangerclosesec/geneql/query/parser"
	"github.com/dangerclosesec/geneql/store"
)

// QueryResult is the outcome of one query
type QueryResult = executor.QueryResult

// StoreError wraps a store failure with the operation that was attempted
type StoreError = executor.StoreError

var (
	ErrInvalidInput = domain.ErrInvalidInput
	ErrUserNotFound = domain.ErrUserNotFound
)

// Client parses and executes query text
type Client struct {
	exec    *executor.Executor
	logger  *slog.Logger
	audit   AuditHook
	timeout time.Duration
}

// New creates a Client over s
func New(s store.GraphStore, options ...Option) *Client {
	c := &Client{logger: slog.Default()}
	for _, o := range options {
		o(c)
	}

	opts := []func(*executor.Executor){executor.WithLogger(c.logger)}
	if c.audit != nil {
		opts = append(opts, executor.WithAuditHook(c.audit))
	}
	c.exec = executor.New(store.WithTimeout(s, c.timeout), opts...)

	return c
}

// Execute parses text and runs it. Failures, including syntax errors, are
// reported in the result rather than returned.
func (c *Client) Execute(ctx context.Context, text string) QueryResult {
	q, err := parser.Parse(text)
	if err != nil {
		c.logger.DebugContext(ctx, "query rejected", "error", err)
		return executor.Failure(err)
	}
	return c.exec.Execute(ctx, q)
}

// UserCriteria selects a user. Empty fields are ignored.
type UserCriteria struct {
	ID       string
	Username string
	Email    string
}

func (uc UserCriteria) predicate() model.Predicate {
	var pred model.Predicate
	for _, f := range []struct{ field, value string }{
		{"id", uc.ID},
		{"username", uc.Username},
		{"email", uc.Email},
	} {
		if f.value == "" {
			continue
		}
		eq := &model.Equals{Field: f.field, Value: f.value}
		if pred == nil {
			pred = eq
		} else {
			pred = &model.And{Left: pred, Right: eq}
		}
	}
	return pred
}

// GetUser returns the first user matching every non-empty criterion
func (c *Client) GetUser(ctx context.Context, criteria UserCriteria) (model.Record, error) {
	pred := criteria.predicate()
	if pred == nil {
		return nil, fmt.Errorf("%w: user criteria are empty", domain.ErrInvalidInput)
	}

	res := c.Execute(ctx, (&model.Get{Entity: store.UserKind, Conditions: pred}).String())
	if !res.Success {
		return nil, res.Err
	}

	records, ok := res.Data.([]model.Record)
	if !ok {
		return nil, fmt.Errorf("%w: %T", domain.ErrUnexpectedResult, res.Data)
	}
	if len(records) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return records[0], nil
}

// CheckAccess reports whether userID holds permission on resourceID
func (c *Client) CheckAccess(ctx context.Context, userID, resourceID, permission string) (bool, error) {
	if err := requireIDs(userID, resourceID, permission); err != nil {
		return false, err
	}

	res := c.Execute(ctx, (&model.Check{UserID: userID, ResourceID: resourceID, Permission: permission}).String())
	if !res.Success {
		return false, res.Err
	}

	allowed, ok := res.Data.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %T", domain.ErrUnexpectedResult, res.Data)
	}
	return allowed, nil
}

// GrantAccess gives userID permission on resourceID
func (c *Client) GrantAccess(ctx context.Context, userID, resourceID, permission string) error {
	if err := requireIDs(userID, resourceID, permission); err != nil {
		return err
	}

	res := c.Execute(ctx, (&model.Grant{UserID: userID, ResourceID: resourceID, Permission: permission}).String())
	if !res.Success {
		return res.Err
	}
	return nil
}

// RevokeAccess removes a direct grant of permission on resourceID from userID
func (c *Client) RevokeAccess(ctx context.Context, userID, resourceID, permission string) error {
	if err := requireIDs(userID, resourceID, permission); err != nil {
		return err
	}

	res := c.Execute(ctx, (&model.Revoke{UserID: userID, ResourceID: resourceID, Permission: permission}).String())
	if !res.Success {
		return res.Err
	}
	return nil
}

func requireIDs(userID, resourceID, permission string) error {
	if userID == "" || resourceID == "" || permission == "" {
		return fmt.Errorf("%w: user id, resource id and permission are required", domain.ErrInvalidInput)
	}
	return nil
}
