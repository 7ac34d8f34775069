package store

import (
	"context"
	"time"

	"github.com/dangerclosesec/geneql/query/eval"
	"github.com/dangerclosesec/geneql/query/model"
)

type timeoutStore struct {
	next    GraphStore
	timeout time.Duration
}

// WithTimeout bounds every call on s by d. A non-positive d returns s unchanged.
func WithTimeout(s GraphStore, d time.Duration) GraphStore {
	if d <= 0 {
		return s
	}
	return &timeoutStore{next: s, timeout: d}
}

func (t *timeoutStore) GetEntities(ctx context.Context, kind string) ([]model.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.GetEntities(ctx, kind)
}

func (t *timeoutStore) HasPermission(ctx context.Context, userID, resourceID, permission string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.HasPermission(ctx, userID, resourceID, permission)
}

func (t *timeoutStore) Grant(ctx context.Context, userID, resourceID, permission string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Grant(ctx, userID, resourceID, permission)
}

func (t *timeoutStore) Revoke(ctx context.Context, userID, resourceID, permission string) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Revoke(ctx, userID, resourceID, permission)
}

func (t *timeoutStore) ApplyUpdate(ctx context.Context, kind string, match eval.Matcher, changes map[string]string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.ApplyUpdate(ctx, kind, match, changes)
}

func (t *timeoutStore) ApplyDelete(ctx context.Context, kind string, match eval.Matcher) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.ApplyDelete(ctx, kind, match)
}
