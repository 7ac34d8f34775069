// Package store defines the graph capabilities the query executor consumes
// and the decorators layered over them.
package store

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/geneql/query/eval"
	"github.com/dangerclosesec/geneql/query/model"
)

//go:generate mockgen -typed -destination=../internal/mocks/mock_graph_store.go -package=mocks github.com/dangerclosesec/geneql/store GraphStore

// Entity kinds with a fixed role in permission edges
const (
	UserKind     = "User"
	ResourceKind = "Resource"
	RoleKind     = "Role"
)

// GraphStore is everything the executor needs from the ontology
type GraphStore interface {
	GetEntities(ctx context.Context, kind string) ([]model.Record, error)
	HasPermission(ctx context.Context, userID, resourceID, permission string) (bool, error)
	Grant(ctx context.Context, userID, resourceID, permission string) error
	Revoke(ctx context.Context, userID, resourceID, permission string) error
	ApplyUpdate(ctx context.Context, kind string, match eval.Matcher, changes map[string]string) (int, error)
	ApplyDelete(ctx context.Context, kind string, match eval.Matcher) (int, error)
}

// RecordStore owns entity records
type RecordStore interface {
	GetEntities(ctx context.Context, kind string) ([]model.Record, error)
	Exists(ctx context.Context, kind, id string) (bool, error)
	ApplyUpdate(ctx context.Context, kind string, match eval.Matcher, changes map[string]string) (int, error)
	ApplyDelete(ctx context.Context, kind string, match eval.Matcher) (int, error)
}

// PermissionStore owns permission edges and their inheritance rules
type PermissionStore interface {
	HasPermission(ctx context.Context, userID, resourceID, permission string) (bool, error)
	Grant(ctx context.Context, userID, resourceID, permission string) error
	Revoke(ctx context.Context, userID, resourceID, permission string) error
}

// NotFoundError is returned when a grant or revoke names a missing entity
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// RequireEdgeEndpoints checks that both ends of a permission edge exist
func RequireEdgeEndpoints(ctx context.Context, records RecordStore, userID, resourceID string) error {
	for _, ref := range []struct{ kind, id string }{
		{UserKind, userID},
		{ResourceKind, resourceID},
	} {
		ok, err := records.Exists(ctx, ref.kind, ref.id)
		if err != nil {
			return fmt.Errorf("failed to look up %s %s: %w", ref.kind, ref.id, err)
		}
		if !ok {
			return &NotFoundError{Kind: ref.kind, ID: ref.id}
		}
	}
	return nil
}

// composite joins a record store with a separate permission store
type composite struct {
	records RecordStore
	perms   PermissionStore
}

// Compose builds a GraphStore from separate record and permission capabilities.
// Grants and revokes are rejected when either endpoint is missing from records.
func Compose(records RecordStore, perms PermissionStore) GraphStore {
	return &composite{records: records, perms: perms}
}

func (c *composite) GetEntities(ctx context.Context, kind string) ([]model.Record, error) {
	return c.records.GetEntities(ctx, kind)
}

func (c *composite) HasPermission(ctx context.Context, userID, resourceID, permission string) (bool, error) {
	return c.perms.HasPermission(ctx, userID, resourceID, permission)
}

func (c *composite) Grant(ctx context.Context, userID, resourceID, permission string) error {
	if err := RequireEdgeEndpoints(ctx, c.records, userID, resourceID); err != nil {
		return err
	}
	return c.perms.Grant(ctx, userID, resourceID, permission)
}

func (c *composite) Revoke(ctx context.Context, userID, resourceID, permission string) error {
	if err := RequireEdgeEndpoints(ctx, c.records, userID, resourceID); err != nil {
		return err
	}
	return c.perms.Revoke(ctx, userID, resourceID, permission)
}

func (c *composite) ApplyUpdate(ctx context.Context, kind string, match eval.Matcher, changes map[string]string) (int, error) {
	return c.records.ApplyUpdate(ctx, kind, match, changes)
}

func (c *composite) ApplyDelete(ctx context.Context, kind string, match eval.Matcher) (int, error) {
	return c.records.ApplyDelete(ctx, kind, match)
}
