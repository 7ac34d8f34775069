// Package postgres stores the ontology in PostgreSQL. Entities live in the
// entities table with their fields in a JSONB properties column; grants,
// role membership and resource parents are rows in the relations table.
package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dangerclosesec/geneql/internal/domain"
	"github.com/dangerclosesec/geneql/query/eval"
	"github.com/dangerclosesec/geneql/query/model"
	"github.com/dangerclosesec/geneql/store"
)

// Structural relations. They cannot be granted as permissions.
const (
	RelationMember = "member" // User -> Role
	RelationParent = "parent" // Resource -> Resource
)

// maxDepth bounds resource hierarchy walks
const maxDepth = 10

// Store is a GraphStore backed by a pgx connection pool
type Store struct {
	Pool *pgxpool.Pool
}

var (
	_ store.GraphStore  = (*Store)(nil)
	_ store.RecordStore = (*Store)(nil)
)

// New connects to the database and verifies the connection
func New(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Validates the database connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{Pool: pool}, nil
}

// NewWithPool wraps an existing pool
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

// Close releases the pool
func (s *Store) Close() {
	s.Pool.Close()
}

// Put inserts a record or replaces the properties of an existing one
func (s *Store) Put(ctx context.Context, kind string, r model.Record) error {
	id := r.ID()
	if id == "" {
		return fmt.Errorf("%s record: %w", kind, domain.ErrMissingID)
	}

	props, err := encodeProperties(r)
	if err != nil {
		return err
	}

	_, err = s.Pool.Exec(ctx, `
		INSERT INTO entities (type, external_id, properties)
		VALUES ($1, $2, $3)
		ON CONFLICT (type, external_id)
		DO UPDATE SET properties = EXCLUDED.properties, updated_at = NOW()
	`, kind, id, props)
	if err != nil {
		return fmt.Errorf("failed to put entity %s:%s: %w", kind, id, err)
	}
	return nil
}

// GetEntities returns every record of kind in insertion order
func (s *Store) GetEntities(ctx context.Context, kind string) ([]model.Record, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT external_id, properties
		FROM entities
		WHERE type = $1
		ORDER BY id
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	records := make([]model.Record, 0)
	for rows.Next() {
		var externalID string
		var props []byte
		if err := rows.Scan(&externalID, &props); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		r, err := decodeRecord(externalID, props)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entities: %w", err)
	}

	return records, nil
}

// Exists reports whether an entity of kind with id is stored
func (s *Store) Exists(ctx context.Context, kind, id string) (bool, error) {
	return exists(ctx, s.Pool, kind, id)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func exists(ctx context.Context, q querier, kind, id string) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM entities WHERE type = $1 AND external_id = $2
		)
	`, kind, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to check entity %s:%s: %w", kind, id, err)
	}
	return ok, nil
}

// HasPermission follows role membership and the resource parent chain
func (s *Store) HasPermission(ctx context.Context, userID, resourceID, permission string) (bool, error) {
	var ok bool
	err := s.Pool.QueryRow(ctx, `
		WITH RECURSIVE ancestors(id, depth) AS (
			SELECT $2::text, 0

			UNION

			SELECT r.object_id, a.depth + 1
			FROM relations r
			JOIN ancestors a ON r.subject_type = $4 AND r.subject_id = a.id
			WHERE r.relation = $6
			AND r.object_type = $4
			AND a.depth < $8  -- Prevents infinite recursion
		),
		subjects(type, id) AS (
			SELECT $5::text, $1::text

			UNION

			SELECT object_type, object_id
			FROM relations
			WHERE subject_type = $5
			AND subject_id = $1
			AND relation = $7
			AND object_type = $9
		)
		SELECT EXISTS (
			SELECT 1
			FROM relations r
			JOIN subjects s ON r.subject_type = s.type AND r.subject_id = s.id
			JOIN ancestors a ON r.object_type = $4 AND r.object_id = a.id
			WHERE r.relation = $3
		)
	`, userID, resourceID, permission,
		store.ResourceKind, store.UserKind, RelationParent, RelationMember, maxDepth, store.RoleKind,
	).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}
	return ok, nil
}

// Grant inserts a direct edge. Granting an existing edge is a no-op.
func (s *Store) Grant(ctx context.Context, userID, resourceID, permission string) error {
	if err := checkPermissionName(permission); err != nil {
		return err
	}
	return s.withEdgeEndpoints(ctx, userID, resourceID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO relations (subject_type, subject_id, relation, object_type, object_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT DO NOTHING
		`, store.UserKind, userID, permission, store.ResourceKind, resourceID)
		if err != nil {
			return fmt.Errorf("failed to create relation: %w", err)
		}
		return nil
	})
}

// Revoke deletes a direct edge. Revoking a missing edge is a no-op.
func (s *Store) Revoke(ctx context.Context, userID, resourceID, permission string) error {
	if err := checkPermissionName(permission); err != nil {
		return err
	}
	return s.withEdgeEndpoints(ctx, userID, resourceID, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			DELETE FROM relations
			WHERE subject_type = $1
			AND subject_id = $2
			AND relation = $3
			AND object_type = $4
			AND object_id = $5
		`, store.UserKind, userID, permission, store.ResourceKind, resourceID)
		if err != nil {
			return fmt.Errorf("failed to delete relation: %w", err)
		}
		return nil
	})
}

// AssignRole makes userID a member of role
func (s *Store) AssignRole(ctx context.Context, userID, role string) error {
	return s.relate(ctx, store.UserKind, userID, RelationMember, store.RoleKind, role)
}

// GrantRole gives every member of role the permission on resourceID
func (s *Store) GrantRole(ctx context.Context, role, resourceID, permission string) error {
	if err := checkPermissionName(permission); err != nil {
		return err
	}
	return s.relate(ctx, store.RoleKind, role, permission, store.ResourceKind, resourceID)
}

// SetParent places resourceID under parentID
func (s *Store) SetParent(ctx context.Context, resourceID, parentID string) error {
	return s.relate(ctx, store.ResourceKind, resourceID, RelationParent, store.ResourceKind, parentID)
}

func (s *Store) relate(ctx context.Context, subjectType, subjectID, relation, objectType, objectID string) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO relations (subject_type, subject_id, relation, object_type, object_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`, subjectType, subjectID, relation, objectType, objectID)
	if err != nil {
		return fmt.Errorf("failed to create relation: %w", err)
	}
	return nil
}

// ApplyUpdate merges changes into the properties of every matching record
func (s *Store) ApplyUpdate(ctx context.Context, kind string, match eval.Matcher, changes map[string]string) (int, error) {
	if _, ok := changes["id"]; ok {
		return 0, fmt.Errorf("%w: id", domain.ErrImmutableField)
	}

	patch, err := json.Marshal(changes)
	if err != nil {
		return 0, fmt.Errorf("failed to encode changes: %w", err)
	}

	var count int
	err = s.withTx(ctx, func(tx pgx.Tx) error {
		ids, _, err := lockMatching(ctx, tx, kind, match)
		if err != nil || len(ids) == 0 {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE entities
			SET properties = properties || $2::jsonb, updated_at = NOW()
			WHERE id = ANY($1)
		`, ids, patch)
		if err != nil {
			return fmt.Errorf("failed to update entities: %w", err)
		}
		count = int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ApplyDelete removes every matching record and the relations that reference it
func (s *Store) ApplyDelete(ctx context.Context, kind string, match eval.Matcher) (int, error) {
	var count int
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		ids, externalIDs, err := lockMatching(ctx, tx, kind, match)
		if err != nil || len(ids) == 0 {
			return err
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM relations
			WHERE (subject_type = $1 AND subject_id = ANY($2))
			OR (object_type = $1 AND object_id = ANY($2))
		`, kind, externalIDs); err != nil {
			return fmt.Errorf("failed to delete relations: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM entities WHERE id = ANY($1)`, ids)
		if err != nil {
			return fmt.Errorf("failed to delete entities: %w", err)
		}
		count = int(tag.RowsAffected())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// lockMatching locks the rows of kind and returns those the matcher accepts
func lockMatching(ctx context.Context, tx pgx.Tx, kind string, match eval.Matcher) ([]int64, []string, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, external_id, properties
		FROM entities
		WHERE type = $1
		ORDER BY id
		FOR UPDATE
	`, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	var ids []int64
	var externalIDs []string
	for rows.Next() {
		var id int64
		var externalID string
		var props []byte
		if err := rows.Scan(&id, &externalID, &props); err != nil {
			return nil, nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		r, err := decodeRecord(externalID, props)
		if err != nil {
			return nil, nil, err
		}
		ok, err := match(r)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			ids = append(ids, id)
			externalIDs = append(externalIDs, externalID)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read entities: %w", err)
	}
	return ids, externalIDs, nil
}

// withEdgeEndpoints runs fn in a transaction once both endpoints are known to exist
func (s *Store) withEdgeEndpoints(ctx context.Context, userID, resourceID string, fn func(pgx.Tx) error) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		for _, ref := range []struct{ kind, id string }{
			{store.UserKind, userID},
			{store.ResourceKind, resourceID},
		} {
			ok, err := exists(ctx, tx, ref.kind, ref.id)
			if err != nil {
				return err
			}
			if !ok {
				return &store.NotFoundError{Kind: ref.kind, ID: ref.id}
			}
		}
		return fn(tx)
	})
}

func (s *Store) withTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func checkPermissionName(permission string) error {
	if permission == RelationMember || permission == RelationParent {
		return fmt.Errorf("%w: %q is a reserved relation", domain.ErrInvalidInput, permission)
	}
	return nil
}

// encodeProperties stores every field except id, which lives in external_id
func encodeProperties(r model.Record) ([]byte, error) {
	props := make(map[string]interface{}, len(r))
	for k, v := range r {
		if k != "id" {
			props[k] = v
		}
	}
	b, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("failed to encode properties: %w", err)
	}
	return b, nil
}

func decodeRecord(externalID string, props []byte) (model.Record, error) {
	r := model.Record{}
	if len(props) > 0 {
		dec := json.NewDecoder(bytes.NewReader(props))
		dec.UseNumber()
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("failed to parse entity properties: %w", err)
		}
	}
	if r == nil {
		r = model.Record{}
	}
	r["id"] = externalID
	return r, nil
}
