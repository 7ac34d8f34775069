// Package memory is an in-process GraphStore with role and resource
// hierarchy inheritance.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/dangerclosesec/geneql/internal/domain"
	"github.com/dangerclosesec/geneql/query/eval"
	"github.com/dangerclosesec/geneql/query/model"
	"github.com/dangerclosesec/geneql/store"
)

// maxDepth bounds how many ancestors a hierarchy walk visits
const maxDepth = 10

type edge struct {
	subjectKind string
	subject     string
	resource    string
	permission  string
}

// Store keeps records per kind in insertion order
type Store struct {
	mu      sync.RWMutex
	records map[string][]model.Record
	grants  map[edge]struct{}   // (kind, subject) -> permission on resource
	roles   map[string][]string // user -> roles
	parents map[string]string   // resource -> parent resource
}

var (
	_ store.GraphStore  = (*Store)(nil)
	_ store.RecordStore = (*Store)(nil)
)

// New creates an empty Store
func New() *Store {
	return &Store{
		records: make(map[string][]model.Record),
		grants:  make(map[edge]struct{}),
		roles:   make(map[string][]string),
		parents: make(map[string]string),
	}
}

// Put inserts a record, replacing any record of the same kind and id in place
func (s *Store) Put(kind string, r model.Record) error {
	id := r.ID()
	if id == "" {
		return fmt.Errorf("%s record: %w", kind, domain.ErrMissingID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := maps.Clone(r)
	for i, existing := range s.records[kind] {
		if existing.ID() == id {
			s.records[kind][i] = rec
			return nil
		}
	}
	s.records[kind] = append(s.records[kind], rec)
	return nil
}

// AssignRole makes userID a member of role
func (s *Store) AssignRole(userID, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.roles[userID] {
		if r == role {
			return
		}
	}
	s.roles[userID] = append(s.roles[userID], role)
}

// GrantRole gives every member of role the permission on resourceID
func (s *Store) GrantRole(role, resourceID, permission string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[edge{subjectKind: store.RoleKind, subject: role, resource: resourceID, permission: permission}] = struct{}{}
}

// SetParent places resourceID under parentID. Permissions on the parent
// apply to the child.
func (s *Store) SetParent(resourceID, parentID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parents[resourceID] = parentID
}

// GetEntities returns copies of every record of kind. Unknown kinds are empty.
func (s *Store) GetEntities(_ context.Context, kind string) ([]model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Record, 0, len(s.records[kind]))
	for _, r := range s.records[kind] {
		out = append(out, maps.Clone(r))
	}
	return out, nil
}

// Exists reports whether a record of kind with id is present
func (s *Store) Exists(_ context.Context, kind, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.exists(kind, id), nil
}

func (s *Store) exists(kind, id string) bool {
	for _, r := range s.records[kind] {
		if r.ID() == id {
			return true
		}
	}
	return false
}

// HasPermission checks direct grants, role grants and grants on ancestor resources
func (s *Store) HasPermission(ctx context.Context, userID, resourceID, permission string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subjects := make([]edge, 0, len(s.roles[userID])+1)
	subjects = append(subjects, edge{subjectKind: store.UserKind, subject: userID})
	for _, role := range s.roles[userID] {
		subjects = append(subjects, edge{subjectKind: store.RoleKind, subject: role})
	}

	visited := make(map[string]bool)
	current := resourceID
	// depth 0 is the resource itself, followed by up to maxDepth ancestors
	for depth := 0; depth <= maxDepth; depth++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		for _, e := range subjects {
			e.resource, e.permission = current, permission
			if _, ok := s.grants[e]; ok {
				return true, nil
			}
		}

		visited[current] = true
		parent, ok := s.parents[current]
		if !ok || visited[parent] {
			break
		}
		current = parent
	}

	return false, nil
}

// Grant adds a direct edge. Granting an existing edge is a no-op.
func (s *Store) Grant(_ context.Context, userID, resourceID, permission string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEndpoints(userID, resourceID); err != nil {
		return err
	}
	s.grants[userEdge(userID, resourceID, permission)] = struct{}{}
	return nil
}

// Revoke removes a direct edge. Revoking a missing edge is a no-op.
func (s *Store) Revoke(_ context.Context, userID, resourceID, permission string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireEndpoints(userID, resourceID); err != nil {
		return err
	}
	delete(s.grants, userEdge(userID, resourceID, permission))
	return nil
}

func userEdge(userID, resourceID, permission string) edge {
	return edge{subjectKind: store.UserKind, subject: userID, resource: resourceID, permission: permission}
}

func (s *Store) requireEndpoints(userID, resourceID string) error {
	if !s.exists(store.UserKind, userID) {
		return &store.NotFoundError{Kind: store.UserKind, ID: userID}
	}
	if !s.exists(store.ResourceKind, resourceID) {
		return &store.NotFoundError{Kind: store.ResourceKind, ID: resourceID}
	}
	return nil
}

// ApplyUpdate sets changes on every matching record. Nothing is written when
// the matcher fails on any record.
func (s *Store) ApplyUpdate(_ context.Context, kind string, match eval.Matcher, changes map[string]string) (int, error) {
	if _, ok := changes["id"]; ok {
		return 0, fmt.Errorf("%w: id", domain.ErrImmutableField)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hits, err := matchAll(s.records[kind], match)
	if err != nil {
		return 0, err
	}

	for _, i := range hits {
		for field, value := range changes {
			s.records[kind][i][field] = value
		}
	}
	return len(hits), nil
}

// ApplyDelete removes every matching record along with edges that reference it
func (s *Store) ApplyDelete(_ context.Context, kind string, match eval.Matcher) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.records[kind]
	hits, err := matchAll(records, match)
	if err != nil {
		return 0, err
	}
	if len(hits) == 0 {
		return 0, nil
	}

	removed := make(map[int]bool, len(hits))
	for _, i := range hits {
		removed[i] = true
	}

	kept := make([]model.Record, 0, len(records)-len(hits))
	for i, r := range records {
		if removed[i] {
			s.dropEdges(kind, r.ID())
			continue
		}
		kept = append(kept, r)
	}
	s.records[kind] = kept

	return len(hits), nil
}

func (s *Store) dropEdges(kind, id string) {
	switch kind {
	case store.UserKind:
		for e := range s.grants {
			if e.subjectKind == store.UserKind && e.subject == id {
				delete(s.grants, e)
			}
		}
		delete(s.roles, id)
	case store.ResourceKind:
		for e := range s.grants {
			if e.resource == id {
				delete(s.grants, e)
			}
		}
		delete(s.parents, id)
	}
}

// matchAll returns the indexes of matching records, or the first matcher error
func matchAll(records []model.Record, match eval.Matcher) ([]int, error) {
	var hits []int
	for i, r := range records {
		ok, err := match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			hits = append(hits, i)
		}
	}
	return hits, nil
}
