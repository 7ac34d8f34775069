package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/dangerclosesec/geneql/internal/domain"
	"github.com/dangerclosesec/geneql/query/eval"
	"github.com/dangerclosesec/geneql/query/model"
	"github.com/dangerclosesec/geneql/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.Put(store.UserKind, model.Record{"id": "alice", "username": "alice", "role": "admin"}))
	require.NoError(t, s.Put(store.UserKind, model.Record{"id": "bob", "username": "bob", "role": "user"}))
	require.NoError(t, s.Put(store.ResourceKind, model.Record{"id": "folder1", "name": "Folder"}))
	require.NoError(t, s.Put(store.ResourceKind, model.Record{"id": "doc1", "name": "Doc"}))
	return s
}

func byField(field, value string) eval.Matcher {
	return eval.Compile(&model.Equals{Field: field, Value: value})
}

func TestPutRequiresID(t *testing.T) {
	s := New()
	err := s.Put(store.UserKind, model.Record{"username": "nobody"})
	assert.True(t, errors.Is(err, domain.ErrMissingID))
}

func TestPutReplacesInPlace(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put(store.UserKind, model.Record{"id": "alice", "username": "alice2"}))

	users, err := s.GetEntities(context.Background(), store.UserKind)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice2", users[0]["username"])
}

func TestGetEntities(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	users, err := s.GetEntities(ctx, store.UserKind)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].ID())
	assert.Equal(t, "bob", users[1].ID())

	// Returned records are copies
	users[0]["username"] = "mallory"
	again, _ := s.GetEntities(ctx, store.UserKind)
	assert.Equal(t, "alice", again[0]["username"])

	unknown, err := s.GetEntities(ctx, "Widget")
	require.NoError(t, err)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestGrantIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ok, err := s.HasPermission(ctx, "alice", "doc1", "read")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Grant(ctx, "alice", "doc1", "read"))
	require.NoError(t, s.Grant(ctx, "alice", "doc1", "read"))
	assert.Len(t, s.grants, 1)

	ok, err = s.HasPermission(ctx, "alice", "doc1", "read")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.HasPermission(ctx, "alice", "doc1", "write")
	assert.False(t, ok)
}

func TestRevoke(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Missing grant is a no-op
	require.NoError(t, s.Revoke(ctx, "alice", "doc1", "read"))

	require.NoError(t, s.Grant(ctx, "alice", "doc1", "read"))
	require.NoError(t, s.Revoke(ctx, "alice", "doc1", "read"))

	ok, err := s.HasPermission(ctx, "alice", "doc1", "read")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGrantMissingEndpoints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		user     string
		resource string
		kind     string
	}{
		{"missing user", "carol", "doc1", store.UserKind},
		{"missing resource", "alice", "doc9", store.ResourceKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, op := range []func(context.Context, string, string, string) error{s.Grant, s.Revoke} {
				err := op(ctx, tt.user, tt.resource, "read")
				var nf *store.NotFoundError
				require.True(t, errors.As(err, &nf))
				assert.Equal(t, tt.kind, nf.Kind)
			}
		})
	}
}

func TestRoleInheritance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.AssignRole("bob", "editors")
	s.AssignRole("bob", "editors")
	s.GrantRole("editors", "doc1", "write")

	ok, err := s.HasPermission(ctx, "bob", "doc1", "write")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.HasPermission(ctx, "alice", "doc1", "write")
	assert.False(t, ok)
	assert.Equal(t, []string{"editors"}, s.roles["bob"])
}

func TestRoleGrantsAreNotUserGrants(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(store.UserKind, model.Record{"id": "admin", "username": "admin"}))

	s.GrantRole("admin", "doc1", "write")
	s.AssignRole("bob", "admin")

	// A user named like a role does not hold the role
	ok, err := s.HasPermission(ctx, "admin", "doc1", "write")
	require.NoError(t, err)
	assert.False(t, ok)

	// Revoking from that user leaves the role grant alone
	require.NoError(t, s.Revoke(ctx, "admin", "doc1", "write"))
	ok, err = s.HasPermission(ctx, "bob", "doc1", "write")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Grant(ctx, "admin", "doc1", "write"))
	n, err := s.ApplyDelete(ctx, store.UserKind, byField("id", "admin"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ok, _ = s.HasPermission(ctx, "bob", "doc1", "write")
	assert.True(t, ok)
	assert.Len(t, s.grants, 1)
}

func TestHierarchyInheritance(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.SetParent("doc1", "folder1")
	require.NoError(t, s.Grant(ctx, "alice", "folder1", "read"))

	ok, err := s.HasPermission(ctx, "alice", "doc1", "read")
	require.NoError(t, err)
	assert.True(t, ok)

	// Permissions do not flow upward
	require.NoError(t, s.Grant(ctx, "bob", "doc1", "read"))
	ok, _ = s.HasPermission(ctx, "bob", "folder1", "read")
	assert.False(t, ok)
}

func TestHierarchyDepthBound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// r0 -> r1 -> ... -> r11
	for i := 0; i <= maxDepth+1; i++ {
		require.NoError(t, s.Put(store.ResourceKind, model.Record{"id": fmt.Sprintf("r%d", i)}))
		if i > 0 {
			s.SetParent(fmt.Sprintf("r%d", i-1), fmt.Sprintf("r%d", i))
		}
	}

	require.NoError(t, s.Grant(ctx, "alice", fmt.Sprintf("r%d", maxDepth), "read"))
	ok, err := s.HasPermission(ctx, "alice", "r0", "read")
	require.NoError(t, err)
	assert.True(t, ok, "ancestor at the depth bound")

	require.NoError(t, s.Grant(ctx, "bob", fmt.Sprintf("r%d", maxDepth+1), "read"))
	ok, err = s.HasPermission(ctx, "bob", "r0", "read")
	require.NoError(t, err)
	assert.False(t, ok, "ancestor past the depth bound")
}

func TestHierarchyCycle(t *testing.T) {
	s := newTestStore(t)
	s.SetParent("doc1", "folder1")
	s.SetParent("folder1", "doc1")

	ok, err := s.HasPermission(context.Background(), "alice", "doc1", "read")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestApplyUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.ApplyUpdate(ctx, store.UserKind, byField("role", "user"), map[string]string{"role": "admin", "team": "core"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	users, _ := s.GetEntities(ctx, store.UserKind)
	assert.Equal(t, "admin", users[1]["role"])
	assert.Equal(t, "core", users[1]["team"])

	n, err = s.ApplyUpdate(ctx, store.UserKind, byField("role", "nobody"), map[string]string{"role": "x"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestApplyUpdateRejectsID(t *testing.T) {
	s := newTestStore(t)
	_, err := s.ApplyUpdate(context.Background(), store.UserKind, eval.MatchAll, map[string]string{"id": "x"})
	assert.True(t, errors.Is(err, domain.ErrImmutableField))
}

func TestApplyUpdateIsAllOrNothing(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(store.UserKind, model.Record{"id": "carol"}))

	// carol has no role field, so the matcher fails on her
	_, err := s.ApplyUpdate(ctx, store.UserKind, byField("role", "admin"), map[string]string{"team": "x"})
	var fieldErr *eval.FieldError
	require.True(t, errors.As(err, &fieldErr))

	users, _ := s.GetEntities(ctx, store.UserKind)
	for _, u := range users {
		assert.NotContains(t, u, "team")
	}
}

func TestApplyDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Grant(ctx, "bob", "doc1", "read"))
	s.AssignRole("bob", "editors")

	n, err := s.ApplyDelete(ctx, store.UserKind, byField("username", "bob"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	users, _ := s.GetEntities(ctx, store.UserKind)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].ID())
	assert.Empty(t, s.grants)
	assert.NotContains(t, s.roles, "bob")

	exists, err := s.Exists(ctx, store.UserKind, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Grant(ctx, "alice", "doc1", "read")
			_ = s.Revoke(ctx, "alice", "doc1", "read")
		}()
		go func() {
			defer wg.Done()
			_, _ = s.HasPermission(ctx, "alice", "doc1", "read")
			_, _ = s.GetEntities(ctx, store.UserKind)
		}()
	}
	wg.Wait()
}

func TestLoadSeed(t *testing.T) {
	seed := `{
		"entities": {
			"User": [{"id": "alice", "username": "alice", "age": 30}],
			"Resource": [{"id": "folder1"}, {"id": "doc1"}]
		},
		"grants": [{"user_id": "alice", "resource_id": "folder1", "permission": "read"}],
		"roles": {"alice": ["editors"]},
		"role_grants": [{"role": "editors", "resource_id": "doc1", "permission": "write"}],
		"parents": {"doc1": "folder1"}
	}`

	s, err := Load(strings.NewReader(seed))
	require.NoError(t, err)
	ctx := context.Background()

	for _, perm := range []string{"read", "write"} {
		ok, err := s.HasPermission(ctx, "alice", "doc1", perm)
		require.NoError(t, err)
		assert.True(t, ok, perm)
	}

	users, _ := s.GetEntities(ctx, store.UserKind)
	ok, err := byField("age", "30")(users[0])
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoadSeedUnknownGrantEndpoint(t *testing.T) {
	_, err := Load(strings.NewReader(`{"grants": [{"user_id": "ghost", "resource_id": "doc1", "permission": "read"}]}`))
	var nf *store.NotFoundError
	assert.True(t, errors.As(err, &nf))
}
