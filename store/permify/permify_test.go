package permify

import (
	"context"
	"errors"
	"testing"

	v1 "buf.build/gen/go/permifyco/permify/protocolbuffers/go/base/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

type fakePermify struct {
	can     v1.CheckResult
	err     error
	checks  []*v1.PermissionCheckRequest
	writes  []*v1.RelationshipWriteRequest
	deletes []*v1.RelationshipDeleteRequest
}

func (f *fakePermify) Check(_ context.Context, in *v1.PermissionCheckRequest, _ ...grpc.CallOption) (*v1.PermissionCheckResponse, error) {
	f.checks = append(f.checks, in)
	if f.err != nil {
		return nil, f.err
	}
	return &v1.PermissionCheckResponse{Can: f.can}, nil
}

func (f *fakePermify) WriteRelationships(_ context.Context, in *v1.RelationshipWriteRequest, _ ...grpc.CallOption) (*v1.RelationshipWriteResponse, error) {
	f.writes = append(f.writes, in)
	if f.err != nil {
		return nil, f.err
	}
	return &v1.RelationshipWriteResponse{}, nil
}

func (f *fakePermify) DeleteRelationships(_ context.Context, in *v1.RelationshipDeleteRequest, _ ...grpc.CallOption) (*v1.RelationshipDeleteResponse, error) {
	f.deletes = append(f.deletes, in)
	if f.err != nil {
		return nil, f.err
	}
	return &v1.RelationshipDeleteResponse{}, nil
}

func TestDefaults(t *testing.T) {
	f := &fakePermify{}
	s := newStore(f, f)

	assert.Equal(t, "t1", s.tenant)
	assert.Equal(t, "v1", s.schemaVersion)
	assert.Equal(t, int32(50), s.depth)
}

func TestHasPermission(t *testing.T) {
	f := &fakePermify{can: v1.CheckResult_CHECK_RESULT_ALLOWED}
	s := newStore(f, f, WithTenant("acme"), WithSnapToken("snap"), WithDepth(5))

	ok, err := s.HasPermission(context.Background(), "alice", "doc1", "read")
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, f.checks, 1)
	req := f.checks[0]
	assert.Equal(t, "acme", req.GetTenantId())
	assert.Equal(t, "snap", req.GetMetadata().GetSnapToken())
	assert.Equal(t, int32(5), req.GetMetadata().GetDepth())
	assert.Equal(t, "resource", req.GetEntity().GetType())
	assert.Equal(t, "doc1", req.GetEntity().GetId())
	assert.Equal(t, "read", req.GetPermission())
	assert.Equal(t, "user", req.GetSubject().GetType())
	assert.Equal(t, "alice", req.GetSubject().GetId())

	f.can = v1.CheckResult_CHECK_RESULT_DENIED
	ok, err = s.HasPermission(context.Background(), "alice", "doc1", "read")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGrantWritesTuple(t *testing.T) {
	f := &fakePermify{}
	s := newStore(f, f, WithTypes("document", "account"), WithRelations(map[string]string{"read": "reader"}))

	require.NoError(t, s.Grant(context.Background(), "alice", "doc1", "read"))

	require.Len(t, f.writes, 1)
	tuples := f.writes[0].GetTuples()
	require.Len(t, tuples, 1)
	assert.Equal(t, "document", tuples[0].GetEntity().GetType())
	assert.Equal(t, "doc1", tuples[0].GetEntity().GetId())
	assert.Equal(t, "reader", tuples[0].GetRelation())
	assert.Equal(t, "account", tuples[0].GetSubject().GetType())
	assert.Equal(t, "alice", tuples[0].GetSubject().GetId())
}

func TestRevokeDeletesTuple(t *testing.T) {
	f := &fakePermify{}
	s := newStore(f, f)

	require.NoError(t, s.Revoke(context.Background(), "alice", "doc1", "write"))

	require.Len(t, f.deletes, 1)
	filter := f.deletes[0].GetFilter()
	assert.Equal(t, []string{"doc1"}, filter.GetEntity().GetIds())
	assert.Equal(t, "write", filter.GetRelation())
	assert.Equal(t, []string{"alice"}, filter.GetSubject().GetIds())
}

func TestErrorsAreWrapped(t *testing.T) {
	boom := errors.New("unavailable")
	f := &fakePermify{err: boom}
	s := newStore(f, f)
	ctx := context.Background()

	_, err := s.HasPermission(ctx, "alice", "doc1", "read")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Grant(ctx, "alice", "doc1", "read"), boom)
	assert.ErrorIs(t, s.Revoke(ctx, "alice", "doc1", "read"), boom)
}
