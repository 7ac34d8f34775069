// store/permify/permify.go

// Package permify delegates permission edges to a Permify server. Grants
// become relationship tuples and checks are Permify permission checks, so
// role and hierarchy inheritance follow the Permify schema.
package permify

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	v1 "buf.build/gen/go/permifyco/permify/protocolbuffers/go/base/v1"
	permify_grpc "github.com/Permify/permify-go/grpc"

	"github.com/dangerclosesec/geneql/store"
)

type permissionClient interface {
	Check(ctx context.Context, in *v1.PermissionCheckRequest, opts ...grpc.CallOption) (*v1.PermissionCheckResponse, error)
}

type dataClient interface {
	WriteRelationships(ctx context.Context, in *v1.RelationshipWriteRequest, opts ...grpc.CallOption) (*v1.RelationshipWriteResponse, error)
	DeleteRelationships(ctx context.Context, in *v1.RelationshipDeleteRequest, opts ...grpc.CallOption) (*v1.RelationshipDeleteResponse, error)
}

// Store is a store.PermissionStore backed by Permify
type Store struct {
	permission    permissionClient
	data          dataClient
	tenant        string
	schemaVersion string
	snapToken     string
	depth         int32
	entityType    string
	subjectType   string
	relations     map[string]string
}

var _ store.PermissionStore = (*Store)(nil)

// WithTenant sets the Permify tenant
func WithTenant(tenant string) func(*Store) {
	return func(s *Store) {
		s.tenant = tenant
	}
}

// WithSchemaVersion sets the schema version sent with every request
func WithSchemaVersion(schemaVersion string) func(*Store) {
	return func(s *Store) {
		s.schemaVersion = schemaVersion
	}
}

// WithSnapToken sets the snap token for checks
func WithSnapToken(snapToken string) func(*Store) {
	return func(s *Store) {
		s.snapToken = snapToken
	}
}

// WithDepth sets the check depth
func WithDepth(depth int32) func(*Store) {
	return func(s *Store) {
		s.depth = depth
	}
}

// WithTypes sets the Permify entity type used for resources and the subject
// type used for users
func WithTypes(entityType, subjectType string) func(*Store) {
	return func(s *Store) {
		s.entityType = entityType
		s.subjectType = subjectType
	}
}

// WithRelations maps a permission to the relation written on GRANT, for
// schemas where the two are named differently (read -> reader)
func WithRelations(relations map[string]string) func(*Store) {
	return func(s *Store) {
		s.relations = relations
	}
}

// New connects to a Permify server
func New(host string, options ...func(*Store)) (*Store, error) {
	client, err := permify_grpc.NewClient(
		permify_grpc.Config{
			Endpoint: host,
		},
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create permify client: %w", err)
	}

	return newStore(client.Permission, client.Data, options...), nil
}

func newStore(permission permissionClient, data dataClient, options ...func(*Store)) *Store {
	s := &Store{
		permission:    permission,
		data:          data,
		schemaVersion: "v1",
		depth:         50,
		entityType:    "resource",
		subjectType:   "user",
	}
	for _, o := range options {
		o(s)
	}

	if s.tenant == "" {
		s.tenant = "t1"
	}

	return s
}

// HasPermission asks Permify whether the user holds permission on the resource
func (s *Store) HasPermission(ctx context.Context, userID, resourceID, permission string) (bool, error) {
	cr, err := s.permission.Check(ctx, s.checkRequest(userID, resourceID, permission))
	if err != nil {
		return false, fmt.Errorf("permify check: %w", err)
	}

	return cr.GetCan() == v1.CheckResult_CHECK_RESULT_ALLOWED, nil
}

// Grant writes the relationship tuple. Permify ignores duplicate tuples.
func (s *Store) Grant(ctx context.Context, userID, resourceID, permission string) error {
	if _, err := s.data.WriteRelationships(ctx, s.writeRequest(userID, resourceID, permission)); err != nil {
		return fmt.Errorf("permify write relationship: %w", err)
	}
	return nil
}

// Revoke deletes the relationship tuple. Deleting a missing tuple succeeds.
func (s *Store) Revoke(ctx context.Context, userID, resourceID, permission string) error {
	if _, err := s.data.DeleteRelationships(ctx, s.deleteRequest(userID, resourceID, permission)); err != nil {
		return fmt.Errorf("permify delete relationship: %w", err)
	}
	return nil
}

func (s *Store) relation(permission string) string {
	if r, ok := s.relations[permission]; ok {
		return r
	}
	return permission
}

func (s *Store) checkRequest(userID, resourceID, permission string) *v1.PermissionCheckRequest {
	return &v1.PermissionCheckRequest{
		TenantId: s.tenant,
		Metadata: &v1.PermissionCheckRequestMetadata{
			SnapToken:     s.snapToken,
			SchemaVersion: s.schemaVersion,
			Depth:         s.depth,
		},
		Entity: &v1.Entity{
			Type: s.entityType,
			Id:   resourceID,
		},
		Permission: permission,
		Subject: &v1.Subject{
			Type: s.subjectType,
			Id:   userID,
		},
	}
}

func (s *Store) writeRequest(userID, resourceID, permission string) *v1.RelationshipWriteRequest {
	return &v1.RelationshipWriteRequest{
		TenantId: s.tenant,
		Metadata: &v1.RelationshipWriteRequestMetadata{
			SchemaVersion: s.schemaVersion,
		},
		Tuples: []*v1.Tuple{
			{
				Entity: &v1.Entity{
					Type: s.entityType,
					Id:   resourceID,
				},
				Relation: s.relation(permission),
				Subject: &v1.Subject{
					Type: s.subjectType,
					Id:   userID,
				},
			},
		},
	}
}

func (s *Store) deleteRequest(userID, resourceID, permission string) *v1.RelationshipDeleteRequest {
	return &v1.RelationshipDeleteRequest{
		TenantId: s.tenant,
		Filter: &v1.TupleFilter{
			Entity: &v1.EntityFilter{
				Type: s.entityType,
				Ids:  []string{resourceID},
			},
			Relation: s.relation(permission),
			Subject: &v1.SubjectFilter{
				Type: s.subjectType,
				Ids:  []string{userID},
			},
		},
	}
}
