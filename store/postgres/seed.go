package postgres

import (
	"context"
	"fmt"

	"github.com/dangerclosesec/geneql/store"
)

// Apply writes every entity and edge in seed. Entities are written first so
// grant endpoints resolve.
func (s *Store) Apply(ctx context.Context, seed store.Seed) error {
	for kind, records := range seed.Entities {
		for _, r := range records {
			if err := s.Put(ctx, kind, r); err != nil {
				return err
			}
		}
	}

	for user, roles := range seed.Roles {
		for _, role := range roles {
			if err := s.AssignRole(ctx, user, role); err != nil {
				return err
			}
		}
	}
	for _, g := range seed.RoleGrants {
		if err := s.GrantRole(ctx, g.Role, g.ResourceID, g.Permission); err != nil {
			return err
		}
	}
	for child, parent := range seed.Parents {
		if err := s.SetParent(ctx, child, parent); err != nil {
			return err
		}
	}

	for _, g := range seed.Grants {
		if err := s.Grant(ctx, g.UserID, g.ResourceID, g.Permission); err != nil {
			return fmt.Errorf("seed grant %s %s %s: %w", g.UserID, g.Permission, g.ResourceID, err)
		}
	}

	return nil
}
