package memory

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dangerclosesec/geneql/store"
)

// Load decodes a seed from r and applies it to a new Store
func Load(r io.Reader) (*Store, error) {
	seed, err := store.DecodeSeed(r)
	if err != nil {
		return nil, err
	}

	s := New()
	if err := s.Apply(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile loads a seed from a JSON file
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Apply adds every entity and edge in seed to s. Entities are added before
// grants so grant endpoints resolve.
func (s *Store) Apply(seed store.Seed) error {
	for kind, records := range seed.Entities {
		for _, r := range records {
			if err := s.Put(kind, r); err != nil {
				return err
			}
		}
	}

	for user, roles := range seed.Roles {
		for _, role := range roles {
			s.AssignRole(user, role)
		}
	}
	for _, g := range seed.RoleGrants {
		s.GrantRole(g.Role, g.ResourceID, g.Permission)
	}
	for child, parent := range seed.Parents {
		s.SetParent(child, parent)
	}

	for _, g := range seed.Grants {
		if err := s.Grant(context.Background(), g.UserID, g.ResourceID, g.Permission); err != nil {
			return fmt.Errorf("seed grant %s %s %s: %w", g.UserID, g.Permission, g.ResourceID, err)
		}
	}

	return nil
}
