package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dangerclosesec/geneql/query/model"
)

// Seed is the JSON document used to load an ontology into a store
type Seed struct {
	Entities   map[string][]model.Record `json:"entities"`
	Grants     []SeedGrant               `json:"grants"`
	Roles      map[string][]string       `json:"roles"` // user -> roles
	RoleGrants []SeedRoleGrant           `json:"role_grants"`
	Parents    map[string]string         `json:"parents"` // resource -> parent
}

type SeedGrant struct {
	UserID     string `json:"user_id"`
	ResourceID string `json:"resource_id"`
	Permission string `json:"permission"`
}

type SeedRoleGrant struct {
	Role       string `json:"role"`
	ResourceID string `json:"resource_id"`
	Permission string `json:"permission"`
}

// DecodeSeed reads a Seed. Numbers are kept as json.Number.
func DecodeSeed(r io.Reader) (Seed, error) {
	var seed Seed
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("failed to decode seed: %w", err)
	}
	return seed, nil
}
