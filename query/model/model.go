// Package model holds the parsed form of GeneQL queries.
package model

import (
	"sort"
	"strings"
)

// QueryType identifies the variant of a parsed query
type QueryType string

const (
	QueryGet    QueryType = "GET"
	QueryCheck  QueryType = "CHECK"
	QueryGrant  QueryType = "GRANT"
	QueryRevoke QueryType = "REVOKE"
	QueryUpdate QueryType = "UPDATE"
	QueryDelete QueryType = "DELETE"
)

// Record is a single entity as seen by a WHERE clause
type Record map[string]interface{}

// ID returns the record's "id" field rendered as a string
func (r Record) ID() string {
	if v, ok := r["id"].(string); ok {
		return v
	}
	return ""
}

// Query is implemented by every query variant. The set is closed.
type Query interface {
	Type() QueryType
	String() string
	query()
}

// Get selects entities of one kind
type Get struct {
	Entity     string
	Conditions Predicate // nil matches every record
}

func (*Get) Type() QueryType { return QueryGet }
func (*Get) query()          {}

func (q *Get) String() string {
	s := "GET " + q.Entity
	if q.Conditions != nil {
		s += " WHERE " + q.Conditions.String()
	}
	return s
}

// Check asks whether a user holds a permission on a resource
type Check struct {
	UserID     string
	ResourceID string
	Permission string
}

func (*Check) Type() QueryType { return QueryCheck }
func (*Check) query()          {}

func (q *Check) String() string {
	return "CHECK " + Quote(q.UserID) + " " + Quote(q.Permission) + " ON " + Quote(q.ResourceID)
}

// Grant adds a direct permission edge
type Grant struct {
	UserID     string
	ResourceID string
	Permission string
}

func (*Grant) Type() QueryType { return QueryGrant }
func (*Grant) query()          {}

func (q *Grant) String() string {
	return "GRANT " + Quote(q.Permission) + " ON " + Quote(q.ResourceID) + " TO " + Quote(q.UserID)
}

// Revoke removes a direct permission edge
type Revoke struct {
	UserID     string
	ResourceID string
	Permission string
}

func (*Revoke) Type() QueryType { return QueryRevoke }
func (*Revoke) query()          {}

func (q *Revoke) String() string {
	return "REVOKE " + Quote(q.Permission) + " ON " + Quote(q.ResourceID) + " FROM " + Quote(q.UserID)
}

// Update changes fields on every matching entity
type Update struct {
	Entity     string
	Conditions Predicate
	Changes    map[string]string
}

func (*Update) Type() QueryType { return QueryUpdate }
func (*Update) query()          {}

func (q *Update) String() string {
	fields := make([]string, 0, len(q.Changes))
	for f := range q.Changes {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	sets := make([]string, len(fields))
	for i, f := range fields {
		sets[i] = f + " = " + QuoteValue(q.Changes[f])
	}

	return "UPDATE " + q.Entity + " SET " + strings.Join(sets, ", ") + " WHERE " + q.Conditions.String()
}

// Delete removes every matching entity
type Delete struct {
	Entity     string
	Conditions Predicate
}

func (*Delete) Type() QueryType { return QueryDelete }
func (*Delete) query()          {}

func (q *Delete) String() string {
	return "DELETE " + q.Entity + " WHERE " + q.Conditions.String()
}
