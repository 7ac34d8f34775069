package parser

import (
	"testing"

	"github.com/dangerclosesec/geneql/query/model"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func drawIdent(t *rapid.T, label string) string {
	s := rapid.StringMatching(`[A-Za-z_][A-Za-z0-9_]{0,7}`).Draw(t, label).(string)
	if model.IsReserved(s) {
		s += "_"
	}
	return s
}

// drawID mixes bare identifiers with arbitrary non-empty text
func drawID(t *rapid.T, label string) string {
	if rapid.Bool().Draw(t, label+"_bare").(bool) {
		return drawIdent(t, label)
	}
	return rapid.StringN(1, 12, -1).Draw(t, label).(string)
}

func drawPredicate(t *rapid.T, depth int) model.Predicate {
	kind := 0
	if depth > 0 {
		kind = rapid.IntRange(0, 3).Draw(t, "kind").(int)
	}

	switch kind {
	case 1:
		return &model.And{Left: drawPredicate(t, depth-1), Right: drawPredicate(t, depth-1)}
	case 2:
		return &model.Or{Left: drawPredicate(t, depth-1), Right: drawPredicate(t, depth-1)}
	case 3:
		return &model.Not{Expr: drawPredicate(t, depth-1)}
	}
	return &model.Equals{
		Field: drawIdent(t, "field"),
		Value: rapid.String().Draw(t, "value").(string),
	}
}

func drawQuery(t *rapid.T) model.Query {
	switch rapid.IntRange(0, 6).Draw(t, "variant").(int) {
	case 0:
		return &model.Get{Entity: drawIdent(t, "entity")}
	case 1:
		return &model.Get{Entity: drawIdent(t, "entity"), Conditions: drawPredicate(t, 3)}
	case 2:
		return &model.Check{UserID: drawID(t, "user"), Permission: drawID(t, "perm"), ResourceID: drawID(t, "resource")}
	case 3:
		return &model.Grant{UserID: drawID(t, "user"), Permission: drawID(t, "perm"), ResourceID: drawID(t, "resource")}
	case 4:
		return &model.Revoke{UserID: drawID(t, "user"), Permission: drawID(t, "perm"), ResourceID: drawID(t, "resource")}
	case 5:
		changes := make(map[string]string)
		n := rapid.IntRange(1, 4).Draw(t, "changes").(int)
		for i := 0; i < n; i++ {
			changes[drawIdent(t, "set_field")] = rapid.String().Draw(t, "set_value").(string)
		}
		return &model.Update{Entity: drawIdent(t, "entity"), Changes: changes, Conditions: drawPredicate(t, 2)}
	default:
		return &model.Delete{Entity: drawIdent(t, "entity"), Conditions: drawPredicate(t, 2)}
	}
}

func TestCanonicalRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		q := drawQuery(t)
		text := q.String()

		tokens, err := Tokenize(text)
		require.NoError(t, err, text)

		parsed, err := ParseTokens(tokens)
		require.NoError(t, err, text)
		require.Equal(t, q, parsed, text)
		require.Equal(t, text, parsed.String())
	})
}

func TestParseThenRenderIsStable(t *testing.T) {
	for _, input := range []string{
		"GET User WHERE a = 'x' OR b = 'y' AND NOT c = 'z'",
		"GET User WHERE (a = 'x' OR b = 'y') AND c = 'z'",
		"GET User WHERE a = 'x' AND (b = 'y' AND c = 'z')",
		"UPDATE User SET z = '1', a = \"two\" WHERE NOT (id = 'u1' OR id = 'u2')",
		"CHECK 'user 1' read ON doc1",
	} {
		q, err := Parse(input)
		require.NoError(t, err, input)

		again, err := Parse(q.String())
		require.NoError(t, err, q.String())
		require.Equal(t, q, again)
	}
}
