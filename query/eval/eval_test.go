package eval

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dangerclosesec/geneql/query/model"
	"github.com/dangerclosesec/geneql/query/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileWhere(t *testing.T, where string) Matcher {
	t.Helper()
	q, err := parser.Parse("GET User WHERE " + where)
	require.NoError(t, err)
	return Compile(q.(*model.Get).Conditions)
}

func TestCompile(t *testing.T) {
	alice := model.Record{"id": "u1", "username": "alice", "role": "admin", "active": true, "age": 30}

	tests := []struct {
		where    string
		expected bool
	}{
		{"username = 'alice'", true},
		{"username = 'Alice'", false},
		{"username = 'alice' AND role = 'admin'", true},
		{"username = 'alice' AND role = 'user'", false},
		{"username = 'bob' OR role = 'admin'", true},
		{"username = 'bob' OR role = 'user'", false},
		{"NOT username = 'bob'", true},
		{"NOT (username = 'alice' OR role = 'user')", false},
		{"active = 'true'", true},
		{"active = 'false'", false},
		{"active = 'yes'", false},
		{"age = '30'", true},
		{"age = '30.0'", true},
		{"age = 'thirty'", false},
	}

	for _, tt := range tests {
		t.Run(tt.where, func(t *testing.T) {
			ok, err := compileWhere(t, tt.where)(alice)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
		})
	}
}

func TestCompileNilMatchesAll(t *testing.T) {
	m := Compile(nil)
	ok, err := m(model.Record{})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMissingFieldIsFieldError(t *testing.T) {
	_, err := compileWhere(t, "missingField = 'x'")(model.Record{"id": "u1"})

	var fieldErr *FieldError
	require.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "missingField", fieldErr.Field)
}

func TestShortCircuit(t *testing.T) {
	r := model.Record{"a": "1"}

	// The right operand names a missing field and must not be evaluated
	ok, err := compileWhere(t, "a = '2' AND missing = 'x'")(r)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = compileWhere(t, "a = '1' OR missing = 'x'")(r)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = compileWhere(t, "a = '1' AND missing = 'x'")(r)
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name     string
		value    interface{}
		literal  string
		expected bool
	}{
		{"string", "x", "x", true},
		{"string is exact", "30", "30.0", false},
		{"nil matches empty", nil, "", true},
		{"nil does not match text", nil, "null", false},
		{"float", 2.5, "2.5", true},
		{"int64", int64(7), "7", true},
		{"json number", json.Number("12"), "12.0", true},
		{"bool", false, "false", true},
		{"fallback", []string{"a"}, "[a]", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Equal(tt.value, tt.literal))
		})
	}
}
