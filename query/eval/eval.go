// Package eval compiles WHERE predicates into record matchers.
package eval

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dangerclosesec/geneql/query/model"
)

// Matcher reports whether a record satisfies a compiled predicate
type Matcher func(model.Record) (bool, error)

// FieldError is returned when a predicate names a field the record lacks
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown field: %s", e.Field)
}

// MatchAll accepts every record
func MatchAll(model.Record) (bool, error) { return true, nil }

// Compile turns a predicate into a Matcher. A nil predicate matches everything.
func Compile(pred model.Predicate) Matcher {
	if pred == nil {
		return MatchAll
	}
	return func(r model.Record) (bool, error) {
		return evaluate(pred, r)
	}
}

func evaluate(pred model.Predicate, r model.Record) (bool, error) {
	switch p := pred.(type) {
	case *model.Equals:
		v, ok := r[p.Field]
		if !ok {
			return false, &FieldError{Field: p.Field}
		}
		return Equal(v, p.Value), nil

	case *model.And:
		left, err := evaluate(p.Left, r)
		if err != nil {
			return false, err
		}
		// Short-circuit if left is false
		if !left {
			return false, nil
		}
		return evaluate(p.Right, r)

	case *model.Or:
		left, err := evaluate(p.Left, r)
		if err != nil {
			return false, err
		}
		// Short-circuit if left is true
		if left {
			return true, nil
		}
		return evaluate(p.Right, r)

	case *model.Not:
		v, err := evaluate(p.Expr, r)
		if err != nil {
			return false, err
		}
		return !v, nil

	default:
		return false, fmt.Errorf("unsupported predicate type: %T", pred)
	}
}

// Equal compares a record value against a query literal
func Equal(value interface{}, literal string) bool {
	switch v := value.(type) {
	case string:
		return v == literal
	case nil:
		return literal == ""
	case bool:
		b, err := strconv.ParseBool(literal)
		return err == nil && b == v
	}

	if f, ok := toFloat64(value); ok {
		lit, err := strconv.ParseFloat(literal, 64)
		return err == nil && f == lit
	}

	return fmt.Sprint(value) == literal
}

// toFloat64 converts the numeric types found in decoded records
func toFloat64(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
