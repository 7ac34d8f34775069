package model

import "strings"

// Predicate is a boolean expression over record fields
type Predicate interface {
	String() string
	predicate()
}

// Equals matches records whose Field equals Value
type Equals struct {
	Field string
	Value string
}

func (*Equals) predicate() {}

func (e *Equals) String() string {
	return e.Field + " = " + QuoteValue(e.Value)
}

// And represents a logical AND of two predicates
type And struct {
	Left  Predicate
	Right Predicate
}

func (*And) predicate() {}

func (a *And) String() string {
	return group(a.Left, isOr) + " AND " + group(a.Right, isBinary)
}

// Or represents a logical OR of two predicates
type Or struct {
	Left  Predicate
	Right Predicate
}

func (*Or) predicate() {}

func (o *Or) String() string {
	return o.Left.String() + " OR " + group(o.Right, isOr)
}

// Not negates a predicate
type Not struct {
	Expr Predicate
}

func (*Not) predicate() {}

func (n *Not) String() string {
	return "NOT " + group(n.Expr, isBinary)
}

// group parenthesizes p when needsParens reports true. Parsing is
// left-associative, so a right operand at the same level must keep its
// parentheses for the tree to survive a round trip.
func group(p Predicate, needsParens func(Predicate) bool) string {
	if needsParens(p) {
		return "(" + p.String() + ")"
	}
	return p.String()
}

func isOr(p Predicate) bool {
	_, ok := p.(*Or)
	return ok
}

func isBinary(p Predicate) bool {
	switch p.(type) {
	case *And, *Or:
		return true
	}
	return false
}

// ReservedWords are the uppercase keywords of the language
var ReservedWords = []string{
	"GET", "CHECK", "GRANT", "REVOKE", "UPDATE", "DELETE",
	"WHERE", "AND", "OR", "NOT", "ON", "TO", "FROM", "SET",
}

// IsReserved reports whether s is a keyword
func IsReserved(s string) bool {
	for _, w := range ReservedWords {
		if w == s {
			return true
		}
	}
	return false
}

// IsIdentifier reports whether s lexes as a single identifier token
func IsIdentifier(s string) bool {
	if s == "" || IsReserved(s) {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '_', 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z':
		case '0' <= ch && ch <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// Quote renders s as an identifier when possible, otherwise as a
// single-quoted string literal
func Quote(s string) string {
	if IsIdentifier(s) {
		return s
	}
	return QuoteValue(s)
}

// QuoteValue always renders s as a single-quoted string literal
func QuoteValue(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('\'')
	return b.String()
}
