// File: parser/parse.go
package parser

import (
	"strings"

	"github.com/dangerclosesec/geneql/query/model"
)

// Parse lexes and parses a single query
func Parse(input string) (model.Query, error) {
	return NewParser(NewLexer(input)).ParseQuery()
}

// ParseTokens parses an already tokenized query. A missing trailing EOF
// token is implied.
func ParseTokens(tokens []Token) (model.Query, error) {
	literals := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type != TokenEOF {
			literals = append(literals, tok.Literal)
		}
	}
	return newParser(&tokenStream{tokens: tokens}, strings.Join(literals, " ")).ParseQuery()
}

// tokenStream replays a token slice
type tokenStream struct {
	tokens []Token
	next   int
}

func (s *tokenStream) NextToken() Token {
	if s.next >= len(s.tokens) {
		var pos Pos
		if n := len(s.tokens); n > 0 {
			pos = s.tokens[n-1].Pos
		}
		return Token{Type: TokenEOF, Pos: pos}
	}
	tok := s.tokens[s.next]
	s.next++
	return tok
}

func (s *tokenStream) Err() error { return nil }
