// File: parser/errors.go
package parser

import "fmt"

// LexError reports a character the lexer cannot start a token with
type LexError struct {
	Pos    Pos
	Char   rune
	Reason string
}

func (e *LexError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "unexpected character"
	}
	return fmt.Sprintf("lex error at %d:%d: %s %q", e.Pos.Line, e.Pos.Column, reason, e.Char)
}

// SyntaxError reports a token sequence that does not form a query
type SyntaxError struct {
	Pos      Pos
	Message  string
	Expected string
	Found    string
	Query    string
}

func (e *SyntaxError) Error() string {
	switch {
	case e.Expected != "" && e.Found != "":
		return fmt.Sprintf("syntax error at %d:%d: %s (found %s, expected %s)",
			e.Pos.Line, e.Pos.Column, e.Message, e.Found, e.Expected)
	case e.Found != "":
		return fmt.Sprintf("syntax error at %d:%d: %s (found %s)",
			e.Pos.Line, e.Pos.Column, e.Message, e.Found)
	}
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}
