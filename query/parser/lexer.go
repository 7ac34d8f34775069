// File: parser/lexer.go
package parser

import (
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes query text lazily, one token per NextToken call
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
	err          *LexError
}

// NewLexer creates a new Lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// Tokenize scans the whole input and returns its tokens, ending with EOF
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenIllegal {
			return nil, l.Err()
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// Err returns the error behind the last illegal token, if any
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// readChar reads the next character and advances the position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing the position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0 // EOF
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) pos() Pos {
	return Pos{Offset: l.position, Line: l.line, Column: l.column}
}

// NextToken returns the next token. Once an illegal character has been
// reported the lexer only produces EOF.
func (l *Lexer) NextToken() Token {
	if l.err != nil {
		return Token{Type: TokenEOF, Pos: l.err.Pos}
	}

	for isSpace(l.ch) {
		l.readChar()
	}

	pos := l.pos()
	var tok Token

	switch {
	case l.atEOF():
		return Token{Type: TokenEOF, Literal: "", Pos: pos}
	case l.ch == '=':
		tok = Token{Type: TokenEquals, Literal: "=", Pos: pos}
	case l.ch == '(':
		tok = Token{Type: TokenLParen, Literal: "(", Pos: pos}
	case l.ch == ')':
		tok = Token{Type: TokenRParen, Literal: ")", Pos: pos}
	case l.ch == ',':
		tok = Token{Type: TokenComma, Literal: ",", Pos: pos}
	case l.ch == '\'' || l.ch == '"':
		return l.readString(pos)
	case isLetter(l.ch) || l.ch == '_':
		literal := l.readIdentifier()
		return Token{Type: lookupIdent(literal), Literal: literal, Pos: pos}
	default:
		r, _ := utf8.DecodeRuneInString(l.input[l.position:])
		l.err = &LexError{Pos: pos, Char: r}
		return Token{Type: TokenIllegal, Literal: string(r), Pos: pos}
	}

	l.readChar()
	return tok
}

// readIdentifier reads an identifier
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readString reads a quoted literal. A backslash escapes the quote
// character and itself; other escapes are kept as written.
func (l *Lexer) readString(start Pos) Token {
	quote := l.ch
	l.readChar() // opening quote

	var b strings.Builder
	for {
		if l.atEOF() {
			l.err = &LexError{Pos: start, Char: rune(quote), Reason: "unterminated string literal"}
			return Token{Type: TokenIllegal, Literal: string(quote), Pos: start}
		}
		if l.ch == '\\' && (l.peekChar() == quote || l.peekChar() == '\\') {
			l.readChar()
			b.WriteByte(l.ch)
			l.readChar()
			continue
		}
		if l.ch == quote {
			l.readChar()
			return Token{Type: TokenString, Literal: b.String(), Pos: start}
		}
		b.WriteByte(l.ch)
		l.readChar()
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

// isLetter returns true if the character is a letter
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit returns true if the character is a digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// lookupIdent checks if the identifier is a keyword
func lookupIdent(ident string) TokenType {
	if tok, ok := Keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
