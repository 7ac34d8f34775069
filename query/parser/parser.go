// File: parser/parser.go
package parser

import (
	"fmt"
	"strings"

	"github.com/dangerclosesec/geneql/query/model"
)

// tokenSource feeds the parser one token at a time
type tokenSource interface {
	NextToken() Token
	Err() error
}

// Parser turns a token stream into a single query. It stops at the first
// error and never returns a partially built query.
type Parser struct {
	src       tokenSource
	query     string
	curToken  Token
	peekToken Token
	err       error
}

// NewParser creates a new Parser
func NewParser(l *Lexer) *Parser {
	return newParser(l, l.input)
}

func newParser(src tokenSource, query string) *Parser {
	p := &Parser{
		src:   src,
		query: query,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.src.NextToken()
}

// Err returns the first error hit while parsing
func (p *Parser) Err() error {
	return p.err
}

// ParseQuery parses exactly one query followed by end of input
func (p *Parser) ParseQuery() (model.Query, error) {
	var q model.Query

	switch p.curToken.Type {
	case TokenGet:
		q = p.parseGet()
	case TokenCheck:
		q = p.parseCheck()
	case TokenGrant:
		q = p.parseGrant()
	case TokenRevoke:
		q = p.parseRevoke()
	case TokenUpdate:
		q = p.parseUpdate()
	case TokenDelete:
		q = p.parseDelete()
	case TokenEOF:
		p.fail(p.curToken, "empty query", "query keyword")
	case TokenIllegal:
		p.fail(p.curToken, "illegal token", "")
	default:
		p.err = &SyntaxError{
			Pos:     p.curToken.Pos,
			Message: "unsupported query type: " + strings.TrimSpace(p.query),
			Query:   p.query,
		}
	}

	if p.err != nil {
		return nil, p.err
	}

	if !p.peekTokenIs(TokenEOF) {
		p.fail(p.peekToken, "unexpected token after query", TokenEOF.String())
		return nil, p.err
	}

	return q, nil
}

// parseGet parses GET <Entity> [WHERE <predicate>]
func (p *Parser) parseGet() model.Query {
	if !p.expectPeek(TokenIdent, "entity name") {
		return nil
	}

	q := &model.Get{Entity: p.curToken.Literal}

	if p.peekTokenIs(TokenWhere) {
		p.nextToken()
		q.Conditions = p.parsePredicate()
		if q.Conditions == nil {
			return nil
		}
	}

	return q
}

// parseCheck parses CHECK <userId> <permission> ON <resourceId>
func (p *Parser) parseCheck() model.Query {
	user, ok := p.expectValue("user id")
	if !ok {
		return nil
	}
	perm, ok := p.expectValue("permission")
	if !ok {
		return nil
	}
	if !p.expectPeek(TokenOn, "") {
		return nil
	}
	resource, ok := p.expectValue("resource id")
	if !ok {
		return nil
	}

	return &model.Check{UserID: user, ResourceID: resource, Permission: perm}
}

// parseGrant parses GRANT <permission> ON <resourceId> TO <userId>
func (p *Parser) parseGrant() model.Query {
	perm, resource, user, ok := p.parseEdge(TokenTo)
	if !ok {
		return nil
	}
	return &model.Grant{UserID: user, ResourceID: resource, Permission: perm}
}

// parseRevoke parses REVOKE <permission> ON <resourceId> FROM <userId>
func (p *Parser) parseRevoke() model.Query {
	perm, resource, user, ok := p.parseEdge(TokenFrom)
	if !ok {
		return nil
	}
	return &model.Revoke{UserID: user, ResourceID: resource, Permission: perm}
}

// parseEdge parses the shared <permission> ON <resourceId> <sep> <userId> tail
func (p *Parser) parseEdge(sep TokenType) (perm, resource, user string, ok bool) {
	if perm, ok = p.expectValue("permission"); !ok {
		return
	}
	if !p.expectPeek(TokenOn, "") {
		return "", "", "", false
	}
	if resource, ok = p.expectValue("resource id"); !ok {
		return
	}
	if !p.expectPeek(sep, "") {
		return "", "", "", false
	}
	user, ok = p.expectValue("user id")
	return
}

// parseUpdate parses UPDATE <Entity> SET <field> = <value>[, ...] WHERE <predicate>
func (p *Parser) parseUpdate() model.Query {
	if !p.expectPeek(TokenIdent, "entity name") {
		return nil
	}

	q := &model.Update{
		Entity:  p.curToken.Literal,
		Changes: make(map[string]string),
	}

	if !p.expectPeek(TokenSet, "") {
		return nil
	}

	for {
		if !p.expectPeek(TokenIdent, "field name") {
			return nil
		}
		fieldTok := p.curToken
		if _, dup := q.Changes[fieldTok.Literal]; dup {
			p.fail(fieldTok, fmt.Sprintf("duplicate field %q in SET", fieldTok.Literal), "")
			return nil
		}
		if !p.expectPeek(TokenEquals, "") {
			return nil
		}
		p.nextToken()
		value, ok := p.parseValue("value", false)
		if !ok {
			return nil
		}
		q.Changes[fieldTok.Literal] = value

		if !p.peekTokenIs(TokenComma) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(TokenWhere, "") {
		return nil
	}
	q.Conditions = p.parsePredicate()
	if q.Conditions == nil {
		return nil
	}

	return q
}

// parseDelete parses DELETE <Entity> WHERE <predicate>
func (p *Parser) parseDelete() model.Query {
	if !p.expectPeek(TokenIdent, "entity name") {
		return nil
	}

	q := &model.Delete{Entity: p.curToken.Literal}

	if !p.expectPeek(TokenWhere, "") {
		return nil
	}
	q.Conditions = p.parsePredicate()
	if q.Conditions == nil {
		return nil
	}

	return q
}

// parsePredicate parses the expression following WHERE
func (p *Parser) parsePredicate() model.Predicate {
	p.nextToken() // move past WHERE
	return p.parseOr()
}

// parseOr parses expressions joined by OR
func (p *Parser) parseOr() model.Predicate {
	left := p.parseAnd()
	for left != nil && p.peekTokenIs(TokenOr) {
		p.nextToken() // OR
		p.nextToken()
		right := p.parseAnd()
		if right == nil {
			return nil
		}
		left = &model.Or{Left: left, Right: right}
	}
	return left
}

// parseAnd parses expressions joined by AND
func (p *Parser) parseAnd() model.Predicate {
	left := p.parseNot()
	for left != nil && p.peekTokenIs(TokenAnd) {
		p.nextToken() // AND
		p.nextToken()
		right := p.parseNot()
		if right == nil {
			return nil
		}
		left = &model.And{Left: left, Right: right}
	}
	return left
}

// parseNot parses an optionally negated primary expression
func (p *Parser) parseNot() model.Predicate {
	if !p.curTokenIs(TokenNot) {
		return p.parsePrimary()
	}
	p.nextToken()
	expr := p.parseNot()
	if expr == nil {
		return nil
	}
	return &model.Not{Expr: expr}
}

// parsePrimary parses a comparison or a parenthesized expression
func (p *Parser) parsePrimary() model.Predicate {
	switch p.curToken.Type {
	case TokenLParen:
		p.nextToken()
		expr := p.parseOr()
		if expr == nil {
			return nil
		}
		if !p.expectPeek(TokenRParen, "") {
			return nil
		}
		return expr

	case TokenIdent:
		field := p.curToken.Literal
		if !p.expectPeek(TokenEquals, "") {
			return nil
		}
		p.nextToken()
		value, ok := p.parseValue("value", false)
		if !ok {
			return nil
		}
		return &model.Equals{Field: field, Value: value}

	default:
		p.fail(p.curToken, "expected condition", "field name or '('")
		return nil
	}
}

// expectValue advances and reads a required, non-empty value
func (p *Parser) expectValue(what string) (string, bool) {
	p.nextToken()
	return p.parseValue(what, true)
}

// parseValue reads the current token as an identifier or string literal
func (p *Parser) parseValue(what string, required bool) (string, bool) {
	switch p.curToken.Type {
	case TokenIdent:
		return p.curToken.Literal, true
	case TokenString:
		if required && p.curToken.Literal == "" {
			p.fail(p.curToken, what+" must not be empty", "")
			return "", false
		}
		return p.curToken.Literal, true
	}
	p.fail(p.curToken, "expected "+what, "identifier or string literal")
	return "", false
}

// curTokenIs checks if the current token is of the given type
func (p *Parser) curTokenIs(t TokenType) bool {
	return p.curToken.Type == t
}

// peekTokenIs checks if the next token is of the given type
func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek checks if the next token is of the expected type and advances if it is
func (p *Parser) expectPeek(t TokenType, what string) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	if what == "" {
		what = t.String()
	}
	p.fail(p.peekToken, "expected "+what, t.String())
	return false
}

// fail records the first error. An illegal token reports the lexer's
// error rather than a syntax error.
func (p *Parser) fail(tok Token, msg, expected string) {
	if p.err != nil {
		return
	}
	if tok.Type == TokenIllegal {
		if err := p.src.Err(); err != nil {
			p.err = err
			return
		}
	}
	p.err = &SyntaxError{
		Pos:      tok.Pos,
		Message:  msg,
		Expected: expected,
		Found:    describe(tok),
		Query:    p.query,
	}
}

func describe(tok Token) string {
	switch {
	case tok.Type == TokenEOF:
		return tok.Type.String()
	case tok.Type == TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case tok.Type == TokenString:
		return fmt.Sprintf("string %q", tok.Literal)
	case tok.Type.IsKeyword():
		return "keyword " + tok.Literal
	}
	return fmt.Sprintf("%q", tok.Literal)
}
