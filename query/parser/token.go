// File: parser/token.go
package parser

// Pos locates a token in the query text
type Pos struct {
	Offset int // byte offset
	Line   int
	Column int
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Pos     Pos
}

// TokenType represents the type of a token
type TokenType int

// Token types
const (
	TokenIllegal TokenType = iota
	TokenEOF

	// Identifiers and literals
	TokenIdent
	TokenString

	// Keywords
	TokenGet
	TokenCheck
	TokenGrant
	TokenRevoke
	TokenUpdate
	TokenDelete
	TokenWhere
	TokenAnd
	TokenOr
	TokenNot
	TokenOn
	TokenTo
	TokenFrom
	TokenSet

	// Operators and delimiters
	TokenEquals // =
	TokenLParen // (
	TokenRParen // )
	TokenComma  // ,
)

// Keywords maps keyword strings to token types. Matching is case-sensitive.
var Keywords = map[string]TokenType{
	"GET":    TokenGet,
	"CHECK":  TokenCheck,
	"GRANT":  TokenGrant,
	"REVOKE": TokenRevoke,
	"UPDATE": TokenUpdate,
	"DELETE": TokenDelete,
	"WHERE":  TokenWhere,
	"AND":    TokenAnd,
	"OR":     TokenOr,
	"NOT":    TokenNot,
	"ON":     TokenOn,
	"TO":     TokenTo,
	"FROM":   TokenFrom,
	"SET":    TokenSet,
}

var tokenNames = map[TokenType]string{
	TokenIllegal: "illegal character",
	TokenEOF:     "end of input",
	TokenIdent:   "identifier",
	TokenString:  "string literal",
	TokenEquals:  "'='",
	TokenLParen:  "'('",
	TokenRParen:  "')'",
	TokenComma:   "','",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	for kw, typ := range Keywords {
		if typ == t {
			return kw
		}
	}
	return "unknown"
}

// IsKeyword reports whether the token type is a reserved keyword
func (t TokenType) IsKeyword() bool {
	return t >= TokenGet && t <= TokenSet
}

// IsOperator reports whether the token type is an operator or delimiter
func (t TokenType) IsOperator() bool {
	return t >= TokenEquals && t <= TokenComma
}
