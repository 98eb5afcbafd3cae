package parser

// TokenType representa o tipo de token
type TokenType string

const (
	// Tokens especiais
	TokenEOF     TokenType = "EOF"
	TokenIllegal TokenType = "ILLEGAL"
	TokenNewline TokenType = "NEWLINE"

	// Identificadores e literais
	TokenIdent  TokenType = "IDENT"
	TokenString TokenType = "STRING"
	TokenInt    TokenType = "INT"
	TokenFloat  TokenType = "FLOAT"

	// Operadores e símbolos
	TokenAt       TokenType = "@"
	TokenAtAt     TokenType = "@@"
	TokenLParen   TokenType = "("
	TokenRParen   TokenType = ")"
	TokenLBrace   TokenType = "{"
	TokenRBrace   TokenType = "}"
	TokenLBracket TokenType = "["
	TokenRBracket TokenType = "]"
	TokenEqual    TokenType = "="
	TokenColon    TokenType = ":"
	TokenQuestion TokenType = "?"
	TokenComma    TokenType = ","
	TokenDot      TokenType = "."

	// Keywords
	TokenModel       TokenType = "model"
	TokenEnum        TokenType = "enum"
	TokenDatasource  TokenType = "datasource"
	TokenGenerator   TokenType = "generator"
	TokenTypeKeyword TokenType = "type"
)

// Token representa um token produzido pelo lexer, com posição no arquivo
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var keywords = map[string]TokenType{
	"model":      TokenModel,
	"enum":       TokenEnum,
	"datasource": TokenDatasource,
	"generator":  TokenGenerator,
	"type":       TokenTypeKeyword,
}

// LookupIdent retorna o TokenType para um identificador
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdent
}

// IsKeyword verifica se uma string é uma keyword do schema
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}
