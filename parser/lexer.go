package parser

import (
	"unicode"
	"unicode/utf8"
)

// Lexer tokeniza o texto de um arquivo schema.prisma
type Lexer struct {
	input        string
	position     int  // posição do caractere atual
	readPosition int  // posição de leitura (após o caractere atual)
	ch           byte // caractere sendo examinado
	line         int
	column       int
}

// NewLexer cria um novo lexer para o input
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // NUL representa EOF
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// NextToken retorna o próximo token do input
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	tok.Line = l.line
	tok.Column = l.column

	switch l.ch {
	case '@':
		if l.peekChar() == '@' {
			l.readChar()
			tok = Token{Type: TokenAtAt, Literal: "@@", Line: tok.Line, Column: tok.Column}
		} else {
			tok = l.newToken(TokenAt, tok.Line, tok.Column)
		}
	case '(':
		tok = l.newToken(TokenLParen, tok.Line, tok.Column)
	case ')':
		tok = l.newToken(TokenRParen, tok.Line, tok.Column)
	case '{':
		tok = l.newToken(TokenLBrace, tok.Line, tok.Column)
	case '}':
		tok = l.newToken(TokenRBrace, tok.Line, tok.Column)
	case '[':
		tok = l.newToken(TokenLBracket, tok.Line, tok.Column)
	case ']':
		tok = l.newToken(TokenRBracket, tok.Line, tok.Column)
	case '=':
		tok = l.newToken(TokenEqual, tok.Line, tok.Column)
	case ':':
		tok = l.newToken(TokenColon, tok.Line, tok.Column)
	case '?':
		tok = l.newToken(TokenQuestion, tok.Line, tok.Column)
	case ',':
		tok = l.newToken(TokenComma, tok.Line, tok.Column)
	case '.':
		tok = l.newToken(TokenDot, tok.Line, tok.Column)
	case '"':
		tok.Type = TokenString
		tok.Literal = l.readString()
		l.readChar() // consumir a aspas de fechamento
		return tok
	case '\n':
		tok = l.newToken(TokenNewline, tok.Line, tok.Column)
	case 0:
		tok.Type = TokenEOF
		tok.Literal = ""
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			return tok
		}
		if isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())) {
			tok.Type, tok.Literal = l.readNumber()
			return tok
		}
		tok = l.newToken(TokenIllegal, tok.Line, tok.Column)
	}

	l.readChar()
	return tok
}

// skipWhitespace pula espaços em branco e comentários
func (l *Lexer) skipWhitespace() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '/' {
			l.skipLineComment()
			continue
		}

		if l.ch == '/' && l.peekChar() == '*' {
			l.skipBlockComment()
			continue
		}

		break
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) skipBlockComment() {
	l.readChar() // pular '/'
	l.readChar() // pular '*'
	for {
		if l.ch == 0 {
			return // EOF sem fechar comentário
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber lê um número (int ou float), com sinal opcional
func (l *Lexer) readNumber() (TokenType, string) {
	position := l.position
	tokenType := TokenInt

	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}

	if l.ch == '.' && isDigit(l.peekChar()) {
		tokenType = TokenFloat
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return tokenType, l.input[position:l.position]
}

// readString lê uma string entre aspas, resolvendo escapes simples
func (l *Lexer) readString() string {
	position := l.position + 1 // pular a aspas inicial
	for {
		l.readChar()
		if l.ch == '"' {
			break
		}
		if l.ch == 0 || l.ch == '\n' {
			break // EOF ou newline sem fechar string
		}
		if l.ch == '\\' {
			l.readChar() // pular o caractere escapado
		}
	}
	return l.input[position:l.position]
}

func (l *Lexer) newToken(tokenType TokenType, line, column int) Token {
	return Token{
		Type:    tokenType,
		Literal: string(l.ch),
		Line:    line,
		Column:  column,
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' ||
		ch >= utf8.RuneSelf && unicode.IsLetter(rune(ch))
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
