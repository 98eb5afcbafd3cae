package parser

import (
	"fmt"
	"strconv"
)

// ParseError é um erro de sintaxe com posição no arquivo
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("%s na linha %d, coluna %d", e.Message, e.Line, e.Column)
	}
	return fmt.Sprintf("%s na linha %d", e.Message, e.Line)
}

// Parser consome tokens do lexer e constrói a AST
type Parser struct {
	lexer     *Lexer
	errors    []*ParseError
	curToken  Token
	peekToken Token
}

// NewParser cria um novo parser
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{lexer: lexer}

	// Ler dois tokens para preencher curToken e peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Errors retorna os erros encontrados durante o parsing
func (p *Parser) Errors() []*ParseError {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, &ParseError{
		Line:    p.curToken.Line,
		Column:  p.curToken.Column,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *Parser) expectToken(t TokenType) bool {
	if p.curToken.Type == t {
		return true
	}
	p.errorf("esperado %s, encontrado %s", t, p.curToken.Type)
	return false
}

func (p *Parser) pos() Pos {
	return Pos{Line: p.curToken.Line, Column: p.curToken.Column}
}

// ParseSchema parseia o documento completo
func (p *Parser) ParseSchema() *Schema {
	schema := &Schema{}

	for p.curToken.Type != TokenEOF {
		switch p.curToken.Type {
		case TokenDatasource:
			if ds := p.parseDatasource(); ds != nil {
				schema.Datasources = append(schema.Datasources, ds)
			}
		case TokenGenerator:
			if gen := p.parseGenerator(); gen != nil {
				schema.Generators = append(schema.Generators, gen)
			}
		case TokenModel:
			if model := p.parseModel(); model != nil {
				schema.Models = append(schema.Models, model)
			}
		case TokenEnum:
			if enum := p.parseEnum(); enum != nil {
				schema.Enums = append(schema.Enums, enum)
			}
		case TokenNewline:
			p.nextToken()
		default:
			p.errorf("token inesperado: %s", p.curToken.Type)
			p.nextToken()
		}
	}

	return schema
}

// parseDatasource parseia um bloco datasource
func (p *Parser) parseDatasource() *Datasource {
	ds := &Datasource{Pos: p.pos()}
	p.nextToken()

	if p.curToken.Type != TokenIdent {
		p.errorf("esperado identificador para nome do datasource")
		return nil
	}
	ds.Name = p.curToken.Literal
	p.nextToken()

	ds.Fields = p.parseConfigBlock()
	return ds
}

// parseGenerator parseia um bloco generator
func (p *Parser) parseGenerator() *Generator {
	gen := &Generator{Pos: p.pos()}
	p.nextToken()

	if p.curToken.Type != TokenIdent {
		p.errorf("esperado identificador para nome do generator")
		return nil
	}
	gen.Name = p.curToken.Literal
	p.nextToken()

	gen.Fields = p.parseConfigBlock()
	return gen
}

// parseConfigBlock parseia o corpo { nome = valor ... } de datasource/generator
func (p *Parser) parseConfigBlock() []*ConfigField {
	if !p.expectToken(TokenLBrace) {
		return nil
	}
	p.nextToken()

	var fields []*ConfigField
	for p.curToken.Type != TokenRBrace && p.curToken.Type != TokenEOF {
		if p.curToken.Type == TokenIdent {
			if field := p.parseConfigField(); field != nil {
				fields = append(fields, field)
			}
		} else {
			p.nextToken()
		}
	}

	if p.curToken.Type == TokenRBrace {
		p.nextToken()
	} else {
		p.errorf("esperado }, encontrado %s", p.curToken.Type)
	}

	return fields
}

// parseConfigField parseia um campo nome = valor
func (p *Parser) parseConfigField() *ConfigField {
	field := &ConfigField{Pos: p.pos(), Name: p.curToken.Literal}
	p.nextToken()

	if !p.expectToken(TokenEqual) {
		return nil
	}
	p.nextToken()

	field.Value = p.parseValue()
	return field
}

// parseModel parseia um model
func (p *Parser) parseModel() *Model {
	model := &Model{Pos: p.pos()}
	p.nextToken()

	if p.curToken.Type != TokenIdent {
		p.errorf("esperado identificador para nome do model")
		return nil
	}
	model.Name = p.curToken.Literal
	p.nextToken()

	if !p.expectToken(TokenLBrace) {
		return nil
	}
	p.nextToken()

	for p.curToken.Type != TokenRBrace && p.curToken.Type != TokenEOF {
		switch p.curToken.Type {
		case TokenAtAt:
			p.nextToken()
			if attr := p.parseAttribute(); attr != nil {
				model.BlockAttributes = append(model.BlockAttributes, attr)
			}
		case TokenIdent, TokenTypeKeyword:
			// TokenTypeKeyword permite campos chamados "type"
			if field := p.parseField(); field != nil {
				model.Fields = append(model.Fields, field)
			}
		case TokenNewline:
			p.nextToken()
		default:
			p.errorf("token inesperado no model '%s': %s", model.Name, p.curToken.Type)
			p.nextToken()
		}
	}

	if p.curToken.Type == TokenRBrace {
		p.nextToken()
	} else {
		p.errorf("esperado }, encontrado %s", p.curToken.Type)
	}

	return model
}

// parseField parseia um campo de model
func (p *Parser) parseField() *Field {
	field := &Field{Pos: p.pos(), Name: p.curToken.Literal}
	p.nextToken()

	field.Type = p.parseFieldType()

	for p.curToken.Type == TokenAt {
		p.nextToken()
		if attr := p.parseAttribute(); attr != nil {
			field.Attributes = append(field.Attributes, attr)
		}
	}

	return field
}

// parseFieldType parseia o tipo de um campo (Type, Type[], Type?, Unsupported("..."))
func (p *Parser) parseFieldType() *FieldType {
	fieldType := &FieldType{}

	if p.curToken.Type != TokenIdent {
		p.errorf("tipo de campo inválido")
		return nil
	}

	if p.curToken.Literal == "Unsupported" {
		fieldType.IsUnsupported = true
		p.nextToken()
		if p.curToken.Type == TokenLParen {
			p.nextToken()
			if p.curToken.Type == TokenString {
				fieldType.UnsupportedValue = p.curToken.Literal
				p.nextToken()
			}
			if !p.expectToken(TokenRParen) {
				return nil
			}
			p.nextToken()
		}
	} else {
		fieldType.Name = p.curToken.Literal
		p.nextToken()
	}

	// Prisma usa Type[] para listas, não []Type
	if p.curToken.Type == TokenLBracket {
		p.nextToken()
		if p.curToken.Type == TokenRBracket {
			fieldType.IsList = true
			p.nextToken()
		}
	}

	if p.curToken.Type == TokenQuestion {
		fieldType.IsOptional = true
		p.nextToken()
	}

	return fieldType
}

// parseEnum parseia um enum
func (p *Parser) parseEnum() *Enum {
	enum := &Enum{Pos: p.pos()}
	p.nextToken()

	if p.curToken.Type != TokenIdent {
		p.errorf("esperado identificador para nome do enum")
		return nil
	}
	enum.Name = p.curToken.Literal
	p.nextToken()

	if !p.expectToken(TokenLBrace) {
		return nil
	}
	p.nextToken()

	for p.curToken.Type != TokenRBrace && p.curToken.Type != TokenEOF {
		if p.curToken.Type == TokenIdent {
			value := &EnumValue{Pos: p.pos(), Name: p.curToken.Literal}
			p.nextToken()

			for p.curToken.Type == TokenAt {
				p.nextToken()
				if attr := p.parseAttribute(); attr != nil {
					value.Attributes = append(value.Attributes, attr)
				}
			}

			enum.Values = append(enum.Values, value)
		} else {
			p.nextToken()
		}
	}

	if p.curToken.Type == TokenRBrace {
		p.nextToken()
	} else {
		p.errorf("esperado }, encontrado %s", p.curToken.Type)
	}

	return enum
}

// parseAttribute parseia um atributo (id, default(...), db.Uuid, ...)
// O @ ou @@ já foi consumido pelo chamador.
func (p *Parser) parseAttribute() *Attribute {
	attr := &Attribute{Pos: p.pos()}

	if p.curToken.Type != TokenIdent {
		p.errorf("esperado identificador para nome do atributo")
		return nil
	}
	attr.Name = p.curToken.Literal
	p.nextToken()

	// Atributos compostos: @db.Uuid, @db.VarChar(255)
	for p.curToken.Type == TokenDot {
		p.nextToken()
		if p.curToken.Type == TokenIdent {
			attr.Name = attr.Name + "." + p.curToken.Literal
			p.nextToken()
		}
	}

	if p.curToken.Type == TokenLParen {
		p.nextToken()
		for p.curToken.Type != TokenRParen && p.curToken.Type != TokenEOF {
			if p.curToken.Type == TokenNewline {
				p.nextToken()
				continue
			}
			if arg := p.parseArgument(); arg != nil {
				attr.Arguments = append(attr.Arguments, arg)
			}
			if p.curToken.Type == TokenComma {
				p.nextToken()
			}
		}
		if !p.expectToken(TokenRParen) {
			return nil
		}
		p.nextToken()
	}

	return attr
}

// parseArgument parseia um argumento de atributo, nomeado ou posicional
func (p *Parser) parseArgument() *Argument {
	arg := &Argument{Pos: p.pos()}

	// Named argument: name: value ou name = value
	if p.curToken.Type == TokenIdent && (p.peekToken.Type == TokenColon || p.peekToken.Type == TokenEqual) {
		arg.Name = p.curToken.Literal
		p.nextToken()
		p.nextToken()
	}

	arg.Value = p.parseValue()
	if arg.Value == nil {
		return nil
	}
	return arg
}

// parseValue parseia um valor (literal, lista, identificador ou função)
func (p *Parser) parseValue() Value {
	switch p.curToken.Type {
	case TokenString:
		val := &StringValue{Value: p.curToken.Literal}
		p.nextToken()
		return val
	case TokenInt:
		n, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
		if err != nil {
			p.errorf("literal inteiro inválido: %s", p.curToken.Literal)
		}
		p.nextToken()
		return &IntValue{Value: n}
	case TokenFloat:
		f, err := strconv.ParseFloat(p.curToken.Literal, 64)
		if err != nil {
			p.errorf("literal float inválido: %s", p.curToken.Literal)
		}
		p.nextToken()
		return &FloatValue{Value: f}
	case TokenLBracket:
		// Lista - usada em @@index([a, b]), @relation(fields: [...])
		p.nextToken()
		list := &ListValue{}
		for p.curToken.Type != TokenRBracket && p.curToken.Type != TokenEOF {
			if p.curToken.Type == TokenNewline {
				p.nextToken()
				continue
			}
			if val := p.parseValue(); val != nil {
				list.Values = append(list.Values, val)
			}
			if p.curToken.Type == TokenComma {
				p.nextToken()
			}
		}
		if p.curToken.Type == TokenRBracket {
			p.nextToken()
		} else {
			p.errorf("esperado ], encontrado %s", p.curToken.Type)
		}
		return list
	case TokenIdent:
		ident := p.curToken.Literal
		p.nextToken()

		if ident == "true" || ident == "false" {
			return &BoolValue{Value: ident == "true"}
		}

		if p.curToken.Type == TokenLParen {
			// Chamada de função: env("X"), autoincrement(), now(), ...
			p.nextToken()
			fn := &FunctionCall{Name: ident}
			for p.curToken.Type != TokenRParen && p.curToken.Type != TokenEOF {
				if val := p.parseValue(); val != nil {
					fn.Args = append(fn.Args, val)
				}
				if p.curToken.Type == TokenComma {
					p.nextToken()
				}
			}
			if !p.expectToken(TokenRParen) {
				return nil
			}
			p.nextToken()
			return fn
		}
		return &IdentValue{Name: ident}
	default:
		p.errorf("valor inesperado: %s", p.curToken.Type)
		p.nextToken() // avançar para evitar loop infinito
		return nil
	}
}
