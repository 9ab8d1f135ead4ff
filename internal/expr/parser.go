package expr

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	_ int = iota
	LOWEST
	SUM     // + -
	PRODUCT // * /
	PREFIX  // -X
	POWER   // X ^ Y
	CALL    // fn(X)
)

var precedences = map[TokenType]int{
	PLUS:     SUM,
	MINUS:    SUM,
	ASTERISK: PRODUCT,
	SLASH:    PRODUCT,
	CARET:    POWER,
	LPAREN:   CALL,
}

type (
	prefixParseFn func() Node
	infixParseFn  func(Node) Node
)

// Parser is a Pratt parser for arithmetic expressions.
type Parser struct {
	l *Lexer

	curToken  Token
	peekToken Token

	errors []string

	prefixParseFns map[TokenType]prefixParseFn
	infixParseFns  map[TokenType]infixParseFn
}

// NewParser creates a parser reading tokens from l.
func NewParser(l *Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[TokenType]prefixParseFn{
		IDENT:  p.parseIdentifier,
		NUMBER: p.parseNumber,
		MINUS:  p.parsePrefix,
		PLUS:   p.parsePrefix,
		LPAREN: p.parseGrouped,
	}
	p.infixParseFns = map[TokenType]infixParseFn{
		PLUS:     p.parseInfix,
		MINUS:    p.parseInfix,
		ASTERISK: p.parseInfix,
		SLASH:    p.parseInfix,
		CARET:    p.parsePower,
		LPAREN:   p.parseCall,
	}

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

// Parse parses a complete expression.
func Parse(input string) (Node, error) {
	p := NewParser(NewLexer(input))
	n := p.ParseExpression()
	if errs := p.Errors(); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = errors.New(e)
		}
		return nil, fmt.Errorf("parse %q: %w", input, errors.Join(joined...))
	}
	return n, nil
}

// ParseExpression parses the whole input as one expression. Trailing tokens
// are reported as errors.
func (p *Parser) ParseExpression() Node {
	if p.curTokenIs(EOF) {
		p.errorf(p.curToken, "empty expression")
		return nil
	}
	n := p.parseExpression(LOWEST)
	if !p.peekTokenIs(EOF) && len(p.errors) == 0 {
		p.errorf(p.peekToken, "unexpected %s after expression", describe(p.peekToken))
	}
	return n
}

// Errors returns the errors collected while parsing.
func (p *Parser) Errors() []string {
	return p.errors
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) parseExpression(precedence int) Node {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken, "unexpected %s", describe(p.curToken))
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *Parser) parseIdentifier() Node {
	return &Identifier{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseNumber() Node {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(p.curToken, "could not parse %q as number", p.curToken.Literal)
		return nil
	}
	return &Number{Token: p.curToken, Value: value}
}

func (p *Parser) parsePrefix() Node {
	tok := p.curToken
	p.nextToken()
	right := p.parseExpression(PREFIX)
	if right == nil {
		return nil
	}
	if tok.Type == PLUS {
		return right
	}
	return &Prefix{Token: tok, Operator: tok.Literal, Right: right}
}

func (p *Parser) parseInfix(left Node) Node {
	n := &Infix{Token: p.curToken, Left: left, Operator: p.curToken.Literal}
	precedence := p.curPrecedence()
	p.nextToken()
	n.Right = p.parseExpression(precedence)
	if n.Left == nil || n.Right == nil {
		return nil
	}
	return n
}

// parsePower is right-associative and lets the exponent carry a sign: a^-b.
func (p *Parser) parsePower(left Node) Node {
	n := &Infix{Token: p.curToken, Left: left, Operator: "^"}
	p.nextToken()
	n.Right = p.parseExpression(PREFIX)
	if n.Left == nil || n.Right == nil {
		return nil
	}
	return n
}

func (p *Parser) parseGrouped() Node {
	p.nextToken()
	n := p.parseExpression(LOWEST)
	if !p.expectPeek(RPAREN) {
		return nil
	}
	return n
}

func (p *Parser) parseCall(fn Node) Node {
	ident, ok := fn.(*Identifier)
	if !ok {
		p.errorf(p.curToken, "only named functions can be called")
		return nil
	}
	call := &Call{Token: ident.Token, Function: ident.Name}
	call.Arguments = p.parseArguments()
	if call.Arguments == nil {
		return nil
	}
	return call
}

func (p *Parser) parseArguments() []Node {
	args := []Node{}

	if p.peekTokenIs(RPAREN) {
		p.nextToken()
		return args
	}

	p.nextToken()
	args = append(args, p.parseExpression(LOWEST))

	for p.peekTokenIs(COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseExpression(LOWEST))
	}

	if !p.expectPeek(RPAREN) {
		return nil
	}
	for _, a := range args {
		if a == nil {
			return nil
		}
	}
	return args
}

func (p *Parser) curTokenIs(t TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken, "expected %s, got %s", t, describe(p.peekToken))
	return false
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) errorf(tok Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.errors = append(p.errors, fmt.Sprintf("%d:%d: %s", tok.Line, tok.Column, msg))
}

func describe(tok Token) string {
	switch tok.Type {
	case EOF:
		return "end of input"
	case IDENT, NUMBER, ILLEGAL:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	default:
		return fmt.Sprintf("%q", tok.Type.String())
	}
}
