// Package parser builds expression trees from source text with
// precedence climbing over a one-token lookahead.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/takoeight0821/aviator/ast"
	"github.com/takoeight0821/aviator/lexer"
	"github.com/takoeight0821/aviator/token"
	"github.com/takoeight0821/aviator/utils"
)

// Profile selects which productions the parser accepts.
type Profile int

const (
	// Full accepts regex literals, nil, function calls, ternary
	// conditionals and `;`-separated statements.
	Full Profile = iota
	// ExpressionOnly accepts literals, identifiers, grouping, `!` and
	// binary operators.
	ExpressionOnly
)

func (p Profile) String() string {
	switch p {
	case Full:
		return "full"
	case ExpressionOnly:
		return "expr"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

// ParseProfile maps "full" and "expr" to a Profile.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(s) {
	case "", "full":
		return Full, nil
	case "expr", "expression", "expression-only":
		return ExpressionOnly, nil
	default:
		return Full, fmt.Errorf("unknown profile: %s", s)
	}
}

var (
	ErrReused  = errors.New("parser: already used")
	ErrProfile = errors.New("parser: statements require the full profile")
)

// Parser is one-shot: it owns a lexer over a single source and can produce
// one tree. It is not safe for concurrent use.
type Parser struct {
	lexer   *lexer.Lexer
	current token.Token
	profile Profile
	used    bool
}

// Option configures a Parser.
type Option func(*Parser)

func WithProfile(profile Profile) Option {
	return func(p *Parser) {
		p.profile = profile
	}
}

func New(source string, opts ...Option) *Parser {
	p := &Parser{lexer: lexer.New(source), profile: Full}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseExpr parses the whole source as a single expression.
func (p *Parser) ParseExpr() (ast.Node, error) {
	if err := p.start(); err != nil {
		return nil, err
	}

	node, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	if !p.IsAtEnd() {
		return nil, expectedToken(p.current, token.EOF)
	}

	return node, nil
}

// ParseProgram parses a `;`-separated sequence of statements.
//
// program = (";" | expression)* ;
func (p *Parser) ParseProgram() ([]*ast.Statement, error) {
	if p.profile != Full {
		return nil, ErrProfile
	}
	if err := p.start(); err != nil {
		return nil, err
	}

	stmts := []*ast.Statement{}
	for !p.IsAtEnd() {
		if p.match(token.SEMICOLON) {
			if err := p.advance(); err != nil {
				return nil, err
			}

			continue
		}

		expr, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, &ast.Statement{Expr: expr})
	}

	return stmts, nil
}

func (p *Parser) start() error {
	if p.used {
		return ErrReused
	}
	p.used = true

	return p.advance()
}

// expression = unary (BINOP expression)* ternaryTail? ;
// ternaryTail = "?" expression ":" expression ;
//
// Operators are folded while their priority is strictly greater than
// minPriority, which makes equal-priority chains left-associative.
func (p *Parser) expression(minPriority int) (ast.Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	if p.atTernary() && minPriority < conditionalPriority {
		return p.ternary(left)
	}

	for IsBinaryOperator(p.current.Kind) {
		op := p.current
		if op.Kind == token.LOGICNOT {
			return nil, unexpectedToken(op, "binary operator")
		}
		priority, _ := Priority(op.Kind)
		if priority <= minPriority {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}

		right, err := p.expression(priority)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Left: left, Op: op.Kind, Right: right}

		// A folded node is the test of a following ternary in any frame.
		// At most one ternary per frame; the branches are not followed by
		// further operators at this level.
		if p.atTernary() {
			return p.ternary(left)
		}
	}

	return left, nil
}

func (p *Parser) atTernary() bool {
	return p.profile == Full && p.match(token.CONDITIONAL)
}

func (p *Parser) ternary(test ast.Node) (ast.Node, error) {
	if err := p.consume(token.CONDITIONAL); err != nil {
		return nil, err
	}
	consequent, err := p.expression(conditionalPriority)
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.COLON); err != nil {
		return nil, err
	}
	colon, _ := Priority(token.COLON)
	alternate, err := p.expression(colon)
	if err != nil {
		return nil, err
	}

	return &ast.Ternary{Test: test, Consequent: consequent, Alternate: alternate}, nil
}

// unary = REGEX | STRING | NUMBER | TRUE | FALSE | NIL | call | IDENTIFIER | "(" expression ")" | "!" expression ;
func (p *Parser) unary() (ast.Node, error) {
	//exhaustive:ignore
	switch tok := p.current; tok.Kind {
	case token.REGEX:
		if p.profile != Full {
			break
		}

		return &ast.Regex{Value: tok.Literal.(string)}, p.advance()
	case token.STRING:
		return &ast.String{Value: tok.Literal.(string)}, p.advance()
	case token.NUMBER:
		return &ast.Number{Value: tok.Literal.(float64)}, p.advance()
	case token.TRUE:
		return &ast.Boolean{Value: true}, p.advance()
	case token.FALSE:
		return &ast.Boolean{Value: false}, p.advance()
	case token.NIL:
		if p.profile != Full {
			break
		}

		return &ast.Nil{}, p.advance()
	case token.IDENTIFIER:
		if err := p.advance(); err != nil {
			return nil, err
		}
		name := tok.Literal.(string)
		if p.profile == Full && p.match(token.LEFTPAREN) {
			return p.call(name)
		}

		return &ast.Ident{Name: name}, nil
	case token.LEFTPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		if err := p.consume(token.RIGHTPAREN); err != nil {
			return nil, err
		}

		return expr, nil
	case token.LOGICNOT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		priority, _ := Priority(token.LOGICNOT)
		argument, err := p.expression(priority)
		if err != nil {
			return nil, err
		}

		return &ast.Unary{Op: token.LOGICNOT, Argument: argument}, nil
	}

	return nil, unexpectedToken(p.current, "expression")
}

// call = IDENTIFIER "(" (expression ","?)* ")" ;
func (p *Parser) call(name string) (ast.Node, error) {
	if err := p.consume(token.LEFTPAREN); err != nil {
		return nil, err
	}
	args := []ast.Node{}
	for !p.match(token.RIGHTPAREN) {
		arg, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.match(token.COMMA) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if err := p.consume(token.RIGHTPAREN); err != nil {
		return nil, err
	}

	return &ast.Call{Name: name, Args: args}, nil
}

func (p *Parser) advance() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return fmt.Errorf("lex: %w", err)
	}
	p.current = tok

	return nil
}

func (p Parser) IsAtEnd() bool {
	return p.current.Kind == token.EOF
}

func (p Parser) match(kind token.Kind) bool {
	return p.current.Kind == kind
}

func (p *Parser) consume(kind token.Kind) error {
	if p.match(kind) {
		return p.advance()
	}

	return expectedToken(p.current, kind)
}

type UnexpectedTokenError struct {
	Expected []string
}

func (e UnexpectedTokenError) Error() string {
	return "unexpected token: expected " + strings.Join(e.Expected, ", ")
}

// ExpectedTokenError reports a missing required token such as `)` or `:`.
type ExpectedTokenError struct {
	Expected token.Kind
	Found    token.Kind
}

func (e ExpectedTokenError) Error() string {
	return fmt.Sprintf("expected %v, found %v", e.Expected, e.Found)
}

func unexpectedToken(t token.Token, expected ...string) error {
	return utils.ErrorAt{Where: t, Err: UnexpectedTokenError{Expected: expected}}
}

func expectedToken(t token.Token, expected token.Kind) error {
	return utils.ErrorAt{Where: t, Err: ExpectedTokenError{Expected: expected, Found: t.Kind}}
}
