/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/dburkart/fern/pkg/common/parse"
	"github.com/dburkart/fern/pkg/lang/ast"
	"github.com/dburkart/fern/pkg/lang/scanner"
	"github.com/rs/zerolog"
)

const DefaultMaxDepth = 256

var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrUnknownToken    = errors.New("unknown token")
	ErrTooDeeplyNested = errors.New("expression too deeply nested")
)

// Parse reads a whole source file from r and returns its syntax tree.
func Parse(name string, r io.Reader) (*ast.RootNode, error) {
	return New(scanner.NewScanner(name, r)).Parse()
}

// ParseExpression reads a single expression from r.
func ParseExpression(name string, r io.Reader) (ast.ASTNode, error) {
	return New(scanner.NewScanner(name, r)).ParseExpression()
}

// Diagnostic extracts a renderable SyntaxError from an error returned by
// Parse or ParseExpression. I/O failures have no location and report false.
func Diagnostic(err error) (parse.SyntaxError, bool) {
	var syntax parse.SyntaxError
	if errors.As(err, &syntax) {
		return syntax, true
	}

	var scan *scanner.ScanError
	if errors.As(err, &scan) {
		return scan.Diagnostic(), true
	}

	return parse.SyntaxError{}, false
}

type Parser struct {
	Scanner  *scanner.Scanner
	Log      zerolog.Logger
	MaxDepth int

	// Tokens scanned but not yet consumed
	queue []scanner.Token
	depth int

	// Struct initializers are not recognised while noInit > 0, so that the
	// body of an if or for is not mistaken for one.
	noInit int
}

func New(s *scanner.Scanner) *Parser {
	return &Parser{
		Scanner:  s,
		Log:      zerolog.Nop(),
		MaxDepth: DefaultMaxDepth,
	}
}

// failure carries a scanner or I/O error through the parser's panics.
type failure struct {
	err error
}

func (p *Parser) recover(err *error) {
	if e := recover(); e != nil {
		switch e := e.(type) {
		case parse.SyntaxError:
			*err = e
		case failure:
			*err = e.err
		default:
			panic(e)
		}
	}
}

func (p *Parser) Parse() (root *ast.RootNode, err error) {
	defer p.recover(&err)

	root = p.file()

	p.Log.Debug().
		Str("source", root.Location().Source).
		Int("declarations", len(root.Declarations)).
		Int("lines", p.Scanner.Lines()).
		Int("tokens", p.Scanner.Tokens()).
		Msg("parsed source")

	return root, nil
}

func (p *Parser) ParseExpression() (expr ast.ASTNode, err error) {
	defer p.recover(&err)

	e := p.expression()

	if tok := p.peek(); tok.Type != scanner.TOK_EOF {
		p.unexpected(tok, "end of input")
	}

	return e, nil
}

// -- Token stream

// fill pulls lines from the scanner until at least n tokens are queued, or
// the input is exhausted.
func (p *Parser) fill(n int) {
	for len(p.queue) < n {
		tokens, err := p.Scanner.Scan()
		if err != nil {
			panic(failure{err})
		}
		if len(tokens) == 0 && p.Scanner.Exhausted() {
			return
		}
		p.queue = append(p.queue, tokens...)
	}
}

func (p *Parser) peekAt(i int) scanner.Token {
	p.fill(i + 1)
	if i < len(p.queue) {
		return p.queue[i]
	}
	return scanner.Token{Type: scanner.TOK_EOF, Location: p.Scanner.Location()}
}

func (p *Parser) peek() scanner.Token {
	return p.peekAt(0)
}

func (p *Parser) next() scanner.Token {
	tok := p.peek()
	if tok.Type != scanner.TOK_EOF {
		p.queue = p.queue[1:]
	}
	return tok
}

func (p *Parser) match(types ...scanner.TokenType) bool {
	t := p.peek().Type
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}

func (p *Parser) expect(t scanner.TokenType, what string) scanner.Token {
	tok := p.next()
	if tok.Type != t {
		p.unexpected(tok, what)
	}
	return tok
}

func (p *Parser) unexpected(tok scanner.Token, expected string) {
	switch tok.Type {
	case scanner.TOK_UNKNOWN:
		fail(tok.Location, 1, fmt.Sprintf("unknown character %s", tok.Lexeme()), ErrUnknownToken)
	case scanner.TOK_EOF:
		fail(tok.Location, 1, fmt.Sprintf("unexpected end of input, expected %s", expected), ErrUnexpectedToken)
	}

	fail(tok.Location, tok.Width(), fmt.Sprintf("unexpected token '%s', expected %s", tok.Lexeme(), expected), ErrUnexpectedToken)
}

func fail(l parse.Location, width uint, message string, kind error) {
	e := parse.NewSyntaxError(l, width, message)
	e.Err = kind
	panic(e)
}

// enter guards against unbounded recursion on deeply nested input.
func (p *Parser) enter(tok scanner.Token) {
	p.depth++

	limit := p.MaxDepth
	if limit <= 0 {
		limit = DefaultMaxDepth
	}

	if p.depth > limit {
		fail(tok.Location, tok.Width(), ErrTooDeeplyNested.Error(), ErrTooDeeplyNested)
	}
}

func (p *Parser) leave() {
	p.depth--
}

// -- Declarations

// file returns the RootNode of a source file
//
// Grammar:
//
//	file            = *declaration
func (p *Parser) file() *ast.RootNode {
	root := ast.RootNode{BaseNode: ast.BaseNode{
		Token: scanner.Token{Type: scanner.TOK_EOF, Location: p.Scanner.Location()},
	}}

	for p.peek().Type != scanner.TOK_EOF {
		root.Declarations = append(root.Declarations, p.declaration())
	}

	return &root
}

// declaration returns a NamespaceNode, StructNode or FunctionNode
//
// Grammar:
//
//	declaration     = namespace / struct / function
func (p *Parser) declaration() ast.ASTNode {
	tok := p.peek()

	switch tok.Type {
	case scanner.TOK_NAMESPACE:
		return p.namespace()
	case scanner.TOK_STRUCT:
		return p.structDecl()
	case scanner.TOK_FN:
		return p.function()
	}

	p.unexpected(tok, "'namespace', 'struct' or 'fn'")
	return nil
}

// namespace returns a NamespaceNode
//
// Grammar:
//
//	namespace       = "namespace" identifier "{" *declaration "}"
func (p *Parser) namespace() ast.ASTNode {
	tok := p.next()
	n := ast.NamespaceNode{BaseNode: ast.BaseNode{Token: tok}}

	n.Name = p.expect(scanner.TOK_IDENTIFIER, "a namespace name")
	p.expect(scanner.TOK_BRACE_L, "'{'")

	p.enter(tok)
	for !p.match(scanner.TOK_BRACE_R) {
		if p.match(scanner.TOK_EOF) {
			p.unexpected(p.peek(), "'}'")
		}
		n.Declarations = append(n.Declarations, p.declaration())
	}
	p.leave()

	p.next()

	p.Log.Debug().Str("namespace", n.Name.Text).Msg("parsed namespace")
	return &n
}

// structDecl returns a StructNode
//
// Grammar:
//
//	struct          = "struct" identifier "{" [ member *( "," member ) [ "," ] ] "}"
func (p *Parser) structDecl() ast.ASTNode {
	tok := p.next()
	s := ast.StructNode{BaseNode: ast.BaseNode{Token: tok}}

	s.Name = p.expect(scanner.TOK_IDENTIFIER, "a struct name")
	p.expect(scanner.TOK_BRACE_L, "'{'")

	for !p.match(scanner.TOK_BRACE_R) {
		s.Members = append(s.Members, p.member())

		if !p.match(scanner.TOK_COMMA) {
			break
		}
		p.next()
	}

	p.expect(scanner.TOK_BRACE_R, "',' or '}'")

	p.Log.Debug().Str("struct", s.Name.Text).Int("members", len(s.Members)).Msg("parsed struct")
	return &s
}

// member returns a MemberNode
//
// Grammar:
//
//	member          = identifier ":" type
func (p *Parser) member() *ast.MemberNode {
	name := p.expect(scanner.TOK_IDENTIFIER, "a member name")
	p.expect(scanner.TOK_COLON, "':'")

	return &ast.MemberNode{
		BaseNode: ast.BaseNode{Token: name},
		Name:     name,
		Type:     p.typ(),
	}
}

// function returns a FunctionNode
//
// Grammar:
//
//	function        = "fn" identifier "(" [ param *( "," param ) ] ")" [ ":" type ] scope
//	param           = "self" / member
func (p *Parser) function() ast.ASTNode {
	tok := p.next()
	fn := ast.FunctionNode{BaseNode: ast.BaseNode{Token: tok}}

	fn.Name = p.expect(scanner.TOK_IDENTIFIER, "a function name")
	p.expect(scanner.TOK_PAREN_L, "'('")

	for !p.match(scanner.TOK_PAREN_R) {
		if self := p.peek(); self.Type == scanner.TOK_SELF {
			if fn.SelfParam || len(fn.Parameters) > 0 {
				p.unexpected(self, "a parameter name, 'self' must come first")
			}
			p.next()
			fn.SelfParam = true
		} else {
			fn.Parameters = append(fn.Parameters, p.member())
		}

		if !p.match(scanner.TOK_COMMA) {
			break
		}
		p.next()
	}

	p.expect(scanner.TOK_PAREN_R, "',' or ')'")

	if p.match(scanner.TOK_COLON) {
		p.next()
		fn.Result = p.typ()
	}

	fn.Body = p.scope()

	p.Log.Debug().Str("function", fn.Name.Text).Int("parameters", len(fn.Parameters)).Msg("parsed function")
	return &fn
}

// typ returns a TypeNode
//
// Grammar:
//
//	type            = [ "unsigned" ] ( "int" / "str" / "bool" / identifier ) *( "[" [ integer ] "]" )
func (p *Parser) typ() *ast.TypeNode {
	t := ast.TypeNode{BaseNode: ast.BaseNode{Token: p.peek()}}

	if p.match(scanner.TOK_UNSIGNED) {
		p.next()
		t.Unsigned = true

		if !p.match(scanner.TOK_INT_KEY) {
			p.unexpected(p.peek(), "'int' after 'unsigned'")
		}
	}

	t.Base = p.next()
	switch t.Base.Type {
	case scanner.TOK_INT_KEY, scanner.TOK_STR_KEY, scanner.TOK_BOOL_KEY, scanner.TOK_IDENTIFIER:
	default:
		p.unexpected(t.Base, "a type")
	}

	for p.match(scanner.TOK_BRACKET_L) {
		p.next()

		var length *ast.IntegerNode
		if p.match(scanner.TOK_INT) {
			length = ast.MakeIntegerNode(p.next())
		}
		t.Dimensions = append(t.Dimensions, length)

		p.expect(scanner.TOK_BRACKET_R, "']'")
	}

	return &t
}

// -- Statements

// scope returns a ScopeNode
//
// Grammar:
//
//	scope           = "{" *statement "}"
func (p *Parser) scope() *ast.ScopeNode {
	tok := p.expect(scanner.TOK_BRACE_L, "'{'")
	s := ast.ScopeNode{BaseNode: ast.BaseNode{Token: tok}}

	// Struct initializers are allowed again inside a block
	saved := p.noInit
	p.noInit = 0

	p.enter(tok)
	for !p.match(scanner.TOK_BRACE_R) {
		if p.match(scanner.TOK_EOF) {
			p.unexpected(p.peek(), "'}'")
		}
		s.Statements = append(s.Statements, p.statement())
	}
	p.leave()

	p.noInit = saved
	p.next()

	return &s
}

// statement returns the node for a single statement
//
// Grammar:
//
//	statement       = scope / if / loop / for / break / continue / return /
//	                  var-decl / val-decl / simple ";"
func (p *Parser) statement() ast.ASTNode {
	switch p.peek().Type {
	case scanner.TOK_BRACE_L:
		return p.scope()
	case scanner.TOK_IF:
		return p.ifStmt()
	case scanner.TOK_LOOP:
		return p.loop()
	case scanner.TOK_FOR:
		return p.forStmt()
	case scanner.TOK_BREAK:
		tok := p.next()
		p.expect(scanner.TOK_SEMICOLON, "';'")
		return &ast.BreakNode{BaseNode: ast.BaseNode{Token: tok}}
	case scanner.TOK_CONTINUE:
		tok := p.next()
		p.expect(scanner.TOK_SEMICOLON, "';'")
		return &ast.ContinueNode{BaseNode: ast.BaseNode{Token: tok}}
	case scanner.TOK_RETURN:
		return p.returnStmt()
	case scanner.TOK_VAR, scanner.TOK_VAL:
		return p.binding()
	}

	return p.simple()
}

// simple returns an AssignNode or an ExpressionStatementNode
//
// Grammar:
//
//	simple          = expression [ "=" expression ]
func (p *Parser) simple() ast.ASTNode {
	first := p.peek()
	lh := p.expression()

	if p.match(scanner.TOK_EQUAL) {
		eq := p.next()
		rh := p.expression()
		p.expect(scanner.TOK_SEMICOLON, "';'")

		return &ast.AssignNode{BaseNode: ast.BaseNode{Token: eq}, Target: lh, Val: rh}
	}

	p.expect(scanner.TOK_SEMICOLON, "'=' or ';'")
	return &ast.ExpressionStatementNode{BaseNode: ast.BaseNode{Token: first}, Expression: lh}
}

// binding returns a BindingNode
//
// Grammar:
//
//	var-decl        = "var" identifier [ ":" type ] [ "=" expression ] ";"
//	val-decl        = "val" identifier [ ":" type ] [ "=" expression ] ";"
func (p *Parser) binding() ast.ASTNode {
	tok := p.next()
	b := ast.BindingNode{BaseNode: ast.BaseNode{Token: tok}, Mutable: tok.Type == scanner.TOK_VAR}

	b.Name = p.expect(scanner.TOK_IDENTIFIER, "a variable name")

	if p.match(scanner.TOK_COLON) {
		p.next()
		b.Type = p.typ()
	}

	if p.match(scanner.TOK_EQUAL) {
		p.next()
		b.Initializer = p.expression()
	}

	p.expect(scanner.TOK_SEMICOLON, "';'")
	return &b
}

// ifStmt returns an IfNode
//
// Grammar:
//
//	if              = "if" expression scope [ "else" ( if / scope ) ]
func (p *Parser) ifStmt() ast.ASTNode {
	tok := p.next()
	n := ast.IfNode{BaseNode: ast.BaseNode{Token: tok}}

	n.Condition = p.header()
	n.Then = p.scope()

	if p.match(scanner.TOK_ELSE) {
		p.next()

		if tok := p.peek(); tok.Type == scanner.TOK_IF {
			p.enter(tok)
			defer p.leave()
			n.Else = p.ifStmt()
		} else {
			n.Else = p.scope()
		}
	}

	return &n
}

// loop returns a LoopNode
//
// Grammar:
//
//	loop            = "loop" scope
func (p *Parser) loop() ast.ASTNode {
	tok := p.next()
	return &ast.LoopNode{BaseNode: ast.BaseNode{Token: tok}, Body: p.scope()}
}

// forStmt returns a ForNode
//
// Grammar:
//
//	for             = "for" identifier "in" expression scope
func (p *Parser) forStmt() ast.ASTNode {
	tok := p.next()
	n := ast.ForNode{BaseNode: ast.BaseNode{Token: tok}}

	n.Variable = p.expect(scanner.TOK_IDENTIFIER, "a loop variable")
	p.expect(scanner.TOK_IN, "'in'")
	n.Iterable = p.header()
	n.Body = p.scope()

	return &n
}

// returnStmt returns a ReturnNode
//
// Grammar:
//
//	return          = "return" [ expression ] ";"
func (p *Parser) returnStmt() ast.ASTNode {
	tok := p.next()
	n := ast.ReturnNode{BaseNode: ast.BaseNode{Token: tok}}

	if !p.match(scanner.TOK_SEMICOLON) {
		n.Result = p.expression()
	}

	p.expect(scanner.TOK_SEMICOLON, "';'")
	return &n
}

// header parses the expression in front of an if or for body.
func (p *Parser) header() ast.ASTNode {
	p.noInit++
	defer func() { p.noInit-- }()

	return p.expression()
}
