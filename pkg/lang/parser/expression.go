/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parser

import (
	"github.com/dburkart/fern/pkg/lang/ast"
	"github.com/dburkart/fern/pkg/lang/scanner"
)

// expression returns the root of an expression tree
//
// Grammar:
//
//	expression      = logical-or
func (p *Parser) expression() ast.ASTNode {
	p.enter(p.peek())
	defer p.leave()

	return p.logicalOr()
}

// binary folds a left-associative chain of operands produced by operand,
// joined by any of ops.
func (p *Parser) binary(operand func() ast.ASTNode, ops ...scanner.TokenType) ast.ASTNode {
	lh := operand()

	for p.match(ops...) {
		op := p.next()
		rh := operand()

		lh = &ast.BinaryOpNode{BaseNode: ast.BaseNode{Token: op}, Left: lh, Op: op, Right: rh}
	}

	return lh
}

// logicalOr returns a BinaryOpNode, or the result of logicalAnd
//
// Grammar:
//
//	logical-or      = logical-and *( "||" logical-and )
func (p *Parser) logicalOr() ast.ASTNode {
	return p.binary(p.logicalAnd, scanner.TOK_LOGICAL_OR)
}

// logicalAnd returns a BinaryOpNode, or the result of bitwiseOr
//
// Grammar:
//
//	logical-and     = bitwise-or *( "&&" bitwise-or )
func (p *Parser) logicalAnd() ast.ASTNode {
	return p.binary(p.bitwiseOr, scanner.TOK_LOGICAL_AND)
}

// bitwiseOr returns a BinaryOpNode, or the result of bitwiseXor
//
// Grammar:
//
//	bitwise-or      = bitwise-xor *( "|" bitwise-xor )
func (p *Parser) bitwiseOr() ast.ASTNode {
	return p.binary(p.bitwiseXor, scanner.TOK_PIPE)
}

// bitwiseXor returns a BinaryOpNode, or the result of bitwiseAnd
//
// Grammar:
//
//	bitwise-xor     = bitwise-and *( "^" bitwise-and )
func (p *Parser) bitwiseXor() ast.ASTNode {
	return p.binary(p.bitwiseAnd, scanner.TOK_HAT)
}

// bitwiseAnd returns a BinaryOpNode, or the result of equality
//
// Grammar:
//
//	bitwise-and     = equality *( "&" equality )
func (p *Parser) bitwiseAnd() ast.ASTNode {
	return p.binary(p.equality, scanner.TOK_AMPERSAND)
}

// equality returns a BinaryOpNode, or the result of relational
//
// Grammar:
//
//	equality        = relational *( ( "==" / "!=" ) relational )
func (p *Parser) equality() ast.ASTNode {
	return p.binary(p.relational, scanner.TOK_EQ_EQ, scanner.TOK_NOT_EQ)
}

// relational returns a BinaryOpNode, or the result of shift
//
// Grammar:
//
//	relational      = shift *( ( "<" / ">" / "<=" / ">=" ) shift )
func (p *Parser) relational() ast.ASTNode {
	return p.binary(p.shift, scanner.TOK_ANGLE_L, scanner.TOK_ANGLE_R, scanner.TOK_LESS_EQ, scanner.TOK_GREATER_EQ)
}

// shift returns a BinaryOpNode, or the result of additive
//
// Grammar:
//
//	shift           = additive *( ( "<<" / ">>" ) additive )
func (p *Parser) shift() ast.ASTNode {
	return p.binary(p.additive, scanner.TOK_SHIFT_L, scanner.TOK_SHIFT_R)
}

// additive returns a BinaryOpNode, or the result of multiplicative
//
// Grammar:
//
//	additive        = multiplicative *( ( "+" / "-" ) multiplicative )
func (p *Parser) additive() ast.ASTNode {
	return p.binary(p.multiplicative, scanner.TOK_PLUS, scanner.TOK_DASH)
}

// multiplicative returns a BinaryOpNode, or the result of unary
//
// Grammar:
//
//	multiplicative  = unary *( ( "*" / "/" / "%" ) unary )
func (p *Parser) multiplicative() ast.ASTNode {
	return p.binary(p.unary, scanner.TOK_ASTERISK, scanner.TOK_SLASH, scanner.TOK_PERCENT)
}

// unary returns a UnaryOpNode, or the result of postfix
//
// Grammar:
//
//	unary           = ( ( "-" / "!" / "&" ) unary ) / ( "sizeof" ( type-operand / unary ) ) / postfix
//	type-operand    = type / "(" type ")"
func (p *Parser) unary() ast.ASTNode {
	tok := p.peek()

	switch tok.Type {
	case scanner.TOK_DASH, scanner.TOK_EXCLAMATION, scanner.TOK_AMPERSAND:
		p.next()

		p.enter(tok)
		defer p.leave()

		return &ast.UnaryOpNode{BaseNode: ast.BaseNode{Token: tok}, Operator: tok, Operand: p.unary()}

	case scanner.TOK_SIZEOF:
		p.next()
		op := ast.UnaryOpNode{BaseNode: ast.BaseNode{Token: tok}, Operator: tok}

		switch {
		case isTypeKeyword(p.peek().Type):
			op.Operand = p.typ()
		case p.peek().Type == scanner.TOK_PAREN_L && isTypeKeyword(p.peekAt(1).Type):
			p.next()
			op.Operand = p.typ()
			p.expect(scanner.TOK_PAREN_R, "')'")
		default:
			p.enter(tok)
			defer p.leave()

			op.Operand = p.unary()
		}

		return &op
	}

	return p.postfix()
}

func isTypeKeyword(t scanner.TokenType) bool {
	switch t {
	case scanner.TOK_UNSIGNED, scanner.TOK_INT_KEY, scanner.TOK_STR_KEY, scanner.TOK_BOOL_KEY:
		return true
	}
	return false
}

// postfix returns a MemberAccessNode, CallNode or IndexNode, or the result
// of atom
//
// Grammar:
//
//	postfix         = atom *( ( "." identifier ) / ( "(" [ arguments ] ")" ) / ( "[" expression "]" ) )
//	arguments       = expression *( "," expression )
func (p *Parser) postfix() ast.ASTNode {
	expr := p.atom()

	for {
		tok := p.peek()

		switch tok.Type {
		case scanner.TOK_DOT:
			p.next()
			member := p.expect(scanner.TOK_IDENTIFIER, "a member name after '.'")
			expr = &ast.MemberAccessNode{BaseNode: ast.BaseNode{Token: tok}, Object: expr, Member: member}

		case scanner.TOK_PAREN_L:
			p.next()
			call := ast.CallNode{BaseNode: ast.BaseNode{Token: tok}, Callee: expr}

			p.nested(func() {
				for !p.match(scanner.TOK_PAREN_R) {
					call.Arguments = append(call.Arguments, p.expression())

					if !p.match(scanner.TOK_COMMA) {
						break
					}
					p.next()
				}
			})

			p.expect(scanner.TOK_PAREN_R, "',' or ')'")
			expr = &call

		case scanner.TOK_BRACKET_L:
			p.next()
			index := ast.IndexNode{BaseNode: ast.BaseNode{Token: tok}, Object: expr}

			p.nested(func() {
				index.Index = p.expression()
			})

			p.expect(scanner.TOK_BRACKET_R, "']'")
			expr = &index

		default:
			return expr
		}
	}
}

// atom returns a leaf node for an expression
//
// Grammar:
//
//	atom            = integer / string / bool / "self" / identifier / struct-init /
//	                  array-init / "(" expression ")"
func (p *Parser) atom() ast.ASTNode {
	tok := p.peek()

	switch tok.Type {
	case scanner.TOK_INT:
		return ast.MakeIntegerNode(p.next())
	case scanner.TOK_STR:
		return ast.MakeStringNode(p.next())
	case scanner.TOK_BOOL:
		return ast.MakeBoolNode(p.next())
	case scanner.TOK_SELF:
		return &ast.SelfNode{BaseNode: ast.BaseNode{Token: p.next()}}
	case scanner.TOK_IDENTIFIER:
		p.next()
		if p.noInit == 0 && p.match(scanner.TOK_BRACE_L) {
			return p.structInit(tok)
		}
		return &ast.IdentifierNode{BaseNode: ast.BaseNode{Token: tok}}
	case scanner.TOK_BRACKET_L:
		return p.arrayInit()
	case scanner.TOK_PAREN_L:
		p.next()

		var expr ast.ASTNode
		p.nested(func() {
			expr = p.expression()
		})

		p.expect(scanner.TOK_PAREN_R, "')'")
		return expr
	}

	p.unexpected(tok, "an expression")
	return nil
}

// structInit returns a StructInitNode
//
// Grammar:
//
//	struct-init     = identifier "{" [ field-init *( "," field-init ) [ "," ] ] "}"
//	field-init      = identifier ":" expression
func (p *Parser) structInit(name scanner.Token) ast.ASTNode {
	p.expect(scanner.TOK_BRACE_L, "'{'")
	n := ast.StructInitNode{BaseNode: ast.BaseNode{Token: name}, Name: name}

	for !p.match(scanner.TOK_BRACE_R) {
		field := p.expect(scanner.TOK_IDENTIFIER, "a field name")
		p.expect(scanner.TOK_COLON, "':'")

		n.Fields = append(n.Fields, &ast.FieldInitNode{
			BaseNode: ast.BaseNode{Token: field},
			Name:     field,
			Val:      p.expression(),
		})

		if !p.match(scanner.TOK_COMMA) {
			break
		}
		p.next()
	}

	p.expect(scanner.TOK_BRACE_R, "',' or '}'")
	return &n
}

// arrayInit returns an ArrayInitNode
//
// Grammar:
//
//	array-init      = "[" [ expression *( "," expression ) [ "," ] ] "]"
func (p *Parser) arrayInit() ast.ASTNode {
	tok := p.next()
	n := ast.ArrayInitNode{BaseNode: ast.BaseNode{Token: tok}}

	p.nested(func() {
		for !p.match(scanner.TOK_BRACKET_R) {
			n.Elements = append(n.Elements, p.expression())

			if !p.match(scanner.TOK_COMMA) {
				break
			}
			p.next()
		}
	})

	p.expect(scanner.TOK_BRACKET_R, "',' or ']'")
	return &n
}

// nested runs f with struct initializers re-enabled, as they are
// unambiguous inside brackets.
func (p *Parser) nested(f func()) {
	saved := p.noInit
	p.noInit = 0
	defer func() { p.noInit = saved }()

	f()
}
