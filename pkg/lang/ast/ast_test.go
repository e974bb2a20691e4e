/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dburkart/fern/pkg/common/parse"
	"github.com/dburkart/fern/pkg/lang/scanner"
)

func tok(t scanner.Token, line, column uint) scanner.Token {
	t.Location = parse.Location{Source: "test", Line: line, Column: column}
	return t
}

// sample builds the tree for:
//
//	struct P { a: int[2] }
//	fn f(self) { var x = -a.b; }
func sample() *RootNode {
	member := &MemberNode{
		BaseNode: BaseNode{Token: tok(scanner.Identifier("a"), 1, 11)},
		Name:     scanner.Identifier("a"),
		Type: &TypeNode{
			Base:       scanner.Simple(scanner.TOK_INT_KEY),
			Dimensions: []*IntegerNode{MakeIntegerNode(scanner.Int(2))},
		},
	}

	access := &MemberAccessNode{
		BaseNode: BaseNode{Token: scanner.Simple(scanner.TOK_DOT)},
		Object:   &IdentifierNode{BaseNode: BaseNode{Token: scanner.Identifier("a")}},
		Member:   scanner.Identifier("b"),
	}

	minus := scanner.Simple(scanner.TOK_DASH)
	binding := &BindingNode{
		BaseNode:    BaseNode{Token: scanner.Simple(scanner.TOK_VAR)},
		Mutable:     true,
		Name:        scanner.Identifier("x"),
		Initializer: &UnaryOpNode{BaseNode: BaseNode{Token: minus}, Operator: minus, Operand: access},
	}

	return &RootNode{
		BaseNode: BaseNode{Token: scanner.Token{Type: scanner.TOK_EOF, Location: parse.Location{Source: "test"}}},
		Declarations: []ASTNode{
			&StructNode{
				BaseNode: BaseNode{Token: tok(scanner.Simple(scanner.TOK_STRUCT), 1, 0)},
				Name:     scanner.Identifier("P"),
				Members:  []*MemberNode{member},
			},
			&FunctionNode{
				BaseNode:  BaseNode{Token: tok(scanner.Simple(scanner.TOK_FN), 2, 0)},
				Name:      scanner.Identifier("f"),
				SelfParam: true,
				Body: &ScopeNode{
					BaseNode:   BaseNode{Token: scanner.Simple(scanner.TOK_BRACE_L)},
					Statements: []ASTNode{binding},
				},
			},
		},
	}
}

func TestASTToString(t *testing.T) {
	want := strings.Join([]string{
		"RootNode[test]",
		"    StructNode[P]",
		"        MemberNode[a: int[2]]",
		"    FunctionNode[f self]",
		"        ScopeNode[{]",
		"            BindingNode[var x mutable]",
		"                UnaryOpNode[-]",
		"                    MemberAccessNode[.b]",
		"                        IdentifierNode[a]",
	}, "\n") + "\n"

	if got := ASTToString(sample()); got != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, got)
	}
}

type collector struct {
	types []string
}

func (c *collector) Visit(node ASTNode) Visitor {
	if node == nil {
		return nil
	}
	c.types = append(c.types, reflect.TypeOf(node).Elem().Name())
	return c
}

func TestWalkOrder(t *testing.T) {
	c := &collector{}
	Walk(c, sample())

	want := []string{
		"RootNode", "StructNode", "MemberNode", "TypeNode", "IntegerNode",
		"FunctionNode", "ScopeNode", "BindingNode", "UnaryOpNode", "MemberAccessNode", "IdentifierNode",
	}
	if !reflect.DeepEqual(c.types, want) {
		t.Errorf("wanted %v, got %v", want, c.types)
	}
}

func TestLocation(t *testing.T) {
	root := sample()

	fn := root.Declarations[1].(*FunctionNode)
	if loc := fn.Location(); loc.Line != 2 || loc.Column != 0 {
		t.Errorf("wanted function at 2:0, got %s", loc)
	}

	member := root.Declarations[0].(*StructNode).Members[0]
	if loc := member.Location(); loc.String() != "test:1:11" {
		t.Errorf("wanted member at test:1:11, got %s", loc)
	}
}

func TestTypeValue(t *testing.T) {
	typ := &TypeNode{
		Unsigned:   true,
		Base:       scanner.Simple(scanner.TOK_INT_KEY),
		Dimensions: []*IntegerNode{nil, MakeIntegerNode(scanner.Int(4))},
	}

	if v := typ.Value(); v != "unsigned int[][4]" {
		t.Errorf("wanted 'unsigned int[][4]', got '%s'", v)
	}
}
