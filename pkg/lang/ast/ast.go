/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

import (
	"github.com/dburkart/fern/pkg/common/parse"
	"github.com/dburkart/fern/pkg/lang/scanner"
)

type ASTNode interface {
	Value() string
	Location() parse.Location
}

type Visitor interface {
	Visit(ASTNode) Visitor
}

type (
	BaseNode struct {
		Token scanner.Token
	}

	// Declarations

	RootNode struct {
		BaseNode
		Declarations []ASTNode
	}

	NamespaceNode struct {
		BaseNode
		Name         scanner.Token
		Declarations []ASTNode
	}

	StructNode struct {
		BaseNode
		Name    scanner.Token
		Members []*MemberNode
	}

	MemberNode struct {
		BaseNode
		Name scanner.Token
		Type *TypeNode
	}

	FunctionNode struct {
		BaseNode
		Name       scanner.Token
		SelfParam  bool
		Parameters []*MemberNode
		Result     *TypeNode
		Body       *ScopeNode
	}

	// TypeNode is a base type followed by zero or more array suffixes. A
	// nil entry in Dimensions is an array of unspecified length.
	TypeNode struct {
		BaseNode
		Unsigned   bool
		Base       scanner.Token
		Dimensions []*IntegerNode
	}

	// Statements

	ScopeNode struct {
		BaseNode
		Statements []ASTNode
	}

	BindingNode struct {
		BaseNode
		Mutable     bool
		Name        scanner.Token
		Type        *TypeNode
		Initializer ASTNode
	}

	AssignNode struct {
		BaseNode
		Target ASTNode
		Val    ASTNode
	}

	IfNode struct {
		BaseNode
		Condition ASTNode
		Then      *ScopeNode
		Else      ASTNode
	}

	LoopNode struct {
		BaseNode
		Body *ScopeNode
	}

	ForNode struct {
		BaseNode
		Variable scanner.Token
		Iterable ASTNode
		Body     *ScopeNode
	}

	BreakNode struct {
		BaseNode
	}

	ContinueNode struct {
		BaseNode
	}

	ReturnNode struct {
		BaseNode
		Result ASTNode
	}

	ExpressionStatementNode struct {
		BaseNode
		Expression ASTNode
	}

	// Expressions

	BinaryOpNode struct {
		BaseNode
		Left  ASTNode
		Op    scanner.Token
		Right ASTNode
	}

	UnaryOpNode struct {
		BaseNode
		Operator scanner.Token
		Operand  ASTNode
	}

	MemberAccessNode struct {
		BaseNode
		Object ASTNode
		Member scanner.Token
	}

	CallNode struct {
		BaseNode
		Callee    ASTNode
		Arguments []ASTNode
	}

	IndexNode struct {
		BaseNode
		Object ASTNode
		Index  ASTNode
	}

	IdentifierNode struct {
		BaseNode
	}

	SelfNode struct {
		BaseNode
	}

	IntegerNode struct {
		BaseNode
		Val uint64
	}

	StringNode struct {
		BaseNode
		Val string
	}

	BoolNode struct {
		BaseNode
		Val bool
	}

	ArrayInitNode struct {
		BaseNode
		Elements []ASTNode
	}

	StructInitNode struct {
		BaseNode
		Name   scanner.Token
		Fields []*FieldInitNode
	}

	FieldInitNode struct {
		BaseNode
		Name scanner.Token
		Val  ASTNode
	}
)

// -- BaseNode

func (b *BaseNode) Value() string {
	return b.Token.Lexeme()
}

func (b *BaseNode) Location() parse.Location {
	return b.Token.Location
}

//-- RootNode

func (r *RootNode) Value() string {
	return r.Token.Location.Source
}

//-- NamespaceNode

func (n *NamespaceNode) Value() string {
	return n.Name.Text
}

//-- StructNode

func (s *StructNode) Value() string {
	return s.Name.Text
}

//-- MemberNode

func (m *MemberNode) Value() string {
	return m.Name.Text + ": " + m.Type.Value()
}

//-- FunctionNode

func (f *FunctionNode) Value() string {
	return f.Name.Text
}

//-- TypeNode

func (t *TypeNode) Value() string {
	v := t.Base.Lexeme()
	if t.Unsigned {
		v = "unsigned " + v
	}
	for _, d := range t.Dimensions {
		if d == nil {
			v += "[]"
		} else {
			v += "[" + d.Value() + "]"
		}
	}
	return v
}

//-- BindingNode

func (b *BindingNode) Value() string {
	return b.Token.Lexeme() + " " + b.Name.Text
}

//-- BinaryOpNode

func (b *BinaryOpNode) Value() string {
	return b.Op.Lexeme()
}

//-- UnaryOpNode

func (u *UnaryOpNode) Value() string {
	return u.Operator.Lexeme()
}

//-- MemberAccessNode

func (m *MemberAccessNode) Value() string {
	return "." + m.Member.Text
}

//-- CallNode

func (c *CallNode) Value() string {
	return "()"
}

//-- IndexNode

func (i *IndexNode) Value() string {
	return "[]"
}

//-- ForNode

func (f *ForNode) Value() string {
	return f.Variable.Text
}

//-- StructInitNode

func (s *StructInitNode) Value() string {
	return s.Name.Text
}

//-- FieldInitNode

func (f *FieldInitNode) Value() string {
	return f.Name.Text
}

func MakeIntegerNode(tok scanner.Token) *IntegerNode {
	return &IntegerNode{BaseNode: BaseNode{Token: tok}, Val: tok.Int}
}

func MakeStringNode(tok scanner.Token) *StringNode {
	return &StringNode{BaseNode: BaseNode{Token: tok}, Val: tok.Text}
}

func MakeBoolNode(tok scanner.Token) *BoolNode {
	return &BoolNode{BaseNode: BaseNode{Token: tok}, Val: tok.Bool}
}
