/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

func Walk(v Visitor, node ASTNode) {
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *RootNode:
		for _, d := range n.Declarations {
			Walk(v, d)
		}

	case *NamespaceNode:
		for _, d := range n.Declarations {
			Walk(v, d)
		}

	case *StructNode:
		for _, m := range n.Members {
			Walk(v, m)
		}

	case *MemberNode:
		Walk(v, n.Type)

	case *FunctionNode:
		for _, p := range n.Parameters {
			Walk(v, p)
		}

		if n.Result != nil {
			Walk(v, n.Result)
		}

		Walk(v, n.Body)

	case *TypeNode:
		for _, d := range n.Dimensions {
			if d != nil {
				Walk(v, d)
			}
		}

	case *ScopeNode:
		for _, s := range n.Statements {
			Walk(v, s)
		}

	case *BindingNode:
		if n.Type != nil {
			Walk(v, n.Type)
		}

		if n.Initializer != nil {
			Walk(v, n.Initializer)
		}

	case *AssignNode:
		Walk(v, n.Target)
		Walk(v, n.Val)

	case *IfNode:
		Walk(v, n.Condition)
		Walk(v, n.Then)

		if n.Else != nil {
			Walk(v, n.Else)
		}

	case *LoopNode:
		Walk(v, n.Body)

	case *ForNode:
		Walk(v, n.Iterable)
		Walk(v, n.Body)

	case *ReturnNode:
		if n.Result != nil {
			Walk(v, n.Result)
		}

	case *ExpressionStatementNode:
		Walk(v, n.Expression)

	case *BinaryOpNode:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *UnaryOpNode:
		Walk(v, n.Operand)

	case *MemberAccessNode:
		Walk(v, n.Object)

	case *CallNode:
		Walk(v, n.Callee)

		for _, a := range n.Arguments {
			Walk(v, a)
		}

	case *IndexNode:
		Walk(v, n.Object)
		Walk(v, n.Index)

	case *ArrayInitNode:
		for _, e := range n.Elements {
			Walk(v, e)
		}

	case *StructInitNode:
		for _, f := range n.Fields {
			Walk(v, f)
		}

	case *FieldInitNode:
		Walk(v, n.Val)

	case *BreakNode, *ContinueNode, *IdentifierNode, *SelfNode, *IntegerNode, *StringNode, *BoolNode:
		// Skip, leaf nodes

	default:
		panic("Unexpected ASTNode passed to Walk")
	}

	v.Visit(nil)
}
