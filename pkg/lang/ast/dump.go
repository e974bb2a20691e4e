/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package ast

import (
	"reflect"
	"strings"
)

type Dumper struct {
	Output string
	indent int
}

func (d *Dumper) Visit(node ASTNode) Visitor {
	if node == nil {
		d.indent -= 1
		return nil
	}

	level := strings.Repeat("    ", d.indent)

	value := node.Value()
	switch t := node.(type) {
	case *FunctionNode:
		if t.SelfParam {
			value += " self"
		}
	case *BindingNode:
		if t.Mutable {
			value += " mutable"
		}
	case *TypeNode, *MemberNode:
		// Already rendered in full by Value, don't descend
		d.Output += level + reflect.TypeOf(node).Elem().Name() + "[" + value + "]\n"
		return nil
	}

	t := reflect.TypeOf(node)
	output := level + t.Elem().Name() + "[" + value + "]" + "\n"

	d.Output += output
	d.indent += 1

	return d
}

// ASTToString renders node and its children, one node per line.
func ASTToString(node ASTNode) string {
	d := &Dumper{}
	Walk(d, node)
	return d.Output
}
