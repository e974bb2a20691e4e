/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dburkart/fern/pkg/lang/parser"
	"github.com/dburkart/fern/pkg/lang/scanner"
)

func TestParseREPLCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"lex fn main()", Command{Name: CommandLex, Input: "fn main()"}},
		{"LEX  a", Command{Name: CommandLex, Input: "a"}},
		{"parse 1 + 2", Command{Name: CommandParse, Input: "1 + 2"}},
		{"1 + 2", Command{Name: CommandParse, Input: "1 + 2"}},
		{"  help ", Command{Name: CommandHelp}},
		{"exit", Command{Name: CommandExit}},
		{"exit + 1", Command{Name: CommandParse, Input: "exit + 1"}},
	}

	for _, test := range tests {
		t.Run(test.line, func(t *testing.T) {
			if got := ParseREPLCommand(test.line); got != test.want {
				t.Errorf("wanted %+v, got %+v", test.want, got)
			}
		})
	}
}

func TestCSVWriter(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, "csv")

	if err := s.Eval(Command{Name: CommandLex, Input: "a + 1"}); err != nil {
		t.Fatal(err)
	}

	want := "location,type,token\n" +
		"repl:1:0,TOK_IDENTIFIER,id/a\n" +
		"repl:1:2,TOK_PLUS,+\n" +
		"repl:1:4,TOK_INT,int/1\n"
	if out.String() != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestJSONWriter(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, "json")

	if err := s.Eval(Command{Name: CommandLex, Input: "\"hi\""}); err != nil {
		t.Fatal(err)
	}

	want := `[{"location":"repl:1:0","type":"TOK_STR","token":"str/\"hi\""}]` + "\n"
	if out.String() != want {
		t.Errorf("wanted %s, got %s", want, out.String())
	}
}

func TestTextWriter(t *testing.T) {
	var out bytes.Buffer
	w := NewOutputWriter(&out, "text")

	if err := w.Write(NewTokenListing([]scanner.Token{scanner.Identifier("main")})); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "id/main") {
		t.Errorf("wanted table to contain id/main, got:\n%s", out.String())
	}
}

func TestSessionParse(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, "text")

	if err := s.Eval(ParseREPLCommand("1 + 2")); err != nil {
		t.Fatal(err)
	}

	want := "BinaryOpNode[+]\n    IntegerNode[1]\n    IntegerNode[2]\n"
	if out.String() != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, out.String())
	}
}

func TestSessionDiagnostics(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(&out, "text")

	s.Eval(ParseREPLCommand("x"))
	out.Reset()

	err := s.Eval(ParseREPLCommand("1 +"))
	if !errors.Is(err, parser.ErrUnexpectedToken) {
		t.Fatalf("wanted ErrUnexpectedToken, got %v", err)
	}

	want := "repl:2:3: syntax error\n1 +\n   ^ unexpected end of input, expected an expression\n"
	if out.String() != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, out.String())
	}

	out.Reset()
	err = s.Eval(ParseREPLCommand("lex 'a'"))
	if !errors.Is(err, scanner.ErrUnexpectedSymbol) {
		t.Fatalf("wanted ErrUnexpectedSymbol, got %v", err)
	}
	if !strings.HasPrefix(out.String(), "repl:3:0: syntax error") {
		t.Errorf("wanted diagnostic on line 3, got:\n%s", out.String())
	}
}

func TestSessionDepthLimit(t *testing.T) {
	s := NewSession(&bytes.Buffer{}, "text")
	s.MaxDepth = 2

	if err := s.Eval(ParseREPLCommand("((1))")); !errors.Is(err, parser.ErrTooDeeplyNested) {
		t.Errorf("wanted ErrTooDeeplyNested, got %v", err)
	}
}
