/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/dburkart/fern/pkg/common/parse"
	"github.com/dburkart/fern/pkg/lang/ast"
	"github.com/dburkart/fern/pkg/lang/parser"
	"github.com/dburkart/fern/pkg/lang/scanner"
	"github.com/rs/zerolog"
)

const Source = "repl"

// Session evaluates REPL commands one line at a time. Each line gets its own
// line number so diagnostics point at the right entry.
type Session struct {
	Log      zerolog.Logger
	Out      io.Writer
	Writer   OutputWriter
	MaxDepth int

	line uint
}

func NewSession(out io.Writer, format string) *Session {
	return &Session{
		Log:      zerolog.Nop(),
		Out:      out,
		Writer:   NewOutputWriter(out, format),
		MaxDepth: parser.DefaultMaxDepth,
	}
}

// Eval runs cmd. Syntax errors are rendered to Out and also returned.
func (s *Session) Eval(cmd Command) error {
	s.line++
	loc := parse.Location{Source: Source, Line: s.line}

	switch cmd.Name {
	case CommandLex:
		tokens, err := scanner.NewScannerAt(strings.NewReader(cmd.Input), loc).ScanAll()
		if err != nil {
			return s.report(err, cmd.Input)
		}

		s.Log.Debug().Int("tokens", len(tokens)).Msg("lexed input")
		return s.Writer.Write(NewTokenListing(tokens))

	case CommandParse:
		p := parser.New(scanner.NewScannerAt(strings.NewReader(cmd.Input), loc))
		p.Log = s.Log
		p.MaxDepth = s.MaxDepth

		expr, err := p.ParseExpression()
		if err != nil {
			return s.report(err, cmd.Input)
		}

		_, err = fmt.Fprint(s.Out, ast.ASTToString(expr))
		return err
	}

	return fmt.Errorf("unsupported command %s", cmd.Name)
}

func (s *Session) report(err error, input string) error {
	if d, ok := parser.Diagnostic(err); ok {
		fmt.Fprint(s.Out, d.FormatError(input))
	}
	return err
}
