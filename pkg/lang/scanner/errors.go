/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"errors"
	"fmt"

	"github.com/dburkart/fern/pkg/common/parse"
)

var (
	ErrUnexpectedSymbol = errors.New("unexpected symbol")
	ErrUnexpectedEOF    = errors.New("unexpected end of input in string literal")
	ErrUnexpectedLF     = errors.New("unexpected line break in string literal")
	ErrInvalidID        = errors.New("invalid identifier")
	ErrMalformedInt     = errors.New("malformed integer literal")
)

// ScanError is returned for any input the scanner cannot tokenize. Kind is
// one of the Err* sentinels above.
type ScanError struct {
	Kind     error
	Location parse.Location
	Symbol   rune
	Text     string
	Err      error
}

func (e *ScanError) Error() string {
	var detail string

	switch e.Kind {
	case ErrUnexpectedSymbol:
		detail = fmt.Sprintf("%s %q", e.Kind, e.Symbol)
	case ErrInvalidID:
		detail = fmt.Sprintf("%s %q", e.Kind, e.Text)
	case ErrMalformedInt:
		detail = fmt.Sprintf("%s %q", e.Kind, e.Text)
		if e.Err != nil {
			detail += ": " + e.Err.Error()
		}
	default:
		detail = e.Kind.Error()
	}

	return fmt.Sprintf("%s: %s", e.Location, detail)
}

func (e *ScanError) Is(target error) bool {
	return e.Kind == target
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Diagnostic converts the error into a SyntaxError so it can be rendered
// like any parser diagnostic.
func (e *ScanError) Diagnostic() parse.SyntaxError {
	width := uint(1)
	if e.Text != "" {
		width = uint(len([]rune(e.Text)))
	}

	msg := e.Error()
	msg = msg[len(e.Location.String())+2:]

	return parse.SyntaxError{Location: e.Location, Width: width, Message: msg, Err: e.Kind}
}

func unexpectedSymbol(l parse.Location, r rune) *ScanError {
	return &ScanError{Kind: ErrUnexpectedSymbol, Location: l, Symbol: r}
}
