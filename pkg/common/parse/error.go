/*
 * Copyright (c) 2022, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"fmt"
	"strings"
)

type SyntaxError struct {
	Location Location
	Width    uint
	Message  string

	// Err optionally classifies the error, so callers can match it with
	// errors.Is.
	Err error
}

func NewSyntaxError(l Location, width uint, m string) SyntaxError {
	return SyntaxError{Location: l, Width: width, Message: m}
}

func (s SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", s.Location, s.Message)
}

func (s SyntaxError) Unwrap() error {
	return s.Err
}

// FormatError renders the error underneath the offending line of input,
// marking the location with a caret.
func (s SyntaxError) FormatError(line string) string {
	return FormatDiagnostic(s.Location, s.Width, s.Message, line)
}

// FormatDiagnostic renders a message beneath line, with a caret at loc and a
// tilde run covering the rest of the lexeme.
func FormatDiagnostic(loc Location, width uint, message, line string) string {
	repeat := int(width) - 1
	if repeat < 0 {
		repeat = 0
	}

	line = strings.TrimRight(line, "\r\n")

	// Tabs keep their width in the marker line so the caret lines up
	var pad strings.Builder
	for i, r := range []rune(line) {
		if uint(i) >= loc.Column {
			break
		}
		if r == '\t' {
			pad.WriteRune('\t')
		} else {
			pad.WriteRune(' ')
		}
	}

	errorString := fmt.Sprintf("%s: syntax error\n", loc)
	errorString += line
	errorString += fmt.Sprintf("\n%s^%s ", pad.String(), strings.Repeat("~", repeat))
	errorString += fmt.Sprintf("%s\n", message)
	return errorString
}
