/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package source

import (
	"io"
	"os"

	"github.com/dburkart/fern/pkg/lang/parser"
	"github.com/dburkart/fern/pkg/lang/scanner"
	"github.com/pkg/errors"
)

const Stdin = "<stdin>"

// Open returns the source named by the first argument, or stdin when there
// are no arguments or the argument is "-".
func Open(args []string) (string, io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return Stdin, io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return "", nil, errors.Wrap(err, "unable to open source")
	}

	return args[0], f, nil
}

// Diagnose renders err beneath the offending line read by sc. It reports
// false for errors that carry no location, such as I/O failures.
func Diagnose(sc *scanner.Scanner, err error) (string, bool) {
	d, ok := parser.Diagnostic(err)
	if !ok {
		return "", false
	}
	return d.FormatError(sc.Line(d.Location)), true
}
