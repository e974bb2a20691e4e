/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package parse

import (
	"strconv"
)

// Location is a position in a named source. Line is 1-based once scanning
// has started, Column is the 0-based rune offset into the line.
type Location struct {
	Source string
	Line   uint
	Column uint
}

// AdvanceLine moves the cursor to the start of the next line.
func (l *Location) AdvanceLine() {
	l.Line++
	l.Column = 0
}

// AdvanceColumn moves the cursor n runes to the right.
func (l *Location) AdvanceColumn(n uint) {
	l.Column += n
}

func (l Location) String() string {
	source := l.Source
	if source == "" {
		source = "<input>"
	}
	return source + ":" + strconv.FormatUint(uint64(l.Line), 10) + ":" + strconv.FormatUint(uint64(l.Column), 10)
}
