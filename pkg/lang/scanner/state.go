/*
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"strings"

	"github.com/dburkart/fern/pkg/common/parse"
)

type scanMode int

const (
	stateStart scanMode = iota
	stateIdentifier
	stateString
	stateNumber
	stateComposed
)

func (m scanMode) String() string {
	switch m {
	case stateStart:
		return "start"
	case stateIdentifier:
		return "identifier"
	case stateString:
		return "string"
	case stateNumber:
		return "number"
	case stateComposed:
		return "composed"
	}
	return "unknown"
}

// ScanState is the cursor over a single line. It owns the pending lexeme
// buffer and the queue of tokens accepted so far.
type ScanState struct {
	line   []rune
	pos    int
	cursor parse.Location
	start  parse.Location
	buf    strings.Builder
	queue  []Token
	mode   scanMode
}

func newScanState(cursor parse.Location, line string) *ScanState {
	return &ScanState{
		line:   []rune(line),
		cursor: cursor,
		start:  cursor,
	}
}

// peek returns the next rune without consuming it.
func (s *ScanState) peek() (rune, bool) {
	if s.pos >= len(s.line) {
		return 0, false
	}
	return s.line[s.pos], true
}

// mark records the cursor as the start of the next lexeme.
func (s *ScanState) mark() {
	s.start = s.cursor
}

// buffer consumes one rune and appends it to the pending lexeme.
func (s *ScanState) buffer() bool {
	r, ok := s.peek()
	if !ok {
		return false
	}
	s.buf.WriteRune(r)
	s.pos++
	s.cursor.AdvanceColumn(1)
	return true
}

// skip consumes one rune without buffering it.
func (s *ScanState) skip() bool {
	if _, ok := s.peek(); !ok {
		return false
	}
	s.pos++
	s.cursor.AdvanceColumn(1)
	return true
}

// skipWhile consumes the run of runes matching f and returns its length.
func (s *ScanState) skipWhile(f func(rune) bool) uint {
	n := uint(0)
	for s.pos < len(s.line) && f(s.line[s.pos]) {
		s.pos++
		n++
	}
	s.cursor.AdvanceColumn(n)
	return n
}

// accept stamps t with the start of the current lexeme, queues it and
// resets the buffer for the next lexeme.
func (s *ScanState) accept(t Token) {
	t.Location = s.start
	t.Span = s.cursor.Column - s.start.Column
	s.queue = append(s.queue, t)
	s.buf.Reset()
	s.mode = stateStart
	s.start = s.cursor
}

func (s *ScanState) stringBuffer() string {
	return s.buf.String()
}

func (s *ScanState) isBufferEmpty() bool {
	return s.buf.Len() == 0
}
