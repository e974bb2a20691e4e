/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/dburkart/fern/pkg/common/parse"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Scanner turns a line-buffered source into tokens, one line per call to
// Scan. The cursor persists across calls.
type Scanner struct {
	Log zerolog.Logger

	r         *bufio.Reader
	cursor    parse.Location
	fresh     bool
	exhausted bool

	// Raw text of every line read so far, for rendering diagnostics
	lines  []string
	tokens int
	bytes  int64
}

// NewScanner returns a Scanner reading from r. name identifies the source in
// token locations.
func NewScanner(name string, r io.Reader) *Scanner {
	return NewScannerAt(r, parse.Location{Source: name, Line: 1})
}

// NewScannerAt returns a Scanner whose first line is scanned starting at loc.
func NewScannerAt(r io.Reader, loc parse.Location) *Scanner {
	return &Scanner{
		Log:    zerolog.Nop(),
		r:      bufio.NewReader(r),
		cursor: loc,
		fresh:  true,
	}
}

// Scan reads the next line of input and returns its tokens. At the end of
// input it returns an empty queue and a nil error; Exhausted distinguishes
// that from a blank line.
func (s *Scanner) Scan() ([]Token, error) {
	if s.exhausted {
		return nil, nil
	}

	line, err := s.r.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "unable to read %s", s.cursor.Source)
	}

	if len(line) == 0 {
		s.exhausted = true
		s.Log.Trace().Str("source", s.cursor.Source).Int("lines", len(s.lines)).Msg("end of input")
		return nil, nil
	}

	if s.fresh {
		s.fresh = false
	} else {
		s.cursor.AdvanceLine()
	}

	s.lines = append(s.lines, line)
	s.bytes += int64(len(line))

	state := newScanState(s.cursor, line)
	err = scanLine(state)
	s.cursor = state.cursor
	if err != nil {
		return nil, err
	}

	s.tokens += len(state.queue)
	s.Log.Trace().
		Uint("line", s.cursor.Line).
		Int("tokens", len(state.queue)).
		Msg("scanned line")

	return state.queue, nil
}

// ScanAll drains the source and returns every token in order.
func (s *Scanner) ScanAll() ([]Token, error) {
	var all []Token

	for {
		tokens, err := s.Scan()
		if err != nil {
			return nil, err
		}
		if len(tokens) == 0 && s.Exhausted() {
			return all, nil
		}
		all = append(all, tokens...)
	}
}

// Exhausted reports whether the end of input has been reached.
func (s *Scanner) Exhausted() bool {
	return s.exhausted
}

// Location returns the current cursor.
func (s *Scanner) Location() parse.Location {
	return s.cursor
}

// Line returns the raw text of the given line, if it has been read.
func (s *Scanner) Line(l parse.Location) string {
	first := s.firstLine()
	if l.Line < first || int(l.Line-first) >= len(s.lines) {
		return ""
	}
	return s.lines[l.Line-first]
}

func (s *Scanner) firstLine() uint {
	return s.cursor.Line + 1 - uint(len(s.lines))
}

func (s *Scanner) Lines() int {
	return len(s.lines)
}

func (s *Scanner) Tokens() int {
	return s.tokens
}

func (s *Scanner) Bytes() int64 {
	return s.bytes
}

// scanLine drives the state machine over a single line.
func scanLine(s *ScanState) error {
	for {
		r, ok := s.peek()

		switch s.mode {
		case stateStart:
			if !ok {
				return nil
			}

			switch {
			case unicode.IsSpace(r):
				s.skipWhile(unicode.IsSpace)
			case r == '"':
				s.mark()
				s.mode = stateString
			case isPunctuation(r):
				s.mark()
				scanPunctuation(s)
			case isDigit(r):
				s.mark()
				s.mode = stateNumber
			case unicode.IsControl(r):
				s.mark()
				s.skip()
				s.accept(Token{Type: TOK_UNKNOWN, Text: string(r)})
			default:
				s.mark()
				s.mode = stateIdentifier
				s.buffer()
			}

		case stateIdentifier:
			if !ok || endsIdentifier(r) {
				if err := scanKeywordOrIdentifier(s); err != nil {
					return err
				}
				continue
			}
			s.buffer()

		case stateString:
			if err := scanString(s); err != nil {
				return err
			}

		case stateNumber:
			if err := scanInteger(s); err != nil {
				return err
			}

		case stateComposed:
			if err := scanComposedPunctuation(s); err != nil {
				return err
			}
		}
	}
}

var singlePunctuation = map[rune]TokenType{
	',': TOK_COMMA,
	':': TOK_COLON,
	';': TOK_SEMICOLON,
	'.': TOK_DOT,
	'+': TOK_PLUS,
	'-': TOK_DASH,
	'*': TOK_ASTERISK,
	'/': TOK_SLASH,
	'%': TOK_PERCENT,
	'^': TOK_HAT,
	'{': TOK_BRACE_L,
	'}': TOK_BRACE_R,
	'(': TOK_PAREN_L,
	')': TOK_PAREN_R,
	'[': TOK_BRACKET_L,
	']': TOK_BRACKET_R,
}

// scanPunctuation accepts single-rune punctuation directly, and hands
// anything that may start a composed operator to stateComposed.
func scanPunctuation(s *ScanState) {
	r, _ := s.peek()

	if t, ok := singlePunctuation[r]; ok {
		s.skip()
		s.accept(Simple(t))
		return
	}

	s.mode = stateComposed
}

// scanComposedPunctuation resolves operators that may be one or two runes
// long, always preferring the longer match.
//
// Grammar:
//
//	composed        = "!" ["="] / "=" ["="] / "&" ["&"] / "|" ["|"] /
//	                  "<" ["=" / "<"] / ">" ["=" / ">"]
func scanComposedPunctuation(s *ScanState) error {
	r, _ := s.peek()

	var single TokenType
	var follow map[rune]TokenType

	switch r {
	case '!':
		single, follow = TOK_EXCLAMATION, map[rune]TokenType{'=': TOK_NOT_EQ}
	case '=':
		single, follow = TOK_EQUAL, map[rune]TokenType{'=': TOK_EQ_EQ}
	case '&':
		single, follow = TOK_AMPERSAND, map[rune]TokenType{'&': TOK_LOGICAL_AND}
	case '|':
		single, follow = TOK_PIPE, map[rune]TokenType{'|': TOK_LOGICAL_OR}
	case '<':
		single, follow = TOK_ANGLE_L, map[rune]TokenType{'=': TOK_LESS_EQ, '<': TOK_SHIFT_L}
	case '>':
		single, follow = TOK_ANGLE_R, map[rune]TokenType{'=': TOK_GREATER_EQ, '>': TOK_SHIFT_R}
	default:
		return unexpectedSymbol(s.cursor, r)
	}

	s.skip()

	t := single
	if next, ok := s.peek(); ok {
		if composed, ok := follow[next]; ok {
			s.skip()
			t = composed
		}
	}

	s.accept(Simple(t))
	return nil
}

// scanInteger scans an unsigned integer literal. A leading 0 may be followed
// by a radix marker; '_' separates digit groups once the radix is known.
//
// Grammar:
//
//	integer         = ( "0" ( "x" / "X" ) 1*( HEXDIG / "_" ) ) /
//	                  ( "0" ( "o" / "O" ) 1*( OCTDIG / "_" ) ) /
//	                  ( "0" ( "b" / "B" ) 1*( BIT / "_" ) ) /
//	                  ( DIGIT *( DIGIT / "_" ) )
func scanInteger(s *ScanState) error {
	radix := 0
	from := s.pos

	if r, _ := s.peek(); r == '0' {
		s.skip()
	} else {
		radix = 10
		s.buffer()
	}

	for {
		r, ok := s.peek()
		if !ok {
			break
		}

		if radix != 0 {
			if r == '_' {
				s.skip()
				continue
			}
			if !isDigitIn(r, radix) {
				break
			}
			s.buffer()
			continue
		}

		done := false
		switch {
		case r == 'x' || r == 'X':
			radix = 16
			s.skip()
		case r == 'o' || r == 'O':
			radix = 8
			s.skip()
		case r == 'b' || r == 'B':
			radix = 2
			s.skip()
		case isDigit(r):
			radix = 10
			s.buffer()
		case unicode.IsSpace(r) || isPunctuation(r) || r == '"':
			// A lone zero
			done = true
		default:
			return unexpectedSymbol(s.cursor, r)
		}

		if done {
			break
		}
	}

	if radix == 0 {
		s.accept(Int(0))
		return nil
	}

	digits := s.stringBuffer()
	v, err := strconv.ParseUint(digits, radix, 64)
	if err != nil {
		return &ScanError{
			Kind:     ErrMalformedInt,
			Location: s.start,
			Text:     string(s.line[from:s.pos]),
			Err:      err,
		}
	}

	s.accept(Int(v))
	return nil
}

// scanString scans a double-quoted string literal. A backslash passes the
// following rune through verbatim; literals may not span lines.
//
// Grammar:
//
//	string          = DQUOTE *( ( "\" CHAR ) / ( CHAR - DQUOTE - "\" - LF ) ) DQUOTE
func scanString(s *ScanState) error {
	s.skip()

	escape := false
	for {
		r, ok := s.peek()
		if !ok {
			return &ScanError{Kind: ErrUnexpectedEOF, Location: s.start}
		}

		switch {
		case r == '\n':
			return &ScanError{Kind: ErrUnexpectedLF, Location: s.cursor}
		case escape:
			escape = false
			s.buffer()
		case r == '\\':
			escape = true
			s.skip()
		case r == '"':
			s.skip()
			s.accept(Str(s.stringBuffer()))
			return nil
		default:
			s.buffer()
		}
	}
}

// scanKeywordOrIdentifier resolves the pending buffer against the keyword
// table, falling back to an identifier.
//
// Grammar:
//
//	identifier      = 1*( ALPHA / DIGIT / "_" / "-" )
func scanKeywordOrIdentifier(s *ScanState) error {
	if s.isBufferEmpty() {
		s.mode = stateStart
		return nil
	}

	text := s.stringBuffer()

	switch text {
	case "true":
		s.accept(Bool(true))
		return nil
	case "false":
		s.accept(Bool(false))
		return nil
	}

	if t, ok := Keyword(text); ok {
		s.accept(Simple(t))
		return nil
	}

	for _, r := range text {
		if !isIdentifierRune(r) {
			return &ScanError{Kind: ErrInvalidID, Location: s.start, Text: text}
		}
	}

	s.accept(Identifier(text))
	return nil
}

// ASCII punctuation, minus '"' (strings) and '_' (identifiers)
const punctuation = "!#$%&'()*+,-./:;<=>?@[\\]^`{|}~"

func isPunctuation(r rune) bool {
	return r < unicode.MaxASCII && strings.ContainsRune(punctuation, r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isDigitIn(r rune, radix int) bool {
	switch radix {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return r >= '0' && r <= '7'
	case 16:
		return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	}
	return isDigit(r)
}

func isIdentifierRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isDigit(r) || r == '_' || r == '-'
}

// endsIdentifier reports whether r terminates a pending identifier. Digits
// and punctuation are buffered with it and left to resolution to reject.
func endsIdentifier(r rune) bool {
	return unicode.IsSpace(r) || r == '"' || unicode.IsControl(r)
}
