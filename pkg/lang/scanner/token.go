/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"strconv"

	"github.com/dburkart/fern/pkg/common/parse"
)

type TokenType int

// TOK_EOF is never produced by the scanner; consumers use it to represent
// the end of the token stream.
const TOK_EOF TokenType = -1

const (
	TOK_UNKNOWN TokenType = iota

	// Punctuation
	TOK_COMMA
	TOK_COLON
	TOK_SEMICOLON
	TOK_DOT
	TOK_EXCLAMATION

	// Arithmetic and logical
	TOK_PLUS
	TOK_DASH
	TOK_ASTERISK
	TOK_SLASH
	TOK_PERCENT
	TOK_EQUAL
	TOK_AMPERSAND
	TOK_HAT
	TOK_PIPE

	// Grouping
	TOK_BRACE_L
	TOK_BRACE_R
	TOK_PAREN_L
	TOK_PAREN_R
	TOK_BRACKET_L
	TOK_BRACKET_R

	// Relational and shift
	TOK_ANGLE_L
	TOK_ANGLE_R

	// Composed operators
	TOK_LOGICAL_OR
	TOK_LOGICAL_AND
	TOK_EQ_EQ
	TOK_NOT_EQ
	TOK_LESS_EQ
	TOK_GREATER_EQ
	TOK_SHIFT_L
	TOK_SHIFT_R

	// Literals
	TOK_INT
	TOK_STR
	TOK_BOOL
	TOK_IDENTIFIER

	// Keywords
	TOK_NAMESPACE
	TOK_STRUCT
	TOK_FN
	TOK_SELF
	TOK_IF
	TOK_ELSE
	TOK_LOOP
	TOK_FOR
	TOK_IN
	TOK_BREAK
	TOK_CONTINUE
	TOK_VAR
	TOK_VAL
	TOK_SIZEOF
	TOK_RETURN
	TOK_UNSIGNED
	TOK_INT_KEY
	TOK_STR_KEY
	TOK_BOOL_KEY
)

var tokenNames = [...]string{
	TOK_UNKNOWN:     "TOK_UNKNOWN",
	TOK_COMMA:       "TOK_COMMA",
	TOK_COLON:       "TOK_COLON",
	TOK_SEMICOLON:   "TOK_SEMICOLON",
	TOK_DOT:         "TOK_DOT",
	TOK_EXCLAMATION: "TOK_EXCLAMATION",
	TOK_PLUS:        "TOK_PLUS",
	TOK_DASH:        "TOK_DASH",
	TOK_ASTERISK:    "TOK_ASTERISK",
	TOK_SLASH:       "TOK_SLASH",
	TOK_PERCENT:     "TOK_PERCENT",
	TOK_EQUAL:       "TOK_EQUAL",
	TOK_AMPERSAND:   "TOK_AMPERSAND",
	TOK_HAT:         "TOK_HAT",
	TOK_PIPE:        "TOK_PIPE",
	TOK_BRACE_L:     "TOK_BRACE_L",
	TOK_BRACE_R:     "TOK_BRACE_R",
	TOK_PAREN_L:     "TOK_PAREN_L",
	TOK_PAREN_R:     "TOK_PAREN_R",
	TOK_BRACKET_L:   "TOK_BRACKET_L",
	TOK_BRACKET_R:   "TOK_BRACKET_R",
	TOK_ANGLE_L:     "TOK_ANGLE_L",
	TOK_ANGLE_R:     "TOK_ANGLE_R",
	TOK_LOGICAL_OR:  "TOK_LOGICAL_OR",
	TOK_LOGICAL_AND: "TOK_LOGICAL_AND",
	TOK_EQ_EQ:       "TOK_EQ_EQ",
	TOK_NOT_EQ:      "TOK_NOT_EQ",
	TOK_LESS_EQ:     "TOK_LESS_EQ",
	TOK_GREATER_EQ:  "TOK_GREATER_EQ",
	TOK_SHIFT_L:     "TOK_SHIFT_L",
	TOK_SHIFT_R:     "TOK_SHIFT_R",
	TOK_INT:         "TOK_INT",
	TOK_STR:         "TOK_STR",
	TOK_BOOL:        "TOK_BOOL",
	TOK_IDENTIFIER:  "TOK_IDENTIFIER",
	TOK_NAMESPACE:   "TOK_NAMESPACE",
	TOK_STRUCT:      "TOK_STRUCT",
	TOK_FN:          "TOK_FN",
	TOK_SELF:        "TOK_SELF",
	TOK_IF:          "TOK_IF",
	TOK_ELSE:        "TOK_ELSE",
	TOK_LOOP:        "TOK_LOOP",
	TOK_FOR:         "TOK_FOR",
	TOK_IN:          "TOK_IN",
	TOK_BREAK:       "TOK_BREAK",
	TOK_CONTINUE:    "TOK_CONTINUE",
	TOK_VAR:         "TOK_VAR",
	TOK_VAL:         "TOK_VAL",
	TOK_SIZEOF:      "TOK_SIZEOF",
	TOK_RETURN:      "TOK_RETURN",
	TOK_UNSIGNED:    "TOK_UNSIGNED",
	TOK_INT_KEY:     "TOK_INT_KEY",
	TOK_STR_KEY:     "TOK_STR_KEY",
	TOK_BOOL_KEY:    "TOK_BOOL_KEY",
}

func (t TokenType) ToString() string {
	if t == TOK_EOF {
		return "TOK_EOF"
	}
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "TOK_INVALID"
}

// Spelling of every fixed-lexeme token. Literals, identifiers and
// TOK_UNKNOWN are rendered from their payload instead.
var lexemes = map[TokenType]string{
	TOK_COMMA:       ",",
	TOK_COLON:       ":",
	TOK_SEMICOLON:   ";",
	TOK_DOT:         ".",
	TOK_EXCLAMATION: "!",
	TOK_PLUS:        "+",
	TOK_DASH:        "-",
	TOK_ASTERISK:    "*",
	TOK_SLASH:       "/",
	TOK_PERCENT:     "%",
	TOK_EQUAL:       "=",
	TOK_AMPERSAND:   "&",
	TOK_HAT:         "^",
	TOK_PIPE:        "|",
	TOK_BRACE_L:     "{",
	TOK_BRACE_R:     "}",
	TOK_PAREN_L:     "(",
	TOK_PAREN_R:     ")",
	TOK_BRACKET_L:   "[",
	TOK_BRACKET_R:   "]",
	TOK_ANGLE_L:     "<",
	TOK_ANGLE_R:     ">",
	TOK_LOGICAL_OR:  "||",
	TOK_LOGICAL_AND: "&&",
	TOK_EQ_EQ:       "==",
	TOK_NOT_EQ:      "!=",
	TOK_LESS_EQ:     "<=",
	TOK_GREATER_EQ:  ">=",
	TOK_SHIFT_L:     "<<",
	TOK_SHIFT_R:     ">>",
	TOK_NAMESPACE:   "namespace",
	TOK_STRUCT:      "struct",
	TOK_FN:          "fn",
	TOK_SELF:        "self",
	TOK_IF:          "if",
	TOK_ELSE:        "else",
	TOK_LOOP:        "loop",
	TOK_FOR:         "for",
	TOK_IN:          "in",
	TOK_BREAK:       "break",
	TOK_CONTINUE:    "continue",
	TOK_VAR:         "var",
	TOK_VAL:         "val",
	TOK_SIZEOF:      "sizeof",
	TOK_RETURN:      "return",
	TOK_UNSIGNED:    "unsigned",
	TOK_INT_KEY:     "int",
	TOK_STR_KEY:     "str",
	TOK_BOOL_KEY:    "bool",
}

// keywords maps reserved words to their token type. "true" and "false" are
// handled separately since they carry a payload.
var keywords = map[string]TokenType{}

func init() {
	for t, lexeme := range lexemes {
		if t >= TOK_NAMESPACE {
			keywords[lexeme] = t
		}
	}
}

// Keyword returns the token type reserved for word, if any.
func Keyword(word string) (TokenType, bool) {
	t, ok := keywords[word]
	return t, ok
}

type Token struct {
	Type     TokenType
	Int      uint64
	Text     string
	Bool     bool
	Location parse.Location

	// Number of source runes the lexeme spans, if known
	Span uint
}

// Equal compares type and payload. Locations are diagnostic metadata and
// are ignored.
func (t Token) Equal(o Token) bool {
	if t.Type != o.Type {
		return false
	}

	switch t.Type {
	case TOK_INT:
		return t.Int == o.Int
	case TOK_STR, TOK_IDENTIFIER:
		return t.Text == o.Text
	case TOK_BOOL:
		return t.Bool == o.Bool
	}
	return true
}

// Lexeme returns the source spelling of the token as far as it can be
// reconstructed.
func (t Token) Lexeme() string {
	switch t.Type {
	case TOK_INT:
		return strconv.FormatUint(t.Int, 10)
	case TOK_STR:
		return strconv.Quote(t.Text)
	case TOK_BOOL:
		return strconv.FormatBool(t.Bool)
	case TOK_IDENTIFIER:
		return t.Text
	case TOK_UNKNOWN:
		if t.Text != "" {
			return strconv.QuoteToASCII(t.Text)
		}
		return "?"
	case TOK_EOF:
		return "end of input"
	}
	return lexemes[t.Type]
}

// Width is the number of runes the token spans, used to underline it in
// diagnostics. Tokens built outside the scanner fall back to the length of
// their lexeme.
func (t Token) Width() uint {
	if t.Type == TOK_UNKNOWN || t.Type == TOK_EOF {
		return 1
	}
	if t.Span > 0 {
		return t.Span
	}
	return uint(len([]rune(t.Lexeme())))
}

// DebugString renders a short human-readable form of the token, such as
// "int/42", "id/main" or "==".
func (t Token) DebugString() string {
	switch t.Type {
	case TOK_UNKNOWN:
		return "UNKNOWN"
	case TOK_EOF:
		return "EOF"
	case TOK_INT:
		return "int/" + strconv.FormatUint(t.Int, 10)
	case TOK_STR:
		return "str/\"" + t.Text + "\""
	case TOK_BOOL:
		return "bool/" + strconv.FormatBool(t.Bool)
	case TOK_IDENTIFIER:
		return "id/" + t.Text
	}
	return lexemes[t.Type]
}

// Constructors used by the scanner and in tests

func Simple(t TokenType) Token {
	return Token{Type: t}
}

func Int(v uint64) Token {
	return Token{Type: TOK_INT, Int: v}
}

func Str(s string) Token {
	return Token{Type: TOK_STR, Text: s}
}

func Bool(b bool) Token {
	return Token{Type: TOK_BOOL, Bool: b}
}

func Identifier(id string) Token {
	return Token{Type: TOK_IDENTIFIER, Text: id}
}
