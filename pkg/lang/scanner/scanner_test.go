/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package scanner

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/dburkart/fern/pkg/common/parse"
)

func mustScan(t *testing.T, input string) []Token {
	t.Helper()

	s := NewScanner("test.fn", strings.NewReader(input))
	tokens, err := s.ScanAll()
	if err != nil {
		t.Fatalf("unexpected error scanning %q: %s", input, err)
	}
	return tokens
}

func mustFail(t *testing.T, input string) error {
	t.Helper()

	s := NewScanner("test.fn", strings.NewReader(input))
	_, err := s.ScanAll()
	if err == nil {
		t.Fatalf("wanted an error scanning %q, got none", input)
	}
	return err
}

func expectTokens(t *testing.T, input string, want ...Token) {
	t.Helper()

	got := mustScan(t, input)
	if len(got) != len(want) {
		t.Fatalf("%q: wanted %d tokens, got %d (%v)", input, len(want), len(got), debugStrings(got))
	}

	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("%q: token %d: wanted %s, got %s", input, i, want[i].DebugString(), got[i].DebugString())
		}
	}
}

func debugStrings(tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.DebugString())
	}
	return out
}

func TestEmptySource(t *testing.T) {
	s := NewScanner("empty", strings.NewReader(""))

	tokens, err := s.Scan()
	if err != nil {
		t.Fatal("wanted no error, got", err)
	}

	if len(tokens) != 0 {
		t.Error("wanted an empty queue, got", debugStrings(tokens))
	}

	if !s.Exhausted() {
		t.Error("wanted scanner to be exhausted")
	}
}

func TestBlankLineIsNotEndOfInput(t *testing.T) {
	s := NewScanner("blank", strings.NewReader("\n   \nfn\n"))

	for i := 0; i < 2; i++ {
		tokens, err := s.Scan()
		if err != nil {
			t.Fatal(err)
		}
		if len(tokens) != 0 || s.Exhausted() {
			t.Fatalf("line %d: wanted an empty queue without end of input", i+1)
		}
	}

	tokens, err := s.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 1 || tokens[0].Type != TOK_FN {
		t.Error("wanted [fn], got", debugStrings(tokens))
	}
}

func TestIntegerSeparators(t *testing.T) {
	for _, input := range []string{"1_000_000", "1_0", "12_34_5", "9__9"} {
		want, err := strconv.ParseUint(strings.ReplaceAll(input, "_", ""), 10, 64)
		if err != nil {
			t.Fatal(err)
		}
		expectTokens(t, input, Int(want))
	}
}

func TestIntegerRadix(t *testing.T) {
	cases := map[string]uint64{
		"0x1A":    26,
		"0X1a":    26,
		"0o17":    15,
		"0O17":    15,
		"0b101":   5,
		"0B1_01":  5,
		"007":     7,
		"0":       0,
		"42":      42,
		"0xff_ff": 65535,
	}

	for input, want := range cases {
		expectTokens(t, input, Int(want))
	}

	expectTokens(t, "18446744073709551615", Int(math.MaxUint64))
}

func TestIntegerStopsAtNonDigit(t *testing.T) {
	expectTokens(t, "12abc", Int(12), Identifier("abc"))
	expectTokens(t, "0b102", Int(2), Int(2))
	expectTokens(t, "0;", Int(0), Simple(TOK_SEMICOLON))
	expectTokens(t, "0 1", Int(0), Int(1))
}

func TestMalformedInteger(t *testing.T) {
	for _, input := range []string{"18446744073709551616", "0x", "0b"} {
		err := mustFail(t, input)
		if !errors.Is(err, ErrMalformedInt) {
			t.Errorf("%q: wanted ErrMalformedInt, got %s", input, err)
		}

		var numErr *strconv.NumError
		if !errors.As(err, &numErr) {
			t.Errorf("%q: wanted the strconv error to be reachable", input)
		}
	}
}

func TestIntegerUnexpectedSymbol(t *testing.T) {
	err := mustFail(t, "0z")

	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatal("wanted a *ScanError, got", err)
	}

	if scanErr.Kind != ErrUnexpectedSymbol || scanErr.Symbol != 'z' {
		t.Errorf("wanted unexpected symbol 'z', got %s", err)
	}

	if scanErr.Location.Column != 1 {
		t.Errorf("wanted column 1, got %d", scanErr.Location.Column)
	}
}

func TestStringLiteral(t *testing.T) {
	expectTokens(t, `"abc"`, Str("abc"))
	expectTokens(t, `""`, Str(""))
	expectTokens(t, `"a\"b"`, Str(`a"b`))
	expectTokens(t, `"a\nb"`, Str("anb"))
	expectTokens(t, `"a\\b"`, Str(`a\b`))
	expectTokens(t, `x"y"z`, Identifier("x"), Str("y"), Identifier("z"))
}

func TestUnterminatedString(t *testing.T) {
	err := mustFail(t, `"unterminated`)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Error("wanted ErrUnexpectedEOF, got", err)
	}

	err = mustFail(t, "\"line\nbreak\"")
	if !errors.Is(err, ErrUnexpectedLF) {
		t.Error("wanted ErrUnexpectedLF, got", err)
	}

	err = mustFail(t, "\"escaped\\\nbreak\"")
	if !errors.Is(err, ErrUnexpectedLF) {
		t.Error("wanted ErrUnexpectedLF for an escaped line break, got", err)
	}
}

func TestComposedOperators(t *testing.T) {
	cases := map[string][]TokenType{
		"<=":   {TOK_LESS_EQ},
		"<<":   {TOK_SHIFT_L},
		"<a":   {TOK_ANGLE_L, TOK_IDENTIFIER},
		"< =":  {TOK_ANGLE_L, TOK_EQUAL},
		">=":   {TOK_GREATER_EQ},
		">>":   {TOK_SHIFT_R},
		">":    {TOK_ANGLE_R},
		"!=":   {TOK_NOT_EQ},
		"!":    {TOK_EXCLAMATION},
		"==":   {TOK_EQ_EQ},
		"===":  {TOK_EQ_EQ, TOK_EQUAL},
		"=":    {TOK_EQUAL},
		"&&":   {TOK_LOGICAL_AND},
		"&":    {TOK_AMPERSAND},
		"||":   {TOK_LOGICAL_OR},
		"|":    {TOK_PIPE},
		"<<=":  {TOK_SHIFT_L, TOK_EQUAL},
		"1<=2": {TOK_INT, TOK_LESS_EQ, TOK_INT},
	}

	for input, want := range cases {
		got := mustScan(t, input)
		if len(got) != len(want) {
			t.Errorf("%q: wanted %d tokens, got %v", input, len(want), debugStrings(got))
			continue
		}
		for i := range want {
			if got[i].Type != want[i] {
				t.Errorf("%q: token %d: wanted %s, got %s", input, i, want[i].ToString(), got[i].Type.ToString())
			}
		}
	}

	expectTokens(t, "a <= b", Identifier("a"), Simple(TOK_LESS_EQ), Identifier("b"))
}

func TestUnrecognizedPunctuation(t *testing.T) {
	for _, input := range []string{"#", "a @ b", "'", "?"} {
		err := mustFail(t, input)
		if !errors.Is(err, ErrUnexpectedSymbol) {
			t.Errorf("%q: wanted ErrUnexpectedSymbol, got %s", input, err)
		}
	}
}

func TestKeywords(t *testing.T) {
	for word, want := range keywords {
		got := mustScan(t, word)
		if len(got) != 1 || got[0].Type != want {
			t.Errorf("%q: wanted %s, got %v", word, want.ToString(), debugStrings(got))
		}
	}

	expectTokens(t, "true false", Bool(true), Bool(false))
}

func TestKeywordRequiresCompleteMatch(t *testing.T) {
	expectTokens(t, "ifx", Identifier("ifx"))
	expectTokens(t, "fnord", Identifier("fnord"))
	expectTokens(t, "truely", Identifier("truely"))
	expectTokens(t, "if x", Simple(TOK_IF), Identifier("x"))
}

func TestIdentifiers(t *testing.T) {
	expectTokens(t, "variable a3 ", Identifier("variable"), Identifier("a3"))
	expectTokens(t, "_private", Identifier("_private"))
	expectTokens(t, "kebab-case", Identifier("kebab-case"))
	expectTokens(t, "f ( x )", Identifier("f"), Simple(TOK_PAREN_L), Identifier("x"), Simple(TOK_PAREN_R))
	expectTokens(t, "a . b ;", Identifier("a"), Simple(TOK_DOT), Identifier("b"), Simple(TOK_SEMICOLON))
	expectTokens(t, "(a )", Simple(TOK_PAREN_L), Identifier("a"), Simple(TOK_PAREN_R))
}

func TestPunctuationJoinsPendingIdentifier(t *testing.T) {
	cases := map[string]string{
		"a;":      "a;",
		"a.b":     "a.b",
		"f(x)":    "f(x)",
		"x = y+1": "y+1",
		"p{a: 1}": "p{a:",
		"if(x)":   "if(x)",
	}

	for input, text := range cases {
		err := mustFail(t, input)

		var scanErr *ScanError
		if !errors.As(err, &scanErr) || scanErr.Kind != ErrInvalidID {
			t.Errorf("%q: wanted ErrInvalidID, got %v", input, err)
			continue
		}
		if scanErr.Text != text {
			t.Errorf("%q: wanted text '%s', got '%s'", input, text, scanErr.Text)
		}
	}
}

func TestInvalidIdentifier(t *testing.T) {
	err := mustFail(t, "  héllo")

	var scanErr *ScanError
	if !errors.As(err, &scanErr) || scanErr.Kind != ErrInvalidID {
		t.Fatal("wanted ErrInvalidID, got", err)
	}

	if scanErr.Text != "héllo" {
		t.Errorf("wanted text 'héllo', got '%s'", scanErr.Text)
	}

	if scanErr.Location.Column != 2 {
		t.Errorf("wanted column 2, got %d", scanErr.Location.Column)
	}
}

func TestControlCharacterIsUnknown(t *testing.T) {
	got := mustScan(t, "a\x01b")
	want := []TokenType{TOK_IDENTIFIER, TOK_UNKNOWN, TOK_IDENTIFIER}

	if len(got) != len(want) {
		t.Fatal("wanted 3 tokens, got", debugStrings(got))
	}
	for i := range want {
		if got[i].Type != want[i] {
			t.Errorf("token %d: wanted %s, got %s", i, want[i].ToString(), got[i].Type.ToString())
		}
	}
}

func TestLocations(t *testing.T) {
	input := "fn main ( ) {\n\tvar x = 0x10;\n  \"s\" <= y\n}"
	tokens := mustScan(t, input)

	want := []struct {
		Debug  string
		Line   uint
		Column uint
	}{
		{"fn", 1, 0},
		{"id/main", 1, 3},
		{"(", 1, 8},
		{")", 1, 10},
		{"{", 1, 12},
		{"var", 2, 1},
		{"id/x", 2, 5},
		{"=", 2, 7},
		{"int/16", 2, 9},
		{";", 2, 13},
		{"str/\"s\"", 3, 2},
		{"<=", 3, 6},
		{"id/y", 3, 9},
		{"}", 4, 0},
	}

	if len(tokens) != len(want) {
		t.Fatalf("wanted %d tokens, got %v", len(want), debugStrings(tokens))
	}

	for i, w := range want {
		tok := tokens[i]
		if tok.DebugString() != w.Debug {
			t.Errorf("token %d: wanted %s, got %s", i, w.Debug, tok.DebugString())
		}
		if tok.Location.Line != w.Line || tok.Location.Column != w.Column {
			t.Errorf("token %s: wanted %d:%d, got %d:%d", w.Debug, w.Line, w.Column, tok.Location.Line, tok.Location.Column)
		}
		if tok.Location.Source != "test.fn" {
			t.Errorf("token %s: wanted source test.fn, got %s", w.Debug, tok.Location.Source)
		}
	}
}

func TestLineIsMonotonic(t *testing.T) {
	tokens := mustScan(t, "a\nb c\n\n\nd\n")

	var last uint
	for _, tok := range tokens {
		if tok.Location.Line < last {
			t.Errorf("line went backwards at %s", tok.DebugString())
		}
		last = tok.Location.Line
	}

	if last != 5 {
		t.Errorf("wanted last token on line 5, got %d", last)
	}
}

func TestScannerAt(t *testing.T) {
	s := NewScannerAt(strings.NewReader("x\ny"), parse.Location{Source: "repl", Line: 10, Column: 4})

	tokens, err := s.ScanAll()
	if err != nil {
		t.Fatal(err)
	}

	if tokens[0].Location.Line != 10 || tokens[0].Location.Column != 4 {
		t.Errorf("wanted first token at 10:4, got %s", tokens[0].Location)
	}

	if tokens[1].Location.Line != 11 || tokens[1].Location.Column != 0 {
		t.Errorf("wanted second token at 11:0, got %s", tokens[1].Location)
	}

	if s.Line(tokens[1].Location) != "y" {
		t.Errorf("wanted line text 'y', got '%s'", s.Line(tokens[1].Location))
	}
}

func TestEqualIgnoresLocation(t *testing.T) {
	a := Identifier("x")
	b := Identifier("x")
	b.Location = parse.Location{Source: "elsewhere", Line: 3, Column: 9}

	if !a.Equal(b) {
		t.Error("wanted tokens with different locations to be equal")
	}

	if Int(1).Equal(Int(2)) {
		t.Error("wanted payloads to be compared")
	}

	if Simple(TOK_PLUS).Equal(Simple(TOK_DASH)) {
		t.Error("wanted types to be compared")
	}
}

func TestDebugString(t *testing.T) {
	for tt := TOK_UNKNOWN; tt <= TOK_BOOL_KEY; tt++ {
		tok := Token{Type: tt}
		if tok.DebugString() == "" {
			t.Errorf("%s has no debug representation", tt.ToString())
		}
		if tt.ToString() == "TOK_INVALID" {
			t.Errorf("token type %d has no name", tt)
		}
	}

	cases := map[string]Token{
		"int/42":     Int(42),
		"str/\"hi\"": Str("hi"),
		"bool/true":  Bool(true),
		"id/main":    Identifier("main"),
		"==":         Simple(TOK_EQ_EQ),
		"namespace":  Simple(TOK_NAMESPACE),
		"UNKNOWN":    Simple(TOK_UNKNOWN),
	}

	for want, tok := range cases {
		if tok.DebugString() != want {
			t.Errorf("wanted %s, got %s", want, tok.DebugString())
		}
	}
}

func TestScanErrorRendering(t *testing.T) {
	err := mustFail(t, "val x = #;")

	if err.Error() != "test.fn:1:8: unexpected symbol '#'" {
		t.Errorf("unexpected message: %s", err)
	}

	var scanErr *ScanError
	errors.As(err, &scanErr)

	diag := scanErr.Diagnostic()
	if !errors.Is(diag, ErrUnexpectedSymbol) {
		t.Error("wanted the diagnostic to keep its kind")
	}

	rendered := diag.FormatError("val x = #;")
	if !strings.Contains(rendered, "\n        ^ unexpected symbol '#'") {
		t.Errorf("caret misplaced:\n%s", rendered)
	}
}

func TestWidthCoversSourceSpan(t *testing.T) {
	cases := map[string]uint{
		"0xFF":       4,
		"1_000":      5,
		`"a\"b"`:     6,
		"kebab-case": 10,
		"true":       4,
		"0o17":       4,
	}

	for input, want := range cases {
		tokens := mustScan(t, input)
		if len(tokens) != 1 {
			t.Fatalf("%q: wanted 1 token, got %v", input, debugStrings(tokens))
		}
		if w := tokens[0].Width(); w != want {
			t.Errorf("%q: wanted width %d, got %d", input, want, w)
		}
	}

	if w := Int(255).Width(); w != 3 {
		t.Errorf("wanted an unscanned token to fall back to its lexeme, got width %d", w)
	}
}
