/*
 * Copyright (c) 2022-2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package source

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dburkart/fern/pkg/lang/parser"
	"github.com/dburkart/fern/pkg/lang/scanner"
	"github.com/pkg/errors"
)

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.fn")
	if err := os.WriteFile(path, []byte("fn main() {}\n"), 0666); err != nil {
		t.Fatal(err)
	}

	name, r, err := Open([]string{path})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	if name != path {
		t.Errorf("wanted name %s, got %s", path, name)
	}

	b, _ := io.ReadAll(r)
	if string(b) != "fn main() {}\n" {
		t.Errorf("wanted file contents, got %q", b)
	}
}

func TestOpenStdin(t *testing.T) {
	for _, args := range [][]string{nil, {"-"}} {
		name, _, err := Open(args)
		if err != nil {
			t.Fatal(err)
		}
		if name != Stdin {
			t.Errorf("wanted %s for %v, got %s", Stdin, args, name)
		}
	}
}

func TestOpenMissing(t *testing.T) {
	_, _, err := Open([]string{filepath.Join(t.TempDir(), "missing.fn")})
	if err == nil {
		t.Fatalf("wanted an error opening a missing file")
	}
	if !os.IsNotExist(errors.Cause(err)) {
		t.Errorf("wanted cause to be a not-exist error, got %v", err)
	}
}

func TestDiagnose(t *testing.T) {
	sc := scanner.NewScanner("main.fn", strings.NewReader("fn main ( ) {\n  val x = 0z;\n}\n"))
	_, err := parser.New(sc).Parse()

	got, ok := Diagnose(sc, err)
	if !ok {
		t.Fatalf("wanted a diagnostic for %v", err)
	}

	want := "main.fn:2:11: syntax error\n  val x = 0z;\n           ^ unexpected symbol 'z'\n"
	if got != want {
		t.Errorf("wanted:\n%s\ngot:\n%s", want, got)
	}

	if _, ok := Diagnose(sc, errors.New("disk on fire")); ok {
		t.Errorf("wanted no diagnostic for a plain error")
	}
}
