/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dburkart/fern/pkg/lang/parser"
	"github.com/dburkart/fern/pkg/lang/scanner"
)

type errMSG struct {
	Message    string `json:"error"`
	Location   string `json:"location,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

var errorKinds = []struct {
	err  error
	kind string
}{
	{scanner.ErrUnexpectedSymbol, "unexpected_symbol"},
	{scanner.ErrUnexpectedEOF, "unexpected_eof"},
	{scanner.ErrUnexpectedLF, "unexpected_lf"},
	{scanner.ErrInvalidID, "invalid_id"},
	{scanner.ErrMalformedInt, "malformed_int"},
	{parser.ErrUnexpectedToken, "unexpected_token"},
	{parser.ErrUnknownToken, "unknown_token"},
	{parser.ErrTooDeeplyNested, "too_deeply_nested"},
}

// ErrorKind returns a metrics label for err.
func ErrorKind(err error) string {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return "io"
}

// statusFor maps a failed lex or parse to an HTTP status: 422 for source the
// language rejects, 413 for oversized bodies, 400 for anything else.
func statusFor(err error) int {
	if _, ok := parser.Diagnostic(err); ok {
		return http.StatusUnprocessableEntity
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	return http.StatusBadRequest
}

// ErrorResponse builds the json body describing err. line is the source text
// of the line the error occurred on, if known.
func ErrorResponse(err error, line string) errMSG {
	resp := errMSG{Message: err.Error()}

	if d, ok := parser.Diagnostic(err); ok {
		resp.Message = d.Message
		resp.Location = d.Location.String()
		resp.Diagnostic = d.FormatError(line)
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
