/*
 * Copyright (c) 2023, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/dburkart/fern/pkg/lang/scanner"
	"github.com/olekukonko/tablewriter"
)

// Printable is anything that can be rendered as rows under a header.
type Printable interface {
	Headers() []string
	Values() [][]string
}

type OutputWriter interface {
	Write(v Printable) error
}

type CSVWriter struct {
	w io.Writer
}

type TextWriter struct {
	w io.Writer
}

type JSONWriter struct {
	w io.Writer
}

// Formats lists the names accepted by NewOutputWriter.
var Formats = []string{"text", "csv", "json"}

func NewOutputWriter(w io.Writer, t string) OutputWriter {
	switch t {
	case "csv":
		return CSVWriter{
			w,
		}
	case "json":
		return JSONWriter{
			w,
		}
	}
	return TextWriter{
		w,
	}
}

func (w CSVWriter) Write(v Printable) error {
	wtr := csv.NewWriter(w.w)
	if err := wtr.Write(v.Headers()); err != nil {
		return err
	}
	return wtr.WriteAll(v.Values())
}

func (w TextWriter) Write(v Printable) error {
	table := tablewriter.NewWriter(w.w)
	table.Header(v.Headers())
	if err := table.Bulk(v.Values()); err != nil {
		return err
	}
	return table.Render()
}

func (w JSONWriter) Write(v Printable) error {
	enc := json.NewEncoder(w.w)
	return enc.Encode(v)
}

type TokenRow struct {
	Location string `json:"location"`
	Type     string `json:"type"`
	Token    string `json:"token"`
}

// TokenListing is the printable form of a token stream.
type TokenListing []TokenRow

func NewTokenListing(tokens []scanner.Token) TokenListing {
	rows := make(TokenListing, 0, len(tokens))
	for _, tok := range tokens {
		rows = append(rows, TokenRow{
			Location: tok.Location.String(),
			Type:     tok.Type.ToString(),
			Token:    tok.DebugString(),
		})
	}
	return rows
}

func (l TokenListing) Headers() []string {
	return []string{"location", "type", "token"}
}

func (l TokenListing) Values() [][]string {
	values := make([][]string, 0, len(l))
	for _, row := range l {
		values = append(values, []string{row.Location, row.Type, row.Token})
	}
	return values
}
