/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dburkart/fern/pkg/lang/ast"
	"github.com/dburkart/fern/pkg/lang/parser"
	"github.com/dburkart/fern/pkg/lang/scanner"
	"github.com/dburkart/fern/pkg/repl"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// MaxSourceBytes bounds the size of a request body.
const MaxSourceBytes = 1 << 20

const (
	EndpointLex   = "lex"
	EndpointParse = "parse"

	RequestIDHeader = "X-Request-Id"
)

type Server struct {
	log     zerolog.Logger
	metrics MetricsStore
	totals  *ScanTotals

	port     int
	maxDepth int
	router   *mux.Router
}

func New(log zerolog.Logger, port, maxDepth int) *Server {
	s := &Server{
		log:      log,
		metrics:  NewMetricsStore(),
		totals:   &ScanTotals{},
		port:     port,
		maxDepth: maxDepth,
	}

	s.metrics.RegisterCollector(NewScanStatsCollector(s.totals))

	r := mux.NewRouter()
	r.HandleFunc("/lex", s.Lex).Methods("POST")
	r.HandleFunc("/parse", s.Parse).Methods("POST")
	r.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	s.router = r

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe() error {
	s.log.Info().Int("port", s.port).Msg("listening for lex and parse requests")
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.router)
}

// begin stamps the request with an id and returns a logger carrying it.
func (s *Server) begin(w http.ResponseWriter, r *http.Request, endpoint string) (zerolog.Logger, *scanner.Scanner) {
	id := uuid.New().String()
	w.Header().Set(RequestIDHeader, id)

	log := s.log.With().Str("request", id).Str("endpoint", endpoint).Logger()

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "request"
	}

	sc := scanner.NewScanner(name, http.MaxBytesReader(w, r.Body, MaxSourceBytes))
	sc.Log = log

	return log, sc
}

func (s *Server) finish(log zerolog.Logger, endpoint string, sc *scanner.Scanner, start time.Time, err error) {
	s.totals.Add(sc)
	s.metrics.ObserveResponseNS(endpoint, time.Since(start).Nanoseconds())

	if err != nil {
		kind := ErrorKind(err)
		s.metrics.IncRequests(endpoint, "rejected")
		s.metrics.IncErrors(endpoint, kind)
		log.Debug().Err(err).Str("kind", kind).Msg("request rejected")
		return
	}

	s.metrics.IncRequests(endpoint, "ok")
	log.Trace().
		Int("lines", sc.Lines()).
		Int("tokens", sc.Tokens()).
		Dur("elapsed", time.Since(start)).
		Msg("request complete")
}

// Lex responds with the token listing of the request body. The format query
// parameter selects json (default), csv or text.
func (s *Server) Lex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log, sc := s.begin(w, r, EndpointLex)

	tokens, err := sc.ScanAll()
	defer func() { s.finish(log, EndpointLex, sc, start, err) }()

	if err != nil {
		if werr := writeJSON(w, statusFor(err), ErrorResponse(err, lineOf(sc, err))); werr != nil {
			log.Error().Err(werr).Msg("unable to write response")
		}
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	default:
		format = "json"
		w.Header().Set("Content-Type", "application/json")
	}

	if werr := repl.NewOutputWriter(w, format).Write(repl.NewTokenListing(tokens)); werr != nil {
		log.Error().Err(werr).Msg("unable to write response")
	}
}

// Parse responds with the syntax tree of the request body, one node per
// line, or a 422 carrying the diagnostic.
func (s *Server) Parse(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log, sc := s.begin(w, r, EndpointParse)

	p := parser.New(sc)
	p.Log = log
	p.MaxDepth = s.maxDepth

	root, err := p.Parse()
	defer func() { s.finish(log, EndpointParse, sc, start, err) }()

	if err != nil {
		if werr := writeJSON(w, statusFor(err), ErrorResponse(err, lineOf(sc, err))); werr != nil {
			log.Error().Err(werr).Msg("unable to write response")
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	n, werr := w.Write([]byte(ast.ASTToString(root)))
	if werr != nil {
		log.Error().Err(werr).Msg("unable to write response")
	}
	log.Trace().Int("wrote", n).Msg("wrote response")
}

func lineOf(sc *scanner.Scanner, err error) string {
	if d, ok := parser.Diagnostic(err); ok {
		return sc.Line(d.Location)
	}
	return ""
}
