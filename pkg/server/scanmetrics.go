/*
 * Copyright (c) 2022, Gideon Williams gideon@gideonw.com
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"sync/atomic"

	"github.com/dburkart/fern/pkg/lang/scanner"
	"github.com/prometheus/client_golang/prometheus"
)

// ScanTotals accumulates scanner counters across requests.
type ScanTotals struct {
	lines  atomic.Int64
	tokens atomic.Int64
	bytes  atomic.Int64
}

func (t *ScanTotals) Add(s *scanner.Scanner) {
	t.lines.Add(int64(s.Lines()))
	t.tokens.Add(int64(s.Tokens()))
	t.bytes.Add(s.Bytes())
}

type scanStatsCollector struct {
	totals *ScanTotals

	lines  *prometheus.Desc
	tokens *prometheus.Desc
	bytes  *prometheus.Desc
}

func NewScanStatsCollector(totals *ScanTotals) prometheus.Collector {
	return &scanStatsCollector{
		totals: totals,
		lines: prometheus.NewDesc(
			"fern_scanned_lines",
			"Number of source lines read by the scanner.",
			nil, nil,
		),
		tokens: prometheus.NewDesc(
			"fern_scanned_tokens",
			"Number of tokens produced by the scanner.",
			nil, nil,
		),
		bytes: prometheus.NewDesc(
			"fern_scanned_bytes",
			"Number of source bytes read by the scanner.",
			nil, nil,
		),
	}
}

// Describe implements Collector.
func (c *scanStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.lines
	ch <- c.tokens
	ch <- c.bytes
}

// Collect implements Collector.
func (c *scanStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.lines, prometheus.CounterValue, float64(c.totals.lines.Load()))
	ch <- prometheus.MustNewConstMetric(c.tokens, prometheus.CounterValue, float64(c.totals.tokens.Load()))
	ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.CounterValue, float64(c.totals.bytes.Load()))
}
