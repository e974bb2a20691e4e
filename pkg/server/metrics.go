/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsStore interface {
	Registry() *prometheus.Registry
	RegisterCollector(c prometheus.Collector)
	Handler() http.Handler

	// Collection
	IncRequests(endpoint, outcome string)
	IncErrors(endpoint, kind string)
	ObserveResponseNS(endpoint string, t int64)
}

type metricsStore struct {
	registry   *prometheus.Registry
	Requests   *prometheus.CounterVec
	Errors     *prometheus.CounterVec
	ResponseNS *prometheus.HistogramVec
}

var (
	EndpointLabel = "endpoint"
	OutcomeLabel  = "outcome"
	KindLabel     = "kind"
)

func NewMetricsStore() MetricsStore {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsAll),
		),
	)

	buckets := []float64{}
	for i := 1; i < 20; i++ {
		buckets = append(buckets, float64(2*i*int(time.Millisecond)))
	}

	factory := promauto.With(reg)
	return &metricsStore{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fern_requests",
			Help: "Request counts for the fern endpoints",
		}, []string{EndpointLabel, OutcomeLabel}),
		Errors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fern_syntax_errors",
			Help: "Rejected sources by endpoint and kind of error",
		}, []string{EndpointLabel, KindLabel}),
		ResponseNS: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fern_response_ns",
			Help:    "Response times of requests made against an endpoint",
			Buckets: buckets,
		}, []string{EndpointLabel}),
	}
}

func (ms *metricsStore) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *metricsStore) RegisterCollector(c prometheus.Collector) {
	ms.registry.MustRegister(c)
}

func (ms *metricsStore) Handler() http.Handler {
	return promhttp.HandlerFor(ms.Registry(), promhttp.HandlerOpts{Registry: ms.Registry()})
}

func (ms *metricsStore) IncRequests(endpoint, outcome string) {
	ms.Requests.With(prometheus.Labels{EndpointLabel: endpoint, OutcomeLabel: outcome}).Inc()
}

func (ms *metricsStore) IncErrors(endpoint, kind string) {
	ms.Errors.With(prometheus.Labels{EndpointLabel: endpoint, KindLabel: kind}).Inc()
}

func (ms *metricsStore) ObserveResponseNS(endpoint string, t int64) {
	ms.ResponseNS.
		With(prometheus.Labels{EndpointLabel: endpoint}).
		Observe(float64(t))
}
