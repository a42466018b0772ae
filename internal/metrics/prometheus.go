// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "routegen"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	resolveDuration *prom.HistogramVec
	resolveResults  *prom.CounterVec
	manifestRoutes  *prom.GaugeVec
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
	propsCache      *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them, together
// with the Go runtime and process collectors, on reg. A nil reg gets a
// fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		resolveDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Duration of forward and reverse route resolution",
			Buckets:   prom.DefBuckets,
		}, []string{"direction"}),
		resolveResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "resolve_results_total",
			Help:      "Route resolution results by direction and outcome",
		}, []string{"direction", "result"}),
		manifestRoutes: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "manifest_routes",
			Help:      "Routes in the most recent manifest, per locale",
		}, []string{"locale"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		propsCache: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "props_cache_requests_total",
			Help:      "Props cache lookups by result",
		}, []string{"result"}),
	}
	reg.MustRegister(
		pr.resolveDuration, pr.resolveResults, pr.manifestRoutes,
		pr.buildDuration, pr.buildOutcome, pr.propsCache,
		promcollect.NewGoCollector(),
		promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}),
	)
	return pr
}

func (p *PrometheusRecorder) ObserveResolveDuration(direction string, d time.Duration) {
	p.resolveDuration.WithLabelValues(direction).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncResolveResult(direction string, result ResultLabel) {
	p.resolveResults.WithLabelValues(direction, string(result)).Inc()
}

func (p *PrometheusRecorder) SetManifestRoutes(locale string, n int) {
	p.manifestRoutes.WithLabelValues(locale).Set(float64(n))
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome ResultLabel) {
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncPropsCache(hit bool) {
	res := "miss"
	if hit {
		res = "hit"
	}
	p.propsCache.WithLabelValues(res).Inc()
}

// HTTPHandler returns an http.Handler that serves Prometheus metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
