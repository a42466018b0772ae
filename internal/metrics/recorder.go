// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics defines the observability hooks of builds and the preview
// server. Components take a Recorder; NoopRecorder is the default and
// PrometheusRecorder exports to a Prometheus registry.
package metrics

import "time"

// ResultLabel enumerates resolution outcomes for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultNotFound ResultLabel = "not_found"
	ResultWarning  ResultLabel = "warning"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Direction labels.
const (
	DirectionForward = "forward"
	DirectionReverse = "reverse"
)

// Recorder defines observability hooks for route resolution and builds.
type Recorder interface {
	ObserveResolveDuration(direction string, d time.Duration)
	IncResolveResult(direction string, result ResultLabel)
	SetManifestRoutes(locale string, n int)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome ResultLabel)
	IncPropsCache(hit bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveResolveDuration(string, time.Duration) {}
func (NoopRecorder) IncResolveResult(string, ResultLabel)         {}
func (NoopRecorder) SetManifestRoutes(string, int)                {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)           {}
func (NoopRecorder) IncBuildOutcome(ResultLabel)                  {}
func (NoopRecorder) IncPropsCache(bool)                           {}
