// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generate runs a full generation pass: it loads a snapshot,
// enumerates every route, resolves each one back to its props, and writes
// the manifest and per-route props into the output directory.
//
// Output is written to a sibling staging directory and promoted with a
// rename only when every route resolved, so a failed build leaves the
// previous output in place.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"routegen/internal/content"
	"routegen/internal/metrics"
	"routegen/internal/models"
	"routegen/internal/routing"
	"routegen/internal/urlpath"
)

// Output file names.
const (
	ManifestFile = "manifest.json"
	PropsFile    = "index.json"
	ReportFile   = "build.json"
)

// Publisher uploads a finished build directory.
type Publisher interface {
	Publish(ctx context.Context, dir string) (int, error)
}

// Builder wires a content source and a resolver to an output directory.
type Builder struct {
	Source    content.Source
	Resolver  *routing.Resolver
	OutputDir string
	// Publisher is optional; when set the promoted output is uploaded.
	Publisher Publisher
	Recorder  metrics.Recorder
}

// Report summarises one build.
type Report struct {
	ID          uuid.UUID     `json:"id"`
	Fingerprint string        `json:"fingerprint"`
	Routes      int           `json:"routes"`
	Warnings    []string      `json:"warnings"`
	Published   int           `json:"published"`
	OutputDir   string        `json:"outputDir"`
	StartedAt   time.Time     `json:"startedAt"`
	Duration    time.Duration `json:"duration"`
}

// Build runs one generation pass.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	rec := b.Recorder
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	start := time.Now()
	report := &Report{ID: uuid.New(), OutputDir: b.OutputDir, StartedAt: start.UTC(), Warnings: []string{}}
	log := slog.With("build_id", report.ID)

	err := b.build(ctx, report, start, rec, log)
	if err != nil {
		report.Duration = time.Since(start)
	}
	rec.ObserveBuildDuration(report.Duration)

	switch {
	case err == nil && len(report.Warnings) > 0:
		rec.IncBuildOutcome(metrics.ResultWarning)
	case err == nil:
		rec.IncBuildOutcome(metrics.ResultSuccess)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		rec.IncBuildOutcome(metrics.ResultCanceled)
	default:
		rec.IncBuildOutcome(metrics.ResultFatal)
	}
	if err != nil {
		log.Error("build failed", "error", err, "duration", report.Duration)
		return nil, err
	}

	log.Info("build complete",
		"routes", report.Routes,
		"warnings", len(report.Warnings),
		"output", b.OutputDir,
		"duration", report.Duration,
	)
	return report, nil
}

// build runs the pass. On success report.Duration is the duration recorded
// in the last report written to disk.
func (b *Builder) build(ctx context.Context, report *Report, start time.Time, rec metrics.Recorder, log *slog.Logger) error {
	graph, err := b.Source.Load(ctx)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}
	report.Fingerprint = graph.Fingerprint()
	log.Info("content loaded", "pages", len(graph.Pages), "objects", len(graph.Objects), "fingerprint", report.Fingerprint)

	forwardStart := time.Now()
	manifest, err := b.Resolver.ResolveAll(ctx, graph)
	rec.ObserveResolveDuration(metrics.DirectionForward, time.Since(forwardStart))
	if err != nil {
		rec.IncResolveResult(metrics.DirectionForward, metrics.ResultFatal)
		return fmt.Errorf("resolve routes: %w", err)
	}
	for _, w := range manifest.Warnings {
		rec.IncResolveResult(metrics.DirectionForward, metrics.ResultWarning)
		report.Warnings = append(report.Warnings, w.Error())
	}
	rec.IncResolveResult(metrics.DirectionForward, metrics.ResultSuccess)
	for _, locale := range b.Resolver.Options().Locales {
		rec.SetManifestRoutes(locale, len(manifest.ForLocale(locale)))
	}
	if err := routing.DetectCollisions(manifest.Routes); err != nil {
		return err
	}
	report.Routes = len(manifest.Routes)

	files, err := b.propsFiles(manifest.Routes)
	if err != nil {
		return err
	}

	stage, err := beginStaging(b.OutputDir)
	if err != nil {
		return err
	}
	if err := b.writeAll(ctx, stage, graph, manifest, files, report, start, rec); err != nil {
		abortStaging(stage)
		return err
	}
	if err := finalizeStaging(stage, b.OutputDir); err != nil {
		abortStaging(stage)
		return err
	}

	if b.Publisher != nil {
		n, err := b.Publisher.Publish(ctx, b.OutputDir)
		if err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		report.Published = n
		report.Duration = time.Since(start)
		// Rewrite the report now that the publish count is known.
		if err := writeJSON(filepath.Join(b.OutputDir, ReportFile), report); err != nil {
			return err
		}
	}
	return nil
}

// propsFiles maps each route to its props file, relative to the output root.
// Routes land at their public URL, so two routes that differ in locale but
// share a public URL are a collision.
func (b *Builder) propsFiles(routes []models.Route) ([]string, error) {
	opts := b.Resolver.Options()
	files := make([]string, len(routes))
	owners := make(map[string]models.Route, len(routes))
	for i, r := range routes {
		public := urlpath.Localize(r.URLPath(), r.Locale, opts.DefaultLocale)
		if prev, ok := owners[public]; ok {
			return nil, &routing.CollisionError{Collisions: []routing.Collision{{
				Path:        public,
				Locale:      prev.Locale + "," + r.Locale,
				DocumentIDs: []string{prev.DocumentID, r.DocumentID},
			}}}
		}
		owners[public] = r
		files[i] = filepath.Join(filepath.FromSlash(public), PropsFile)
	}
	return files, nil
}

// writeAll writes the manifest, then resolves and writes every route's
// props concurrently. A route that fails to resolve aborts the build: the
// manifest must only list routes that resolve.
func (b *Builder) writeAll(ctx context.Context, stage string, graph *models.Graph, manifest *routing.Manifest, files []string, report *Report, start time.Time, rec metrics.Recorder) error {
	if err := writeJSON(filepath.Join(stage, ManifestFile), manifest.StaticPaths()); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.Resolver.Options().Workers)
	for i, route := range manifest.Routes {
		g.Go(func() error {
			resolveStart := time.Now()
			props, err := b.Resolver.Resolve(gctx, graph, route.URLPath(), route.Locale)
			rec.ObserveResolveDuration(metrics.DirectionReverse, time.Since(resolveStart))
			if err != nil {
				rec.IncResolveResult(metrics.DirectionReverse, metrics.ResultFatal)
				return fmt.Errorf("resolve %s (%s): %w", route.URLPath(), route.Locale, err)
			}
			rec.IncResolveResult(metrics.DirectionReverse, metrics.ResultSuccess)
			return writeJSON(filepath.Join(stage, files[i]), props)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	report.Duration = time.Since(start)
	return writeJSON(filepath.Join(stage, ReportFile), report)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
