// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"routegen/internal/cache"
	"routegen/internal/content"
	"routegen/internal/metrics"
	"routegen/internal/middleware"
	"routegen/internal/models"
	"routegen/internal/routing"
	"routegen/internal/urlpath"
)

// Preview serves the manifest and render props of the current content
// snapshot. The snapshot is swapped atomically on Reload, so requests in
// flight keep resolving against the graph they started with.
type Preview struct {
	source     content.Source
	resolver   *routing.Resolver
	propsCache *cache.PropsCache
	recorder   metrics.Recorder

	current atomic.Pointer[snapshot]
}

// snapshot pairs a graph with its fingerprint, computed once per load.
type snapshot struct {
	graph       *models.Graph
	fingerprint string
}

// NewPreview creates a Preview handler group. propsCache may be nil when
// Valkey is not configured; a nil recorder records nothing.
func NewPreview(source content.Source, resolver *routing.Resolver, propsCache *cache.PropsCache, rec metrics.Recorder) *Preview {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Preview{
		source:     source,
		resolver:   resolver,
		propsCache: propsCache,
		recorder:   rec,
	}
}

// Reload loads a fresh snapshot from the content source and makes it the
// current one. Cached props of the replaced snapshot are dropped. On error
// the previous snapshot stays in place.
func (p *Preview) Reload(ctx context.Context) error {
	g, err := p.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload content: %w", err)
	}
	fp := g.Fingerprint()
	old := p.current.Swap(&snapshot{graph: g, fingerprint: fp})

	if old != nil && p.propsCache != nil && old.fingerprint != fp {
		p.propsCache.InvalidateSnapshot(ctx, old.fingerprint)
	}
	slog.Info("content snapshot loaded", "fingerprint", fp, "pages", len(g.Pages), "objects", len(g.Objects))
	return nil
}

// Graph returns the current snapshot, or nil before the first Reload.
func (p *Preview) Graph() *models.Graph {
	if s := p.current.Load(); s != nil {
		return s.graph
	}
	return nil
}

// Fingerprint returns the fingerprint of the current snapshot as computed
// when it was loaded, or "" before the first Reload.
func (p *Preview) Fingerprint() string {
	if s := p.current.Load(); s != nil {
		return s.fingerprint
	}
	return ""
}

// Manifest responds with the static paths of the current snapshot.
func (p *Preview) Manifest(w http.ResponseWriter, r *http.Request) {
	g := p.Graph()
	if g == nil {
		writeError(w, http.StatusServiceUnavailable, "content not loaded")
		return
	}

	start := time.Now()
	manifest, err := p.resolver.ResolveAll(r.Context(), g)
	if err == nil {
		err = routing.DetectCollisions(manifest.Routes)
	}
	p.recorder.ObserveResolveDuration(metrics.DirectionForward, time.Since(start))
	if err != nil {
		p.recorder.IncResolveResult(metrics.DirectionForward, resultFor(err))
		slog.Error("manifest resolution failed", "error", err, "request_id", middleware.RequestIDFromCtx(r.Context()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(manifest.Warnings) > 0 {
		p.recorder.IncResolveResult(metrics.DirectionForward, metrics.ResultWarning)
	} else {
		p.recorder.IncResolveResult(metrics.DirectionForward, metrics.ResultSuccess)
	}
	for _, locale := range p.resolver.Options().Locales {
		p.recorder.SetManifestRoutes(locale, len(manifest.ForLocale(locale)))
	}
	writeJSON(w, http.StatusOK, manifest.StaticPaths())
}

// Page responds with the props of the route published at the request's
// public URL. A leading non-default locale segment selects that locale.
// Requests that match no route are a hard 404, as the manifest has no
// fallback.
func (p *Preview) Page(w http.ResponseWriter, r *http.Request) {
	snap := p.current.Load()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "content not loaded")
		return
	}

	opts := p.resolver.Options()
	path, locale := urlpath.SplitLocale(r.URL.Path, opts.Locales, opts.DefaultLocale)

	ctx := r.Context()
	var key string
	if p.propsCache != nil {
		key = cache.PropsKey(snap.fingerprint, locale, path)
		if cached, ok := p.propsCache.Get(ctx, key); ok {
			p.recorder.IncPropsCache(true)
			writeRaw(w, http.StatusOK, cached)
			return
		}
		p.recorder.IncPropsCache(false)
	}

	start := time.Now()
	props, err := p.resolver.Resolve(ctx, snap.graph, path, locale)
	p.recorder.ObserveResolveDuration(metrics.DirectionReverse, time.Since(start))
	if err != nil {
		p.recorder.IncResolveResult(metrics.DirectionReverse, resultFor(err))
		if errors.Is(err, routing.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no route at "+path)
			return
		}
		slog.Error("props resolution failed",
			"path", path,
			"locale", locale,
			"error", err,
			"request_id", middleware.RequestIDFromCtx(ctx),
		)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	p.recorder.IncResolveResult(metrics.DirectionReverse, metrics.ResultSuccess)

	body, err := json.Marshal(props)
	if err != nil {
		slog.Error("encode props failed", "path", path, "locale", locale, "error", err)
		writeError(w, http.StatusInternalServerError, "encode props")
		return
	}
	if p.propsCache != nil {
		p.propsCache.Set(ctx, key, body)
	}
	writeRaw(w, http.StatusOK, body)
}

func resultFor(err error) metrics.ResultLabel {
	switch {
	case errors.Is(err, routing.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ResultCanceled
	default:
		return metrics.ResultFatal
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode response failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeRaw(w, status, body)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
