// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"routegen/internal/cache"
	"routegen/internal/config"
	"routegen/internal/content"
	"routegen/internal/generate"
	"routegen/internal/handlers"
	"routegen/internal/metrics"
	"routegen/internal/router"
	"routegen/internal/routing"
	"routegen/internal/store"
	"routegen/internal/urlpath"
)

// ManifestCmd prints the static paths of the current snapshot.
type ManifestCmd struct {
	Routes bool `help:"Print resolved routes instead of static paths"`
}

func (m *ManifestCmd) Run(g *Global) error {
	ctx := context.Background()
	manifest, err := resolveManifest(ctx, g.Config)
	if err != nil {
		return err
	}
	if m.Routes {
		return printJSON(g.Out, manifest.Routes)
	}
	return printJSON(g.Out, manifest.StaticPaths())
}

func resolveManifest(ctx context.Context, cfg *config.Config) (*routing.Manifest, error) {
	src, db, err := contentSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if db != nil {
		defer db.Close()
	}
	resolver, err := newResolver(cfg)
	if err != nil {
		return nil, err
	}
	graph, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	manifest, err := resolver.ResolveAll(ctx, graph)
	if err != nil {
		return nil, err
	}
	if err := routing.DetectCollisions(manifest.Routes); err != nil {
		return nil, err
	}
	return manifest, nil
}

// PropsCmd prints the props of the route at a public URL.
type PropsCmd struct {
	Path   string `arg:"" help:"Public URL of the route, e.g. /es/blog/page/2/"`
	Locale string `short:"l" help:"Locale of the route; by default taken from the URL prefix"`
}

func (p *PropsCmd) Run(g *Global) error {
	ctx := context.Background()
	cfg := g.Config

	src, db, err := contentSource(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	resolver, err := newResolver(cfg)
	if err != nil {
		return err
	}
	graph, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load content: %w", err)
	}

	path, locale := p.Path, p.Locale
	if locale == "" {
		path, locale = urlpath.SplitLocale(p.Path, cfg.Locales, cfg.DefaultLocale)
	}
	props, err := resolver.Resolve(ctx, graph, path, locale)
	if err != nil {
		return err
	}
	return printJSON(g.Out, props)
}

// BuildCmd runs a full generation pass.
type BuildCmd struct {
	Output  string `short:"o" help:"Output directory (overrides OUTPUT_DIR)"`
	Publish bool   `help:"Upload the finished build to S3"`
}

func (b *BuildCmd) Run(g *Global) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := g.Config

	src, db, err := contentSource(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	resolver, err := newResolver(cfg)
	if err != nil {
		return err
	}

	builder := &generate.Builder{
		Source:    src,
		Resolver:  resolver,
		OutputDir: cfg.OutputDir,
	}
	if b.Output != "" {
		builder.OutputDir = b.Output
	}
	if b.Publish {
		pub, err := publisher(cfg)
		if err != nil {
			return err
		}
		if pub == nil {
			return errors.New("--publish requires S3_ENDPOINT, S3_ACCESS_KEY and S3_BUCKET")
		}
		builder.Publisher = pub
	}

	report, err := builder.Build(ctx)
	if err != nil {
		return err
	}
	if db != nil {
		store.NewBuildLogStore(db).Log(ctx, store.BuildLogEntry{
			ID:          report.ID,
			Fingerprint: report.Fingerprint,
			Routes:      report.Routes,
			Warnings:    len(report.Warnings),
			Output:      report.OutputDir,
		})
	}
	return printJSON(g.Out, report)
}

// ServeCmd runs the preview server.
type ServeCmd struct {
	Addr  string `help:"Listen address (overrides APP_HOST and APP_PORT)"`
	Watch bool   `help:"Reload when the snapshot file changes" default:"true" negatable:""`
}

func (s *ServeCmd) Run(g *Global) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	cfg := g.Config

	src, db, err := contentSource(ctx, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}
	resolver, err := newResolver(cfg)
	if err != nil {
		return err
	}

	var propsCache *cache.PropsCache
	if cfg.CacheEnabled() {
		client, err := cache.ConnectValkey(ctx, cfg.ValkeyAddr(), cfg.ValkeyPassword)
		if err != nil {
			return err
		}
		defer client.Close()
		propsCache = cache.NewPropsCache(client, cache.DefaultPropsTTL)
	} else {
		slog.Warn("valkey not configured, props cache disabled")
	}

	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	preview := handlers.NewPreview(src, resolver, propsCache, rec)
	if err := preview.Reload(ctx); err != nil {
		return err
	}
	if s.Watch && cfg.ContentSource == config.SourceFile {
		w, err := content.NewWatcher(cfg.ContentFile, content.DefaultDebounce)
		if err != nil {
			return err
		}
		go w.Run(ctx, func(ctx context.Context) {
			if err := preview.Reload(ctx); err != nil {
				slog.Error("content reload failed", "error", err)
			}
		})
	}

	addr := cfg.Addr()
	if s.Addr != "" {
		addr = s.Addr
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.New(preview, metrics.HTTPHandler(reg)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}
	slog.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("server stopped gracefully")
	return nil
}

// MigrateCmd applies migrations to the configured database and optionally
// seeds an empty document table.
type MigrateCmd struct {
	Seed string `help:"Snapshot file to load when the store is empty"`
}

func (m *MigrateCmd) Run(g *Global) error {
	ctx := context.Background()
	db, err := openDB(ctx, g.Config)
	if err != nil {
		return err
	}
	defer db.Close()

	if m.Seed == "" {
		return nil
	}
	graph, err := content.NewFileSource(m.Seed).Load(ctx)
	if err != nil {
		return err
	}
	seeded, err := store.NewDocumentStore(db).Seed(ctx, graph)
	if err != nil {
		return err
	}
	if !seeded {
		slog.Info("document store not empty, seed skipped")
	}
	return nil
}

// ImportCmd replaces every stored document with a snapshot file.
type ImportCmd struct {
	File string `arg:"" help:"Snapshot file (JSON or YAML)" type:"existingfile"`
}

func (i *ImportCmd) Run(g *Global) error {
	ctx := context.Background()
	graph, err := content.NewFileSource(i.File).Load(ctx)
	if err != nil {
		return err
	}
	db, err := openDB(ctx, g.Config)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.NewDocumentStore(db).Replace(ctx, graph); err != nil {
		return err
	}
	slog.Info("content imported",
		"file", i.File,
		"pages", len(graph.Pages),
		"objects", len(graph.Objects),
		"fingerprint", graph.Fingerprint(),
	)
	return nil
}

// HistoryCmd lists the most recent builds recorded in the database.
type HistoryCmd struct {
	Limit int `short:"n" help:"Number of builds to list" default:"10"`
}

func (h *HistoryCmd) Run(g *Global) error {
	ctx := context.Background()
	db, err := openDB(ctx, g.Config)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := store.NewBuildLogStore(db).RecentEntries(ctx, h.Limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []store.BuildLogEntry{}
	}
	return printJSON(g.Out, entries)
}
