// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"routegen/internal/models"
)

// Manifest is the outcome of a forward resolution pass: every route in page
// order, plus the per-document problems that excluded pages from it.
type Manifest struct {
	Routes   []models.Route
	Warnings []error
}

// ForLocale returns the routes published under one locale.
func (m *Manifest) ForLocale(locale string) []models.Route {
	var out []models.Route
	for _, r := range m.Routes {
		if r.Locale == locale {
			out = append(out, r)
		}
	}
	return out
}

// ResolveAll enumerates every route the graph publishes. Pages are resolved
// concurrently and merged back in page order, so the manifest is the same on
// every run. Configuration errors abort the pass; other per-page errors are
// reported as warnings and the page is left out. If ctx is cancelled the
// partial result is discarded.
func (r *Resolver) ResolveAll(ctx context.Context, graph *models.Graph) (*Manifest, error) {
	env := r.env(graph)
	perPage := make([][]models.Route, len(graph.Pages))
	warnings := make([]error, len(graph.Pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, page := range graph.Pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			routes, err := r.pagePaths(env, page)
			if err != nil {
				if errors.Is(err, ErrInvalidConfiguration) {
					return err
				}
				warnings[i] = err
				return nil
			}
			perPage[i] = routes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := &Manifest{}
	for i := range graph.Pages {
		m.Routes = append(m.Routes, perPage[i]...)
		if warnings[i] != nil {
			slog.Warn("page excluded from manifest", "error", warnings[i])
			m.Warnings = append(m.Warnings, warnings[i])
		}
	}
	return m, nil
}

// pagePaths resolves the routes of a single page.
func (r *Resolver) pagePaths(env *Env, page *models.Document) ([]models.Route, error) {
	if !r.visible(page) {
		return nil, nil
	}
	if page.Metadata.URLPath == "" {
		return nil, &DocumentError{DocumentID: page.ID(), ModelName: page.ModelName(), Err: ErrUnroutableDocument}
	}
	routes, err := r.registry.Lookup(page.ModelName()).Paths(env, page)
	if err != nil {
		return nil, &DocumentError{DocumentID: page.ID(), ModelName: page.ModelName(), Err: err}
	}
	return routes, nil
}
