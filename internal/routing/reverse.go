// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"routegen/internal/models"
	"routegen/internal/urlpath"
)

// Resolve finds the page published at requestedPath under locale and
// assembles its render payload. An empty locale means the default locale.
// It fails with ErrNotFound when no page's forward resolution would emit
// the route.
//
// Only pages whose strategy matches the path do any work; for feeds just the
// requested slice is computed, through the same SliceAt as ResolveAll.
func (r *Resolver) Resolve(ctx context.Context, graph *models.Graph, requestedPath, locale string) (*Props, error) {
	if locale == "" {
		locale = r.opts.DefaultLocale
	}
	req := Request{Path: urlpath.Split(requestedPath), Locale: locale}
	if !slices.Contains(r.opts.Locales, locale) {
		return nil, fmt.Errorf("%w: locale %q is not configured", ErrNotFound, locale)
	}

	env := r.env(graph)
	for _, page := range graph.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !r.visible(page) || page.Metadata.URLPath == "" {
			continue
		}
		slice, ok, err := r.registry.Lookup(page.ModelName()).Match(env, page, req)
		if err != nil {
			derr := &DocumentError{DocumentID: page.ID(), ModelName: page.ModelName(), Err: err}
			if errors.Is(err, ErrInvalidConfiguration) {
				return nil, derr
			}
			slog.Warn("page skipped during reverse resolution", "error", derr)
			continue
		}
		if ok {
			return &Props{
				Path:     urlpath.Join(req.Path),
				Locale:   locale,
				Document: page,
				Slice:    slice,
				Site:     r.site.SiteData(env, locale),
				graph:    graph,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s (%s)", ErrNotFound, urlpath.Join(req.Path), locale)
}
