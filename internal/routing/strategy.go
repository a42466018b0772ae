// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import (
	"slices"
	"sync"

	"routegen/internal/models"
	"routegen/internal/urlpath"
)

// Env is what a strategy sees of a resolution pass: the snapshot and the
// options. It is shared read-only across goroutines.
type Env struct {
	Graph   *models.Graph
	Options Options
}

// EffectiveLocale returns the locale doc's routes are published under.
func (e *Env) EffectiveLocale(doc *models.Document) string {
	return EffectiveLocale(doc, e.Options.Locales, e.Options.DefaultLocale)
}

// Request is a route being resolved back to its page.
type Request struct {
	Path   []string
	Locale string
}

// PathsFunc enumerates the routes a page publishes.
type PathsFunc func(env *Env, page *models.Document) ([]models.Route, error)

// MatchFunc reports whether a page publishes the requested route. Feed
// strategies also return the page slice rendered there.
type MatchFunc func(env *Env, page *models.Document, req Request) (*models.PageSlice, bool, error)

// Strategy is the routing behavior of one model type. Paths and Match must
// agree: Match accepts exactly the routes Paths emits.
type Strategy struct {
	Paths PathsFunc
	Match MatchFunc
}

// Registry maps model names to strategies. Models without an entry use the
// fallback strategy, SingleRoute.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	fallback   Strategy
}

// NewRegistry returns a registry with no model strategies.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
		fallback:   SingleRoute,
	}
}

// DefaultRegistry returns a registry with the built-in page, feed, and
// category feed strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(models.ModelPage, PlainPage)
	r.Register(models.ModelPostFeed, Feed)
	r.Register(models.ModelPostFeedCategory, CategoryFeed)
	return r
}

// Register installs the strategy for a model name, replacing any previous one.
func (r *Registry) Register(modelName string, s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[modelName] = s
}

// Lookup returns the strategy for a model name.
func (r *Registry) Lookup(modelName string) Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.strategies[modelName]; ok {
		return s
	}
	return r.fallback
}

// SingleRoute publishes a page once, at its own path, under its own locale.
var SingleRoute = Strategy{
	Paths: func(env *Env, page *models.Document) ([]models.Route, error) {
		return []models.Route{{
			Path:       urlpath.Split(page.Metadata.URLPath),
			Locale:     env.EffectiveLocale(page),
			DocumentID: page.ID(),
		}}, nil
	},
	Match: func(env *Env, page *models.Document, req Request) (*models.PageSlice, bool, error) {
		ok := slices.Equal(urlpath.Split(page.Metadata.URLPath), req.Path) &&
			req.Locale == env.EffectiveLocale(page)
		return nil, ok, nil
	},
}

// PlainPage publishes a page at its own path once per configured locale.
var PlainPage = Strategy{
	Paths: func(env *Env, page *models.Document) ([]models.Route, error) {
		path := urlpath.Split(page.Metadata.URLPath)
		routes := make([]models.Route, 0, len(env.Options.Locales))
		for _, locale := range env.Options.Locales {
			routes = append(routes, models.Route{
				Path:       slices.Clone(path),
				Locale:     locale,
				DocumentID: page.ID(),
			})
		}
		return routes, nil
	},
	Match: func(env *Env, page *models.Document, req Request) (*models.PageSlice, bool, error) {
		ok := slices.Equal(urlpath.Split(page.Metadata.URLPath), req.Path) &&
			slices.Contains(env.Options.Locales, req.Locale)
		return nil, ok, nil
	},
}

// Feed paginates the non-featured items of the page's locale, or of every
// locale when the feed page itself is locale-agnostic.
var Feed = FeedStrategy(func(env *Env, page *models.Document) FeedScope {
	locale, _ := ResolveLocale(page, env.Options.Locales)
	return FeedScope{Locale: locale}
})

// CategoryFeed paginates the items filed under the feed page itself.
var CategoryFeed = FeedStrategy(func(env *Env, page *models.Document) FeedScope {
	locale, _ := ResolveLocale(page, env.Options.Locales)
	return FeedScope{Locale: locale, Category: page.ID(), IncludeFeatured: true}
})
