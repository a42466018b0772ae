// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import (
	"errors"
	"fmt"
	"slices"

	"routegen/internal/models"
	"routegen/internal/urlpath"
)

// FeedScope selects the items a feed aggregates.
type FeedScope struct {
	// Locale keeps only items of this locale; "" keeps every locale.
	Locale string
	// Category keeps only items referencing this category id; "" keeps all.
	Category string
	// IncludeFeatured keeps items flagged with FeaturedField.
	IncludeFeatured bool
}

// ScopeFunc derives a feed's scope from its page.
type ScopeFunc func(env *Env, page *models.Document) FeedScope

// FeedItems returns the visible items in scope, sorted newest first. Drafts
// are dropped outside preview mode. Forward and reverse resolution both call
// this, so a feed's pages are cut from the same sequence in either direction.
func (e *Env) FeedItems(scope FeedScope) []*models.Document {
	var items []*models.Document
	for _, d := range e.Graph.ObjectsOfModel(e.Options.ItemModels...) {
		if !e.Options.Preview && !d.IsPublished() {
			continue
		}
		if !scope.IncludeFeatured && d.Bool(FeaturedField) {
			continue
		}
		if scope.Locale != "" {
			if l, ok := ResolveLocale(d, e.Options.Locales); !ok || l != scope.Locale {
				continue
			}
		}
		if scope.Category != "" && !inCategory(d, scope.Category) {
			continue
		}
		items = append(items, d)
	}
	SortItems(items, DateField)
	return items
}

// FeedStrategy builds a paginated strategy over the items scope selects.
func FeedStrategy(scope ScopeFunc) Strategy {
	return Strategy{
		Paths: func(env *Env, page *models.Document) ([]models.Route, error) {
			size, err := feedPageSize(env, page)
			if err != nil {
				return nil, err
			}
			base := urlpath.Split(page.Metadata.URLPath)
			pages, err := Plan(base, env.FeedItems(scope(env, page)), size)
			if err != nil {
				return nil, err
			}
			locale := env.EffectiveLocale(page)
			routes := make([]models.Route, 0, len(pages))
			for _, s := range pages {
				routes = append(routes, models.Route{
					Path:       urlpath.Paged(base, s.PageNumber),
					Locale:     locale,
					DocumentID: page.ID(),
					PageNumber: s.PageNumber,
				})
			}
			return routes, nil
		},
		Match: func(env *Env, page *models.Document, req Request) (*models.PageSlice, bool, error) {
			base := urlpath.Split(page.Metadata.URLPath)
			n, ok := urlpath.PageNumber(base, req.Path)
			if !ok || req.Locale != env.EffectiveLocale(page) {
				return nil, false, nil
			}
			size, err := feedPageSize(env, page)
			if err != nil {
				return nil, false, err
			}
			s, err := SliceAt(base, env.FeedItems(scope(env, page)), size, n)
			if errors.Is(err, ErrNotFound) {
				return nil, false, nil
			}
			if err != nil {
				return nil, false, err
			}
			return &s, true, nil
		},
	}
}

// feedPageSize reads a feed's page size, falling back to the configured
// default when the page does not set one.
func feedPageSize(env *Env, page *models.Document) (int, error) {
	raw, present := page.Fields[PageSizeField]
	if !present || raw == nil {
		return env.Options.DefaultPageSize, nil
	}
	n, ok := page.Int(PageSizeField)
	if !ok {
		return 0, fmt.Errorf("%w: %s %v is not a whole number", ErrInvalidConfiguration, PageSizeField, raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s %d must be positive", ErrInvalidConfiguration, PageSizeField, n)
	}
	return n, nil
}

func inCategory(d *models.Document, category string) bool {
	return slices.Contains(d.RefIDs("category"), category) ||
		slices.Contains(d.RefIDs("categories"), category)
}
