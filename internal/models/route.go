// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "routegen/internal/urlpath"

// Route is one concrete (path, locale) pair the site publishes. DocumentID
// names the page that produced it; PageNumber is set for feed pages.
type Route struct {
	Path       []string `json:"path"`
	Locale     string   `json:"locale"`
	DocumentID string   `json:"documentId,omitempty"`
	PageNumber int      `json:"pageNumber,omitempty"`
}

// URLPath returns the canonical path of the route, e.g. "/blog/page/2/".
func (r Route) URLPath() string {
	return urlpath.Join(r.Path)
}

// Key identifies the route for collision checks.
func (r Route) Key() RouteKey {
	return RouteKey{Path: r.URLPath(), Locale: r.Locale}
}

// RouteKey is the identity of a route: two routes with equal keys collide.
type RouteKey struct {
	Path   string
	Locale string
}

// PageSlice is one numbered page of a paginated feed. Paths are canonical;
// PreviousPath is empty on the first page and NextPath on the last.
type PageSlice struct {
	PageNumber   int
	TotalPages   int
	Items        []*Document
	BasePath     string
	Path         string
	PreviousPath string
	NextPath     string
}

// HasPrevious reports whether a page precedes this one.
func (s *PageSlice) HasPrevious() bool { return s.PreviousPath != "" }

// HasNext reports whether a page follows this one.
func (s *PageSlice) HasNext() bool { return s.NextPath != "" }
