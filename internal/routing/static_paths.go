// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import "slices"

// StaticPaths is the manifest in the shape the page generator consumes:
// one entry per route, with the path as a slug parameter. Fallback is
// always false; routes not listed are not found.
type StaticPaths struct {
	Paths    []StaticPath `json:"paths"`
	Fallback bool         `json:"fallback"`
}

// StaticPath is one manifest entry.
type StaticPath struct {
	Params PathParams `json:"params"`
	Locale string     `json:"locale"`
}

// PathParams holds the catch-all slug of a route; the root is an empty slug.
type PathParams struct {
	Slug []string `json:"slug"`
}

// StaticPaths converts the manifest routes.
func (m *Manifest) StaticPaths() StaticPaths {
	out := StaticPaths{Paths: make([]StaticPath, 0, len(m.Routes))}
	for _, r := range m.Routes {
		slug := slices.Clone(r.Path)
		if slug == nil {
			slug = []string{}
		}
		out.Paths = append(out.Paths, StaticPath{Params: PathParams{Slug: slug}, Locale: r.Locale})
	}
	return out
}
