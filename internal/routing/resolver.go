// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import (
	"routegen/internal/models"
)

// Resolver runs forward and reverse resolution with one fixed set of
// options, strategies, and site data source.
type Resolver struct {
	opts     Options
	registry *Registry
	site     SiteSource
}

// NewResolver validates opts and returns a Resolver. A nil registry means
// DefaultRegistry; a nil site source means a ConfigSite over the Config model.
func NewResolver(opts Options, registry *Registry, site SiteSource) (*Resolver, error) {
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if registry == nil {
		registry = DefaultRegistry()
	}
	if site == nil {
		site = ConfigSite{ModelName: models.ModelConfig}
	}
	return &Resolver{opts: opts, registry: registry, site: site}, nil
}

// Options returns the options the resolver runs with, defaults applied.
func (r *Resolver) Options() Options {
	return r.opts
}

func (r *Resolver) env(graph *models.Graph) *Env {
	return &Env{Graph: graph, Options: r.opts}
}

// visible reports whether a page takes part in routing at all: drafts only
// do in preview mode.
func (r *Resolver) visible(page *models.Document) bool {
	return r.opts.Preview || page.IsPublished()
}
