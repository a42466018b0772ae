// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import (
	"slices"

	"routegen/internal/models"
)

// SiteSource supplies the site-wide data (navigation, footer, locale list)
// rendered alongside every page.
type SiteSource interface {
	SiteData(env *Env, locale string) map[string]any
}

// ConfigSite reads site data from the content store's site config document.
// A config document of the requested locale is preferred, then a
// locale-agnostic one, then the first one found.
type ConfigSite struct {
	ModelName string
}

// SiteData returns the config document's fields plus the locale settings.
func (c ConfigSite) SiteData(env *Env, locale string) map[string]any {
	model := c.ModelName
	if model == "" {
		model = models.ModelConfig
	}

	var chosen, agnostic, first *models.Document
	for _, d := range env.Graph.ObjectsOfModel(model) {
		if first == nil {
			first = d
		}
		l, ok := ResolveLocale(d, env.Options.Locales)
		if ok && l == locale {
			chosen = d
			break
		}
		if !ok && agnostic == nil {
			agnostic = d
		}
	}
	if chosen == nil {
		chosen = agnostic
	}
	if chosen == nil {
		chosen = first
	}

	out := map[string]any{}
	if chosen != nil {
		out = chosen.Payload()
	}
	out["locale"] = locale
	out["locales"] = slices.Clone(env.Options.Locales)
	out["defaultLocale"] = env.Options.DefaultLocale
	return out
}
