// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package routing is the route resolution engine of the site generator.
//
// Forward resolution (Resolver.ResolveAll) walks the pages of a content
// graph and enumerates every (path, locale) route the site publishes.
// Reverse resolution (Resolver.Resolve) takes one requested path and locale
// and finds the page, and for feeds the page slice, that is rendered there.
//
// Both directions dispatch on the page's model name through the same
// Registry, resolve locales with ResolveLocale, select feed items with
// Env.FeedItems, and cut pages with SliceAt. Every route in a manifest is
// therefore resolvable, and resolves to the page that produced it.
package routing
