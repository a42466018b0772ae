// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import (
	"slices"

	"routegen/internal/models"
	"routegen/internal/urlpath"
)

// ResolveLocale determines the locale a document belongs to:
//
//  1. its explicit locale (metadata, then the "locale" field) if configured;
//  2. otherwise the first segment of its slug (or URL path) if that segment
//     is a configured locale;
//  3. otherwise none: the document is locale-agnostic.
//
// The function is pure and is the only locale rule either direction uses.
func ResolveLocale(doc *models.Document, locales []string) (string, bool) {
	explicit := doc.Metadata.Locale
	if explicit == "" {
		explicit = doc.String("locale")
	}
	if explicit != "" && slices.Contains(locales, explicit) {
		return explicit, true
	}

	slug := doc.String("slug")
	if slug == "" {
		slug = doc.Metadata.URLPath
	}
	if segs := urlpath.Split(slug); len(segs) > 0 && slices.Contains(locales, segs[0]) {
		return segs[0], true
	}
	return "", false
}

// EffectiveLocale is the locale a document's routes are published under:
// its resolved locale, or the default for locale-agnostic documents.
func EffectiveLocale(doc *models.Document, locales []string, defaultLocale string) string {
	if l, ok := ResolveLocale(doc, locales); ok {
		return l
	}
	return defaultLocale
}
