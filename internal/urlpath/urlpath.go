// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package urlpath converts between URL paths and their segment form. Every
// path produced here is canonical: a leading and a trailing slash, no empty
// segments, and "/" for the site root.
package urlpath

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// PageSegment is the segment that precedes a page number in paginated feeds,
// as in "/blog/page/2/".
const PageSegment = "page"

var (
	// pageNumber matches a canonical decimal page number (no sign, no leading zeros).
	pageNumber = regexp.MustCompile(`^[1-9][0-9]*$`)
	// multipleSlashes collapses runs of slashes into one.
	multipleSlashes = regexp.MustCompile(`/{2,}`)
)

// Split breaks a URL path into its non-empty segments.
// Example: "/blog//news/" → ["blog", "news"]
func Split(p string) []string {
	p = multipleSlashes.ReplaceAllString(strings.TrimSpace(p), "/")
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// Join builds the canonical path for a list of segments.
// Example: ["blog", "news"] → "/blog/news/"
func Join(segs []string) string {
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/") + "/"
}

// Clean returns the canonical form of p.
func Clean(p string) string {
	return Join(Split(p))
}

// Paged returns the segments of page n of a feed rooted at base. Page 1 is the
// base itself; later pages get a "page/<n>" suffix.
func Paged(base []string, n int) []string {
	if n <= 1 {
		return slices.Clone(base)
	}
	out := make([]string, 0, len(base)+2)
	out = append(out, base...)
	return append(out, PageSegment, strconv.Itoa(n))
}

// PageNumber reports which page of the feed rooted at base the requested
// segments address. It returns 1 for the base itself and n for a
// "page/<n>" suffix with n >= 2. "page/1" is not a valid address because
// the first page is only ever published at the base path.
func PageNumber(base, requested []string) (int, bool) {
	if slices.Equal(base, requested) {
		return 1, true
	}
	if len(requested) != len(base)+2 || !slices.Equal(base, requested[:len(base)]) {
		return 0, false
	}
	if requested[len(base)] != PageSegment {
		return 0, false
	}
	raw := requested[len(base)+1]
	if !pageNumber.MatchString(raw) {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 2 {
		return 0, false
	}
	return n, true
}

// Localize returns the public URL of a path under the given locale. The
// default locale is served unprefixed; every other locale gets its
// identifier as the first segment.
func Localize(p, locale, defaultLocale string) string {
	p = Clean(p)
	if locale == "" || locale == defaultLocale {
		return p
	}
	return Join(append([]string{locale}, Split(p)...))
}

// SplitLocale is the inverse of Localize: it strips a leading non-default
// locale segment and returns the remaining path with that locale. Paths
// without a locale prefix belong to the default locale.
func SplitLocale(p string, locales []string, defaultLocale string) (string, string) {
	segs := Split(p)
	if len(segs) > 0 && segs[0] != defaultLocale && slices.Contains(locales, segs[0]) {
		return Join(segs[1:]), segs[0]
	}
	return Join(segs), defaultLocale
}
