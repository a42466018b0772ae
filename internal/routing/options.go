// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import (
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/text/language"

	"routegen/internal/models"
)

const (
	// DefaultPageSize applies to feed pages that do not set PageSizeField.
	DefaultPageSize = 10

	// PageSizeField is the feed page field holding the number of items per page.
	PageSizeField = "numOfPostsPerPage"

	// DateField is the item field feeds are sorted by, newest first.
	DateField = "date"

	// FeaturedField marks items that plain feeds leave out.
	FeaturedField = "isFeatured"
)

// Options configures one resolution pass. Both directions must be run with
// the same Options for their results to agree.
type Options struct {
	// Locales lists the configured locale identifiers.
	Locales []string
	// DefaultLocale is the locale of locale-agnostic documents. It must be
	// one of Locales.
	DefaultLocale string
	// Preview routes draft pages and includes draft items in feeds.
	Preview bool
	// ItemModels lists the model names aggregated by feeds. Defaults to
	// PostLayout.
	ItemModels []string
	// DefaultPageSize is used when a feed does not set its own page size.
	// Defaults to DefaultPageSize.
	DefaultPageSize int
	// Workers bounds how many pages are resolved concurrently. Defaults to
	// GOMAXPROCS.
	Workers int
}

// Validate reports ErrInvalidConfiguration for settings no route can be
// derived from.
func (o Options) Validate() error {
	if len(o.Locales) == 0 {
		return fmt.Errorf("%w: no locales configured", ErrInvalidConfiguration)
	}
	seen := make(map[string]bool, len(o.Locales))
	for _, l := range o.Locales {
		if _, err := language.Parse(l); err != nil {
			return fmt.Errorf("%w: locale %q: %v", ErrInvalidConfiguration, l, err)
		}
		if seen[l] {
			return fmt.Errorf("%w: locale %q listed twice", ErrInvalidConfiguration, l)
		}
		seen[l] = true
	}
	if o.DefaultLocale == "" {
		return fmt.Errorf("%w: default locale is not set", ErrInvalidConfiguration)
	}
	if !slices.Contains(o.Locales, o.DefaultLocale) {
		return fmt.Errorf("%w: default locale %q is not one of %v", ErrInvalidConfiguration, o.DefaultLocale, o.Locales)
	}
	if o.DefaultPageSize < 0 {
		return fmt.Errorf("%w: default page size %d must be positive", ErrInvalidConfiguration, o.DefaultPageSize)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", ErrInvalidConfiguration, o.Workers)
	}
	return nil
}

// withDefaults fills unset optional fields.
func (o Options) withDefaults() Options {
	o.Locales = slices.Clone(o.Locales)
	if len(o.ItemModels) == 0 {
		o.ItemModels = []string{models.ModelPost}
	} else {
		o.ItemModels = slices.Clone(o.ItemModels)
	}
	if o.DefaultPageSize == 0 {
		o.DefaultPageSize = DefaultPageSize
	}
	if o.Workers == 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}
