// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import (
	"cmp"
	"fmt"
	"slices"

	"routegen/internal/models"
	"routegen/internal/urlpath"
)

// TotalPages returns how many pages n items fill at pageSize per page. An
// empty feed still has one (empty) page.
func TotalPages(n, pageSize int) int {
	if n == 0 || pageSize <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// SliceAt computes page pageNumber (1-based) of a feed rooted at base. It is
// the single chunking algorithm behind both Plan and reverse resolution.
// items must already be filtered and sorted.
func SliceAt(base []string, items []*models.Document, pageSize, pageNumber int) (models.PageSlice, error) {
	if pageSize <= 0 {
		return models.PageSlice{}, fmt.Errorf("%w: page size %d must be positive", ErrInvalidConfiguration, pageSize)
	}
	total := TotalPages(len(items), pageSize)
	if pageNumber < 1 || pageNumber > total {
		return models.PageSlice{}, fmt.Errorf("%w: page %d of %d", ErrNotFound, pageNumber, total)
	}

	lo := (pageNumber - 1) * pageSize
	hi := min(lo+pageSize, len(items))

	s := models.PageSlice{
		PageNumber: pageNumber,
		TotalPages: total,
		Items:      items[lo:hi:hi],
		BasePath:   urlpath.Join(base),
		Path:       urlpath.Join(urlpath.Paged(base, pageNumber)),
	}
	if pageNumber > 1 {
		s.PreviousPath = urlpath.Join(urlpath.Paged(base, pageNumber-1))
	}
	if pageNumber < total {
		s.NextPath = urlpath.Join(urlpath.Paged(base, pageNumber+1))
	}
	return s, nil
}

// Plan splits items into the numbered pages of a feed rooted at base.
func Plan(base []string, items []*models.Document, pageSize int) ([]models.PageSlice, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: page size %d must be positive", ErrInvalidConfiguration, pageSize)
	}
	total := TotalPages(len(items), pageSize)
	out := make([]models.PageSlice, 0, total)
	for n := 1; n <= total; n++ {
		s, err := SliceAt(base, items, pageSize, n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SortItems orders feed items newest first by dateField. Undated items go
// last; ties are broken by document id so every run sees the same order.
func SortItems(items []*models.Document, dateField string) {
	slices.SortStableFunc(items, func(a, b *models.Document) int {
		ta, okA := a.Time(dateField)
		tb, okB := b.Time(dateField)
		switch {
		case okA && !okB:
			return -1
		case !okA && okB:
			return 1
		case okA && okB && !ta.Equal(tb):
			return tb.Compare(ta)
		}
		return cmp.Compare(a.ID(), b.ID())
	})
}
