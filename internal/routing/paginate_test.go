package routing

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routegen/internal/models"
)

// TestPlanTwentyThreeItems checks the worked example: 23 items at 10 per
// page give pages of 10, 10, and 3 with the expected links.
func TestPlanTwentyThreeItems(t *testing.T) {
	items := makePosts("p", 23, nil)
	SortItems(items, DateField)

	pages, err := Plan([]string{"blog"}, items, 10)
	require.NoError(t, err)
	require.Len(t, pages, 3)

	assert.Len(t, pages[0].Items, 10)
	assert.Len(t, pages[1].Items, 10)
	assert.Len(t, pages[2].Items, 3)

	assert.Equal(t, "/blog/", pages[0].Path)
	assert.Empty(t, pages[0].PreviousPath)
	assert.Equal(t, "/blog/page/2/", pages[0].NextPath)

	assert.Equal(t, "/blog/page/2/", pages[1].Path)
	assert.Equal(t, "/blog/", pages[1].PreviousPath)
	assert.Equal(t, "/blog/page/3/", pages[1].NextPath)

	assert.Equal(t, "/blog/page/3/", pages[2].Path)
	assert.Equal(t, "/blog/page/2/", pages[2].PreviousPath)
	assert.Empty(t, pages[2].NextPath)
	assert.False(t, pages[2].HasNext())

	for _, p := range pages {
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, "/blog/", p.BasePath)
	}
}

func TestPlanEmptyFeed(t *testing.T) {
	pages, err := Plan([]string{"blog"}, nil, 10)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	assert.Equal(t, 1, pages[0].PageNumber)
	assert.Equal(t, 1, pages[0].TotalPages)
	assert.Empty(t, pages[0].Items)
	assert.False(t, pages[0].HasPrevious())
	assert.False(t, pages[0].HasNext())
	assert.Equal(t, "/blog/", pages[0].Path)
}

func TestPlanRejectsNonPositivePageSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := Plan([]string{"blog"}, makePosts("p", 3, nil), size)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "page size %d", size)

		_, err = SliceAt([]string{"blog"}, makePosts("p", 3, nil), size, 1)
		assert.ErrorIs(t, err, ErrInvalidConfiguration, "page size %d", size)
	}
}

// TestPlanCompleteness checks, over a grid of sizes, that the page count is
// ceil(n/p) (at least 1), the links are right at both ends, and the pages
// concatenate back to the input sequence exactly once each.
func TestPlanCompleteness(t *testing.T) {
	for n := 0; n <= 31; n++ {
		for p := 1; p <= 8; p++ {
			t.Run(fmt.Sprintf("n=%d/p=%d", n, p), func(t *testing.T) {
				items := makePosts("p", n, nil)
				pages, err := Plan(nil, items, p)
				require.NoError(t, err)

				want := (n + p - 1) / p
				if n == 0 {
					want = 1
				}
				require.Len(t, pages, want)
				assert.False(t, pages[0].HasPrevious())
				assert.False(t, pages[len(pages)-1].HasNext())

				var all []*models.Document
				for i, pg := range pages {
					assert.Equal(t, i+1, pg.PageNumber)
					assert.LessOrEqual(t, len(pg.Items), p)
					if n > 0 {
						assert.NotEmpty(t, pg.Items)
					}
					all = append(all, pg.Items...)
				}
				if n == 0 {
					assert.Empty(t, all)
				} else {
					assert.Equal(t, items, all)
				}
			})
		}
	}
}

// TestSliceAtMatchesPlan guards the shared chunking: every slice computed on
// its own is identical to the same page out of Plan.
func TestSliceAtMatchesPlan(t *testing.T) {
	items := makePosts("p", 17, nil)
	pages, err := Plan([]string{"news"}, items, 4)
	require.NoError(t, err)

	for _, want := range pages {
		got, err := SliceAt([]string{"news"}, items, 4, want.PageNumber)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err = SliceAt([]string{"news"}, items, 4, len(pages)+1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = SliceAt([]string{"news"}, items, 4, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSliceItemsCannotGrowIntoNextPage(t *testing.T) {
	items := makePosts("p", 6, nil)
	first, err := SliceAt(nil, items, 3, 1)
	require.NoError(t, err)

	_ = append(first.Items, newDoc("intruder", models.ModelPost, "", nil))
	assert.Equal(t, "p-03", items[3].ID())
}

func TestSortItems(t *testing.T) {
	items := []*models.Document{
		newDoc("b", models.ModelPost, "", map[string]any{"date": "2024-01-01"}),
		newDoc("undated", models.ModelPost, "", nil),
		newDoc("a", models.ModelPost, "", map[string]any{"date": "2024-01-01"}),
		newDoc("newest", models.ModelPost, "", map[string]any{"date": "2024-05-01T10:00:00Z"}),
		newDoc("garbage", models.ModelPost, "", map[string]any{"date": "soon"}),
	}

	SortItems(items, DateField)

	var ids []string
	for _, d := range items {
		ids = append(ids, d.ID())
	}
	assert.Equal(t, []string{"newest", "a", "b", "garbage", "undated"}, ids)
}
