package routing

import (
	"fmt"
	"time"

	"routegen/internal/models"
)

var testLocales = []string{"en-US", "es"}

func testOptions() Options {
	return Options{Locales: testLocales, DefaultLocale: "en-US", Workers: 4}
}

func newDoc(id, model, urlPath string, fields map[string]any) *models.Document {
	if fields == nil {
		fields = map[string]any{}
	}
	return &models.Document{
		Metadata: models.Metadata{ID: id, ModelName: model, URLPath: urlPath},
		Fields:   fields,
	}
}

func draft(d *models.Document) *models.Document {
	d.Metadata.IsDraft = true
	return d
}

// makePosts returns n posts dated one day apart, oldest first, with ids
// prefix-00, prefix-01, ... Posts are routable at /posts/<id>/.
func makePosts(prefix string, n int, mutate func(i int, d *models.Document)) []*models.Document {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*models.Document, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s-%02d", prefix, i)
		d := newDoc(id, models.ModelPost, "/posts/"+id+"/", map[string]any{
			"title": "Post " + id,
			"date":  start.AddDate(0, 0, i).Format("2006-01-02"),
		})
		if mutate != nil {
			mutate(i, d)
		}
		out = append(out, d)
	}
	return out
}

// siteGraph is a content snapshot with every kind of page: plain pages, a
// locale-agnostic feed, a localized feed at the same path, a category feed,
// an unknown model, a draft page, an unroutable page, routable posts, and
// a site config.
//
// Posts: 23 total. Every fourth is Spanish, i%7==3 are drafts, post 5 is
// featured, every third is filed under the "news" category.
func siteGraph() *models.Graph {
	posts := makePosts("p", 23, func(i int, d *models.Document) {
		if i%4 == 0 {
			d.Fields["locale"] = "es"
		}
		if i%7 == 3 {
			d.Metadata.IsDraft = true
		}
		if i == 5 {
			d.Fields[FeaturedField] = true
		}
		if i%3 == 0 {
			d.Fields["category"] = "news"
		}
		d.Fields["author"] = "jane"
	})

	blogES := newDoc("blog-es", models.ModelPostFeed, "/blog/", map[string]any{"locale": "es", PageSizeField: 2})

	pages := []*models.Document{
		newDoc("home", models.ModelPage, "/", map[string]any{"title": "Home"}),
		newDoc("about", models.ModelPage, "/about/", map[string]any{"title": "About"}),
		newDoc("blog", models.ModelPostFeed, "/blog/", map[string]any{"title": "Blog", PageSizeField: 5}),
		blogES,
		newDoc("news", models.ModelPostFeedCategory, "/category/news/", map[string]any{PageSizeField: 3}),
		newDoc("landing", "LandingLayout", "/landing/", map[string]any{"locale": "es"}),
		draft(newDoc("secret", models.ModelPage, "/secret/", nil)),
		newDoc("broken", models.ModelPage, "", nil),
	}
	pages = append(pages, posts...)

	objects := []*models.Document{
		newDoc("site-config", models.ModelConfig, "", map[string]any{"title": "Example"}),
		newDoc("jane", "Person", "", map[string]any{"name": "Jane"}),
		newDoc("news", models.ModelPostFeedCategory, "/category/news/", map[string]any{PageSizeField: 3}),
	}
	objects = append(objects, posts...)

	return models.NewGraph(pages, objects)
}
