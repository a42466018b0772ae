// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"routegen/internal/database"
	"routegen/internal/models"
)

func sampleGraph() *models.Graph {
	post := &models.Document{
		Metadata: models.Metadata{ID: "post-1", ModelName: models.ModelPost, URLPath: "/blog/hello/", Locale: "es"},
		Fields:   map[string]any{"title": "Hola", "date": "2024-03-01", "category": "news"},
	}
	draft := &models.Document{
		Metadata: models.Metadata{ID: "post-2", ModelName: models.ModelPost, URLPath: "/blog/wip/", IsDraft: true},
		Fields:   map[string]any{"title": "WIP"},
	}
	blog := &models.Document{
		Metadata: models.Metadata{ID: "blog", ModelName: models.ModelPostFeed, URLPath: "/blog/"},
		Fields:   map[string]any{"numOfPostsPerPage": 5},
	}
	home := &models.Document{
		Metadata: models.Metadata{ID: "home", ModelName: models.ModelPage, URLPath: "/"},
		Fields:   map[string]any{"title": "Home", "sections": []any{map[string]any{"type": "hero"}}},
	}
	config := &models.Document{
		Metadata: models.Metadata{ID: "config", ModelName: models.ModelConfig},
		Fields:   map[string]any{"title": "Site"},
	}
	return models.NewGraph(
		[]*models.Document{home, blog, post, draft},
		[]*models.Document{config, post, draft},
	)
}

func ids(docs []*models.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID()
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func checkRoundTrip(t *testing.T, db *database.DB) {
	t.Helper()
	ctx := context.Background()
	s := NewDocumentStore(db)
	want := sampleGraph()

	if err := s.Replace(ctx, want); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !equalStrings(ids(got.Pages), ids(want.Pages)) {
		t.Errorf("pages = %v, want %v", ids(got.Pages), ids(want.Pages))
	}
	if !equalStrings(ids(got.Objects), ids(want.Objects)) {
		t.Errorf("objects = %v, want %v", ids(got.Objects), ids(want.Objects))
	}

	post, ok := got.Lookup("post-1")
	if !ok {
		t.Fatal("post-1 missing after load")
	}
	if post.Metadata.Locale != "es" || post.Metadata.URLPath != "/blog/hello/" || post.String("title") != "Hola" {
		t.Errorf("post-1 = %+v", post)
	}
	if draft, _ := got.Lookup("post-2"); draft == nil || draft.IsPublished() {
		t.Error("post-2 should load as a draft")
	}
	if blog, _ := got.Lookup("blog"); blog == nil {
		t.Error("blog missing")
	} else if n, ok := blog.Int("numOfPostsPerPage"); !ok || n != 5 {
		t.Errorf("numOfPostsPerPage = %v, %v", n, ok)
	}

	// The same document is shared between pages and objects after load.
	if got.Pages[2] != got.Objects[1] {
		t.Error("post-1 should be one document in both lists")
	}

	if got.Fingerprint() != want.Fingerprint() {
		t.Error("fingerprint changed across a store round trip")
	}
}

func TestDocumentStoreRoundTripSQLite(t *testing.T) {
	checkRoundTrip(t, testDB(t))
}

func TestDocumentStoreRoundTripPostgres(t *testing.T) {
	db := testPostgres(t)
	t.Cleanup(func() { db.Exec("DELETE FROM documents") })
	checkRoundTrip(t, db)
}

func TestDocumentStoreReplaceDropsOldDocuments(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore(testDB(t))

	if err := s.Replace(ctx, sampleGraph()); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	only := &models.Document{
		Metadata: models.Metadata{ID: "solo", ModelName: models.ModelPage, URLPath: "/solo/"},
		Fields:   map[string]any{},
	}
	if err := s.Replace(ctx, models.NewGraph([]*models.Document{only}, nil)); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestDocumentStoreSeed(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore(testDB(t))

	seeded, err := s.Seed(ctx, sampleGraph())
	if err != nil || !seeded {
		t.Fatalf("first Seed = %v, %v; want true, nil", seeded, err)
	}

	seeded, err = s.Seed(ctx, models.NewGraph(nil, nil))
	if err != nil || seeded {
		t.Fatalf("second Seed = %v, %v; want false, nil", seeded, err)
	}

	n, _ := s.Count(ctx)
	if n != 5 {
		t.Errorf("Count = %d, want 5", n)
	}
}

func TestDocumentStoreEmpty(t *testing.T) {
	g, err := NewDocumentStore(testDB(t)).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(g.Pages) != 0 || len(g.Objects) != 0 {
		t.Errorf("expected empty graph, got %d pages and %d objects", len(g.Pages), len(g.Objects))
	}
}
