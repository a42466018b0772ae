// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Cache tests are skipped when Valkey is unavailable.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"

	"routegen/internal/models"
	"routegen/internal/routing"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkey returns a client on the test database, skipping the test when
// Valkey is unreachable. Cached props are removed on cleanup.
func testValkey(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}
	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "props:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

// memorySource serves a replaceable in-memory snapshot.
type memorySource struct {
	mu    sync.Mutex
	graph *models.Graph
	err   error
	loads int
}

func (s *memorySource) Load(context.Context) (*models.Graph, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	return s.graph, nil
}

func (s *memorySource) set(g *models.Graph, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph, s.err = g, err
}

func doc(id, model, url string, fields map[string]any) *models.Document {
	if fields == nil {
		fields = map[string]any{}
	}
	return &models.Document{Metadata: models.Metadata{ID: id, ModelName: model, URLPath: url}, Fields: fields}
}

// siteGraph has a home page, an about page, a five-post blog at two per
// page, a draft page and a site config.
func siteGraph() *models.Graph {
	pages := []*models.Document{
		doc("home", models.ModelPage, "/", map[string]any{"title": "Home"}),
		doc("about", models.ModelPage, "/about/", map[string]any{"title": "About"}),
		doc("blog", models.ModelPostFeed, "/blog/", map[string]any{routing.PageSizeField: 2}),
	}
	secret := doc("secret", models.ModelPage, "/secret/", nil)
	secret.Metadata.IsDraft = true
	pages = append(pages, secret)

	var objects []*models.Document
	for i := 1; i <= 5; i++ {
		objects = append(objects, doc(fmt.Sprintf("post-%d", i), models.ModelPost, "", map[string]any{
			"title": fmt.Sprintf("Post %d", i),
			"date":  fmt.Sprintf("2024-02-%02d", i),
		}))
	}
	objects = append(objects, doc("config", models.ModelConfig, "", map[string]any{"title": "Site"}))
	return models.NewGraph(pages, objects)
}

func testResolver(t *testing.T) *routing.Resolver {
	t.Helper()
	r, err := routing.NewResolver(routing.Options{Locales: []string{"en-US", "es"}, DefaultLocale: "en-US"}, nil, nil)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return r
}

// get serves a GET request and decodes the JSON response body.
func get(t *testing.T, h http.HandlerFunc, target string) (int, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, target, nil))

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("%s content-type: got %q, want application/json", target, ct)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("%s: decode body %q: %v", target, rr.Body.String(), err)
	}
	return rr.Code, body
}
