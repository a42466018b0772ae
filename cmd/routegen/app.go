// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"routegen/internal/config"
	"routegen/internal/content"
	"routegen/internal/database"
	"routegen/internal/generate"
	"routegen/internal/routing"
	"routegen/internal/storage"
	"routegen/internal/store"
)

// openDB connects to the configured SQL content store and applies pending
// migrations.
func openDB(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	var driver, dsn string
	switch cfg.ContentSource {
	case config.SourcePostgres:
		driver, dsn = database.DriverPostgres, cfg.DSN()
	case config.SourceSQLite:
		driver, dsn = database.DriverSQLite, cfg.SQLitePath
	default:
		return nil, fmt.Errorf("content source %q is not a database", cfg.ContentSource)
	}

	db, err := database.Connect(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// contentSource returns the configured snapshot source. db is nil for the
// file source; callers close it when set.
func contentSource(ctx context.Context, cfg *config.Config) (content.Source, *database.DB, error) {
	if cfg.ContentSource == config.SourceFile {
		return content.NewFileSource(cfg.ContentFile), nil, nil
	}
	db, err := openDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return store.NewDocumentStore(db), db, nil
}

func newResolver(cfg *config.Config) (*routing.Resolver, error) {
	r, err := routing.NewResolver(cfg.Routing(), routing.DefaultRegistry(), routing.ConfigSite{})
	if err != nil {
		return nil, fmt.Errorf("configure resolver: %w", err)
	}
	return r, nil
}

// publisher returns the S3 publisher, or nil when storage is not configured.
func publisher(cfg *config.Config) (generate.Publisher, error) {
	client, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3Prefix, cfg.S3PublicURL)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", client.Bucket())
	return client, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
