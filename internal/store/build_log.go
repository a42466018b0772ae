// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// build_log.go records finished builds in the database for audit and
// debugging purposes. Each entry captures which snapshot was built, how many
// routes it produced, and where the output went.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"routegen/internal/database"
)

// BuildLogStore handles build log operations.
type BuildLogStore struct {
	db *database.DB
}

// NewBuildLogStore creates a new BuildLogStore.
func NewBuildLogStore(db *database.DB) *BuildLogStore {
	return &BuildLogStore{db: db}
}

// Log records a finished build.
func (s *BuildLogStore) Log(ctx context.Context, e BuildLogEntry) {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO builds (id, fingerprint, routes, warnings, output)
		VALUES ($1, $2, $3, $4, $5)
	`), e.ID.String(), e.Fingerprint, e.Routes, e.Warnings, e.Output)
	if err != nil {
		// Log but don't fail: the build itself already succeeded.
		slog.Warn("failed to log build",
			"build_id", e.ID,
			"fingerprint", e.Fingerprint,
			"error", err,
		)
		return
	}
	slog.Debug("build logged", "build_id", e.ID, "routes", e.Routes)
}

// RecentEntries returns the most recent builds, newest first. Limited to
// the specified count.
func (s *BuildLogStore) RecentEntries(ctx context.Context, limit int) ([]BuildLogEntry, error) {
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(`
		SELECT id, fingerprint, routes, warnings, output, finished_at
		FROM builds
		ORDER BY finished_at DESC, id
		LIMIT $1
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("query build log: %w", err)
	}
	defer rows.Close()

	var entries []BuildLogEntry
	for rows.Next() {
		var (
			e  BuildLogEntry
			id string
		)
		if err := rows.Scan(&id, &e.Fingerprint, &e.Routes, &e.Warnings, &e.Output, &e.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan build log: %w", err)
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("scan build log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// BuildLogEntry represents a single finished build.
type BuildLogEntry struct {
	ID          uuid.UUID `json:"id"`
	Fingerprint string    `json:"fingerprint"`
	Routes      int       `json:"routes"`
	Warnings    int       `json:"warnings"`
	Output      string    `json:"output"`
	FinishedAt  string    `json:"finishedAt"`
}
