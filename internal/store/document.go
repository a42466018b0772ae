// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"

	"routegen/internal/database"
	"routegen/internal/models"
)

// DocumentStore persists content snapshots in the documents table. Each
// document is one row; its position among the graph's pages and objects is
// kept so a loaded graph iterates in the order it was saved.
type DocumentStore struct {
	db *database.DB
}

// NewDocumentStore creates a new DocumentStore with the given database connection.
func NewDocumentStore(db *database.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Load reads the whole snapshot.
func (s *DocumentStore) Load(ctx context.Context) (*models.Graph, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model_name, url_path, is_draft, locale,
		       page_position, object_position, fields
		FROM documents
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	defer rows.Close()

	var pages, objects []positioned

	for rows.Next() {
		var (
			d               models.Document
			pagePos, objPos sql.NullInt64
			fields          string
		)
		if err := rows.Scan(
			&d.Metadata.ID, &d.Metadata.ModelName, &d.Metadata.URLPath,
			&d.Metadata.IsDraft, &d.Metadata.Locale,
			&pagePos, &objPos, &fields,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if err := json.Unmarshal([]byte(fields), &d.Fields); err != nil {
			return nil, fmt.Errorf("decode fields of %s: %w", d.Metadata.ID, err)
		}
		if d.Fields == nil {
			d.Fields = map[string]any{}
		}
		if pagePos.Valid {
			pages = append(pages, positioned{&d, pagePos.Int64})
		}
		if objPos.Valid {
			objects = append(objects, positioned{&d, objPos.Int64})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}

	return models.NewGraph(sortPositioned(pages), sortPositioned(objects)), nil
}

// Replace swaps the stored snapshot for g in one transaction.
func (s *DocumentStore) Replace(ctx context.Context, g *models.Graph) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents"); err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}
	if err := s.insertGraph(ctx, tx, g); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}

	slog.Info("content snapshot stored", "pages", len(g.Pages), "objects", len(g.Objects))
	return nil
}

// Seed stores g only when the table is empty. It reports whether it did.
func (s *DocumentStore) Seed(ctx context.Context, g *models.Graph) (bool, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		slog.Info("content store already seeded, skipping", "documents", n)
		return false, nil
	}
	if err := s.Replace(ctx, g); err != nil {
		return false, fmt.Errorf("seed: %w", err)
	}
	return true, nil
}

// Count returns the number of stored documents.
func (s *DocumentStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// insertGraph writes one row per distinct document id. When a page and an
// object share an id, the object's copy is stored, matching Graph.Lookup.
func (s *DocumentStore) insertGraph(ctx context.Context, tx *sql.Tx, g *models.Graph) error {
	type row struct {
		doc             *models.Document
		pagePos, objPos sql.NullInt64
	}
	rows := make(map[string]*row)
	var order []string

	add := func(d *models.Document) *row {
		r, ok := rows[d.ID()]
		if !ok {
			r = &row{doc: d}
			rows[d.ID()] = r
			order = append(order, d.ID())
		}
		return r
	}
	for i, d := range g.Objects {
		if r := add(d); !r.objPos.Valid {
			r.objPos = sql.NullInt64{Int64: int64(i), Valid: true}
		}
	}
	for i, d := range g.Pages {
		if r := add(d); !r.pagePos.Valid {
			r.pagePos = sql.NullInt64{Int64: int64(i), Valid: true}
		}
	}

	stmt, err := tx.PrepareContext(ctx, s.db.Rebind(`
		INSERT INTO documents (id, model_name, url_path, is_draft, locale,
		                       page_position, object_position, fields)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			model_name = excluded.model_name,
			url_path = excluded.url_path,
			is_draft = excluded.is_draft,
			locale = excluded.locale,
			page_position = excluded.page_position,
			object_position = excluded.object_position,
			fields = excluded.fields,
			updated_at = CURRENT_TIMESTAMP
	`))
	if err != nil {
		return fmt.Errorf("prepare insert document: %w", err)
	}
	defer stmt.Close()

	for _, id := range order {
		r := rows[id]
		fields, err := json.Marshal(r.doc.Fields)
		if err != nil {
			return fmt.Errorf("encode fields of %s: %w", id, err)
		}
		m := r.doc.Metadata
		if _, err := stmt.ExecContext(ctx,
			m.ID, m.ModelName, m.URLPath, m.IsDraft, m.Locale,
			r.pagePos, r.objPos, string(fields),
		); err != nil {
			return fmt.Errorf("insert document %s: %w", id, err)
		}
	}
	return nil
}

// positioned is a loaded document with its stored position.
type positioned struct {
	doc      *models.Document
	position int64
}

func sortPositioned(in []positioned) []*models.Document {
	slices.SortStableFunc(in, func(a, b positioned) int {
		return cmp.Compare(a.position, b.position)
	})
	out := make([]*models.Document, len(in))
	for i, p := range in {
		out[i] = p.doc
	}
	return out
}
