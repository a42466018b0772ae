// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content loads content snapshots. A snapshot comes either from a
// file (the content store's JSON cache, or YAML) or from the SQL document
// store; both satisfy Source.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"routegen/internal/models"
)

// Source supplies content snapshots.
type Source interface {
	Load(ctx context.Context) (*models.Graph, error)
}

// Format is a snapshot file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension. Anything that is
// not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// FileSource reads a snapshot file on every Load.
type FileSource struct {
	Path string
}

// NewFileSource returns a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and decodes the snapshot file.
func (s *FileSource) Load(ctx context.Context) (*models.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read content snapshot: %w", err)
	}
	g, err := Decode(data, FormatFromPath(s.Path))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return g, nil
}

// snapshot is the file shape. Other top-level keys of the content store's
// cache are ignored.
type snapshot struct {
	Pages   []map[string]any `json:"pages" yaml:"pages"`
	Objects []map[string]any `json:"objects" yaml:"objects"`
}

// Decode parses a snapshot in the given format.
func Decode(data []byte, format Format) (*models.Graph, error) {
	var raw snapshot
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}

	pages, err := documents("pages", raw.Pages)
	if err != nil {
		return nil, err
	}
	objects, err := documents("objects", raw.Objects)
	if err != nil {
		return nil, err
	}
	return models.NewGraph(pages, objects), nil
}

func documents(list string, raw []map[string]any) ([]*models.Document, error) {
	out := make([]*models.Document, 0, len(raw))
	for i, m := range raw {
		d, err := models.DocumentFromMap(m)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", list, i, err)
		}
		out = append(out, d)
	}
	return out, nil
}
