// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
	"time"
)

// Model names of the document types the content store ships with.
const (
	ModelPage             = "PageLayout"
	ModelPostFeed         = "PostFeedLayout"
	ModelPostFeedCategory = "PostFeedCategoryLayout"
	ModelPost             = "PostLayout"
	ModelConfig           = "Config"
)

// MetadataKey is the field under which a document's metadata travels in the
// content store's wire format.
const MetadataKey = "__metadata"

// dateLayouts are the date formats accepted for date fields, most precise first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Metadata holds the routing-relevant facts about a document that the content
// store tracks outside of its authored fields.
type Metadata struct {
	ID        string `json:"id"`
	ModelName string `json:"modelName"`
	URLPath   string `json:"urlPath,omitempty"`
	IsDraft   bool   `json:"isDraft,omitempty"`
	Locale    string `json:"locale,omitempty"`
}

// Document is one content record from the content store: a page, a post,
// the site config, or anything else. Documents are read-only snapshots; the
// routing engine never mutates them.
type Document struct {
	Metadata Metadata
	Fields   map[string]any
}

// DocumentFromMap builds a Document from its wire form, a map holding the
// authored fields plus a "__metadata" entry. A top-level "isDraft" boolean
// counts as the draft flag when the metadata does not carry one.
func DocumentFromMap(raw map[string]any) (*Document, error) {
	meta, ok := raw[MetadataKey].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document has no %s object", MetadataKey)
	}

	d := &Document{Fields: make(map[string]any, len(raw))}
	for k, v := range raw {
		if k != MetadataKey {
			d.Fields[k] = v
		}
	}

	d.Metadata.ID = stringValue(meta["id"])
	d.Metadata.ModelName = stringValue(meta["modelName"])
	d.Metadata.URLPath = stringValue(meta["urlPath"])
	d.Metadata.Locale = stringValue(meta["locale"])
	if draft, ok := meta["isDraft"].(bool); ok {
		d.Metadata.IsDraft = draft
	} else if draft, ok := d.Fields["isDraft"].(bool); ok {
		d.Metadata.IsDraft = draft
	}

	if d.Metadata.ID == "" {
		return nil, fmt.Errorf("document has no %s.id", MetadataKey)
	}
	return d, nil
}

// ToMap returns the wire form of the document.
func (d *Document) ToMap() map[string]any {
	out := maps.Clone(d.Fields)
	if out == nil {
		out = make(map[string]any, 1)
	}
	out[MetadataKey] = metadataMap(d.Metadata)
	return out
}

// MarshalJSON encodes the document in its wire form.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToMap())
}

// UnmarshalJSON decodes a document from its wire form.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := DocumentFromMap(raw)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// Payload returns the document as handed to the rendering layer: its fields
// plus a metadata object restricted to model name, id, and URL path.
func (d *Document) Payload() map[string]any {
	out := maps.Clone(d.Fields)
	if out == nil {
		out = make(map[string]any, 1)
	}
	out[MetadataKey] = map[string]any{
		"modelName": d.Metadata.ModelName,
		"id":        d.Metadata.ID,
		"urlPath":   d.Metadata.URLPath,
	}
	return out
}

// ID returns the document's stable identifier.
func (d *Document) ID() string { return d.Metadata.ID }

// ModelName returns the document's model type tag.
func (d *Document) ModelName() string { return d.Metadata.ModelName }

// IsPublished reports whether the document is visible outside preview mode.
func (d *Document) IsPublished() bool { return !d.Metadata.IsDraft }

// String returns a string field, or "" if it is missing or not a string.
func (d *Document) String(key string) string {
	return stringValue(d.Fields[key])
}

// Bool returns a boolean field, or false if it is missing or not a boolean.
func (d *Document) Bool(key string) bool {
	b, _ := d.Fields[key].(bool)
	return b
}

// Int returns an integral field. The second result is false when the field
// is missing, null, or not a whole number.
func (d *Document) Int(key string) (int, bool) {
	switch v := d.Fields[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	}
	return 0, false
}

// Time parses a date field. The second result is false when the field is
// missing or in none of the accepted layouts.
func (d *Document) Time(key string) (time.Time, bool) {
	switch v := d.Fields[key].(type) {
	case time.Time:
		return v, true
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// RefIDs returns the ids referenced by a field. A reference may be a plain
// id string, an embedded document, or a list of either.
func (d *Document) RefIDs(key string) []string {
	return refIDs(d.Fields[key])
}

func refIDs(v any) []string {
	switch r := v.(type) {
	case string:
		if r == "" {
			return nil
		}
		return []string{r}
	case map[string]any:
		if meta, ok := r[MetadataKey].(map[string]any); ok {
			if id := stringValue(meta["id"]); id != "" {
				return []string{id}
			}
		}
		if id := stringValue(r["id"]); id != "" {
			return []string{id}
		}
	case []any:
		var ids []string
		for _, elem := range r {
			ids = append(ids, refIDs(elem)...)
		}
		return ids
	case []string:
		return r
	}
	return nil
}

func metadataMap(m Metadata) map[string]any {
	out := map[string]any{
		"id":        m.ID,
		"modelName": m.ModelName,
	}
	if m.URLPath != "" {
		out["urlPath"] = m.URLPath
	}
	if m.IsDraft {
		out["isDraft"] = true
	}
	if m.Locale != "" {
		out["locale"] = m.Locale
	}
	return out
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
