// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
)

// Graph is an immutable snapshot of the content store. Pages are the
// routable entry points; Objects are every document, pages included when the
// content store lists them there.
type Graph struct {
	Pages   []*Document
	Objects []*Document

	index map[string]*Document
}

// NewGraph builds a graph and its id index. When an id appears more than
// once, the first occurrence in Objects wins, then the first in Pages.
func NewGraph(pages, objects []*Document) *Graph {
	g := &Graph{
		Pages:   pages,
		Objects: objects,
		index:   make(map[string]*Document, len(objects)+len(pages)),
	}
	for _, d := range objects {
		if _, ok := g.index[d.ID()]; !ok {
			g.index[d.ID()] = d
		}
	}
	for _, d := range pages {
		if _, ok := g.index[d.ID()]; !ok {
			g.index[d.ID()] = d
		}
	}
	return g
}

// Lookup returns the document with the given id.
func (g *Graph) Lookup(id string) (*Document, bool) {
	d, ok := g.index[id]
	return d, ok
}

// ObjectsOfModel returns the objects whose model name is one of names, in
// snapshot order.
func (g *Graph) ObjectsOfModel(names ...string) []*Document {
	var out []*Document
	for _, d := range g.Objects {
		if slices.Contains(names, d.ModelName()) {
			out = append(out, d)
		}
	}
	return out
}

type graphWire struct {
	Pages   []*Document `json:"pages"`
	Objects []*Document `json:"objects"`
}

// MarshalJSON encodes the graph as {"pages": [...], "objects": [...]}.
func (g *Graph) MarshalJSON() ([]byte, error) {
	w := graphWire{Pages: g.Pages, Objects: g.Objects}
	if w.Pages == nil {
		w.Pages = []*Document{}
	}
	if w.Objects == nil {
		w.Objects = []*Document{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a graph and rebuilds its index.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w graphWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*g = *NewGraph(w.Pages, w.Objects)
	return nil
}

// Fingerprint returns a hex SHA-256 digest of the graph's JSON encoding. Two
// snapshots with the same content share a fingerprint.
func (g *Graph) Fingerprint() string {
	data, err := json.Marshal(g)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
