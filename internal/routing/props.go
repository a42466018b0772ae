// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import (
	"encoding/json"

	"routegen/internal/models"
)

// ReferenceFields are the item fields whose document references are
// replaced by the referenced document's payload inside feed slices.
var ReferenceFields = []string{"author", "category", "categories"}

// Props is the render payload of one route.
type Props struct {
	Path     string
	Locale   string
	Document *models.Document
	Slice    *models.PageSlice
	Site     map[string]any

	graph *models.Graph
}

// Payload returns the props in the shape the rendering layer consumes:
//
//	{"page": {...fields, "__metadata": {...}, [pagination keys]}, "site": {...}}
//
// For feeds the slice is merged into the page namespace.
func (p *Props) Payload() map[string]any {
	page := p.Document.Payload()
	if s := p.Slice; s != nil {
		items := make([]any, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, p.itemPayload(it))
		}
		page["items"] = items
		page["pageNumber"] = s.PageNumber
		page["pageIndex"] = s.PageNumber - 1
		page["totalPages"] = s.TotalPages
		page["numOfPages"] = s.TotalPages
		page["baseUrlPath"] = s.BasePath
		page["previousPath"] = optionalPath(s.PreviousPath)
		page["nextPath"] = optionalPath(s.NextPath)
	}
	site := p.Site
	if site == nil {
		site = map[string]any{}
	}
	return map[string]any{"page": page, "site": site}
}

// MarshalJSON encodes the payload.
func (p *Props) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Payload())
}

// itemPayload resolves string references of an item against the graph.
func (p *Props) itemPayload(item *models.Document) map[string]any {
	out := item.Payload()
	if p.graph == nil {
		return out
	}
	for _, key := range ReferenceFields {
		switch v := out[key].(type) {
		case string:
			if ref, ok := p.graph.Lookup(v); ok {
				out[key] = ref.Payload()
			}
		case []any:
			resolved := make([]any, len(v))
			for i, elem := range v {
				resolved[i] = elem
				if id, ok := elem.(string); ok {
					if ref, ok := p.graph.Lookup(id); ok {
						resolved[i] = ref.Payload()
					}
				}
			}
			out[key] = resolved
		}
	}
	return out
}

func optionalPath(p string) any {
	if p == "" {
		return nil
	}
	return p
}
