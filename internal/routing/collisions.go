// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import "routegen/internal/models"

// DetectCollisions returns a *CollisionError listing every (path, locale)
// pair that more than one route claims, or nil if all routes are distinct.
func DetectCollisions(routes []models.Route) error {
	owners := make(map[models.RouteKey][]string, len(routes))
	var order []models.RouteKey
	for _, rt := range routes {
		k := rt.Key()
		if _, ok := owners[k]; !ok {
			order = append(order, k)
		}
		owners[k] = append(owners[k], rt.DocumentID)
	}

	var collisions []Collision
	for _, k := range order {
		if ids := owners[k]; len(ids) > 1 {
			collisions = append(collisions, Collision{Path: k.Path, Locale: k.Locale, DocumentIDs: ids})
		}
	}
	if len(collisions) == 0 {
		return nil
	}
	return &CollisionError{Collisions: collisions}
}
