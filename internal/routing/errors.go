// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package routing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnroutableDocument marks a page that lacks the metadata needed to
	// route it. The page is skipped; the run continues.
	ErrUnroutableDocument = errors.New("unroutable document")

	// ErrInvalidConfiguration marks settings that invalidate every derived
	// route, such as an unknown default locale or a non-positive page size.
	// It aborts the whole resolution pass.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNotFound means no page publishes the requested route.
	ErrNotFound = errors.New("not found")

	// ErrRouteCollision means two routes share a path and locale.
	ErrRouteCollision = errors.New("route collision")
)

// DocumentError attaches the offending page to a per-document failure.
type DocumentError struct {
	DocumentID string
	ModelName  string
	Err        error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %s (%s): %v", e.DocumentID, e.ModelName, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// Collision lists the documents that produced the same route.
type Collision struct {
	Path        string
	Locale      string
	DocumentIDs []string
}

// CollisionError reports every duplicated route of a manifest. It matches
// ErrRouteCollision with errors.Is.
type CollisionError struct {
	Collisions []Collision
}

func (e *CollisionError) Error() string {
	parts := make([]string, 0, len(e.Collisions))
	for _, c := range e.Collisions {
		parts = append(parts, fmt.Sprintf("%s (%s) from %s", c.Path, c.Locale, strings.Join(c.DocumentIDs, ", ")))
	}
	return fmt.Sprintf("%v: %s", ErrRouteCollision, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrRouteCollision) hold.
func (e *CollisionError) Is(target error) bool {
	return target == ErrRouteCollision
}
