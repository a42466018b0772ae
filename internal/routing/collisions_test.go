package routing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routegen/internal/models"
)

func TestDetectCollisions(t *testing.T) {
	routes := []models.Route{
		{Path: []string{"about"}, Locale: "en-US", DocumentID: "a"},
		{Path: []string{"about"}, Locale: "es", DocumentID: "a"},
		{Path: []string{"about"}, Locale: "en-US", DocumentID: "b"},
		{Path: []string{"blog"}, Locale: "en-US", DocumentID: "c"},
	}

	err := DetectCollisions(routes)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRouteCollision)

	var cerr *CollisionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, []Collision{{Path: "/about/", Locale: "en-US", DocumentIDs: []string{"a", "b"}}}, cerr.Collisions)
	assert.Contains(t, err.Error(), "/about/ (en-US) from a, b")
}

func TestDetectCollisionsDistinctLocales(t *testing.T) {
	routes := []models.Route{
		{Path: []string{"blog"}, Locale: "en-US", DocumentID: "blog"},
		{Path: []string{"blog"}, Locale: "es", DocumentID: "blog-es"},
	}
	assert.NoError(t, DetectCollisions(routes))
	assert.NoError(t, DetectCollisions(nil))
}
