// Package testutil provides shared fixtures and assertion helpers for tests
// across the module: canned render requests, a pre-populated model catalog,
// and edge-level graph assertions.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/graph"
)

// RequireEdge asserts that exactly the given edge exists.
func RequireEdge(t *testing.T, g *graph.Graph, fromID, fromField, toID, toField string) {
	t.Helper()
	e, ok := g.ProducerOf(toID, toField)
	require.True(t, ok, "no edge into %s.%s", toID, toField)
	assert.Equal(t, graph.Endpoint{NodeID: fromID, Field: fromField}, e.Source,
		"unexpected producer for %s.%s", toID, toField)
}

// RequireNoEdgeFrom asserts that the node produces nothing on the given field.
func RequireNoEdgeFrom(t *testing.T, g *graph.Graph, nodeID, field string) {
	t.Helper()
	for _, e := range g.EdgesFrom(nodeID) {
		require.NotEqual(t, field, e.Source.Field,
			"unexpected edge %s.%s -> %s.%s", nodeID, field, e.Destination.NodeID, e.Destination.Field)
	}
}

// RequireNoEdgeInto asserts that nothing produces the given field.
func RequireNoEdgeInto(t *testing.T, g *graph.Graph, nodeID, field string) {
	t.Helper()
	_, ok := g.ProducerOf(nodeID, field)
	require.False(t, ok, "unexpected edge into %s.%s", nodeID, field)
}
