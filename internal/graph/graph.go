package graph

import (
	"fmt"
)

// Endpoint names one side of an edge: a field on a node.
type Endpoint struct {
	NodeID string `json:"node_id"`
	Field  string `json:"field"`
}

// Edge declares that Destination's field is produced by Source's field.
type Edge struct {
	Source      Endpoint `json:"source"`
	Destination Endpoint `json:"destination"`
}

// Graph is a generation graph under assembly. Nodes are keyed by id; Edges
// preserve insertion order for deterministic serialization. A Graph is owned
// by a single assembly call and is not safe for concurrent mutation.
type Graph struct {
	ID    string
	Nodes map[string]Node
	Edges []Edge
}

// New creates an empty graph with the given id.
func New(id string) *Graph {
	return &Graph{
		ID:    id,
		Nodes: make(map[string]Node),
	}
}

// AddNode inserts a node under the given id. Ids are unique; inserting over
// an existing id is an error.
func (g *Graph) AddNode(id string, n Node) error {
	if _, ok := g.Nodes[id]; ok {
		return fmt.Errorf("duplicate node id: %s", id)
	}
	g.Nodes[id] = n
	return nil
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// Connect appends an edge from (fromID, fromField) to (toID, toField). Both
// nodes must exist, the edge must not be self-referential, and the
// destination field must not already have a producer.
func (g *Graph) Connect(fromID, fromField, toID, toField string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, toID)
	}
	if !g.HasNode(fromID) {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	if !g.HasNode(toID) {
		return fmt.Errorf("destination node not found: %s", toID)
	}
	dst := Endpoint{NodeID: toID, Field: toField}
	for _, e := range g.Edges {
		if e.Destination == dst {
			return fmt.Errorf("field %s.%s already has a producer (%s.%s)",
				toID, toField, e.Source.NodeID, e.Source.Field)
		}
	}
	g.Edges = append(g.Edges, Edge{
		Source:      Endpoint{NodeID: fromID, Field: fromField},
		Destination: dst,
	})
	return nil
}

// RemoveEdgesFrom drops every edge whose source is the given node on any of
// the given fields, filtering the edge slice in place. It returns the number
// of edges removed.
func (g *Graph) RemoveEdgesFrom(nodeID string, fields ...string) int {
	return g.filterEdges(func(e Edge) bool {
		if e.Source.NodeID != nodeID {
			return true
		}
		for _, f := range fields {
			if e.Source.Field == f {
				return false
			}
		}
		return true
	})
}

// RemoveEdgesInto drops every edge targeting the given node field, filtering
// in place. It returns the number of edges removed.
func (g *Graph) RemoveEdgesInto(nodeID, field string) int {
	dst := Endpoint{NodeID: nodeID, Field: field}
	return g.filterEdges(func(e Edge) bool { return e.Destination != dst })
}

// filterEdges keeps edges for which keep returns true and reports how many
// were dropped. The backing array is reused; the graph exclusively owns it.
func (g *Graph) filterEdges(keep func(Edge) bool) int {
	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	removed := len(g.Edges) - len(kept)
	g.Edges = kept
	return removed
}

// ProducerOf returns the edge feeding the given destination field, if any.
func (g *Graph) ProducerOf(nodeID, field string) (Edge, bool) {
	dst := Endpoint{NodeID: nodeID, Field: field}
	for _, e := range g.Edges {
		if e.Destination == dst {
			return e, true
		}
	}
	return Edge{}, false
}

// EdgesFrom returns all edges whose source is the given node.
func (g *Graph) EdgesFrom(nodeID string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Source.NodeID == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// EdgesInto returns all edges whose destination is the given node.
func (g *Graph) EdgesInto(nodeID string) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Destination.NodeID == nodeID {
			out = append(out, e)
		}
	}
	return out
}

// NodesOfKind returns the ids of all nodes of the given kind.
func (g *Graph) NodesOfKind(k Kind) []string {
	var out []string
	for id, n := range g.Nodes {
		if n.NodeKind() == k {
			out = append(out, id)
		}
	}
	return out
}
