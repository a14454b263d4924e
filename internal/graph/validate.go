package graph

import (
	"fmt"
)

// Validate checks the four structural invariants: edge endpoints exist,
// destination fields have at most one producer, the edge relation is acyclic,
// and every node reachable from the decode output has its required inputs
// bound. A violation is a logic fault in an upstream transform, so the first
// one found is returned as an error rather than repaired.
func (g *Graph) Validate() error {
	if err := g.checkEndpoints(); err != nil {
		return err
	}
	if err := g.checkSingleProducer(); err != nil {
		return err
	}
	if err := g.detectCycles(); err != nil {
		return err
	}
	return g.checkRequiredInputs()
}

func (g *Graph) checkEndpoints() error {
	for _, e := range g.Edges {
		if !g.HasNode(e.Source.NodeID) {
			return fmt.Errorf("dangling edge: source node not found: %s", e.Source.NodeID)
		}
		if !g.HasNode(e.Destination.NodeID) {
			return fmt.Errorf("dangling edge: destination node not found: %s", e.Destination.NodeID)
		}
	}
	return nil
}

func (g *Graph) checkSingleProducer() error {
	seen := make(map[Endpoint]Endpoint, len(g.Edges))
	for _, e := range g.Edges {
		if prev, ok := seen[e.Destination]; ok {
			return fmt.Errorf("field %s.%s has two producers: %s.%s and %s.%s",
				e.Destination.NodeID, e.Destination.Field,
				prev.NodeID, prev.Field, e.Source.NodeID, e.Source.Field)
		}
		seen[e.Destination] = e.Source
	}
	return nil
}

// detectCycles runs a depth-first search over the node adjacency implied by
// the edges, using the classic permanent/temporary marking scheme.
func (g *Graph) detectCycles() error {
	next := make(map[string][]string)
	for _, e := range g.Edges {
		next[e.Source.NodeID] = append(next[e.Source.NodeID], e.Destination.NodeID)
	}

	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(id string) error
	visit = func(id string) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return fmt.Errorf("cycle detected involving node '%s'", id)
		}
		temporary[id] = true
		for _, dep := range next[id] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		delete(temporary, id)
		permanent[id] = true
		return nil
	}

	for id := range g.Nodes {
		if !permanent[id] {
			if err := visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkRequiredInputs walks backwards from the decode node and verifies that
// every node on a path to the output has each required input fed by exactly
// one edge. Nodes the output does not depend on are left alone.
func (g *Graph) checkRequiredInputs() error {
	if !g.HasNode(NodeDecode) {
		return fmt.Errorf("output node not found: %s", NodeDecode)
	}

	producers := make(map[string][]Edge)
	for _, e := range g.Edges {
		producers[e.Destination.NodeID] = append(producers[e.Destination.NodeID], e)
	}

	reachable := make(map[string]bool)
	stack := []string{NodeDecode}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable[id] {
			continue
		}
		reachable[id] = true
		for _, e := range producers[id] {
			stack = append(stack, e.Source.NodeID)
		}
	}

	for id := range reachable {
		node := g.Nodes[id]
		for _, field := range node.requiredInputs() {
			if _, ok := g.ProducerOf(id, field); !ok {
				return fmt.Errorf("required input %s.%s is unbound", id, field)
			}
		}
	}
	return nil
}
