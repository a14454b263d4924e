package graph

import (
	"encoding/json"
	"fmt"
)

// nodeFactories maps a wire discriminator to an empty payload of the right
// variant, for decoding.
var nodeFactories = map[Kind]func() Node{
	KindModelLoader:          func() Node { return new(ModelLoaderNode) },
	KindPositiveConditioning: func() Node { return new(PositiveConditioningNode) },
	KindNegativeConditioning: func() Node { return new(NegativeConditioningNode) },
	KindNoise:                func() Node { return new(NoiseNode) },
	KindDenoise:              func() Node { return new(DenoiseNode) },
	KindDecode:               func() Node { return new(DecodeNode) },
	KindLoraLoader:           func() Node { return new(LoraLoaderNode) },
	KindControlNet:           func() Node { return new(ControlNetNode) },
	KindControlProcessor:     func() Node { return new(ControlProcessorNode) },
	KindVAELoader:            func() Node { return new(VAELoaderNode) },
	KindMetadata:             func() Node { return new(MetadataNode) },
}

type wireGraph struct {
	ID    string                     `json:"id"`
	Nodes map[string]json.RawMessage `json:"nodes"`
	Edges []Edge                     `json:"edges"`
}

// MarshalJSON encodes the graph in the engine wire format. Each node object
// gains a "type" discriminator alongside its payload fields.
func (g *Graph) MarshalJSON() ([]byte, error) {
	w := wireGraph{
		ID:    g.ID,
		Nodes: make(map[string]json.RawMessage, len(g.Nodes)),
		Edges: g.Edges,
	}
	if w.Edges == nil {
		w.Edges = []Edge{}
	}
	for id, n := range g.Nodes {
		raw, err := marshalNode(n)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", id, err)
		}
		w.Nodes[id] = raw
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes the wire format back into typed node variants.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w wireGraph
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	g.ID = w.ID
	g.Edges = w.Edges
	g.Nodes = make(map[string]Node, len(w.Nodes))
	for id, raw := range w.Nodes {
		n, err := unmarshalNode(raw)
		if err != nil {
			return fmt.Errorf("node %s: %w", id, err)
		}
		g.Nodes[id] = n
	}
	return nil
}

func marshalNode(n Node) (json.RawMessage, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	fields["type"] = string(n.NodeKind())
	return json.Marshal(fields)
}

func unmarshalNode(raw json.RawMessage) (Node, error) {
	var tag struct {
		Type Kind `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}
	factory, ok := nodeFactories[tag.Type]
	if !ok {
		return nil, fmt.Errorf("unknown node type: %q", tag.Type)
	}
	n := factory()
	if err := json.Unmarshal(raw, n); err != nil {
		return nil, err
	}
	return n, nil
}
