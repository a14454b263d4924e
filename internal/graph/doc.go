// Package graph defines the generation graph data model: a directed acyclic
// graph of typed pipeline nodes connected by field-level data edges. A node
// represents one computation stage (loading a model, encoding a prompt,
// denoising latents, decoding an image) and an edge declares that one node's
// output field produces the value of another node's input field.
//
// The package owns the structural validity rules. After assembly a graph must
// satisfy four invariants: every edge endpoint names an existing node, every
// destination field has at most one producer, the edge relation is acyclic,
// and every node reachable from the decode output has all of its required
// inputs bound by exactly one edge or carried as a literal on the node.
// Validate checks all four.
//
// Graphs serialize to the engine's wire format: a JSON object with an id, a
// node map keyed by node id (each node tagged with a "type" discriminator),
// and an ordered edge list.
package graph
