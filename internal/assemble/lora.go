package assemble

import (
	"context"
	"fmt"

	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/graph"
)

// applyLoraChain splices the selected adapters between the model loader and
// its downstream consumers as a linear chain, in the order the user declared
// them. With no adapters selected the base wiring is left untouched. The
// first adapter reads unet and clip directly from the model loader, each
// following adapter reads from its predecessor, and the last one feeds the
// consumer node's unet field plus both conditioning nodes' clip fields.
func (a *Assembler) applyLoraChain(ctx context.Context, g *graph.Graph, req *config.Request, consumerID string) error {
	logger := ctxlog.FromContext(ctx)
	if len(req.Loras) == 0 {
		logger.Debug("Adapter chain: no adapters selected, skipping.")
		return nil
	}

	removed := g.RemoveEdgesFrom(graph.NodeModelLoader, graph.FieldUNet, graph.FieldCLIP)
	logger.Debug("Adapter chain: superseded base edges removed.", "removed", removed)

	meta := metadataNode(g)

	prevID := graph.NodeModelLoader
	for _, sel := range req.Loras {
		ref, err := a.resolver.Resolve(graph.ModelTypeLora, sel.Key)
		if err != nil {
			return fmt.Errorf("adapter %q: %w", sel.Key, err)
		}

		id := graph.LoraNodeID(ref)
		if g.HasNode(id) {
			return fmt.Errorf("adapter %q selected twice (node id %s)", sel.Key, id)
		}
		if err := g.AddNode(id, &graph.LoraLoaderNode{Lora: ref, Weight: sel.Weight}); err != nil {
			return err
		}

		if err := g.Connect(prevID, graph.FieldUNet, id, graph.FieldUNet); err != nil {
			return err
		}
		if err := g.Connect(prevID, graph.FieldCLIP, id, graph.FieldCLIP); err != nil {
			return err
		}

		if meta != nil {
			meta.Loras = append(meta.Loras, graph.LoraMetadata{Lora: ref, Weight: sel.Weight})
		}
		prevID = id
	}

	// The chain tail supersedes the model loader as producer for the
	// denoiser and both conditioning stages.
	if err := g.Connect(prevID, graph.FieldUNet, consumerID, graph.FieldUNet); err != nil {
		return err
	}
	if err := g.Connect(prevID, graph.FieldCLIP, graph.NodePositiveConditioning, graph.FieldCLIP); err != nil {
		return err
	}
	if err := g.Connect(prevID, graph.FieldCLIP, graph.NodeNegativeConditioning, graph.FieldCLIP); err != nil {
		return err
	}

	logger.Debug("Adapter chain: applied.", "adapters", len(req.Loras), "tail", prevID)
	return nil
}

// metadataNode returns the graph's metadata node, or nil if absent.
func metadataNode(g *graph.Graph) *graph.MetadataNode {
	if n, ok := g.Nodes[graph.NodeMetadata].(*graph.MetadataNode); ok {
		return n
	}
	return nil
}
