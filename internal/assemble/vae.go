package assemble

import (
	"context"
	"fmt"

	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/graph"
)

// applyVAEOverride swaps the producer of the decode stage's vae field from
// the base model loader to a standalone decoder-weights loader, when the
// request configures one. It touches no other field, so it is independent of
// the adapter and conditioning transforms. The loader node id derives from
// the override reference, making a repeat application a no-op.
func (a *Assembler) applyVAEOverride(ctx context.Context, g *graph.Graph, req *config.Request, decodeID string) error {
	logger := ctxlog.FromContext(ctx)
	if req.VAE == "" {
		logger.Debug("Decoder override: not configured, skipping.")
		return nil
	}

	ref, err := a.resolver.Resolve(graph.ModelTypeVAE, req.VAE)
	if err != nil {
		return fmt.Errorf("decoder override %q: %w", req.VAE, err)
	}

	id := graph.VAELoaderNodeID(ref)
	if g.HasNode(id) {
		logger.Debug("Decoder override: already applied.", "node", id)
		return nil
	}

	if err := g.AddNode(id, &graph.VAELoaderNode{VAE: ref}); err != nil {
		return err
	}
	g.RemoveEdgesInto(decodeID, graph.FieldVAE)
	if err := g.Connect(id, graph.FieldVAE, decodeID, graph.FieldVAE); err != nil {
		return err
	}

	if meta := metadataNode(g); meta != nil {
		meta.VAE = &ref
	}

	logger.Debug("Decoder override: applied.", "node", id)
	return nil
}
