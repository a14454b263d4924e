package assemble

import (
	"context"
	"fmt"

	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/graph"
)

// Resolver maps a user-facing model key to its canonical backend reference.
// Implementations must be safe for concurrent reads.
type Resolver interface {
	Resolve(want graph.ModelType, key string) (graph.ModelRef, error)
}

// Assembler builds generation graphs from render requests.
type Assembler struct {
	resolver Resolver
}

// New creates an assembler using the given resolver.
func New(r Resolver) *Assembler {
	return &Assembler{resolver: r}
}

// Assemble constructs the complete, validated graph for a request. On any
// error no graph is returned; the caller owns retry policy.
func (a *Assembler) Assemble(ctx context.Context, req *config.Request) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Assemble: starting graph construction.", "render", req.Name)

	model, err := a.resolver.Resolve(graph.ModelTypeMain, req.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base model: %w", err)
	}

	g, err := buildTextToImage(req, model)
	if err != nil {
		return nil, fmt.Errorf("failed to build base graph: %w", err)
	}
	logger.Debug("Assemble: base template built.", "node_count", len(g.Nodes), "edge_count", len(g.Edges))

	if err := a.applyLoraChain(ctx, g, req, graph.NodeDenoise); err != nil {
		return nil, fmt.Errorf("failed to apply adapter chain: %w", err)
	}
	if err := applyPromptExpansion(ctx, g, req); err != nil {
		return nil, fmt.Errorf("failed to apply prompt expansion: %w", err)
	}
	if err := a.applyControlNets(ctx, g, req, graph.NodeDenoise); err != nil {
		return nil, fmt.Errorf("failed to apply external conditioning: %w", err)
	}
	if err := a.applyVAEOverride(ctx, g, req, graph.NodeDecode); err != nil {
		return nil, fmt.Errorf("failed to apply decoder override: %w", err)
	}

	if err := g.Validate(); err != nil {
		return nil, &InvariantError{GraphID: g.ID, Err: err}
	}

	logger.Debug("Assemble: graph construction successful.",
		"graph_id", g.ID, "node_count", len(g.Nodes), "edge_count", len(g.Edges))
	return g, nil
}
