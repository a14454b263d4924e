package assemble

import (
	"context"
	"fmt"

	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/graph"
)

// applyControlNets attaches the configured external-conditioning sources to
// the anchor node. Each source becomes a processor node feeding a controlnet
// node, wired into its own indexed control slot on the anchor. This is
// additive fan-in: no existing edge into the anchor is removed or replaced.
func (a *Assembler) applyControlNets(ctx context.Context, g *graph.Graph, req *config.Request, anchorID string) error {
	logger := ctxlog.FromContext(ctx)
	if len(req.ControlNets) == 0 {
		logger.Debug("External conditioning: no sources configured, skipping.")
		return nil
	}

	for i, sel := range req.ControlNets {
		ref, err := a.resolver.Resolve(graph.ModelTypeControlNet, sel.Key)
		if err != nil {
			return fmt.Errorf("conditioning source %q: %w", sel.Key, err)
		}

		procID := graph.ControlProcessorNodeID(i)
		cnID := graph.ControlNodeID(i)

		if err := g.AddNode(procID, &graph.ControlProcessorNode{
			Processor: sel.Processor,
			ImagePath: sel.Image,
		}); err != nil {
			return err
		}
		if err := g.AddNode(cnID, &graph.ControlNetNode{
			Control:          ref,
			Weight:           sel.Weight,
			BeginStepPercent: sel.BeginStepPercent,
			EndStepPercent:   sel.EndStepPercent,
		}); err != nil {
			return err
		}

		if err := g.Connect(procID, graph.FieldImage, cnID, graph.FieldImage); err != nil {
			return err
		}
		if err := g.Connect(cnID, graph.FieldControl, anchorID, graph.ControlField(i)); err != nil {
			return err
		}
	}

	logger.Debug("External conditioning: applied.", "sources", len(req.ControlNets))
	return nil
}
