package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/latentgrid/internal/assemble"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/engine"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	req, err := a.loader.Load(ctx, appConfig.RequestPath)
	if err != nil {
		return fmt.Errorf("failed to load render request: %w", err)
	}
	a.logger.Info("Render request loaded.", "render", req.Name,
		"loras", len(req.Loras), "controlnets", len(req.ControlNets))

	g, err := a.assembler.Assemble(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to assemble graph: %w", err)
	}
	runs := assemble.VariantCount(g)
	a.logger.Info("Graph assembled.", "graph_id", g.ID,
		"node_count", len(g.Nodes), "edge_count", len(g.Edges), "runs", runs)

	if appConfig.DryRun {
		a.logger.Debug("Dry run: printing wire-format graph.")
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		if err := enc.Encode(g); err != nil {
			return fmt.Errorf("failed to encode graph: %w", err)
		}
		return nil
	}

	client := engine.NewClient(appConfig.EngineURL)
	defer client.Close()

	ack, err := client.Enqueue(ctx, g, runs)
	if err != nil {
		return fmt.Errorf("failed to submit graph: %w", err)
	}
	a.logger.Info("🚀 Generation queued.", "item_id", ack.ItemID)

	if err := client.Watch(ctx, ack.ItemID); err != nil {
		return fmt.Errorf("generation did not complete: %w", err)
	}
	a.logger.Info("🏁 Generation finished.", "item_id", ack.ItemID)

	a.logger.Debug("App.Run method finished.")
	return nil
}
