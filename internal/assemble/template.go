package assemble

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/graph"
)

// buildTextToImage constructs the base text-to-image graph: the six wired
// pipeline stages plus the literal-only metadata node. The model loader's
// clip output feeds both conditioning nodes; its unet output, both
// conditioning outputs and the noise output feed the denoiser; the denoiser's
// latents feed the decode stage, which takes its vae weights from the model
// loader.
func buildTextToImage(req *config.Request, model graph.ModelRef) (*graph.Graph, error) {
	g := graph.New("t2i-" + uuid.NewString())

	nodes := map[string]graph.Node{
		graph.NodeModelLoader: &graph.ModelLoaderNode{Model: model},
		graph.NodePositiveConditioning: &graph.PositiveConditioningNode{Prompt: req.Positive},
		graph.NodeNegativeConditioning: &graph.NegativeConditioningNode{Prompt: req.Negative},
		graph.NodeNoise: &graph.NoiseNode{
			Seed:   req.Seed,
			Width:  req.Width,
			Height: req.Height,
		},
		graph.NodeDenoise: &graph.DenoiseNode{
			Steps:     req.Steps,
			CFGScale:  req.CFGScale,
			Scheduler: req.Scheduler,
		},
		graph.NodeDecode: &graph.DecodeNode{},
		graph.NodeMetadata: &graph.MetadataNode{
			Positive:  req.Positive,
			Negative:  req.Negative,
			Width:     req.Width,
			Height:    req.Height,
			Steps:     req.Steps,
			CFGScale:  req.CFGScale,
			Scheduler: req.Scheduler,
			Seed:      req.Seed,
			Model:     model,
		},
	}
	for id, n := range nodes {
		if err := g.AddNode(id, n); err != nil {
			return nil, err
		}
	}

	wiring := []struct {
		fromID, fromField, toID, toField string
	}{
		{graph.NodeModelLoader, graph.FieldCLIP, graph.NodePositiveConditioning, graph.FieldCLIP},
		{graph.NodeModelLoader, graph.FieldCLIP, graph.NodeNegativeConditioning, graph.FieldCLIP},
		{graph.NodeModelLoader, graph.FieldUNet, graph.NodeDenoise, graph.FieldUNet},
		{graph.NodePositiveConditioning, graph.FieldConditioning, graph.NodeDenoise, graph.FieldPositive},
		{graph.NodeNegativeConditioning, graph.FieldConditioning, graph.NodeDenoise, graph.FieldNegative},
		{graph.NodeNoise, graph.FieldNoise, graph.NodeDenoise, graph.FieldNoise},
		{graph.NodeDenoise, graph.FieldLatents, graph.NodeDecode, graph.FieldLatents},
		{graph.NodeModelLoader, graph.FieldVAE, graph.NodeDecode, graph.FieldVAE},
	}
	for _, w := range wiring {
		if err := g.Connect(w.fromID, w.fromField, w.toID, w.toField); err != nil {
			return nil, fmt.Errorf("base wiring %s.%s -> %s.%s: %w", w.fromID, w.fromField, w.toID, w.toField, err)
		}
	}

	return g, nil
}
