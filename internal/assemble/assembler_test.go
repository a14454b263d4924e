package assemble

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/graph"
	"github.com/vk/latentgrid/internal/resolver"
	"github.com/vk/latentgrid/internal/testutil"
)

func TestAssembleAllFeaturesCombined(t *testing.T) {
	req := testutil.Request()
	req.Positive = "a {red|blue} cat"
	req.Loras = []config.LoraSelection{
		{Key: "sd-1/lora/style_x", Weight: 0.8},
		{Key: "sd-1/lora/detail", Weight: 0.5},
	}
	req.ControlNets = []config.ControlNetSelection{
		{Key: "sd-1/controlnet/canny", Processor: "canny", Image: "pose.png", Weight: 1.0, EndStepPercent: 1.0},
		{Key: "sd-1/controlnet/depth", Processor: "midas", Image: "room.png", Weight: 0.5, EndStepPercent: 1.0},
	}
	req.VAE = "sd-1/vae/best-vae"
	req.Expansion = config.ExpansionConfig{Enabled: true}

	g := assembleRequest(t, req)

	// 7 base + 2 loras + 2x(processor+controlnet) + vae loader.
	assert.Len(t, g.Nodes, 14)
	require.NoError(t, g.Validate())

	// Chain tail feeds the denoiser; control slots attached; decoder rewired.
	testutil.RequireEdge(t, g, "lora_detail", graph.FieldUNet, graph.NodeDenoise, graph.FieldUNet)
	testutil.RequireEdge(t, g, graph.ControlNodeID(1), graph.FieldControl, graph.NodeDenoise, graph.ControlField(1))
	testutil.RequireEdge(t, g, "vae_loader_best-vae", graph.FieldVAE, graph.NodeDecode, graph.FieldVAE)

	// Expansion settled after chaining.
	pos := g.Nodes[graph.NodePositiveConditioning].(*graph.PositiveConditioningNode)
	assert.Len(t, pos.Variants, 2)
	assert.Equal(t, 2, VariantCount(g))
}

func TestAssembleEveryCombinationIsValid(t *testing.T) {
	loras := [][]config.LoraSelection{
		nil,
		{{Key: "sd-1/lora/style_x", Weight: 0.8}},
	}
	controls := [][]config.ControlNetSelection{
		nil,
		{{Key: "sd-1/controlnet/canny", Processor: "canny", Image: "p.png", Weight: 1, EndStepPercent: 1}},
	}
	vaes := []string{"", "sd-1/vae/best-vae"}
	expansions := []config.ExpansionConfig{{}, {Enabled: true}}

	for _, l := range loras {
		for _, c := range controls {
			for _, v := range vaes {
				for _, e := range expansions {
					req := testutil.Request()
					req.Positive = "a {red|blue} cat"
					req.Loras = l
					req.ControlNets = c
					req.VAE = v
					req.Expansion = e

					g := assembleRequest(t, req)
					require.NoError(t, g.Validate(),
						"loras=%d controls=%d vae=%q expansion=%v", len(l), len(c), v, e.Enabled)
				}
			}
		}
	}
}

func TestAssembleUnknownBaseModelAborts(t *testing.T) {
	req := testutil.Request()
	req.Model = "sd-1/main/nope"

	g, err := New(testutil.DefaultCatalog(t)).Assemble(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, g, "no partial graph on failure")
	assert.ErrorIs(t, err, resolver.ErrUnknownModel)
}

// brokenResolver returns references whose derived ids collide with the
// well-known denoise node, forcing a transform bug downstream.
type brokenResolver struct{}

func (brokenResolver) Resolve(want graph.ModelType, key string) (graph.ModelRef, error) {
	return graph.ModelRef{Base: "sd-1", Type: want, Name: "x"}, nil
}

func TestAssembleInvariantViolationFailsLoudly(t *testing.T) {
	// Two adapters resolving to the same reference collide on derived id,
	// which the chain reports before validation even runs.
	req := testutil.Request()
	req.Loras = []config.LoraSelection{
		{Key: "sd-1/lora/a", Weight: 1},
		{Key: "sd-1/lora/b", Weight: 1},
	}

	_, err := New(brokenResolver{}).Assemble(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selected twice")
}

func TestInvariantErrorWrapsCause(t *testing.T) {
	cause := errors.New("cycle detected involving node 'denoise'")
	err := &InvariantError{GraphID: "t2i-x", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "t2i-x")
	assert.Contains(t, err.Error(), "structural invariant")
}
