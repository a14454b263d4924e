package assemble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/graph"
	"github.com/vk/latentgrid/internal/testutil"
)

func TestBuildTextToImage(t *testing.T) {
	req := testutil.Request()
	model := graph.ModelRef{Base: "sd-1", Type: graph.ModelTypeMain, Name: "dreamshaper"}

	g, err := buildTextToImage(req, model)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(g.ID, "t2i-"))
	assert.Len(t, g.Nodes, 7)
	assert.Len(t, g.Edges, 8)

	for _, id := range []string{
		graph.NodeModelLoader,
		graph.NodePositiveConditioning,
		graph.NodeNegativeConditioning,
		graph.NodeNoise,
		graph.NodeDenoise,
		graph.NodeDecode,
		graph.NodeMetadata,
	} {
		assert.True(t, g.HasNode(id), "missing node %s", id)
	}

	testutil.RequireEdge(t, g, graph.NodeModelLoader, graph.FieldCLIP, graph.NodePositiveConditioning, graph.FieldCLIP)
	testutil.RequireEdge(t, g, graph.NodeModelLoader, graph.FieldCLIP, graph.NodeNegativeConditioning, graph.FieldCLIP)
	testutil.RequireEdge(t, g, graph.NodeModelLoader, graph.FieldUNet, graph.NodeDenoise, graph.FieldUNet)
	testutil.RequireEdge(t, g, graph.NodePositiveConditioning, graph.FieldConditioning, graph.NodeDenoise, graph.FieldPositive)
	testutil.RequireEdge(t, g, graph.NodeNegativeConditioning, graph.FieldConditioning, graph.NodeDenoise, graph.FieldNegative)
	testutil.RequireEdge(t, g, graph.NodeNoise, graph.FieldNoise, graph.NodeDenoise, graph.FieldNoise)
	testutil.RequireEdge(t, g, graph.NodeDenoise, graph.FieldLatents, graph.NodeDecode, graph.FieldLatents)
	testutil.RequireEdge(t, g, graph.NodeModelLoader, graph.FieldVAE, graph.NodeDecode, graph.FieldVAE)

	// The base template alone is a valid graph.
	require.NoError(t, g.Validate())
}

func TestBuildTextToImageCarriesParameters(t *testing.T) {
	req := testutil.Request()
	req.Positive = "an oil painting"
	req.Negative = "blurry"
	req.Seed = -1
	model := graph.ModelRef{Base: "sd-1", Type: graph.ModelTypeMain, Name: "dreamshaper"}

	g, err := buildTextToImage(req, model)
	require.NoError(t, err)

	pos := g.Nodes[graph.NodePositiveConditioning].(*graph.PositiveConditioningNode)
	assert.Equal(t, "an oil painting", pos.Prompt)
	neg := g.Nodes[graph.NodeNegativeConditioning].(*graph.NegativeConditioningNode)
	assert.Equal(t, "blurry", neg.Prompt)

	noise := g.Nodes[graph.NodeNoise].(*graph.NoiseNode)
	assert.Equal(t, int64(-1), noise.Seed)
	assert.Equal(t, 512, noise.Width)

	denoise := g.Nodes[graph.NodeDenoise].(*graph.DenoiseNode)
	assert.Equal(t, 30, denoise.Steps)
	assert.Equal(t, "euler", denoise.Scheduler)

	meta := g.Nodes[graph.NodeMetadata].(*graph.MetadataNode)
	assert.Equal(t, "an oil painting", meta.Positive)
	assert.Equal(t, model, meta.Model)
	assert.Empty(t, g.EdgesInto(graph.NodeMetadata))
	assert.Empty(t, g.EdgesFrom(graph.NodeMetadata))
}

func TestGraphIDsAreUnique(t *testing.T) {
	req := testutil.Request()
	model := graph.ModelRef{Base: "sd-1", Type: graph.ModelTypeMain, Name: "dreamshaper"}

	g1, err := buildTextToImage(req, model)
	require.NoError(t, err)
	g2, err := buildTextToImage(req, model)
	require.NoError(t, err)
	assert.NotEqual(t, g1.ID, g2.ID)
}
