package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/graph"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "models.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleManifest = `
model "sd-1/main/dreamshaper" {
  path = "models/dreamshaper.safetensors"
}

model "sd-1/lora/style_x" {
  path        = "loras/style_x.safetensors"
  description = "ink style"
}

model "sd-1/vae/best-vae" {}

model "sd-1/controlnet/canny" {}
`

func TestLoadAndResolve(t *testing.T) {
	catalog, err := Load(context.Background(), writeManifest(t, sampleManifest))
	require.NoError(t, err)
	assert.Equal(t, 4, catalog.Len())

	ref, err := catalog.Resolve(graph.ModelTypeMain, "sd-1/main/dreamshaper")
	require.NoError(t, err)
	assert.Equal(t, graph.ModelRef{Base: "sd-1", Type: graph.ModelTypeMain, Name: "dreamshaper"}, ref)

	ref, err = catalog.Resolve(graph.ModelTypeLora, "sd-1/lora/style_x")
	require.NoError(t, err)
	assert.Equal(t, "style_x", ref.Name)
	assert.Equal(t, "sd-1/lora/style_x", ref.Key())
}

func TestResolveUnknownKey(t *testing.T) {
	catalog, err := Load(context.Background(), writeManifest(t, sampleManifest))
	require.NoError(t, err)

	_, err = catalog.Resolve(graph.ModelTypeMain, "sd-1/main/nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestResolveTypeMismatch(t *testing.T) {
	catalog, err := Load(context.Background(), writeManifest(t, sampleManifest))
	require.NoError(t, err)

	_, err = catalog.Resolve(graph.ModelTypeLora, "sd-1/main/dreamshaper")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a main, not a lora")
}

func TestLoadRejectsDuplicateKeys(t *testing.T) {
	content := `
model "sd-1/lora/style_x" {}
model "sd-1/lora/style_x" {}
`
	_, err := Load(context.Background(), writeManifest(t, content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate model key")
}

func TestLoadRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed key", `model "dreamshaper" {}`, "malformed model key"},
		{"unknown base", `model "sd-9/main/x" {}`, `unknown base "sd-9"`},
		{"unknown type", `model "sd-1/embedding/x" {}`, `unknown type "embedding"`},
		{"unsupported attribute", `model "sd-1/main/x" { checksum = "abc" }`, `unsupported attribute "checksum"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), writeManifest(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseKey(t *testing.T) {
	ref, err := ParseKey("sdxl/controlnet/depth")
	require.NoError(t, err)
	assert.Equal(t, graph.ModelRef{Base: "sdxl", Type: graph.ModelTypeControlNet, Name: "depth"}, ref)

	// Name may itself contain slashes.
	ref, err = ParseKey("sd-1/lora/styles/ink")
	require.NoError(t, err)
	assert.Equal(t, "styles/ink", ref.Name)

	_, err = ParseKey("sd-1/lora")
	require.Error(t, err)
	_, err = ParseKey("sd-1//x")
	require.Error(t, err)
}
