package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/resolver"
)

// Catalog builds a model catalog from canonical keys.
func Catalog(t *testing.T, keys ...string) *resolver.Catalog {
	t.Helper()
	c := resolver.NewCatalog()
	for _, key := range keys {
		ref, err := resolver.ParseKey(key)
		require.NoError(t, err)
		require.NoError(t, c.Add(ref))
	}
	return c
}

// DefaultCatalog returns a catalog carrying the models the canned requests
// refer to.
func DefaultCatalog(t *testing.T) *resolver.Catalog {
	t.Helper()
	return Catalog(t,
		"sd-1/main/dreamshaper",
		"sd-1/lora/style_x",
		"sd-1/lora/detail",
		"sd-1/lora/lineart",
		"sd-1/vae/best-vae",
		"sd-1/controlnet/canny",
		"sd-1/controlnet/depth",
	)
}

// Request returns a minimal valid render request, feature-free.
func Request() *config.Request {
	return &config.Request{
		Name:      "test",
		Model:     "sd-1/main/dreamshaper",
		Positive:  "a cat",
		Negative:  "",
		Width:     512,
		Height:    512,
		Steps:     30,
		CFGScale:  7.5,
		Scheduler: "euler",
		Seed:      42,
	}
}
