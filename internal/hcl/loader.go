package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL render request loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses and translates a single render request file. The file must
// contain exactly one `render` block.
func (l *Loader) Load(ctx context.Context, path string) (*config.Request, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root schema.RequestRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	if len(root.Renders) != 1 {
		return nil, fmt.Errorf("request file %s must contain exactly one render block, found %d", path, len(root.Renders))
	}

	req, err := translateRender(root.Renders[0])
	if err != nil {
		return nil, fmt.Errorf("invalid render %q in %s: %w", root.Renders[0].Name, path, err)
	}

	logger.Debug("HCL loading complete.", "render", req.Name,
		"loras", len(req.Loras), "controlnets", len(req.ControlNets))
	return req, nil
}
