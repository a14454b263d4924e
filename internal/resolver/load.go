package resolver

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/schema"
)

// Load parses a model manifest file and builds the catalog from it.
func Load(ctx context.Context, path string) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Catalog loading manifest...", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	var root schema.ManifestRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}

	catalog := NewCatalog()
	for _, entry := range root.Models {
		ref, err := ParseKey(entry.Key)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}
		if err := validateEntryBody(entry.Body); err != nil {
			return nil, fmt.Errorf("manifest %s: model %q: %w", path, entry.Key, err)
		}
		if err := catalog.Add(ref); err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}
	}

	logger.Info("Catalog loaded successfully.", "models", catalog.Len())
	return catalog, nil
}

// validateEntryBody rejects unknown attributes in a manifest entry. The
// attributes themselves (path, description) are engine-side concerns the
// client only checks for well-formedness.
func validateEntryBody(body hcl.Body) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	for name := range attrs {
		switch name {
		case "path", "description":
		default:
			return fmt.Errorf("unsupported attribute %q", name)
		}
	}
	return nil
}
