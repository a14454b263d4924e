package assemble

import (
	"context"
	"fmt"

	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/ctxlog"
	"github.com/vk/latentgrid/internal/graph"
	"github.com/vk/latentgrid/internal/prompt"
)

// applyPromptExpansion reinterprets the conditioning nodes' prompt literals
// as dynamic-prompt templates and expands them into concrete variants. Only
// node literals are mutated; the topology is untouched. Runs after adapter
// chaining so chained conditioning wiring is already final, and before any
// transform that reads prompt-derived fields.
func applyPromptExpansion(ctx context.Context, g *graph.Graph, req *config.Request) error {
	logger := ctxlog.FromContext(ctx)
	if !req.Expansion.Enabled {
		logger.Debug("Prompt expansion: disabled, skipping.")
		return nil
	}

	pos, ok := g.Nodes[graph.NodePositiveConditioning].(*graph.PositiveConditioningNode)
	if !ok {
		return fmt.Errorf("positive conditioning node missing or mistyped")
	}
	neg, ok := g.Nodes[graph.NodeNegativeConditioning].(*graph.NegativeConditioningNode)
	if !ok {
		return fmt.Errorf("negative conditioning node missing or mistyped")
	}

	limit := req.Expansion.MaxVariants

	posVariants := prompt.Expand(pos.Prompt, limit)
	negVariants := prompt.Expand(neg.Prompt, limit)

	// The rewrite applies whenever expansion changed anything, so a variant
	// cap of one still replaces the template text with its first concrete
	// variant instead of leaving braces in the prompt literal.
	meta := metadataNode(g)
	if len(posVariants) > 1 || posVariants[0] != pos.Prompt {
		if meta != nil {
			meta.PositiveTemplate = pos.Prompt
		}
		pos.Variants = posVariants
		pos.Prompt = posVariants[0]
		if meta != nil {
			meta.Positive = pos.Prompt
		}
	}
	if len(negVariants) > 1 || negVariants[0] != neg.Prompt {
		if meta != nil {
			meta.NegativeTemplate = neg.Prompt
		}
		neg.Variants = negVariants
		neg.Prompt = negVariants[0]
		if meta != nil {
			meta.Negative = neg.Prompt
		}
	}

	logger.Debug("Prompt expansion: applied.",
		"positive_variants", len(posVariants), "negative_variants", len(negVariants))
	return nil
}

// VariantCount reports how many prompt variants the assembled graph carries,
// which multiplies the engine-side batch. A graph without expansion counts
// as one.
func VariantCount(g *graph.Graph) int {
	count := 1
	if pos, ok := g.Nodes[graph.NodePositiveConditioning].(*graph.PositiveConditioningNode); ok {
		if len(pos.Variants) > count {
			count = len(pos.Variants)
		}
	}
	if neg, ok := g.Nodes[graph.NodeNegativeConditioning].(*graph.NegativeConditioningNode); ok {
		if len(neg.Variants) > count {
			count = len(neg.Variants)
		}
	}
	return count
}
