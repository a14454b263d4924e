package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/latentgrid/internal/config"
	"github.com/vk/latentgrid/internal/schema"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

const (
	defaultCFGScale   = 7.5
	defaultSeed       = -1
	defaultLoraWeight = 0.75

	defaultControlWeight = 1.0
	defaultControlBegin  = 0.0
	defaultControlEnd    = 1.0
)

// translateRender turns a decoded render block into a validated request.
func translateRender(r *schema.Render) (*config.Request, error) {
	if r.Prompt == nil {
		return nil, fmt.Errorf("missing required prompt block")
	}
	if r.Sampler == nil {
		return nil, fmt.Errorf("missing required sampler block")
	}
	if r.Size == nil {
		return nil, fmt.Errorf("missing required size block")
	}

	req := &config.Request{
		Name:      r.Name,
		Model:     r.Model,
		Positive:  r.Prompt.Positive,
		Negative:  r.Prompt.Negative,
		Width:     r.Size.Width,
		Height:    r.Size.Height,
		Steps:     r.Sampler.Steps,
		CFGScale:  defaultCFGScale,
		Scheduler: r.Sampler.Scheduler,
		Seed:      defaultSeed,
		VAE:       r.VAE,
	}
	if r.Sampler.CFGScale != nil {
		req.CFGScale = *r.Sampler.CFGScale
	}
	if r.Sampler.Seed != nil {
		req.Seed = *r.Sampler.Seed
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	for _, l := range r.Loras {
		sel, err := translateLora(l)
		if err != nil {
			return nil, fmt.Errorf("lora %q: %w", l.Key, err)
		}
		req.Loras = append(req.Loras, sel)
	}

	for _, c := range r.ControlNets {
		sel, err := translateControlNet(c)
		if err != nil {
			return nil, fmt.Errorf("controlnet %q: %w", c.Key, err)
		}
		req.ControlNets = append(req.ControlNets, sel)
	}

	if r.Expansion != nil {
		req.Expansion = config.ExpansionConfig{Enabled: r.Expansion.Enabled}
		if r.Expansion.MaxVariants != nil {
			if *r.Expansion.MaxVariants < 1 {
				return nil, fmt.Errorf("expansion max_variants must be positive, got %d", *r.Expansion.MaxVariants)
			}
			req.Expansion.MaxVariants = *r.Expansion.MaxVariants
		}
	}

	return req, nil
}

func validateRequest(req *config.Request) error {
	if req.Model == "" {
		return fmt.Errorf("model is required")
	}
	if req.Width < 64 || req.Height < 64 {
		return fmt.Errorf("size must be at least 64x64, got %dx%d", req.Width, req.Height)
	}
	if req.Width%8 != 0 || req.Height%8 != 0 {
		return fmt.Errorf("width and height must be multiples of 8, got %dx%d", req.Width, req.Height)
	}
	if req.Steps < 1 || req.Steps > 500 {
		return fmt.Errorf("steps must be between 1 and 500, got %d", req.Steps)
	}
	if req.CFGScale < 1 || req.CFGScale > 30 {
		return fmt.Errorf("cfg_scale must be between 1 and 30, got %g", req.CFGScale)
	}
	if _, ok := config.Schedulers[req.Scheduler]; !ok {
		return fmt.Errorf("unknown scheduler %q", req.Scheduler)
	}
	return nil
}

func translateLora(l *schema.Lora) (config.LoraSelection, error) {
	sel := config.LoraSelection{Key: l.Key, Weight: defaultLoraWeight}

	attrs, err := bodyAttributes(l.Body, "weight")
	if err != nil {
		return sel, err
	}
	if err := attrFloat(attrs, "weight", &sel.Weight); err != nil {
		return sel, err
	}
	return sel, nil
}

func translateControlNet(c *schema.ControlNet) (config.ControlNetSelection, error) {
	sel := config.ControlNetSelection{
		Key:              c.Key,
		Weight:           defaultControlWeight,
		BeginStepPercent: defaultControlBegin,
		EndStepPercent:   defaultControlEnd,
	}

	attrs, err := bodyAttributes(c.Body, "processor", "image", "weight", "begin_step_percent", "end_step_percent")
	if err != nil {
		return sel, err
	}
	if err := attrString(attrs, "processor", &sel.Processor); err != nil {
		return sel, err
	}
	if err := attrString(attrs, "image", &sel.Image); err != nil {
		return sel, err
	}
	if sel.Processor == "" {
		return sel, fmt.Errorf("processor is required")
	}
	if sel.Image == "" {
		return sel, fmt.Errorf("image is required")
	}
	if err := attrFloat(attrs, "weight", &sel.Weight); err != nil {
		return sel, err
	}
	if err := attrFloat(attrs, "begin_step_percent", &sel.BeginStepPercent); err != nil {
		return sel, err
	}
	if err := attrFloat(attrs, "end_step_percent", &sel.EndStepPercent); err != nil {
		return sel, err
	}
	if sel.BeginStepPercent < 0 || sel.EndStepPercent > 1 || sel.BeginStepPercent >= sel.EndStepPercent {
		return sel, fmt.Errorf("step percent window [%g, %g] is out of range", sel.BeginStepPercent, sel.EndStepPercent)
	}
	return sel, nil
}

// bodyAttributes evaluates a raw block body to attributes and rejects any
// attribute outside the allowed set.
func bodyAttributes(body hcl.Body, allowed ...string) (hcl.Attributes, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	allowedSet := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = struct{}{}
	}
	for name := range attrs {
		if _, ok := allowedSet[name]; !ok {
			return nil, fmt.Errorf("unsupported attribute %q", name)
		}
	}
	return attrs, nil
}

// attrFloat evaluates a numeric attribute into out, leaving the default in
// place when the attribute is absent.
func attrFloat(attrs hcl.Attributes, name string, out *float64) error {
	attr, ok := attrs[name]
	if !ok {
		return nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("attribute %q: %w", name, diags)
	}
	val, err := convert.Convert(val, cty.Number)
	if err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}
	if err := gocty.FromCtyValue(val, out); err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}
	return nil
}

// attrString evaluates a string attribute into out.
func attrString(attrs hcl.Attributes, name string, out *string) error {
	attr, ok := attrs[name]
	if !ok {
		return nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return fmt.Errorf("attribute %q: %w", name, diags)
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}
	if err := gocty.FromCtyValue(val, out); err != nil {
		return fmt.Errorf("attribute %q: %w", name, err)
	}
	return nil
}
