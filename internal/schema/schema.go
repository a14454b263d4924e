// Package schema declares the HCL shapes of the two file types the client
// reads: render request files and the installed-model manifest. The structs
// here are decode targets only; translation into the config model happens in
// the internal/hcl package.
package schema

import "github.com/hashicorp/hcl/v2"

// --- Render request file ---

// PromptBlock holds the prompt text pair.
type PromptBlock struct {
	Positive string `hcl:"positive"`
	Negative string `hcl:"negative,optional"`
}

// SamplerBlock holds the denoiser settings.
type SamplerBlock struct {
	Steps     int      `hcl:"steps"`
	CFGScale  *float64 `hcl:"cfg_scale,optional"`
	Scheduler string   `hcl:"scheduler"`
	Seed      *int64   `hcl:"seed,optional"`
}

// SizeBlock holds the output pixel dimensions.
type SizeBlock struct {
	Width  int `hcl:"width"`
	Height int `hcl:"height"`
}

// Lora is one `lora "<key>" { ... }` block. Its arguments are kept as raw
// body and evaluated during translation, so weights may be written as ints,
// floats, or simple expressions.
type Lora struct {
	Key  string   `hcl:"key,label"`
	Body hcl.Body `hcl:",remain"`
}

// ControlNet is one `controlnet "<key>" { ... }` block, arguments raw as in
// Lora.
type ControlNet struct {
	Key  string   `hcl:"key,label"`
	Body hcl.Body `hcl:",remain"`
}

// ExpansionBlock enables dynamic-prompt expansion.
type ExpansionBlock struct {
	Enabled     bool `hcl:"enabled,optional"`
	MaxVariants *int `hcl:"max_variants,optional"`
}

// Render is a `render "<name>" { ... }` block: one full generation request.
type Render struct {
	Name        string          `hcl:"name,label"`
	Model       string          `hcl:"model"`
	Prompt      *PromptBlock    `hcl:"prompt,block"`
	Sampler     *SamplerBlock   `hcl:"sampler,block"`
	Size        *SizeBlock      `hcl:"size,block"`
	Loras       []*Lora         `hcl:"lora,block"`
	ControlNets []*ControlNet   `hcl:"controlnet,block"`
	VAE         string          `hcl:"vae,optional"`
	Expansion   *ExpansionBlock `hcl:"expansion,block"`
}

// RequestRoot is the top level of a render request file.
type RequestRoot struct {
	Renders []*Render `hcl:"render,block"`
	Remain  hcl.Body  `hcl:",remain"`
}

// --- Model manifest file ---

// Model is one `model "<base>/<type>/<name>" { ... }` manifest entry. The
// label is the canonical catalog key; attributes are raw and evaluated during
// translation.
type Model struct {
	Key  string   `hcl:"key,label"`
	Body hcl.Body `hcl:",remain"`
}

// ManifestRoot is the top level of a model manifest file.
type ManifestRoot struct {
	Models []*Model `hcl:"model,block"`
	Remain hcl.Body `hcl:",remain"`
}
