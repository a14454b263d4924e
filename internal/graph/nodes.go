package graph

// Kind is the discriminator tag of a node variant. It doubles as the "type"
// field in the wire format.
type Kind string

const (
	KindModelLoader          Kind = "model_loader"
	KindPositiveConditioning Kind = "positive_conditioning"
	KindNegativeConditioning Kind = "negative_conditioning"
	KindNoise                Kind = "noise"
	KindDenoise              Kind = "denoise"
	KindDecode               Kind = "decode"
	KindLoraLoader           Kind = "lora_loader"
	KindControlNet           Kind = "controlnet"
	KindControlProcessor     Kind = "control_processor"
	KindVAELoader            Kind = "vae_loader"
	KindMetadata             Kind = "metadata"
)

// Node is one typed computation stage in the generation graph. The set of
// variants is closed: every implementation lives in this package, so a switch
// over NodeKind is exhaustive.
type Node interface {
	NodeKind() Kind

	// requiredInputs lists the input fields that must be bound by an edge.
	// Fields carried as literals on the node itself are not listed.
	requiredInputs() []string
}

// ModelLoaderNode loads the base model and exposes its unet, clip and vae
// weight outputs.
type ModelLoaderNode struct {
	Model ModelRef `json:"model"`
}

func (*ModelLoaderNode) NodeKind() Kind           { return KindModelLoader }
func (*ModelLoaderNode) requiredInputs() []string { return nil }

// PositiveConditioningNode encodes the positive prompt. When dynamic-prompt
// expansion is enabled, Variants carries the concrete prompts produced from
// the template and Prompt holds the first of them.
type PositiveConditioningNode struct {
	Prompt   string   `json:"prompt"`
	Variants []string `json:"variants,omitempty"`
}

func (*PositiveConditioningNode) NodeKind() Kind           { return KindPositiveConditioning }
func (*PositiveConditioningNode) requiredInputs() []string { return []string{FieldCLIP} }

// NegativeConditioningNode encodes the negative prompt.
type NegativeConditioningNode struct {
	Prompt   string   `json:"prompt"`
	Variants []string `json:"variants,omitempty"`
}

func (*NegativeConditioningNode) NodeKind() Kind           { return KindNegativeConditioning }
func (*NegativeConditioningNode) requiredInputs() []string { return []string{FieldCLIP} }

// NoiseNode produces the initial latent noise tensor. Seed -1 asks the
// engine to pick one.
type NoiseNode struct {
	Seed   int64 `json:"seed"`
	Width  int   `json:"width"`
	Height int   `json:"height"`
}

func (*NoiseNode) NodeKind() Kind           { return KindNoise }
func (*NoiseNode) requiredInputs() []string { return nil }

// DenoiseNode runs the sampler. Its unet, conditioning and noise inputs are
// always edge-bound; control[i] slots are optional extra inputs added by the
// external-conditioning transform.
type DenoiseNode struct {
	Steps     int     `json:"steps"`
	CFGScale  float64 `json:"cfg_scale"`
	Scheduler string  `json:"scheduler"`
}

func (*DenoiseNode) NodeKind() Kind { return KindDenoise }
func (*DenoiseNode) requiredInputs() []string {
	return []string{FieldUNet, FieldPositive, FieldNegative, FieldNoise}
}

// DecodeNode converts final latents into an image using vae weights.
type DecodeNode struct{}

func (*DecodeNode) NodeKind() Kind           { return KindDecode }
func (*DecodeNode) requiredInputs() []string { return []string{FieldLatents, FieldVAE} }

// LoraLoaderNode patches the unet and clip weights flowing through it with a
// low-rank adapter at the given strength.
type LoraLoaderNode struct {
	Lora   ModelRef `json:"lora"`
	Weight float64  `json:"weight"`
}

func (*LoraLoaderNode) NodeKind() Kind           { return KindLoraLoader }
func (*LoraLoaderNode) requiredInputs() []string { return []string{FieldUNet, FieldCLIP} }

// ControlNetNode turns a control map into auxiliary guidance for the sampler.
type ControlNetNode struct {
	Control          ModelRef `json:"control"`
	Weight           float64  `json:"weight"`
	BeginStepPercent float64  `json:"begin_step_percent"`
	EndStepPercent   float64  `json:"end_step_percent"`
}

func (*ControlNetNode) NodeKind() Kind           { return KindControlNet }
func (*ControlNetNode) requiredInputs() []string { return []string{FieldImage} }

// ControlProcessorNode preprocesses a source image into a control map
// (e.g. canny edges, depth) on the engine side.
type ControlProcessorNode struct {
	Processor string `json:"processor"`
	ImagePath string `json:"image_path"`
}

func (*ControlProcessorNode) NodeKind() Kind           { return KindControlProcessor }
func (*ControlProcessorNode) requiredInputs() []string { return nil }

// VAELoaderNode loads standalone decoder weights, overriding the base
// model's vae output for the decode stage.
type VAELoaderNode struct {
	VAE ModelRef `json:"vae"`
}

func (*VAELoaderNode) NodeKind() Kind           { return KindVAELoader }
func (*VAELoaderNode) requiredInputs() []string { return nil }

// LoraMetadata records one applied adapter for output metadata.
type LoraMetadata struct {
	Lora   ModelRef `json:"lora"`
	Weight float64  `json:"weight"`
}

// MetadataNode carries the generation parameters verbatim so the engine can
// embed them in produced images. It is literal-only and never wired.
type MetadataNode struct {
	Positive         string         `json:"positive"`
	Negative         string         `json:"negative"`
	PositiveTemplate string         `json:"positive_template,omitempty"`
	NegativeTemplate string         `json:"negative_template,omitempty"`
	Width            int            `json:"width"`
	Height           int            `json:"height"`
	Steps            int            `json:"steps"`
	CFGScale         float64        `json:"cfg_scale"`
	Scheduler        string         `json:"scheduler"`
	Seed             int64          `json:"seed"`
	Model            ModelRef       `json:"model"`
	Loras            []LoraMetadata `json:"loras,omitempty"`
	VAE              *ModelRef      `json:"vae,omitempty"`
}

func (*MetadataNode) NodeKind() Kind           { return KindMetadata }
func (*MetadataNode) requiredInputs() []string { return nil }
