package config

// Request is the complete parameter bundle for one generation job. It is
// assembled once by a Loader and treated as read-only afterwards.
type Request struct {
	// Name is the human-readable label from the request file.
	Name string

	// Model is the user-facing catalog key of the base model.
	Model string

	Positive string
	Negative string

	Width  int
	Height int

	Steps     int
	CFGScale  float64
	Scheduler string
	// Seed of -1 lets the engine choose.
	Seed int64

	// Loras lists adapters in the order the user declared them. That order
	// becomes the chain order and is never re-sorted.
	Loras []LoraSelection

	// ControlNets lists external-conditioning sources in declaration order.
	ControlNets []ControlNetSelection

	// VAE optionally overrides the decoder weights; empty means the base
	// model's vae is used.
	VAE string

	Expansion ExpansionConfig
}

// LoraSelection is one adapter choice: a catalog key and a strength.
type LoraSelection struct {
	Key    string
	Weight float64
}

// ControlNetSelection configures one external-conditioning source.
type ControlNetSelection struct {
	Key              string
	Processor        string
	Image            string
	Weight           float64
	BeginStepPercent float64
	EndStepPercent   float64
}

// ExpansionConfig controls dynamic-prompt expansion.
type ExpansionConfig struct {
	Enabled     bool
	MaxVariants int
}

// Schedulers is the set of scheduler names the engine accepts.
var Schedulers = map[string]struct{}{
	"euler":        {},
	"euler_a":      {},
	"ddim":         {},
	"dpmpp_2m":     {},
	"dpmpp_2m_sde": {},
	"heun":         {},
	"lms":          {},
	"uni_pc":       {},
}
