package graph

import (
	"fmt"
	"strings"
)

// Well-known node ids for the fixed pipeline stages. Every transform refers
// to these constants; they are never re-declared elsewhere.
const (
	NodeModelLoader           = "model_loader"
	NodePositiveConditioning  = "positive_conditioning"
	NodeNegativeConditioning  = "negative_conditioning"
	NodeNoise                 = "noise"
	NodeDenoise               = "denoise"
	NodeDecode                = "decode"
	NodeMetadata              = "metadata"
)

// Field names used on the well-known nodes.
const (
	FieldUNet         = "unet"
	FieldCLIP         = "clip"
	FieldVAE          = "vae"
	FieldConditioning = "conditioning"
	FieldPositive     = "positive"
	FieldNegative     = "negative"
	FieldNoise        = "noise"
	FieldLatents      = "latents"
	FieldImage        = "image"
	FieldControl      = "control"
)

// LoraNodeID derives the node id for an adapter from its canonical name.
// The derivation is stable per reference, which lets transforms detect a
// duplicate adapter selection as an id collision.
func LoraNodeID(ref ModelRef) string {
	return "lora_" + strings.ReplaceAll(ref.Name, ".", "_")
}

// VAELoaderNodeID derives the node id for a decoder-weights override from
// the override reference, making repeat application detectable.
func VAELoaderNodeID(ref ModelRef) string {
	return "vae_loader_" + strings.ReplaceAll(ref.Name, ".", "_")
}

// ControlNodeID returns the node id for the i-th external-conditioning node.
func ControlNodeID(i int) string {
	return fmt.Sprintf("controlnet_%d", i)
}

// ControlProcessorNodeID returns the node id for the preprocessing node
// feeding the i-th external-conditioning node.
func ControlProcessorNodeID(i int) string {
	return fmt.Sprintf("control_processor_%d", i)
}

// ControlField returns the indexed extra-input slot on the denoise node for
// the i-th external-conditioning source.
func ControlField(i int) string {
	return fmt.Sprintf("%s[%d]", FieldControl, i)
}
