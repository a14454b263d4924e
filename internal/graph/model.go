package graph

import "fmt"

// ModelType classifies the entries of the installed-model catalog and the
// role a resolved reference plays in the graph.
type ModelType string

const (
	ModelTypeMain       ModelType = "main"
	ModelTypeLora       ModelType = "lora"
	ModelTypeVAE        ModelType = "vae"
	ModelTypeControlNet ModelType = "controlnet"
)

// ModelRef is a canonical backend model reference, resolved from a
// user-facing catalog key. The engine loads weights by this triple.
type ModelRef struct {
	Base string    `json:"base"`
	Type ModelType `json:"type"`
	Name string    `json:"name"`
}

// Key returns the canonical catalog key for the reference.
func (r ModelRef) Key() string {
	return fmt.Sprintf("%s/%s/%s", r.Base, r.Type, r.Name)
}
