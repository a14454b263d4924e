package resolver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/latentgrid/internal/graph"
)

// ErrUnknownModel is returned when a key resolves to nothing in the catalog.
var ErrUnknownModel = errors.New("unknown model")

var knownBases = map[string]struct{}{
	"sd-1": {},
	"sd-2": {},
	"sdxl": {},
	"flux": {},
}

var knownTypes = map[graph.ModelType]struct{}{
	graph.ModelTypeMain:       {},
	graph.ModelTypeLora:       {},
	graph.ModelTypeVAE:        {},
	graph.ModelTypeControlNet: {},
}

// Catalog holds the installed models, keyed by canonical key.
type Catalog struct {
	models map[string]graph.ModelRef
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{models: make(map[string]graph.ModelRef)}
}

// Add registers a reference under its canonical key. Registering the same
// key twice is an error.
func (c *Catalog) Add(ref graph.ModelRef) error {
	key := ref.Key()
	if _, ok := c.models[key]; ok {
		return fmt.Errorf("duplicate model key: %s", key)
	}
	c.models[key] = ref
	return nil
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.models)
}

// Resolve maps a user-facing key to its backend reference. The key must
// exist and must name a model of the wanted type.
func (c *Catalog) Resolve(want graph.ModelType, key string) (graph.ModelRef, error) {
	ref, ok := c.models[key]
	if !ok {
		return graph.ModelRef{}, fmt.Errorf("%w: %s", ErrUnknownModel, key)
	}
	if ref.Type != want {
		return graph.ModelRef{}, fmt.Errorf("model %s is a %s, not a %s", key, ref.Type, want)
	}
	return ref, nil
}

// ParseKey splits a canonical "base/type/name" key into a reference,
// validating the base and type segments.
func ParseKey(key string) (graph.ModelRef, error) {
	parts := strings.SplitN(key, "/", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return graph.ModelRef{}, fmt.Errorf("malformed model key %q: want base/type/name", key)
	}
	ref := graph.ModelRef{
		Base: parts[0],
		Type: graph.ModelType(parts[1]),
		Name: parts[2],
	}
	if _, ok := knownBases[ref.Base]; !ok {
		return graph.ModelRef{}, fmt.Errorf("model key %q: unknown base %q", key, ref.Base)
	}
	if _, ok := knownTypes[ref.Type]; !ok {
		return graph.ModelRef{}, fmt.Errorf("model key %q: unknown type %q", key, ref.Type)
	}
	return ref, nil
}
