package config

import "context"

// Loader produces a render request from a configuration source. Implementations
// are syntax-specific; the rest of the application depends only on this
// interface.
type Loader interface {
	Load(ctx context.Context, path string) (*Request, error)
}
