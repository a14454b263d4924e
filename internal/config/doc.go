// Package config defines the format-agnostic render request model — the
// read-only parameter bundle consumed by the graph assembler — along with the
// Loader interface for producing it from configuration files. The concrete
// HCL implementation lives in the internal/hcl package.
package config
