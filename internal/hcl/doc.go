// Package hcl is the HCL implementation of config.Loader. It parses a render
// request file, validates its values, applies defaults, and translates the
// decoded blocks into the format-agnostic config.Request model.
package hcl
