// Package resolver maps user-facing model selections to canonical backend
// references. It loads the installed-model manifest into a Catalog and
// resolves keys of the form "base/type/name" (e.g. "sd-1/lora/style_x"),
// failing with ErrUnknownModel for keys the catalog does not carry and with
// a type-mismatch error when a key names a model of the wrong role.
//
// Duplicate manifest keys are rejected at load time, so a resolved reference
// is unambiguous by construction.
package resolver
