// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary lifecycle (load request, load
// catalog, assemble, then print or submit), decoupled from any specific
// entrypoint like a CLI.
package app
