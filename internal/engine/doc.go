// Package engine is the client for the inference engine's queue API. It
// submits assembled graphs over HTTP and follows job progress over the
// engine's socket.io event stream. The package owns no graph semantics; it
// transports what the assemble package produced.
package engine
