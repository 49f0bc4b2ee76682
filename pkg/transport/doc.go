// Package transport holds what the HTTP adapter shares with the rest of
// the service: the contracts it dispatches to (RunManager, PromptRelay),
// the mapping from APIError types to HTTP status codes, and the
// http.Handler middleware for panic recovery, request IDs and access
// logging.
//
// # Handler Interfaces
//
// RunManager starts runs and finds the current one; the executor's
// Orchestrator implements it. PromptRelay sends prompts to the
// text-generation provider; relay.Relay implements it. Either may be
// absent: a server without a relay credential still runs code.
//
// # Middleware
//
// Middleware are plain func(http.Handler) http.Handler values composed
// with Chain. The first middleware given is the outermost wrapper.
package transport
