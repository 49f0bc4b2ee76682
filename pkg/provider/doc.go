// Package provider defines the interface to hosted text-generation
// backends. Adapters (gemini, openaicompat) translate a single-prompt
// Request into their wire protocol and return the generated text.
// Shared HTTP error mapping and metrics live here so every adapter
// reports failures the same way.
package provider
