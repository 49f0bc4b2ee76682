// Package api defines the data types shared by the autobot orchestrator,
// the prompt relay and the HTTP/MCP surfaces.
//
// Core types:
//   - [Language]: closed set of supported languages (python, java)
//   - [RunRequest]: source text plus the filename derived from it
//   - [RunResult]: captured stdout/stderr of one execution attempt
//   - [PromptExchange]: one prompt and the generated text
//   - [APIError]: structured error with type, code, param, and message
//
// All values are transient. Nothing in this package performs I/O.
package api
