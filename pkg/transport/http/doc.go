// Package http serves the run and prompt-relay API over HTTP, with
// server-sent events for run progress.
package http
