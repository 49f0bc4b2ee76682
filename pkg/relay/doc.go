// Package relay forwards user prompts to a text-generation provider and
// cleans generated text so it can be dropped into a source buffer.
//
// Prompts that already contain code fences are refused before any
// remote call, and Sanitize strips fences from answers until none are
// left.
package relay
