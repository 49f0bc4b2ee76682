// Package openaicompat implements provider.Generator for any backend that
// speaks the OpenAI Chat Completions protocol (OpenAI, vLLM, LiteLLM,
// Ollama). Each prompt is sent as one user message.
package openaicompat
