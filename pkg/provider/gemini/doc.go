// Package gemini implements provider.Generator against the Google
// Generative Language REST API (generateContent).
package gemini
