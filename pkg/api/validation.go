package api

import "fmt"

// ValidationConfig holds configurable limits for request validation.
type ValidationConfig struct {
	MaxSourceSize int
	MaxPromptSize int
}

// DefaultValidationConfig returns a ValidationConfig with sensible defaults.
func DefaultValidationConfig() ValidationConfig {
	return ValidationConfig{
		MaxSourceSize: 1 << 20, // 1MB
		MaxPromptSize: 256 << 10,
	}
}

// ValidateRunRequest checks a CreateRunRequest and returns the parsed
// language. Empty source is allowed; an empty program produces empty output.
func ValidateRunRequest(req *CreateRunRequest, cfg ValidationConfig) (Language, *APIError) {
	lang, err := ParseLanguage(req.Language)
	if err != nil {
		return "", err.(*APIError)
	}
	if cfg.MaxSourceSize > 0 && len(req.Source) > cfg.MaxSourceSize {
		return "", NewInvalidRequestError("source",
			fmt.Sprintf("source exceeds maximum size of %d bytes", cfg.MaxSourceSize))
	}
	return lang, nil
}

// ValidatePromptSize rejects prompts larger than the configured limit.
func ValidatePromptSize(prompt string, cfg ValidationConfig) *APIError {
	if cfg.MaxPromptSize > 0 && len(prompt) > cfg.MaxPromptSize {
		return NewInvalidRequestError("prompt",
			fmt.Sprintf("prompt exceeds maximum size of %d bytes", cfg.MaxPromptSize))
	}
	return nil
}
