package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// executor: every toolchain entry and the work dir must be set.
	if c.Executor.Python == "" {
		errs = append(errs, fmt.Errorf("executor.python is required"))
	}
	if c.Executor.Javac == "" || c.Executor.Java == "" {
		errs = append(errs, fmt.Errorf("executor.javac and executor.java are required"))
	}
	if c.Executor.WorkDir == "" {
		errs = append(errs, fmt.Errorf("executor.work_dir is required"))
	}
	if c.Executor.RunTimeout <= 0 {
		errs = append(errs, fmt.Errorf("executor.run_timeout must be > 0, got %s", c.Executor.RunTimeout))
	}
	if c.Executor.CompileTimeout <= 0 {
		errs = append(errs, fmt.Errorf("executor.compile_timeout must be > 0, got %s", c.Executor.CompileTimeout))
	}
	// A synchronous Java run compiles and runs inside one response.
	// Zero write_timeout means no limit.
	if longest := c.Executor.CompileTimeout + c.Executor.RunTimeout; c.Server.WriteTimeout > 0 && longest > 0 && c.Server.WriteTimeout < longest {
		errs = append(errs, fmt.Errorf("server.write_timeout (%s) must be >= executor.compile_timeout + executor.run_timeout (%s)",
			c.Server.WriteTimeout, longest))
	}

	switch c.Relay.Provider {
	case "gemini":
		// backend_url falls back to the public endpoint.
	case "openai":
		if c.Relay.BackendURL == "" {
			errs = append(errs, fmt.Errorf("relay.backend_url is required when relay.provider is \"openai\""))
		}
	default:
		errs = append(errs, fmt.Errorf("relay.provider must be \"gemini\" or \"openai\", got %q", c.Relay.Provider))
	}
	if c.Relay.Model == "" {
		errs = append(errs, fmt.Errorf("relay.model is required"))
	}

	switch c.Auth.Type {
	case "none":
	case "apikey":
		if len(c.Auth.APIKeys) == 0 {
			errs = append(errs, fmt.Errorf("auth.api_keys must not be empty when auth.type is \"apikey\""))
		}
	case "jwt":
		if c.Auth.JWT.Secret == "" && c.Auth.JWT.SecretFile == "" {
			errs = append(errs, fmt.Errorf("auth.jwt.secret or auth.jwt.secret_file is required when auth.type is \"jwt\""))
		}
	default:
		errs = append(errs, fmt.Errorf("auth.type must be \"none\", \"apikey\", or \"jwt\", got %q", c.Auth.Type))
	}

	switch c.Log.Format {
	case "text", "json", "":
	default:
		errs = append(errs, fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// RequireRelay reports whether the relay has the credential it needs.
// Running code never needs it, so Validate does not check it. OpenAI
// compatible backends may be unauthenticated local servers.
func (c *Config) RequireRelay() error {
	if c.Relay.Provider == "gemini" && c.Relay.APIKey == "" {
		return fmt.Errorf("relay.api_key is required (set AUTOBOT_API_KEY, relay.api_key or relay.api_key_file)")
	}
	return nil
}
