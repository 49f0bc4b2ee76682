package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, AUTOBOT_CONFIG env, ./config.yaml, /etc/autobot/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("applying environment overrides: %w", err)
	}

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. AUTOBOT_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/autobot/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("AUTOBOT_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/autobot/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields.
// Malformed numeric or duration values are reported rather than ignored.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("AUTOBOT_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AUTOBOT_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("AUTOBOT_PROVIDER"); v != "" {
		cfg.Relay.Provider = v
	}
	if v := os.Getenv("AUTOBOT_BACKEND_URL"); v != "" {
		cfg.Relay.BackendURL = v
	}
	if v := os.Getenv("AUTOBOT_API_KEY"); v != "" {
		cfg.Relay.APIKey = v
	} else if v := os.Getenv("GEMINI_API_KEY"); v != "" && cfg.Relay.APIKey == "" {
		cfg.Relay.APIKey = v
	}
	if v := os.Getenv("AUTOBOT_MODEL"); v != "" {
		cfg.Relay.Model = v
	}
	if v := os.Getenv("AUTOBOT_WORK_DIR"); v != "" {
		cfg.Executor.WorkDir = v
	}
	if v := os.Getenv("AUTOBOT_RUN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("AUTOBOT_RUN_TIMEOUT: %w", err)
		}
		cfg.Executor.RunTimeout = d
	}
	if v := os.Getenv("AUTOBOT_AUTH_TYPE"); v != "" {
		cfg.Auth.Type = v
	}
	if v := os.Getenv("AUTOBOT_JWT_SECRET"); v != "" {
		cfg.Auth.JWT.Secret = v
	}

	// AUTOBOT_API_KEYS: JSON array of API key configs.
	if v := os.Getenv("AUTOBOT_API_KEYS"); v != "" {
		keys, err := parseAPIKeysJSON(v)
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			cfg.Auth.APIKeys = keys
		}
	}
	return nil
}

// parseAPIKeysJSON parses a JSON array of API key configurations.
func parseAPIKeysJSON(jsonStr string) ([]APIKeyConfig, error) {
	var keys []APIKeyConfig
	if err := json.Unmarshal([]byte(jsonStr), &keys); err != nil {
		return nil, fmt.Errorf("parsing API keys JSON: %w", err)
	}
	return keys, nil
}

// resolveFileReferences reads _file fields and populates the corresponding value fields.
// A _file field is only consulted when its value field is empty.
func resolveFileReferences(cfg *Config) error {
	// relay.api_key_file -> relay.api_key
	if cfg.Relay.APIKeyFile != "" && cfg.Relay.APIKey == "" {
		val, err := readSecretFile(cfg.Relay.APIKeyFile)
		if err != nil {
			return fmt.Errorf("relay.api_key_file: %w", err)
		}
		cfg.Relay.APIKey = val
	}

	// auth.jwt.secret_file -> auth.jwt.secret
	if cfg.Auth.JWT.SecretFile != "" && cfg.Auth.JWT.Secret == "" {
		val, err := readSecretFile(cfg.Auth.JWT.SecretFile)
		if err != nil {
			return fmt.Errorf("auth.jwt.secret_file: %w", err)
		}
		cfg.Auth.JWT.Secret = val
	}

	// auth.api_keys[*].key_file -> auth.api_keys[*].key
	for i := range cfg.Auth.APIKeys {
		if cfg.Auth.APIKeys[i].KeyFile != "" && cfg.Auth.APIKeys[i].Key == "" {
			val, err := readSecretFile(cfg.Auth.APIKeys[i].KeyFile)
			if err != nil {
				return fmt.Errorf("auth.api_keys[%d].key_file: %w", i, err)
			}
			cfg.Auth.APIKeys[i].Key = val
		}
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
