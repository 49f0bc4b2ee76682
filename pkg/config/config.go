// Package config provides unified configuration for autobot.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (AUTOBOT_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for autobot.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Executor      ExecutorConfig      `yaml:"executor"`
	Relay         RelayConfig         `yaml:"relay"`
	Auth          AuthConfig          `yaml:"auth"`
	MCP           MCPConfig           `yaml:"mcp"`
	Observability ObservabilityConfig `yaml:"observability"`
	Log           LogConfig           `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 120s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 10s
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 2MB
}

// ExecutorConfig holds the toolchain and limits used to compile and run code.
type ExecutorConfig struct {
	Python         string        `yaml:"python"`          // default: "python3"
	Javac          string        `yaml:"javac"`           // default: "javac"
	Java           string        `yaml:"java"`            // default: "java"
	WorkDir        string        `yaml:"work_dir"`        // default: "."
	RunTimeout     time.Duration `yaml:"run_timeout"`     // default: 20s
	CompileTimeout time.Duration `yaml:"compile_timeout"` // default: 60s
	CleanArtifacts bool          `yaml:"clean_artifacts"` // default: true
}

// RelayConfig holds settings for the remote text-generation service.
type RelayConfig struct {
	Provider   string        `yaml:"provider"`     // "gemini" or "openai", default: "gemini"
	BackendURL string        `yaml:"backend_url"`  // optional for gemini
	APIKey     string        `yaml:"api_key"`      // required to relay prompts
	APIKeyFile string        `yaml:"api_key_file"` // _file variant for api_key
	Model      string        `yaml:"model"`        // default: "gemini-pro"
	Timeout    time.Duration `yaml:"timeout"`      // default: 120s
	MaxTokens  int           `yaml:"max_tokens"`   // 0 means provider default
}

// AuthConfig holds authentication settings for the HTTP surface.
type AuthConfig struct {
	Type      string          `yaml:"type"`     // "none", "apikey", "jwt", default: "none"
	APIKeys   []APIKeyConfig  `yaml:"api_keys"` // entries for type=apikey
	JWT       JWTConfig       `yaml:"jwt"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// APIKeyConfig describes a single API key entry.
type APIKeyConfig struct {
	Key         string `yaml:"key" json:"key"`
	KeyFile     string `yaml:"key_file" json:"key_file"` // _file variant for key
	Subject     string `yaml:"subject" json:"subject"`
	ServiceTier string `yaml:"service_tier" json:"service_tier"`
}

// JWTConfig holds settings for HS256 bearer token validation.
type JWTConfig struct {
	Secret     string `yaml:"secret"`
	SecretFile string `yaml:"secret_file"` // _file variant for secret
	Issuer     string `yaml:"issuer"`
	Audience   string `yaml:"audience"`
}

// RateLimitConfig holds per-tier request limits. Zero disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int            `yaml:"requests_per_minute"`
	Tiers             map[string]int `yaml:"tiers"`
}

// MCPConfig controls the Model Context Protocol endpoint.
type MCPConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/mcp"
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// LogConfig holds logging settings consumed by pkg/debug.
type LogConfig struct {
	Level  string `yaml:"level"`  // default: "INFO"
	Debug  string `yaml:"debug"`  // comma-separated debug categories
	Format string `yaml:"format"` // "text" or "json", default: "text"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodySize:     2 << 20,
		},
		Executor: ExecutorConfig{
			Python:         "python3",
			Javac:          "javac",
			Java:           "java",
			WorkDir:        ".",
			RunTimeout:     20 * time.Second,
			CompileTimeout: 60 * time.Second,
			CleanArtifacts: true,
		},
		Relay: RelayConfig{
			Provider: "gemini",
			Model:    "gemini-pro",
			Timeout:  120 * time.Second,
		},
		Auth: AuthConfig{
			Type: "none",
		},
		MCP: MCPConfig{
			Enabled: true,
			Path:    "/mcp",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
		Log: LogConfig{
			Level:  "INFO",
			Format: "text",
		},
	}
}
