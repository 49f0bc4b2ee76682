package main

import (
	"fmt"
	"log/slog"

	"github.com/rhuss/autobot/pkg/auth"
	"github.com/rhuss/autobot/pkg/auth/apikey"
	"github.com/rhuss/autobot/pkg/auth/jwt"
	"github.com/rhuss/autobot/pkg/auth/noop"
	"github.com/rhuss/autobot/pkg/config"
	"github.com/rhuss/autobot/pkg/debug"
	"github.com/rhuss/autobot/pkg/executor"
	"github.com/rhuss/autobot/pkg/provider"
	"github.com/rhuss/autobot/pkg/provider/gemini"
	"github.com/rhuss/autobot/pkg/provider/openaicompat"
	"github.com/rhuss/autobot/pkg/relay"
)

// loadConfig loads the layered configuration and installs the logger.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	debug.Init(cfg.Log.Debug, cfg.Log.Level, cfg.Log.Format)
	debug.Log("config", "loaded",
		"provider", cfg.Relay.Provider,
		"model", cfg.Relay.Model,
		"work_dir", cfg.Executor.WorkDir,
		"auth", cfg.Auth.Type,
	)
	return cfg, nil
}

func newExecutor(cfg *config.Config) (*executor.Executor, error) {
	return executor.New(executor.Config{
		Python:         cfg.Executor.Python,
		Javac:          cfg.Executor.Javac,
		Java:           cfg.Executor.Java,
		WorkDir:        cfg.Executor.WorkDir,
		RunTimeout:     cfg.Executor.RunTimeout,
		CompileTimeout: cfg.Executor.CompileTimeout,
		CleanArtifacts: cfg.Executor.CleanArtifacts,
	})
}

func newGenerator(cfg *config.Config) (provider.Generator, error) {
	if err := cfg.RequireRelay(); err != nil {
		return nil, err
	}
	switch cfg.Relay.Provider {
	case "gemini":
		return gemini.New(gemini.Config{
			BaseURL: cfg.Relay.BackendURL,
			APIKey:  cfg.Relay.APIKey,
			Model:   cfg.Relay.Model,
			Timeout: cfg.Relay.Timeout,
		})
	case "openai":
		return openaicompat.New(openaicompat.Config{
			BaseURL: cfg.Relay.BackendURL,
			APIKey:  cfg.Relay.APIKey,
			Model:   cfg.Relay.Model,
			Timeout: cfg.Relay.Timeout,
		})
	default:
		return nil, fmt.Errorf("unknown relay provider %q", cfg.Relay.Provider)
	}
}

func newRelay(gen provider.Generator, cfg *config.Config) *relay.Relay {
	opts := []relay.Option{relay.WithModel(cfg.Relay.Model)}
	if cfg.Relay.MaxTokens > 0 {
		opts = append(opts, relay.WithMaxTokens(cfg.Relay.MaxTokens))
	}
	return relay.New(gen, opts...)
}

// newAuthChain builds the authenticator chain for auth.type. Type
// "none" accepts everyone as the local operator.
func newAuthChain(cfg config.AuthConfig) (*auth.AuthChain, error) {
	switch cfg.Type {
	case "", "none":
		return &auth.AuthChain{
			Authenticators:  []auth.Authenticator{&noop.Authenticator{}},
			DefaultDecision: auth.Yes,
		}, nil

	case "apikey":
		entries := make([]apikey.RawKeyEntry, 0, len(cfg.APIKeys))
		for _, k := range cfg.APIKeys {
			entries = append(entries, apikey.RawKeyEntry{
				Key: k.Key,
				Identity: auth.Identity{
					Subject:     k.Subject,
					ServiceTier: k.ServiceTier,
				},
			})
		}
		authn := apikey.New(entries)
		if authn.Len() == 0 {
			return nil, fmt.Errorf("auth.api_keys contains no usable key")
		}
		slog.Info("api key authentication enabled", "keys", authn.Len())
		return &auth.AuthChain{
			Authenticators:  []auth.Authenticator{authn},
			DefaultDecision: auth.No,
		}, nil

	case "jwt":
		authn, err := jwt.New(jwt.Config{
			Secret:   []byte(cfg.JWT.Secret),
			Issuer:   cfg.JWT.Issuer,
			Audience: cfg.JWT.Audience,
		})
		if err != nil {
			return nil, err
		}
		slog.Info("jwt authentication enabled", "issuer", cfg.JWT.Issuer)
		return &auth.AuthChain{
			Authenticators:  []auth.Authenticator{authn},
			DefaultDecision: auth.No,
		}, nil

	default:
		return nil, fmt.Errorf("unknown auth type %q", cfg.Type)
	}
}

// newLimiter returns nil when no limits are configured.
func newLimiter(cfg config.RateLimitConfig) auth.RateLimiter {
	if cfg.RequestsPerMinute <= 0 && len(cfg.Tiers) == 0 {
		return nil
	}
	return auth.NewInProcessLimiter(cfg.Tiers, cfg.RequestsPerMinute)
}
