package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/rhuss/autobot/pkg/auth"
	"github.com/rhuss/autobot/pkg/config"
	"github.com/rhuss/autobot/pkg/executor"
	"github.com/rhuss/autobot/pkg/mcpserver"
	"github.com/rhuss/autobot/pkg/observability"
	"github.com/rhuss/autobot/pkg/transport"
	transporthttp "github.com/rhuss/autobot/pkg/transport/http"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP and MCP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configPath)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			srv, cleanup, err := buildServer(cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")
	return cmd
}

// buildServer wires the executor, relay, auth and observability into
// an HTTP server. The relay is optional: without a credential the
// prompt endpoints answer 503 and runs still work.
func buildServer(cfg *config.Config) (*transporthttp.Server, func(), error) {
	exec, err := newExecutor(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating executor: %w", err)
	}
	orch := executor.NewOrchestrator(exec)
	for _, tc := range orch.Toolchains() {
		slog.Info("toolchain", "name", tc.Name, "path", tc.Path, "version", tc.Version, "available", tc.Available)
	}

	cleanup := func() {}
	var pr transport.PromptRelay
	gen, err := newGenerator(cfg)
	if err != nil {
		slog.Warn("prompt relay disabled", "error", err)
	} else {
		pr = newRelay(gen, cfg)
		cleanup = func() { _ = gen.Close() }
		slog.Info("prompt relay enabled", "provider", gen.Name(), "model", cfg.Relay.Model)
	}

	chain, err := newAuthChain(cfg.Auth)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("configuring auth: %w", err)
	}

	adapterCfg := transporthttp.DefaultConfig()
	if cfg.Server.MaxBodySize > 0 {
		adapterCfg.MaxBodySize = cfg.Server.MaxBodySize
	}
	adapter := transporthttp.NewAdapter(orch, pr, adapterCfg)

	opts := []transporthttp.ServerOption{
		transporthttp.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transporthttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout),
		transporthttp.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
	}

	bypass := auth.DefaultBypassEndpoints
	if cfg.Observability.Metrics.Enabled {
		opts = append(opts,
			transporthttp.WithRoute("GET "+cfg.Observability.Metrics.Path, promhttp.Handler()),
			transporthttp.WithMiddleware(observability.MetricsMiddleware),
		)
		bypass = append(bypass[:len(bypass):len(bypass)], cfg.Observability.Metrics.Path)
	}
	if cfg.MCP.Enabled {
		mcpSrv := mcpserver.New(orch, pr, moduleVersion(), mcpserver.WithValidation(adapterCfg.Validation))
		opts = append(opts, transporthttp.WithRoute(cfg.MCP.Path, auth.RequireScope("mcp", mcpserver.Handler(mcpSrv))))
		slog.Info("mcp endpoint enabled", "path", cfg.MCP.Path)
	}
	opts = append(opts, transporthttp.WithMiddleware(
		auth.Middleware(chain, newLimiter(cfg.Auth.RateLimit), bypass),
	))

	return transporthttp.NewServer(adapter, opts...), cleanup, nil
}
