// Command kagi-mcp-server exposes Kagi search and summarization tools to AI
// assistants over the Model Context Protocol on stdin/stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	kagimcp "github.com/jmylchreest/kagi-mcp-server"
	"github.com/jmylchreest/kagi-mcp-server/kagi"
	"github.com/jmylchreest/kagi-mcp-server/middleware"
)

const version = "0.2.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiKey           string
		summarizerEngine string
		logLevel         string
		requestTimeout   time.Duration
		rateLimit        int
	)

	cmd := &cobra.Command{
		Use:     "kagi-mcp-server",
		Short:   "Kagi MCP server for AI assistants",
		Long:    "Serves Kagi search, summarizer, FastGPT, and enrichment tools over the Model Context Protocol on stdin/stdout.",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &kagi.Config{}
			if err := env.Parse(cfg); err != nil {
				return fmt.Errorf("parse environment: %w", err)
			}

			// Flags override the environment.
			if apiKey != "" {
				cfg.APIKey = apiKey
			}
			if cmd.Flags().Changed("summarizer-engine") {
				cfg.SummarizerEngine = summarizerEngine
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return serve(cmd.Context(), cfg, logLevel, requestTimeout, rateLimit)
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Kagi API key (or set KAGI_API_KEY)")
	cmd.Flags().StringVar(&summarizerEngine, "summarizer-engine", "cecil", "default summarizer engine (cecil, agnes, daphne, muriel)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().DurationVar(&requestTimeout, "request-timeout", 0, "per-request deadline (0 disables)")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 0, "max tool calls per second (0 disables)")

	cmd.SetContext(signalContext())
	return cmd
}

func serve(ctx context.Context, cfg *kagi.Config, logLevel string, requestTimeout time.Duration, rateLimit int) error {
	logger := newLogger(logLevel)

	srv := kagimcp.NewServer(kagimcp.ServerInfo{
		Name:    "kagi-mcp-server",
		Version: version,
	})

	client := kagi.NewClientFromConfig(cfg)
	if err := kagi.Register(srv, client, cfg); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}

	stack := kagimcp.DefaultMiddleware(logger)
	if requestTimeout > 0 {
		stack = append(stack, middleware.Timeout(requestTimeout))
	}
	if rateLimit > 0 {
		stack = append(stack, middleware.RateLimitByMethod(rateLimit, rateLimit, middleware.WithRateLimitLogger(logger)))
	}

	logger.Info("starting server",
		middleware.F("version", version),
		middleware.F("engine", cfg.SummarizerEngine),
	)

	err := kagimcp.ServeStdio(ctx, srv, kagimcp.WithMiddleware(stack...))
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info("server stopped")
	return nil
}

// signalContext returns a context canceled on SIGINT or SIGTERM so the
// transport loop can wind down between requests.
func signalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return ctx
}
