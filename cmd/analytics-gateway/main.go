package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KEN-E-AI/google-analytics-mcp/internal/analytics"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/audit"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/config"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/gateway"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/server"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/tool"
	"github.com/KEN-E-AI/google-analytics-mcp/internal/tools"
	"github.com/KEN-E-AI/google-analytics-mcp/pkg/mcp"
	"golang.org/x/sync/errgroup"
)

const (
	serverName = "google-analytics-mcp"
	version    = "1.0.0"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal("Error loading config: %v", err)
	}
	if *configPath != "" {
		if err := cfg.ApplyFile(*configPath); err != nil {
			fatal("Error applying config file: %v", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		fatal("Invalid config: %v", err)
	}

	// stdout carries the stdio transport; all logging goes to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := analytics.NewFactory(fmt.Sprintf("analytics-mcp/%s", version))
	upstream := analytics.NewGoogle(factory)

	registry := tool.NewRegistry()
	if err := tools.RegisterAll(registry, upstream); err != nil {
		fatal("Error registering tools: %v", err)
	}
	registry.Freeze()
	logger.Info("registered tools", "count", len(registry.Names()))

	opts := []gateway.Option{gateway.WithLogger(logger)}
	if cfg.AuditDB != "" {
		auditLog, err := audit.Open(cfg.AuditDB)
		if err != nil {
			fatal("Error opening audit log: %v", err)
		}
		defer auditLog.Close()
		opts = append(opts, gateway.WithAuditLog(auditLog))
	}
	dispatcher := gateway.New(registry, opts...)

	info := mcp.ServerInfo{Name: serverName, Version: version}

	g, ctx := errgroup.WithContext(ctx)
	if cfg.ServeStdio() {
		stdio := server.NewStdio(mcp.NewTransport(os.Stdin, os.Stdout), dispatcher, registry, info, logger)
		g.Go(func() error { return stdio.Run(ctx) })
	}
	if cfg.ServeHTTP() {
		httpSrv := server.NewHTTP(dispatcher, registry, info, logger)
		g.Go(func() error { return httpSrv.Run(ctx, fmt.Sprintf(":%d", cfg.Port)) })
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		fatal("Server error: %v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
