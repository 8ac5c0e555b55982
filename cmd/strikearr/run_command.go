package main

import (
	"context"
	"errors"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"strikearr/internal/arr"
	"strikearr/internal/logging"
	"strikearr/internal/metrics"
	"strikearr/internal/monitor"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the monitor on its schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonitor(cmd, ctx)
		},
	}
}

func runMonitor(cmd *cobra.Command, ctx *commandContext) error {
	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	client := arr.NewConfiguredClient(cfg)
	if err := checkPlatform(signalCtx, cfg, client); err != nil {
		logging.ErrorWithContext(logger, "platform health check failed", "startup_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify platform.url and platform.api_key"),
		)
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	runner, err := monitor.NewFromConfig(signalCtx, cfg, client, cmd.OutOrStdout(), m, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := runner.Close(); err != nil {
			logger.Warn("failed to close strike store", logging.Error(err))
		}
	}()

	group, groupCtx := errgroup.WithContext(signalCtx)
	if bind := strings.TrimSpace(cfg.Metrics.Bind); bind != "" {
		server, err := metrics.Listen(bind, registry, logger)
		if err != nil {
			return err
		}
		group.Go(func() error { return server.Serve(groupCtx) })
	}
	group.Go(func() error {
		err := runner.Start(groupCtx)
		cancel()
		return err
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("strikearr shutting down")
	return nil
}
