package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"strikearr/internal/arr"
	"strikearr/internal/logging"
	"strikearr/internal/metrics"
	"strikearr/internal/monitor"
)

func newOnceCommand(ctx *commandContext) *cobra.Command {
	var skipCheck bool

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Evaluate the queue a single time and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			lock, err := monitor.AcquireLock(cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release monitor lock", logging.Error(err))
				}
			}()

			client := arr.NewConfiguredClient(cfg)
			if !skipCheck {
				if err := checkPlatform(cmd.Context(), cfg, client); err != nil {
					return err
				}
			}

			runner, err := monitor.NewFromConfig(cmd.Context(), cfg, client, cmd.OutOrStdout(),
				metrics.New(prometheus.NewRegistry()), logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := runner.Close(); err != nil {
					logger.Warn("failed to close strike store", logging.Error(err))
				}
			}()

			_, err = runner.RunOnce(cmd.Context())
			return err
		},
	}

	cmd.Flags().BoolVar(&skipCheck, "skip-check", false, "Skip the platform health check")
	return cmd
}
