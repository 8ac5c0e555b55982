package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"strikearr/internal/arr"
	"strikearr/internal/config"
	"strikearr/internal/preflight"
	"strikearr/internal/render"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the platform connection and local state paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg, arr.NewConfiguredClient(cfg))
			if cfg.Output.Format == "json" {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := render.ShouldColorize(out)
				for _, result := range results {
					fmt.Fprintln(out, renderCheckLine(result, colorize))
				}
			}
			if !preflight.AllPassed(results) {
				return errors.New("one or more checks failed")
			}
			return nil
		},
	}
}

// checkPlatform runs the start-up health probe. Failures are fatal for every
// command that talks to the platform.
func checkPlatform(ctx context.Context, cfg *config.Config, client *arr.Client) error {
	err := client.Health(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, arr.ErrUnauthorized):
		return fmt.Errorf("the provided api key is not valid for %s at %s; obtain it in Settings > General > API Key: %w",
			cfg.Platform.Name, cfg.Platform.URL, err)
	default:
		return fmt.Errorf("unable to reach %s at %s: %w", cfg.Platform.Name, cfg.Platform.URL, err)
	}
}
