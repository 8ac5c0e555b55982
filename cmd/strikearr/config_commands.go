package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"strikearr/internal/config"
	"strikearr/internal/render"
	"strikearr/internal/units"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", filepath.Clean(target))
			fmt.Fprintln(out, "Set platform.url and platform.api_key (or export BASEURL and APIKEY) before running strikearr.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configExists {
				fmt.Fprintln(out, "Config file did not exist; environment and defaults were used")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			sizeBytes := cfg.SizeThresholdBytes()
			rows := [][]string{
				{"platform.name", cfg.Platform.Name},
				{"platform.url", cfg.Platform.URL},
				{"platform.api_key", cfg.MaskedAPIKey()},
				{"platform.request_timeout", strconv.Itoa(cfg.Platform.RequestTimeout) + "s"},
				{"platform.page_size", strconv.Itoa(cfg.Platform.PageSize)},
				{"thresholds.size", fmt.Sprintf("%s (%s)", cfg.Thresholds.Size, humanize.Bytes(sizeBytes))},
				{"thresholds.time", fmt.Sprintf("%s (%s)", cfg.Thresholds.Time, units.FormatETA(cfg.TimeThresholdMS()))},
				{"thresholds.strikes", strconv.Itoa(cfg.Thresholds.Strikes)},
				{"thresholds.aggressive", yesNo(cfg.Thresholds.Aggressive)},
				{"schedule.cron", cfg.Schedule.Cron},
				{"schedule.run_on_start", yesNo(cfg.Schedule.RunOnStart)},
				{"ledger.persist", yesNo(cfg.Ledger.Persist)},
				{"ledger.path", cfg.Ledger.Path},
				{"ledger.prune_stale", yesNo(cfg.Ledger.PruneStale)},
				{"metrics.bind", valueOrDash(cfg.Metrics.Bind)},
				{"paths.state_dir", cfg.Paths.StateDir},
				{"paths.log_dir", cfg.Paths.LogDir},
				{"logging", cfg.Logging.Format + "/" + cfg.Logging.Level},
				{"output.format", cfg.Output.Format},
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Table([]string{"Setting", "Value"}, rows, nil))
			return nil
		},
	}
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
