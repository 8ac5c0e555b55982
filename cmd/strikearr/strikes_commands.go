package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"strikearr/internal/logging"
	"strikearr/internal/monitor"
	"strikearr/internal/render"
	"strikearr/internal/strikes"
)

func newStrikesCommand(ctx *commandContext) *cobra.Command {
	strikesCmd := &cobra.Command{
		Use:   "strikes",
		Short: "Inspect or reset the persisted strike ledger",
	}
	strikesCmd.AddCommand(newStrikesListCommand(ctx))
	strikesCmd.AddCommand(newStrikesResetCommand(ctx))
	return strikesCmd
}

// withStore opens the strike store for the duration of fn. Writers hold the
// monitor lock so a running monitor cannot overwrite their changes.
func withStore(ctx *commandContext, write bool, fn func(*strikes.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if !cfg.Ledger.Persist {
		return errors.New("ledger persistence is disabled (ledger.persist = false); nothing is stored between runs")
	}
	if write {
		lock, err := monitor.AcquireLock(cfg)
		if err != nil {
			if errors.Is(err, monitor.ErrAlreadyRunning) {
				return fmt.Errorf("stop the running monitor before changing strikes: %w", err)
			}
			return err
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				if logger, logErr := ctx.ensureLogger(); logErr == nil {
					logger.Warn("failed to release monitor lock", logging.Error(err))
				}
			}
		}()
	}
	store, err := strikes.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newStrikesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items with recorded strikes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return withStore(ctx, false, func(store *strikes.Store) error {
				ledger, err := store.Load(cmd.Context())
				if err != nil {
					return err
				}
				entries := ledger.Entries()
				if cfg.Output.Format == "json" {
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No strikes recorded.")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						strconv.FormatInt(entry.ItemID, 10),
						fmt.Sprintf("%d/%d", entry.Strikes, cfg.Thresholds.Strikes),
						formatUpdated(entry.UpdatedAt),
					})
				}
				fmt.Fprintln(out, render.Table(
					[]string{"Item", "Strikes", "Updated"},
					rows,
					[]render.ColumnAlignment{render.AlignRight, render.AlignLeft, render.AlignLeft},
				))
				return nil
			})
		},
	}
}

func newStrikesResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset [item-id]",
		Short: "Forget strikes for one item, or for every item when no id is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(ctx, true, func(store *strikes.Store) error {
				out := cmd.OutOrStdout()
				if len(args) == 0 {
					removed, err := store.Clear(cmd.Context())
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Cleared strikes for %d item(s)\n", removed)
					return nil
				}
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid item id %q: %w", args[0], err)
				}
				removed, err := store.Remove(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintf(out, "No strikes recorded for item %d\n", id)
					return nil
				}
				fmt.Fprintf(out, "Cleared strikes for item %d\n", id)
				return nil
			})
		},
	}
}

func formatUpdated(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return humanize.Time(ts)
}
