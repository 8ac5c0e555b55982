package engine

import (
	"context"
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"strikearr/internal/logging"
	"strikearr/internal/units"
)

// MaxNameRunes bounds the display name carried by an Outcome.
const MaxNameRunes = 32

// Engine evaluates queue snapshots against a strike ledger.
type Engine struct {
	remover Remover
	logger  *slog.Logger
}

// New constructs an engine. A nil logger discards output.
func New(remover Remover, logger *slog.Logger) *Engine {
	return &Engine{
		remover: remover,
		logger:  logging.NewComponentLogger(logger, "engine"),
	}
}

// Process evaluates items in snapshot order and returns one Outcome per item.
// Strike counts are read from and written to ledger; removals go through the
// engine's Remover.
func (e *Engine) Process(ctx context.Context, items []Item, ledger Ledger, t Thresholds) []Outcome {
	outcomes := make([]Outcome, 0, len(items))
	for _, item := range items {
		outcomes = append(outcomes, e.evaluate(ctx, item, ledger, t))
	}
	return outcomes
}

func (e *Engine) evaluate(ctx context.Context, item Item, ledger Ledger, t Thresholds) Outcome {
	strikes := ledger.Ensure(item.ID)
	logger := e.logger.With(
		logging.Int64(logging.FieldItemID, item.ID),
		logging.String(logging.FieldItemName, item.Name),
	)

	if rule, ok := matchBypass(item, t); ok {
		logger.Debug("queue item bypassed",
			logging.Args(append(logging.DecisionAttrs("strike", string(rule.status), rule.reason),
				logging.Int(logging.FieldStrikes, strikes))...)...)
		return newOutcome(item, rule.status, strikes, t.MaxStrikes)
	}

	status := StatusNormal
	reason := "remaining time below threshold"
	if strikeEligible(item, t) {
		status = StatusStriked
		reason = "strike limit already reached"
		if strikes < t.MaxStrikes {
			strikes++
			ledger.Set(item.ID, strikes)
			reason = "remaining time at or above threshold"
			if item.RemainingMS == 0 {
				reason = "no remaining time estimate (aggressive)"
			}
		}
	}

	if strikes >= t.MaxStrikes {
		logger.Info("strike limit reached, requesting removal",
			logging.Int(logging.FieldStrikes, strikes),
			logging.Int("max_strikes", t.MaxStrikes),
		)
		if e.remover != nil {
			e.remover.Remove(ctx, item.ID)
		}
		status = StatusRemoved
		reason = "strike limit reached"
	}

	logger.Debug("queue item evaluated",
		logging.Args(append(logging.DecisionAttrs("strike", string(status), reason),
			logging.Int(logging.FieldStrikes, strikes),
			logging.Uint64("remaining_ms", item.RemainingMS),
			logging.Uint64("size_bytes", item.Size))...)...)
	return newOutcome(item, status, strikes, t.MaxStrikes)
}

func newOutcome(item Item, status Status, strikes, maxStrikes int) Outcome {
	return Outcome{
		ID:         item.ID,
		Status:     status,
		Strikes:    strikes,
		MaxStrikes: maxStrikes,
		Name:       TruncateName(item.Name),
		ETA:        units.FormatETA(item.RemainingMS),
		Size:       units.FormatGigabytes(item.Size),
	}
}

// TruncateName normalizes name to NFC and keeps at most MaxNameRunes runes.
func TruncateName(name string) string {
	runes := []rune(norm.NFC.String(name))
	if len(runes) <= MaxNameRunes {
		return string(runes)
	}
	return string(runes[:MaxNameRunes])
}
