package arr

import (
	"context"
	"log/slog"

	"strikearr/internal/engine"
	"strikearr/internal/logging"
)

// QueueSource is the part of Client used by Fetcher.
type QueueSource interface {
	Queue(ctx context.Context) ([]Record, error)
	Platform() string
}

// Fetcher turns queue fetches into engine snapshots.
type Fetcher struct {
	source QueueSource
	logger *slog.Logger
}

func NewFetcher(source QueueSource, logger *slog.Logger) *Fetcher {
	return &Fetcher{source: source, logger: logging.NewComponentLogger(logger, "fetcher")}
}

// Snapshot returns the canonical queue. On failure it logs a warning and
// returns an empty snapshot with ok=false; the caller carries on.
func (f *Fetcher) Snapshot(ctx context.Context) ([]engine.Item, bool) {
	records, err := f.source.Queue(ctx)
	if err != nil {
		logging.WarnWithContext(f.logger, "unable to process queue, will attempt again next run", "queue_fetch_failed",
			logging.String(logging.FieldPlatform, f.source.Platform()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "verify platform url and api key, and that the platform is reachable"),
			logging.String(logging.FieldImpact, "no items evaluated this run"),
		)
		return []engine.Item{}, false
	}
	items := Canonicalize(f.source.Platform(), records)
	f.logger.Debug("queue snapshot fetched",
		logging.String(logging.FieldPlatform, f.source.Platform()),
		logging.Int("items", len(items)),
	)
	return items, true
}
