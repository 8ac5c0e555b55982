package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"strikearr/internal/arr"
	"strikearr/internal/config"
	"strikearr/internal/engine"
	"strikearr/internal/logging"
	"strikearr/internal/metrics"
	"strikearr/internal/render"
	"strikearr/internal/strikes"
)

// Snapshotter supplies the queue snapshot for a run.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]engine.Item, bool)
}

// Summary describes one completed run.
type Summary struct {
	RunID    string
	Fetched  bool
	Outcomes []engine.Outcome
	Pruned   []int64
	Duration time.Duration
}

// Removed counts outcomes that requested a removal.
func (s Summary) Removed() int {
	count := 0
	for _, outcome := range s.Outcomes {
		if outcome.Status == engine.StatusRemoved {
			count++
		}
	}
	return count
}

// Options collects the runner's collaborators. Store and Metrics are optional.
type Options struct {
	Config  *config.Config
	Fetcher Snapshotter
	Remover engine.Remover
	Sink    render.Sink
	Store   *strikes.Store
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Runner executes monitor runs. Runs are serialized.
type Runner struct {
	cfg        *config.Config
	thresholds engine.Thresholds
	fetcher    Snapshotter
	engine     *engine.Engine
	sink       render.Sink
	store      *strikes.Store
	metrics    *metrics.Metrics
	ledger     *strikes.Ledger
	logger     *slog.Logger

	runMu sync.Mutex
}

// New builds a runner, loading the persisted ledger when a store is given.
func New(ctx context.Context, opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, errors.New("monitor: config is required")
	}
	if opts.Fetcher == nil || opts.Sink == nil {
		return nil, errors.New("monitor: fetcher and sink are required")
	}
	logger := logging.NewComponentLogger(opts.Logger, "monitor")

	ledger := strikes.NewLedger()
	if opts.Store != nil {
		loaded, err := opts.Store.Load(ctx)
		if err != nil {
			return nil, err
		}
		ledger = loaded
		logger.Debug("strike ledger loaded",
			logging.String("path", opts.Store.Path()),
			logging.Int("entries", ledger.Len()),
		)
	}

	return &Runner{
		cfg:        opts.Config,
		thresholds: Thresholds(opts.Config),
		fetcher:    opts.Fetcher,
		engine:     engine.New(opts.Remover, opts.Logger),
		sink:       opts.Sink,
		store:      opts.Store,
		metrics:    opts.Metrics,
		ledger:     ledger,
		logger:     logger,
	}, nil
}

// NewFromConfig wires the production collaborators described by cfg. The
// returned runner owns the strike store; call Close when done.
func NewFromConfig(ctx context.Context, cfg *config.Config, client *arr.Client, out io.Writer, m *metrics.Metrics, logger *slog.Logger) (*Runner, error) {
	sink, err := render.New(cfg.Output.Format, out)
	if err != nil {
		return nil, err
	}

	var store *strikes.Store
	if cfg.Ledger.Persist {
		store, err = strikes.Open(cfg)
		if err != nil {
			return nil, err
		}
	}

	var observer arr.RemovalObserver
	if m != nil {
		observer = m
	}

	runner, err := New(ctx, Options{
		Config:  cfg,
		Fetcher: arr.NewFetcher(client, logger),
		Remover: arr.NewRemover(client, observer, logger),
		Sink:    sink,
		Store:   store,
		Metrics: m,
		Logger:  logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return runner, nil
}

// Thresholds converts the configured threshold strings into engine values.
func Thresholds(cfg *config.Config) engine.Thresholds {
	return engine.Thresholds{
		SizeBytes:         cfg.SizeThresholdBytes(),
		TimeMS:            cfg.TimeThresholdMS(),
		MaxStrikes:        cfg.Thresholds.Strikes,
		AggressiveStrikes: cfg.Thresholds.Aggressive,
	}
}

// Ledger exposes the in-memory strike ledger.
func (r *Runner) Ledger() *strikes.Ledger {
	return r.ledger
}

// Close releases the strike store.
func (r *Runner) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}

// RunOnce performs a single evaluation run. Only ledger persistence failures
// are returned; fetch, removal and render problems are logged.
func (r *Runner) RunOnce(ctx context.Context) (Summary, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	started := time.Now()
	summary := Summary{RunID: uuid.NewString()}
	logger := r.logger.With(logging.String(logging.FieldRunID, summary.RunID))
	logger.Debug("run started")

	items, ok := r.fetcher.Snapshot(ctx)
	summary.Fetched = ok

	if ok && r.cfg.Ledger.PruneStale {
		seen := make([]int64, 0, len(items))
		for _, item := range items {
			seen = append(seen, item.ID)
		}
		summary.Pruned = r.ledger.Prune(seen)
		if len(summary.Pruned) > 0 {
			logger.Info("pruned strikes for items no longer queued",
				logging.Int("count", len(summary.Pruned)),
				logging.Any("item_ids", summary.Pruned),
			)
		}
	}

	summary.Outcomes = r.engine.Process(ctx, items, r.ledger, r.thresholds)

	if err := r.sink.Render(summary.RunID, summary.Outcomes); err != nil {
		logging.WarnWithContext(logger, "failed to render run outcomes", "render_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run results not shown; strikes still recorded"),
		)
	}

	var persistErr error
	if r.store != nil {
		if err := r.store.Save(ctx, r.ledger); err != nil {
			persistErr = fmt.Errorf("persist strike ledger: %w", err)
			logging.ErrorWithContext(logger, "failed to persist strike ledger", "ledger_persist_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check disk space and permissions for the ledger path"),
			)
		}
	}

	summary.Duration = time.Since(started)
	if r.metrics != nil {
		r.metrics.RecordRun(summary.Outcomes, summary.Fetched, summary.Duration)
		r.metrics.SetLedgerEntries(r.ledger.Len())
		r.metrics.AddPruned(len(summary.Pruned))
	}

	logger.Info("run complete",
		logging.Bool("fetched", summary.Fetched),
		logging.Int("items", len(summary.Outcomes)),
		logging.Int("removed", summary.Removed()),
		logging.Int("ledger_entries", r.ledger.Len()),
		logging.Duration("duration", summary.Duration),
	)
	return summary, persistErr
}
