package arr

import (
	"context"
	"log/slog"

	"strikearr/internal/logging"
)

// Deleter is the part of Client used by Remover.
type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

// RemovalObserver is notified of removal attempts, typically by metrics.
type RemovalObserver interface {
	RemovalRequested()
	RemovalFailed()
}

// Remover satisfies engine.Remover. Failures are logged and swallowed; the
// item keeps its strikes so the next run asks again.
type Remover struct {
	deleter  Deleter
	observer RemovalObserver
	logger   *slog.Logger
}

func NewRemover(deleter Deleter, observer RemovalObserver, logger *slog.Logger) *Remover {
	return &Remover{
		deleter:  deleter,
		observer: observer,
		logger:   logging.NewComponentLogger(logger, "remover"),
	}
}

func (r *Remover) Remove(ctx context.Context, id int64) {
	if r.observer != nil {
		r.observer.RemovalRequested()
	}
	if err := r.deleter.Delete(ctx, id); err != nil {
		if r.observer != nil {
			r.observer.RemovalFailed()
		}
		logging.WarnWithContext(r.logger, "failed to remove queue item, will attempt again next run", "queue_remove_failed",
			logging.Int64(logging.FieldItemID, id),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check platform logs for the delete request"),
			logging.String(logging.FieldImpact, "item stays in queue until the next run"),
		)
		return
	}
	r.logger.Info("queue item removed and blocklisted", logging.Int64(logging.FieldItemID, id))
}
