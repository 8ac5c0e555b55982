package monitor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"strikearr/internal/config"
	"strikearr/internal/logging"
)

// Start runs the monitor on its cron schedule until ctx is cancelled. It
// holds the state directory lock for the whole time.
func (r *Runner) Start(ctx context.Context) error {
	lock, err := AcquireLock(r.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release monitor lock", logging.Error(err))
		}
	}()

	schedule, err := config.CronParser.Parse(r.cfg.Schedule.Cron)
	if err != nil {
		return fmt.Errorf("parse schedule %q: %w", r.cfg.Schedule.Cron, err)
	}

	cronLogger := newCronLogger(r.logger)
	scheduler := cron.New(
		cron.WithParser(config.CronParser),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	scheduler.Schedule(schedule, cron.FuncJob(func() { r.scheduledRun(ctx) }))

	r.logger.Info("strikearr monitor started",
		logging.String("lock", lock.Path()),
		logging.String("schedule", r.cfg.Schedule.Cron),
		logging.Bool("run_on_start", r.cfg.Schedule.RunOnStart),
	)

	if r.cfg.Schedule.RunOnStart {
		r.scheduledRun(ctx)
	}

	scheduler.Start()
	<-ctx.Done()
	stopped := scheduler.Stop()
	<-stopped.Done()

	r.logger.Info("strikearr monitor stopped")
	return nil
}

func (r *Runner) scheduledRun(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := r.RunOnce(ctx); err != nil {
		r.logger.Debug("run finished with error", logging.Error(err))
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func newCronLogger(logger *slog.Logger) cron.Logger {
	return cronLogger{logger: logging.NewComponentLogger(logger, "scheduler")}
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append([]any{logging.Error(err)}, keysAndValues...)...)
}
