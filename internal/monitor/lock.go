package monitor

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"

	"strikearr/internal/config"
)

// ErrAlreadyRunning is returned when another process holds the monitor lock.
var ErrAlreadyRunning = errors.New("another strikearr monitor instance is already running")

// AcquireLock takes the state directory lock shared by every command that
// writes the strike ledger. The caller releases it with Unlock.
func AcquireLock(cfg *config.Config) (*flock.Flock, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}
	return lock, nil
}
