package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"strikearr/internal/arr"
	"strikearr/internal/config"
	"strikearr/internal/strikes"
)

const platformCheckTimeout = 10 * time.Second

// CheckPlatform verifies that the platform API is reachable and accepts the key.
func CheckPlatform(ctx context.Context, name, url string, checker HealthChecker) Result {
	label := "Platform (" + name + ")"
	if checker == nil {
		return Result{Name: label, Detail: "not configured"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, platformCheckTimeout)
	defer cancel()

	err := checker.Health(checkCtx)
	switch {
	case err == nil:
		return Result{Name: label, Passed: true, Detail: url + " (reachable, api key accepted)"}
	case errors.Is(err, arr.ErrUnauthorized):
		return Result{Name: label, Detail: url + " (auth failed: invalid api key)"}
	default:
		return Result{Name: label, Detail: fmt.Sprintf("%s (unreachable: %s)", url, summarizeError(err))}
	}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckLedger opens the strike database and reports how many items it tracks.
func CheckLedger(cfg *config.Config) Result {
	const name = "Strike ledger"

	store, err := strikes.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.Ledger.Path, err)}
	}
	defer store.Close()

	ledger, err := store.Load(context.Background())
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", cfg.Ledger.Path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d tracked)", cfg.Ledger.Path, ledger.Len())}
}

// CheckListenAddress verifies that addr can be bound.
func CheckListenAddress(name, addr string) Result {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", addr, err)}
	}
	_ = listener.Close()
	return Result{Name: name, Passed: true, Detail: addr + " (available)"}
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	return err.Error()
}
