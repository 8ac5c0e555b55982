package preflight

import (
	"context"

	"strikearr/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// HealthChecker is satisfied by *arr.Client.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, platform HealthChecker) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckPlatform(ctx, cfg.Platform.Name, cfg.Platform.URL, platform),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if cfg.Ledger.Persist {
		results = append(results, CheckLedger(cfg))
	}
	if cfg.Metrics.Bind != "" {
		results = append(results, CheckListenAddress("Metrics endpoint", cfg.Metrics.Bind))
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
