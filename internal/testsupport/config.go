package testsupport

import (
	"path/filepath"
	"testing"

	"strikearr/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Platform.URL = "http://127.0.0.1:7878"
	cfgVal.Platform.APIKey = "test"
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Ledger.Path = filepath.Join(base, "state", "strikes.db")
	cfgVal.Schedule.RunOnStart = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPlatform points the config at a platform server, typically an
// httptest.Server URL.
func WithPlatform(name, url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Platform.Name = name
		b.cfg.Platform.URL = url
	}
}

// WithThresholds overrides the strike thresholds.
func WithThresholds(size, eta string, strikes int, aggressive bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Thresholds.Size = size
		b.cfg.Thresholds.Time = eta
		b.cfg.Thresholds.Strikes = strikes
		b.cfg.Thresholds.Aggressive = aggressive
	}
}

// WithoutPersistence disables the SQLite ledger.
func WithoutPersistence() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ledger.Persist = false
	}
}
