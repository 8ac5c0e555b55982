package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"strikearr/internal/config"
)

func clearStrikeEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BASEURL", "APIKEY", "PLATFORM", "SIZE_THRESHOLD", "TIME_THRESHOLD", "STRIKE_THRESHOLD", "AGGRESSIVE_STRIKES", "AGGRESIVE_STRIKES", "INTERVAL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaultConfigUsesEnvAndExpandsPaths(t *testing.T) {
	clearStrikeEnv(t)
	t.Setenv("BASEURL", "http://radarr.local:7878/")
	t.Setenv("APIKEY", "env-key")
	t.Setenv("STRIKE_THRESHOLD", "5")
	t.Setenv("AGGRESSIVE_STRIKES", "true")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Platform.URL != "http://radarr.local:7878" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Platform.URL)
	}
	if cfg.Platform.APIKey != "env-key" {
		t.Fatalf("expected api key from env, got %q", cfg.Platform.APIKey)
	}
	if cfg.Platform.Name != "radarr" {
		t.Fatalf("expected default platform radarr, got %q", cfg.Platform.Name)
	}
	if cfg.Thresholds.Strikes != 5 {
		t.Fatalf("expected strikes from env, got %d", cfg.Thresholds.Strikes)
	}
	if !cfg.Thresholds.Aggressive {
		t.Fatal("expected aggressive strikes from env")
	}
	wantState := filepath.Join(tempHome, ".local", "share", "strikearr")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Ledger.Path != filepath.Join(wantState, "strikes.db") {
		t.Fatalf("unexpected ledger path: %q", cfg.Ledger.Path)
	}
	if cfg.SizeThresholdBytes() != 100_000_000_000 {
		t.Fatalf("unexpected default size threshold: %d", cfg.SizeThresholdBytes())
	}
	if cfg.TimeThresholdMS() != 2*3_600_000 {
		t.Fatalf("unexpected default time threshold: %d", cfg.TimeThresholdMS())
	}
	if !cfg.Ledger.PruneStale || !cfg.Ledger.Persist || !cfg.Schedule.RunOnStart {
		t.Fatalf("expected boolean defaults to be enabled: %+v %+v", cfg.Ledger, cfg.Schedule)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadFileOverridesEnvironment(t *testing.T) {
	clearStrikeEnv(t)
	t.Setenv("STRIKE_THRESHOLD", "9")
	t.Setenv("AGGRESSIVE_STRIKES", "true")
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "strikearr.toml")

	type payload struct {
		Platform struct {
			Name   string `toml:"name"`
			URL    string `toml:"url"`
			APIKey string `toml:"api_key"`
		} `toml:"platform"`
		Thresholds struct {
			Size       string `toml:"size"`
			Time       string `toml:"time"`
			Strikes    int    `toml:"strikes"`
			Aggressive bool   `toml:"aggressive"`
		} `toml:"thresholds"`
		Paths struct {
			StateDir string `toml:"state_dir"`
		} `toml:"paths"`
	}
	custom := payload{}
	custom.Platform.Name = "Sonarr"
	custom.Platform.URL = "https://sonarr.example.com"
	custom.Platform.APIKey = "file-key"
	custom.Thresholds.Size = "50 GB"
	custom.Thresholds.Time = "1.00:00:00"
	custom.Thresholds.Strikes = 2
	custom.Thresholds.Aggressive = false
	custom.Paths.StateDir = filepath.Join(tempDir, "state")

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config at %s, got %s (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Platform.Name != "sonarr" {
		t.Fatalf("expected platform lowercased, got %q", cfg.Platform.Name)
	}
	if cfg.Thresholds.Strikes != 2 {
		t.Fatalf("expected file strikes to win over env, got %d", cfg.Thresholds.Strikes)
	}
	if cfg.Thresholds.Aggressive {
		t.Fatal("expected file aggressive=false to win over env")
	}
	if cfg.TimeThresholdMS() != 86_400_000 {
		t.Fatalf("unexpected time threshold: %d", cfg.TimeThresholdMS())
	}
	if cfg.Ledger.Path != filepath.Join(tempDir, "state", "strikes.db") {
		t.Fatalf("expected ledger under custom state dir, got %q", cfg.Ledger.Path)
	}
	if cfg.LockPath() != filepath.Join(tempDir, "state", "strikearr.lock") {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
}

func TestValidateRejectsUnusableValues(t *testing.T) {
	base := func() config.Config {
		cfg := config.Default()
		cfg.Platform.URL = "http://localhost:7878"
		cfg.Platform.APIKey = "key"
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"unknown platform", func(c *config.Config) { c.Platform.Name = "lidarr" }, "platform.name"},
		{"missing url", func(c *config.Config) { c.Platform.URL = "" }, "platform.url"},
		{"relative url", func(c *config.Config) { c.Platform.URL = "localhost" }, "platform.url"},
		{"missing api key", func(c *config.Config) { c.Platform.APIKey = "" }, "platform.api_key"},
		{"bad size", func(c *config.Config) { c.Thresholds.Size = "huge" }, "thresholds.size"},
		{"bad time", func(c *config.Config) { c.Thresholds.Time = "1:2" }, "thresholds.time"},
		{"zero strikes", func(c *config.Config) { c.Thresholds.Strikes = 0 }, "thresholds.strikes"},
		{"bad cron", func(c *config.Config) { c.Schedule.Cron = "every tuesday" }, "schedule.cron"},
		{"bad output", func(c *config.Config) { c.Output.Format = "xml" }, "output.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}

	cfg := base()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected base config to validate: %v", err)
	}
}

func TestDefaultLedgerPathFollowsStateDir(t *testing.T) {
	clearStrikeEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BASEURL", "http://localhost:7878")
	t.Setenv("APIKEY", "key")

	cfg := config.Default()
	cfg.Platform.URL = "http://localhost:7878"
	cfg.Platform.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}

	dir := t.TempDir()
	configPath := filepath.Join(dir, "strikearr.toml")
	stateDir := filepath.Join(dir, "state")
	if err := os.WriteFile(configPath, []byte("[paths]\nstate_dir = \""+filepath.ToSlash(stateDir)+"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	loaded, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Ledger.Path != filepath.Join(stateDir, "strikes.db") {
		t.Fatalf("expected ledger under state dir, got %q", loaded.Ledger.Path)
	}
}

func TestLoadFillsBlankFileValuesFromEnvironment(t *testing.T) {
	clearStrikeEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APIKEY", "env-key")
	t.Setenv("INTERVAL", "15m")

	dir := t.TempDir()
	configPath := filepath.Join(dir, "strikearr.toml")
	content := `[platform]
url = "http://localhost:7878"
api_key = ""

[schedule]
cron = ""
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Platform.APIKey != "env-key" {
		t.Fatalf("expected blank api_key to fall back to env, got %q", cfg.Platform.APIKey)
	}
	if cfg.Schedule.Cron != "@every 15m" {
		t.Fatalf("expected bare interval to become @every, got %q", cfg.Schedule.Cron)
	}
}

func TestLoadKeepsCronIntervalFromEnvironment(t *testing.T) {
	clearStrikeEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("BASEURL", "http://localhost:7878")
	t.Setenv("APIKEY", "key")
	t.Setenv("INTERVAL", "*/5 * * * *")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Schedule.Cron != "*/5 * * * *" {
		t.Fatalf("expected cron spec kept verbatim, got %q", cfg.Schedule.Cron)
	}
}

func TestLoadRejectsInvalidEnvironmentInteger(t *testing.T) {
	clearStrikeEnv(t)
	t.Setenv("STRIKE_THRESHOLD", "three")
	t.Setenv("HOME", t.TempDir())

	if _, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for non-numeric STRIKE_THRESHOLD")
	}
}

func TestLoadEnvFileDoesNotOverrideExistingVariables(t *testing.T) {
	clearStrikeEnv(t)
	t.Setenv("APIKEY", "from-process")
	os.Unsetenv("BASEURL")
	t.Cleanup(func() { os.Unsetenv("BASEURL") })

	envPath := filepath.Join(t.TempDir(), "strikearr.env")
	content := "BASEURL=http://from-dotenv:8989\nAPIKEY=from-dotenv\n"
	if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	if err := config.LoadEnvFile(envPath); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("BASEURL"); got != "http://from-dotenv:8989" {
		t.Fatalf("expected BASEURL from dotenv, got %q", got)
	}
	if got := os.Getenv("APIKEY"); got != "from-process" {
		t.Fatalf("expected existing APIKEY to be kept, got %q", got)
	}
}

func TestLoadEnvFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := config.LoadEnvFile(""); err != nil {
		t.Fatalf("expected missing default .env to be ignored: %v", err)
	}
	if err := config.LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Fatal("expected error for explicit missing env file")
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	clearStrikeEnv(t)
	t.Setenv("APIKEY", "sample-key")
	t.Setenv("BASEURL", "http://localhost:7878")
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Platform.APIKey != "sample-key" {
		t.Fatalf("expected sample to leave api_key to the environment, got %q", cfg.Platform.APIKey)
	}
	if cfg.Thresholds.Strikes != 3 || cfg.Schedule.Cron != "@every 10m" {
		t.Fatalf("unexpected sample thresholds: %+v schedule: %+v", cfg.Thresholds, cfg.Schedule)
	}
}
