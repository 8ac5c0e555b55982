package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"strikearr/internal/units"
)

//go:embed sample_config.toml
var sampleConfig string

// Platform describes the Radarr/Sonarr instance whose queue is monitored.
type Platform struct {
	Name           string `toml:"name"`
	URL            string `toml:"url"`
	APIKey         string `toml:"api_key"`
	RequestTimeout int    `toml:"request_timeout"`
	PageSize       int    `toml:"page_size"`
}

// Thresholds holds the raw, human-readable strike thresholds.
type Thresholds struct {
	Size       string `toml:"size"`
	Time       string `toml:"time"`
	Strikes    int    `toml:"strikes"`
	Aggressive bool   `toml:"aggressive"`
}

// Schedule controls how often the monitor runs.
type Schedule struct {
	Cron       string `toml:"cron"`
	RunOnStart bool   `toml:"run_on_start"`
}

// Ledger controls persistence of strike counts between process restarts.
type Ledger struct {
	Persist    bool   `toml:"persist"`
	Path       string `toml:"path"`
	PruneStale bool   `toml:"prune_stale"`
}

// Metrics contains the Prometheus exporter settings.
type Metrics struct {
	Bind string `toml:"bind"`
}

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Output selects how run results are rendered.
type Output struct {
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for strikearr.
//
// Configuration sections by subsystem:
//   - Platform: API endpoint, key and platform tag
//   - Thresholds: size/time/strike limits and aggressive mode
//   - Schedule: cron spec for periodic runs
//   - Ledger: strike persistence and stale-entry pruning
//   - Metrics: Prometheus exporter bind address
//   - Paths: state and log directories
//   - Logging: log format and level
//   - Output: result rendering format
type Config struct {
	Platform   Platform   `toml:"platform"`
	Thresholds Thresholds `toml:"thresholds"`
	Schedule   Schedule   `toml:"schedule"`
	Ledger     Ledger     `toml:"ledger"`
	Metrics    Metrics    `toml:"metrics"`
	Paths      Paths      `toml:"paths"`
	Logging    Logging    `toml:"logging"`
	Output     Output     `toml:"output"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. Values are layered
// defaults, then environment variables, then the file; string settings the
// file leaves blank fall back to the environment. The returned config has all
// path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()
	if err := cfg.applyEnvironment(); err != nil {
		return nil, "", false, err
	}

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
		cfg.fillFromEnvironment(false)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// LoadEnvFile populates the process environment from a dotenv file without
// overriding variables that are already set. An empty path loads ./.env when
// it exists; a missing default file is not an error.
func LoadEnvFile(path string) error {
	trimmed := strings.TrimSpace(path)
	explicit := trimmed != ""
	if !explicit {
		trimmed = ".env"
	}
	if _, err := os.Stat(trimmed); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("stat env file: %w", err)
	}
	if err := godotenv.Load(trimmed); err != nil {
		return fmt.Errorf("load env file %s: %w", trimmed, err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("strikearr.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state, log and ledger directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir, c.Paths.LogDir}
	if c.Ledger.Persist && c.Ledger.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Ledger.Path))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SizeThresholdBytes returns the parsed size threshold.
func (c *Config) SizeThresholdBytes() uint64 {
	return units.ParseByteSize(c.Thresholds.Size)
}

// TimeThresholdMS returns the parsed time threshold in milliseconds.
func (c *Config) TimeThresholdMS() uint64 {
	return units.ParseHMS(c.Thresholds.Time)
}

// LockPath returns the single-instance lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "strikearr.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// MaskedAPIKey returns the API key with all but the last four characters hidden.
func (c *Config) MaskedAPIKey() string {
	key := c.Platform.APIKey
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
