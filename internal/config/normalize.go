package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// applyEnvironment overlays environment variables on top of the defaults so a
// config file, when present, still has the final say.
func (c *Config) applyEnvironment() error {
	c.fillFromEnvironment(true)
	if value, ok := lookupEnv(envStrikeThreshold); ok {
		strikes, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", envStrikeThreshold, value)
		}
		c.Thresholds.Strikes = strikes
	}
	for _, key := range []string{envLegacyAggressiveFlag, envAggressiveStrikes} {
		value, ok := lookupEnv(key)
		if !ok {
			continue
		}
		aggressive, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", key, value)
		}
		c.Thresholds.Aggressive = aggressive
	}
	return nil
}

// fillFromEnvironment copies string settings from the environment. With
// override false only settings the config file left blank are filled.
func (c *Config) fillFromEnvironment(override bool) {
	fields := []struct {
		key    string
		target *string
		parse  func(string) string
	}{
		{envBaseURL, &c.Platform.URL, nil},
		{envAPIKey, &c.Platform.APIKey, nil},
		{envPlatform, &c.Platform.Name, nil},
		{envSizeThreshold, &c.Thresholds.Size, nil},
		{envTimeThreshold, &c.Thresholds.Time, nil},
		{envSchedule, &c.Schedule.Cron, scheduleFromEnv},
	}
	for _, field := range fields {
		if !override && strings.TrimSpace(*field.target) != "" {
			continue
		}
		value, ok := lookupEnv(field.key)
		if !ok {
			continue
		}
		if field.parse != nil {
			value = field.parse(value)
		}
		*field.target = value
	}
}

// scheduleFromEnv accepts either a cron spec or a bare duration such as
// "10m", which becomes "@every 10m".
func scheduleFromEnv(value string) string {
	if _, err := time.ParseDuration(value); err == nil {
		return "@every " + value
	}
	return value
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	return value, true
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePlatform()
	c.normalizeThresholds()
	c.normalizeSchedule()
	c.normalizeLogging()
	c.normalizeOutput()
	c.Metrics.Bind = strings.TrimSpace(c.Metrics.Bind)
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.StateDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	// The default ledger follows a custom state_dir.
	if path := strings.TrimSpace(c.Ledger.Path); path == "" || path == defaultLedgerPath {
		c.Ledger.Path = filepath.Join(c.Paths.StateDir, defaultLedgerFile)
	}
	if c.Ledger.Path, err = expandPath(c.Ledger.Path); err != nil {
		return fmt.Errorf("ledger.path: %w", err)
	}
	return nil
}

func (c *Config) normalizePlatform() {
	c.Platform.Name = strings.ToLower(strings.TrimSpace(c.Platform.Name))
	c.Platform.URL = strings.TrimRight(strings.TrimSpace(c.Platform.URL), "/")
	c.Platform.APIKey = strings.TrimSpace(c.Platform.APIKey)
	if c.Platform.RequestTimeout <= 0 {
		c.Platform.RequestTimeout = defaultRequestTimeout
	}
	if c.Platform.PageSize <= 0 {
		c.Platform.PageSize = defaultPageSize
	}
}

func (c *Config) normalizeThresholds() {
	c.Thresholds.Size = strings.TrimSpace(c.Thresholds.Size)
	c.Thresholds.Time = strings.TrimSpace(c.Thresholds.Time)
}

func (c *Config) normalizeSchedule() {
	c.Schedule.Cron = strings.TrimSpace(c.Schedule.Cron)
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = defaultSchedule
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
}
