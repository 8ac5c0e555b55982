package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// CronParser is the schedule grammar accepted by schedule.cron: standard
// five-field specs plus descriptors such as "@every 10m" and "@hourly".
var CronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePlatform(); err != nil {
		return err
	}
	if err := c.validateThresholds(); err != nil {
		return err
	}
	if err := c.validateSchedule(); err != nil {
		return err
	}
	if err := c.validateLedger(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlatform() error {
	switch c.Platform.Name {
	case platformRadarr, platformSonarr:
	default:
		return fmt.Errorf("platform.name must be %q or %q, got %q", platformRadarr, platformSonarr, c.Platform.Name)
	}
	if c.Platform.URL == "" {
		return fmt.Errorf("platform.url is required. Set %s env var or edit %s (create with 'strikearr config init')", envBaseURL, configHint())
	}
	parsed, err := url.Parse(c.Platform.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("platform.url %q must be an absolute http(s) URL", c.Platform.URL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("platform.url %q must use http or https", c.Platform.URL)
	}
	if c.Platform.APIKey == "" {
		return fmt.Errorf("platform.api_key is required. Set %s env var or edit %s (obtain it in Settings > General > API Key)", envAPIKey, configHint())
	}
	return nil
}

func (c *Config) validateThresholds() error {
	if c.SizeThresholdBytes() == 0 {
		return fmt.Errorf("thresholds.size %q must be a positive byte size such as \"50 GB\"", c.Thresholds.Size)
	}
	if c.TimeThresholdMS() == 0 {
		return fmt.Errorf("thresholds.time %q must be a positive [days.]hh:mm:ss duration", c.Thresholds.Time)
	}
	if c.Thresholds.Strikes < 1 {
		return errors.New("thresholds.strikes must be at least 1")
	}
	return nil
}

func (c *Config) validateSchedule() error {
	if _, err := CronParser.Parse(c.Schedule.Cron); err != nil {
		return fmt.Errorf("schedule.cron %q: %w", c.Schedule.Cron, err)
	}
	return nil
}

func (c *Config) validateLedger() error {
	if c.Ledger.Persist && strings.TrimSpace(c.Ledger.Path) == "" {
		return errors.New("ledger.path must be set when ledger.persist is true")
	}
	return nil
}

func (c *Config) validateOutput() error {
	switch c.Output.Format {
	case "table", "json":
		return nil
	default:
		return fmt.Errorf("output.format must be \"table\" or \"json\", got %q", c.Output.Format)
	}
}

func configHint() string {
	path, err := DefaultConfigPath()
	if err != nil {
		return defaultConfigPath
	}
	return path
}
