package config

const (
	defaultConfigPath       = "~/.config/strikearr/config.toml"
	defaultPlatform         = "radarr"
	defaultRequestTimeout   = 30
	defaultPageSize         = 1000
	defaultSizeThreshold    = "100 GB"
	defaultTimeThreshold    = "02:00:00"
	defaultStrikeThreshold  = 3
	defaultSchedule         = "@every 10m"
	defaultStateDir         = "~/.local/share/strikearr"
	defaultLogDir           = "~/.local/share/strikearr/logs"
	defaultLedgerFile       = "strikes.db"
	defaultLedgerPath       = "~/.local/share/strikearr/strikes.db"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultOutputFormat     = "table"
	platformRadarr          = "radarr"
	platformSonarr          = "sonarr"
	envBaseURL              = "BASEURL"
	envAPIKey               = "APIKEY"
	envPlatform             = "PLATFORM"
	envSizeThreshold        = "SIZE_THRESHOLD"
	envTimeThreshold        = "TIME_THRESHOLD"
	envStrikeThreshold      = "STRIKE_THRESHOLD"
	envAggressiveStrikes    = "AGGRESSIVE_STRIKES"
	envSchedule             = "INTERVAL"
	envLegacyAggressiveFlag = "AGGRESIVE_STRIKES"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Platform: Platform{
			Name:           defaultPlatform,
			RequestTimeout: defaultRequestTimeout,
			PageSize:       defaultPageSize,
		},
		Thresholds: Thresholds{
			Size:    defaultSizeThreshold,
			Time:    defaultTimeThreshold,
			Strikes: defaultStrikeThreshold,
		},
		Schedule: Schedule{
			Cron:       defaultSchedule,
			RunOnStart: true,
		},
		Ledger: Ledger{
			Persist:    true,
			Path:       defaultLedgerPath,
			PruneStale: true,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Output: Output{
			Format: defaultOutputFormat,
		},
	}
}
