package config

import "time"

// Default values for configuration fields.
const (
	// Profile registry defaults
	DefaultProfilesDir      = "./profiles"
	DefaultProfilesWatch    = false
	DefaultProfileMaxSize   = int64(1048576) // 1MB
	DefaultDebounceInterval = 100 * time.Millisecond

	// Mappings defaults
	DefaultMappingsPath = "./mappings.yaml"

	// Monitoring defaults
	DefaultMaxAgeDays            = 7.0
	DefaultRerunOnWarn           = true
	DefaultMonitoringConcurrency = 4

	// Escalation defaults
	DefaultHITLOnFail = true
	DefaultHITLOnWarn = false

	// History defaults
	DefaultHistoryBackend       = HistoryBackendSQLite
	DefaultHistorySQLitePath    = "data/history.db"
	DefaultHistoryMaxOpenConns  = 10
	DefaultHistoryMaxIdleConns  = 5
	DefaultHistoryBusyTimeout   = 5 * time.Second
	DefaultHistoryRetentionDays = 90

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "json"
	DefaultMetricsEnabled       = true
	DefaultMetricsNamespace     = "saturn"
	DefaultMetricsPath          = "/metrics"
	DefaultMetricsListenAddress = "127.0.0.1:9090"
)

// History backend names.
const (
	HistoryBackendSQLite = "sqlite"
	HistoryBackendMemory = "memory"
)

// DefaultRerunOnVerdict is the default set of verdicts that always trigger
// a monitoring re-run.
var DefaultRerunOnVerdict = []string{"fail"}

// ApplyDefaults fills in default values for any unset configuration fields.
// It modifies the configuration in place.
func ApplyDefaults(cfg *Config) {
	// Profiles
	if cfg.Profiles.Dir == "" {
		cfg.Profiles.Dir = DefaultProfilesDir
	}
	if cfg.Profiles.MaxFileSize <= 0 {
		cfg.Profiles.MaxFileSize = DefaultProfileMaxSize
	}
	if cfg.Profiles.DebounceInterval <= 0 {
		cfg.Profiles.DebounceInterval = DefaultDebounceInterval
	}

	// Mappings
	if cfg.Mappings.Path == "" {
		cfg.Mappings.Path = DefaultMappingsPath
	}

	// Monitoring
	if cfg.Monitoring.MaxAgeDays <= 0 {
		cfg.Monitoring.MaxAgeDays = DefaultMaxAgeDays
	}
	if cfg.Monitoring.RerunOnVerdict == nil {
		cfg.Monitoring.RerunOnVerdict = append([]string(nil), DefaultRerunOnVerdict...)
	}
	if cfg.Monitoring.RerunOnWarn == nil {
		cfg.Monitoring.RerunOnWarn = boolPtr(DefaultRerunOnWarn)
	}
	if cfg.Monitoring.Concurrency <= 0 {
		cfg.Monitoring.Concurrency = DefaultMonitoringConcurrency
	}

	// Escalation
	if cfg.Escalation.HITLOnFail == nil {
		cfg.Escalation.HITLOnFail = boolPtr(DefaultHITLOnFail)
	}
	if cfg.Escalation.HITLOnWarn == nil {
		cfg.Escalation.HITLOnWarn = boolPtr(DefaultHITLOnWarn)
	}

	// History
	if cfg.History.Backend == "" {
		cfg.History.Backend = DefaultHistoryBackend
	}
	if cfg.History.SQLite.Path == "" {
		cfg.History.SQLite.Path = DefaultHistorySQLitePath
	}
	if cfg.History.SQLite.MaxOpenConns <= 0 {
		cfg.History.SQLite.MaxOpenConns = DefaultHistoryMaxOpenConns
	}
	if cfg.History.SQLite.MaxIdleConns <= 0 {
		cfg.History.SQLite.MaxIdleConns = DefaultHistoryMaxIdleConns
	}
	if cfg.History.SQLite.BusyTimeout <= 0 {
		cfg.History.SQLite.BusyTimeout = DefaultHistoryBusyTimeout
	}
	if cfg.History.RetentionDays == 0 {
		cfg.History.RetentionDays = DefaultHistoryRetentionDays
	}

	// Telemetry
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Enabled == nil {
		cfg.Telemetry.Metrics.Enabled = boolPtr(DefaultMetricsEnabled)
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
}

// DefaultConfig returns a configuration populated entirely with defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

func boolPtr(b bool) *bool {
	return &b
}
