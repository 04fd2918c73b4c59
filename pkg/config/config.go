package config

import "time"

// Config is the root configuration structure for Saturn.
// It contains all configuration sections for profile resolution, monitoring
// cadence, remediation escalation, evaluation history storage, and telemetry.
type Config struct {
	// Defaults contains global fallback settings such as the default
	// governance profile reference.
	Defaults DefaultsConfig `yaml:"defaults"`

	// Profiles contains configuration for the profile registry including
	// the profile directory and watch mode.
	Profiles ProfilesConfig `yaml:"profiles"`

	// Mappings contains the location of the policy mappings file that maps
	// use cases and system types to profile references.
	Mappings MappingsConfig `yaml:"mappings"`

	// Monitoring contains thresholds for the monitoring cadence planner.
	Monitoring MonitoringConfig `yaml:"monitoring"`

	// Escalation contains flags controlling human-in-the-loop escalation
	// in the remediation triage planner.
	Escalation EscalationConfig `yaml:"escalation"`

	// History contains configuration for the evaluation history store.
	History HistoryConfig `yaml:"history"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DefaultsConfig contains global fallback settings.
type DefaultsConfig struct {
	// ProfileRef is the profile reference used when neither a target
	// override nor a mappings entry resolves a profile.
	// Format: "<profile_id>@<version>" or a bare profile id.
	ProfileRef string `yaml:"profile_ref"`
}

// ProfilesConfig contains configuration for the profile registry.
type ProfilesConfig struct {
	// Dir is the directory containing profile YAML documents, one file
	// per profile named "<profile_id>.yaml".
	// Default: "./profiles"
	Dir string `yaml:"dir"`

	// Watch enables hot-reload of profile files via filesystem events.
	// Default: false
	Watch bool `yaml:"watch"`

	// MaxFileSize is the maximum profile file size in bytes.
	// Default: 1048576 (1MB)
	MaxFileSize int64 `yaml:"max_file_size"`

	// DebounceInterval is the quiet period before a reload is triggered
	// after file changes are detected.
	// Default: 100ms
	DebounceInterval time.Duration `yaml:"debounce_interval"`
}

// MappingsConfig contains the location of the policy mappings file.
type MappingsConfig struct {
	// Path is the path to the mappings YAML file. The file is optional;
	// when missing, an empty mappings table is used.
	// Default: "./mappings.yaml"
	Path string `yaml:"path"`
}

// MonitoringConfig contains thresholds for the monitoring cadence planner.
type MonitoringConfig struct {
	// MaxAgeDays is the maximum age of the last evaluation, in days,
	// before a re-run is required.
	// Default: 7
	MaxAgeDays float64 `yaml:"max_age_days"`

	// RerunOnVerdict lists verdicts that always trigger a re-run.
	// Matching is case-insensitive.
	// Default: ["fail"]
	RerunOnVerdict []string `yaml:"rerun_on_verdict"`

	// RerunOnWarn triggers a re-run when the last verdict was "warn".
	// Default: true
	RerunOnWarn *bool `yaml:"rerun_on_warn"`

	// Concurrency bounds the number of concurrent last-evaluation lookups
	// during a planning pass.
	// Default: 4
	Concurrency int `yaml:"concurrency"`

	// Schedule is a cron expression for continuous monitoring passes.
	// Empty disables the scheduler.
	Schedule string `yaml:"schedule"`

	// TargetsFile is the path to the YAML file listing monitoring targets
	// for scheduled passes.
	TargetsFile string `yaml:"targets_file"`
}

// EscalationConfig contains human-in-the-loop escalation flags.
type EscalationConfig struct {
	// HITLOnFail escalates findings with status "fail" to human review.
	// Default: true
	HITLOnFail *bool `yaml:"hitl_on_fail"`

	// HITLOnWarn escalates findings with status "warn" to human review.
	// Default: false
	HITLOnWarn *bool `yaml:"hitl_on_warn"`
}

// HistoryConfig contains configuration for the evaluation history store.
type HistoryConfig struct {
	// Backend selects the storage backend ("sqlite" or "memory").
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains settings for the SQLite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// RetentionDays is the number of days evaluation records are kept
	// before scheduled pruning removes them. Zero disables pruning.
	// Default: 90
	RetentionDays int `yaml:"retention_days"`
}

// SQLiteConfig contains settings for the SQLite history backend.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/history.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Default: true
	Enabled *bool `yaml:"enabled"`

	// Namespace is the metric namespace prefix.
	// Default: "saturn"
	Namespace string `yaml:"namespace"`

	// Path is the HTTP path where metrics are exposed.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// ListenAddress is the address for the metrics listener.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`
}
