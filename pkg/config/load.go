package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SATURN_SECTION_FIELD (e.g., SATURN_MONITORING_MAX_AGE_DAYS) and
// always take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	// Defaults overrides
	if val := os.Getenv("SATURN_DEFAULTS_PROFILE_REF"); val != "" {
		cfg.Defaults.ProfileRef = val
	}

	// Profiles overrides
	if val := os.Getenv("SATURN_PROFILES_DIR"); val != "" {
		cfg.Profiles.Dir = val
	}
	if val := os.Getenv("SATURN_PROFILES_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Profiles.Watch = b
		}
	}

	// Mappings overrides
	if val := os.Getenv("SATURN_MAPPINGS_PATH"); val != "" {
		cfg.Mappings.Path = val
	}

	// Monitoring overrides
	if val := os.Getenv("SATURN_MONITORING_MAX_AGE_DAYS"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Monitoring.MaxAgeDays = f
		}
	}
	if val := os.Getenv("SATURN_MONITORING_RERUN_ON_VERDICT"); val != "" {
		parts := strings.Split(val, ",")
		verdicts := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				verdicts = append(verdicts, p)
			}
		}
		cfg.Monitoring.RerunOnVerdict = verdicts
	}
	if val := os.Getenv("SATURN_MONITORING_RERUN_ON_WARN"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Monitoring.RerunOnWarn = boolPtr(b)
		}
	}
	if val := os.Getenv("SATURN_MONITORING_CONCURRENCY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Monitoring.Concurrency = i
		}
	}
	if val := os.Getenv("SATURN_MONITORING_SCHEDULE"); val != "" {
		cfg.Monitoring.Schedule = val
	}
	if val := os.Getenv("SATURN_MONITORING_TARGETS_FILE"); val != "" {
		cfg.Monitoring.TargetsFile = val
	}

	// Escalation overrides
	if val := os.Getenv("SATURN_ESCALATION_HITL_ON_FAIL"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Escalation.HITLOnFail = boolPtr(b)
		}
	}
	if val := os.Getenv("SATURN_ESCALATION_HITL_ON_WARN"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Escalation.HITLOnWarn = boolPtr(b)
		}
	}

	// History overrides
	if val := os.Getenv("SATURN_HISTORY_BACKEND"); val != "" {
		cfg.History.Backend = val
	}
	if val := os.Getenv("SATURN_HISTORY_SQLITE_PATH"); val != "" {
		cfg.History.SQLite.Path = val
	}
	if val := os.Getenv("SATURN_HISTORY_SQLITE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.History.SQLite.BusyTimeout = d
		}
	}
	if val := os.Getenv("SATURN_HISTORY_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.History.RetentionDays = i
		}
	}

	// Telemetry overrides
	if val := os.Getenv("SATURN_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("SATURN_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("SATURN_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = boolPtr(b)
		}
	}
	if val := os.Getenv("SATURN_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
	if val := os.Getenv("SATURN_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
}
