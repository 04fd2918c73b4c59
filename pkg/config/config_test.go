package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Profiles.Dir != DefaultProfilesDir {
		t.Errorf("profiles.dir = %q, want %q", cfg.Profiles.Dir, DefaultProfilesDir)
	}
	if cfg.Monitoring.MaxAgeDays != DefaultMaxAgeDays {
		t.Errorf("monitoring.max_age_days = %v, want %v", cfg.Monitoring.MaxAgeDays, DefaultMaxAgeDays)
	}
	if len(cfg.Monitoring.RerunOnVerdict) != 1 || cfg.Monitoring.RerunOnVerdict[0] != "fail" {
		t.Errorf("monitoring.rerun_on_verdict = %v, want [fail]", cfg.Monitoring.RerunOnVerdict)
	}
	if cfg.Monitoring.RerunOnWarn == nil || !*cfg.Monitoring.RerunOnWarn {
		t.Error("monitoring.rerun_on_warn default should be true")
	}
	if cfg.Monitoring.Concurrency != DefaultMonitoringConcurrency {
		t.Errorf("monitoring.concurrency = %d, want %d", cfg.Monitoring.Concurrency, DefaultMonitoringConcurrency)
	}
	if cfg.Escalation.HITLOnFail == nil || !*cfg.Escalation.HITLOnFail {
		t.Error("escalation.hitl_on_fail default should be true")
	}
	if cfg.Escalation.HITLOnWarn == nil || *cfg.Escalation.HITLOnWarn {
		t.Error("escalation.hitl_on_warn default should be false")
	}
	if cfg.History.Backend != HistoryBackendSQLite {
		t.Errorf("history.backend = %q, want %q", cfg.History.Backend, HistoryBackendSQLite)
	}
	if cfg.Telemetry.Metrics.Namespace != DefaultMetricsNamespace {
		t.Errorf("metrics.namespace = %q, want %q", cfg.Telemetry.Metrics.Namespace, DefaultMetricsNamespace)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	explicitFalse := false
	cfg := &Config{}
	cfg.Monitoring.MaxAgeDays = 30
	cfg.Monitoring.RerunOnWarn = &explicitFalse
	ApplyDefaults(cfg)

	if cfg.Monitoring.MaxAgeDays != 30 {
		t.Errorf("monitoring.max_age_days = %v, want 30", cfg.Monitoring.MaxAgeDays)
	}
	if *cfg.Monitoring.RerunOnWarn {
		t.Error("explicit rerun_on_warn=false was overwritten by default")
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
defaults:
  profile_ref: gdpr-baseline
monitoring:
  max_age_days: 14
  rerun_on_verdict:
    - fail
    - unknown
history:
  backend: memory
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Defaults.ProfileRef != "gdpr-baseline" {
		t.Errorf("defaults.profile_ref = %q, want %q", cfg.Defaults.ProfileRef, "gdpr-baseline")
	}
	if cfg.Monitoring.MaxAgeDays != 14 {
		t.Errorf("monitoring.max_age_days = %v, want 14", cfg.Monitoring.MaxAgeDays)
	}
	if len(cfg.Monitoring.RerunOnVerdict) != 2 {
		t.Errorf("monitoring.rerun_on_verdict = %v, want two entries", cfg.Monitoring.RerunOnVerdict)
	}
	if cfg.History.Backend != HistoryBackendMemory {
		t.Errorf("history.backend = %q, want %q", cfg.History.Backend, HistoryBackendMemory)
	}
	// Unset sections still get defaults.
	if cfg.Profiles.Dir != DefaultProfilesDir {
		t.Errorf("profiles.dir = %q, want default %q", cfg.Profiles.Dir, DefaultProfilesDir)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadConfig() error = nil, want error")
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	cfg.Monitoring.MaxAgeDays = -1
	cfg.Monitoring.Concurrency = 0
	cfg.History.Backend = "postgres"
	cfg.History.RetentionDays = -5

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() error = nil, want *ValidationError")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error type = %T, want ValidationError", err)
	}
	if len(verr.Errors) < 4 {
		t.Errorf("got %d field errors, want at least 4: %v", len(verr.Errors), verr)
	}

	msg := err.Error()
	for _, field := range []string{"monitoring.max_age_days", "monitoring.concurrency", "history.backend", "history.retention_days"} {
		if !strings.Contains(msg, field) {
			t.Errorf("error message missing field %q: %s", field, msg)
		}
	}
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
monitoring:
  max_age_days: 7
history:
  backend: memory
`)

	t.Setenv("SATURN_MONITORING_MAX_AGE_DAYS", "3.5")
	t.Setenv("SATURN_MONITORING_RERUN_ON_VERDICT", "fail, unknown")
	t.Setenv("SATURN_ESCALATION_HITL_ON_WARN", "true")
	t.Setenv("SATURN_DEFAULTS_PROFILE_REF", "ai-act-high-risk@1.0.0")

	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		t.Fatalf("LoadConfigWithEnvOverrides() error = %v", err)
	}

	if cfg.Monitoring.MaxAgeDays != 3.5 {
		t.Errorf("monitoring.max_age_days = %v, want 3.5", cfg.Monitoring.MaxAgeDays)
	}
	if len(cfg.Monitoring.RerunOnVerdict) != 2 || cfg.Monitoring.RerunOnVerdict[1] != "unknown" {
		t.Errorf("monitoring.rerun_on_verdict = %v, want [fail unknown]", cfg.Monitoring.RerunOnVerdict)
	}
	if cfg.Escalation.HITLOnWarn == nil || !*cfg.Escalation.HITLOnWarn {
		t.Error("escalation.hitl_on_warn override not applied")
	}
	if cfg.Defaults.ProfileRef != "ai-act-high-risk@1.0.0" {
		t.Errorf("defaults.profile_ref = %q, want override", cfg.Defaults.ProfileRef)
	}
}
