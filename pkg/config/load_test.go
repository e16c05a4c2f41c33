package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validConfig = `
targets:
  - name: nightly-backups
    paths:
      - /backups/nightly/*.tar.gz
    glob: true
    policy: "w,m,y"
    leeway: "1%"
    timestamp: mtime
    remove: true
schedule: "0 3 * * *"
metrics:
  enabled: true
history:
  enabled: true
  keep_runs: 500
`

func TestLoadConfigBytes_Valid(t *testing.T) {
	cfg, err := LoadConfigBytes([]byte(validConfig))
	if err != nil {
		t.Fatalf("LoadConfigBytes() failed: %v", err)
	}

	if len(cfg.Targets) != 1 {
		t.Fatalf("len(Targets) = %d, want 1", len(cfg.Targets))
	}

	target := cfg.Targets[0]
	if target.Name != "nightly-backups" {
		t.Errorf("Target.Name = %q, want %q", target.Name, "nightly-backups")
	}
	if target.Policy != "w,m,y" {
		t.Errorf("Target.Policy = %q, want %q", target.Policy, "w,m,y")
	}
	if !target.Remove {
		t.Error("Target.Remove = false, want true")
	}
	if cfg.Schedule != "0 3 * * *" {
		t.Errorf("Schedule = %q, want %q", cfg.Schedule, "0 3 * * *")
	}
}

func TestLoadConfigBytes_Defaults(t *testing.T) {
	cfg, err := LoadConfigBytes([]byte(`
targets:
  - paths: ["/backups"]
`))
	if err != nil {
		t.Fatalf("LoadConfigBytes() failed: %v", err)
	}

	target := cfg.Targets[0]
	if target.Policy != DefaultPolicy {
		t.Errorf("Target.Policy = %q, want %q", target.Policy, DefaultPolicy)
	}
	if target.Leeway != DefaultLeeway {
		t.Errorf("Target.Leeway = %q, want %q", target.Leeway, DefaultLeeway)
	}
	if target.Timestamp != DefaultTimestamp {
		t.Errorf("Target.Timestamp = %q, want %q", target.Timestamp, DefaultTimestamp)
	}
	if cfg.Schedule != DefaultSchedule {
		t.Errorf("Schedule = %q, want %q", cfg.Schedule, DefaultSchedule)
	}
	if cfg.Metrics.ListenAddress != DefaultListenAddress {
		t.Errorf("Metrics.ListenAddress = %q, want %q", cfg.Metrics.ListenAddress, DefaultListenAddress)
	}
	if cfg.History.DBPath != DefaultDBPath {
		t.Errorf("History.DBPath = %q, want %q", cfg.History.DBPath, DefaultDBPath)
	}
	if cfg.Logging.Level != DefaultLogLevel {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, DefaultLogLevel)
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(validConfig), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if _, err := LoadConfig(path); err != nil {
		t.Errorf("LoadConfig() failed: %v", err)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadConfig() of missing file succeeded, want error")
	}
}

func TestLoadConfigBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no targets", `schedule: "0 3 * * *"`},
		{"no paths", `
targets:
  - name: empty
`},
		{"bad policy", `
targets:
  - paths: ["/backups"]
    policy: "m,w"
`},
		{"bad leeway", `
targets:
  - paths: ["/backups"]
    leeway: "150%"
`},
		{"bad timestamp source", `
targets:
  - paths: ["/backups"]
    timestamp: birthtime
`},
		{"pattern without layout", `
targets:
  - paths: ["/backups"]
    timestamp: pattern
`},
		{"bad schedule", `
targets:
  - paths: ["/backups"]
schedule: "not cron"
`},
		{"bad log level", `
targets:
  - paths: ["/backups"]
logging:
  level: loud
`},
		{"malformed yaml", `targets: [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfigBytes([]byte(tt.yaml)); err == nil {
				t.Errorf("LoadConfigBytes() succeeded, want error")
			}
		})
	}
}
