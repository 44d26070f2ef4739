package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadCreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("first-run config mismatch (-want +got):\n%s", diff)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config perms = %o, want 600", perm)
	}
}

func TestLoadNormalizesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
log_level: loud
years:
  - year: 2025
    schedule: schedule-2025.yaml
    sessions: [sessions.yaml]
  - year: 2024
    schedule: https://example.com/schedule.yaml
    sessions: [sessions.yaml, fixed_sessions.yaml]
    workshops_only: true
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Listen != "127.0.0.1:8080" || cfg.LogLevel != "info" || cfg.ImageBase != "/static/img" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Years[0].Year != 2024 || cfg.Years[1].Year != 2025 {
		t.Fatalf("years not sorted: %+v", cfg.Years)
	}
	y, ok := cfg.Year(2024)
	if !ok || !y.WorkshopsOnly || len(y.Sessions) != 2 {
		t.Fatalf("Year(2024) = %+v, %v", y, ok)
	}
	if latest, _ := cfg.Latest(); latest.Year != 2025 {
		t.Fatalf("Latest() = %d", latest.Year)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		years []YearConfig
		want  string
	}{
		{"duplicate", []YearConfig{{Year: 2024, Schedule: "s", Sessions: []string{"a"}}, {Year: 2024, Schedule: "s", Sessions: []string{"a"}}}, "twice"},
		{"no schedule", []YearConfig{{Year: 2024, Sessions: []string{"a"}}}, "no schedule"},
		{"no sessions", []YearConfig{{Year: 2024, Schedule: "s"}}, "no session sources"},
		{"bad year", []YearConfig{{Schedule: "s", Sessions: []string{"a"}}}, "invalid year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Years = tt.years
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.BasicAuth = &BasicAuthConfig{Username: "admin", Password: "secret"}
	cfg.Years = []YearConfig{{Year: 2024, Schedule: "schedule.yaml", Sessions: []string{"sessions.yaml"}}}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
