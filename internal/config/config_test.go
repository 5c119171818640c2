package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
filesystems:
  - device: /dev/sda1
    mountpoint: /
    type: ext4
  - device: ""
    mountpoint: /run
    type: tmpfs
scan:
  interval: 2m
  probe_timeout: 10s
retention:
  max_age: 168h
http:
  bind_addr: 127.0.0.1:9090
  admin_username: admin
  admin_password: secret
logging:
  level: debug
  format: console
database:
  path: /tmp/fscap.db
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Filesystems) != 2 {
		t.Fatalf("got %d filesystems, want 2", len(cfg.Filesystems))
	}
	if cfg.Filesystems[0].Device != "/dev/sda1" || cfg.Filesystems[0].Type != "ext4" {
		t.Errorf("unexpected filesystem: %+v", cfg.Filesystems[0])
	}
	if cfg.Scan.GetInterval() != 2*time.Minute {
		t.Errorf("scan interval = %v, want 2m", cfg.Scan.GetInterval())
	}
	if cfg.Scan.GetProbeTimeout() != 10*time.Second {
		t.Errorf("probe timeout = %v, want 10s", cfg.Scan.GetProbeTimeout())
	}
	if cfg.Retention.GetMaxAge() != 168*time.Hour {
		t.Errorf("max age = %v, want 168h", cfg.Retention.GetMaxAge())
	}
	// Defaulted field
	if cfg.Retention.GetPruneInterval() != time.Hour {
		t.Errorf("prune interval = %v, want 1h", cfg.Retention.GetPruneInterval())
	}
	if cfg.HTTP.BindAddr != "127.0.0.1:9090" {
		t.Errorf("bind addr = %q", cfg.HTTP.BindAddr)
	}
	if cfg.HTTP.GetReadTimeout() != 30*time.Second {
		t.Errorf("read timeout = %v, want 30s default", cfg.HTTP.GetReadTimeout())
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Filesystems: []FilesystemConfig{
				{Device: "/dev/sda1", Mountpoint: "/", Type: "ext4"},
			},
			Scan:      ScanConfig{Interval: "5m", ProbeTimeout: "30s"},
			Retention: RetentionConfig{MaxAge: "720h", PruneInterval: "1h"},
			Logging:   LoggingConfig{Level: "info", Format: "json"},
			Database:  DatabaseConfig{Path: "fscap.db"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{
			"no filesystems",
			func(c *Config) { c.Filesystems = nil },
			"at least one filesystem",
		},
		{
			"missing mountpoint",
			func(c *Config) { c.Filesystems[0].Mountpoint = "" },
			"mountpoint is required",
		},
		{
			"unknown type",
			func(c *Config) { c.Filesystems[0].Type = "btrfs" },
			"unknown filesystem kind",
		},
		{
			"missing device for tooled kind",
			func(c *Config) { c.Filesystems[0].Device = "" },
			"device is required",
		},
		{
			"tmpfs without device is fine",
			func(c *Config) {
				c.Filesystems[0] = FilesystemConfig{Mountpoint: "/run", Type: "tmpfs"}
			},
			"",
		},
		{
			"bad scan interval",
			func(c *Config) { c.Scan.Interval = "often" },
			"invalid scan.interval",
		},
		{
			"bad probe timeout",
			func(c *Config) { c.Scan.ProbeTimeout = "soonish" },
			"invalid scan.probe_timeout",
		},
		{
			"bad retention age",
			func(c *Config) { c.Retention.MaxAge = "forever" },
			"invalid retention.max_age",
		},
		{
			"missing database path",
			func(c *Config) { c.Database.Path = "" },
			"database.path is required",
		},
		{
			"bad log level",
			func(c *Config) { c.Logging.Level = "verbose" },
			"invalid logging.level",
		},
		{
			"bad log format",
			func(c *Config) { c.Logging.Format = "text" },
			"invalid logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}
