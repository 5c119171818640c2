package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/stratalab/fscap/internal/domain"
)

// Config represents the entire agent configuration
type Config struct {
	Filesystems []FilesystemConfig `mapstructure:"filesystems"`
	Scan        ScanConfig         `mapstructure:"scan"`
	Retention   RetentionConfig    `mapstructure:"retention"`
	HTTP        HTTPConfig         `mapstructure:"http"`
	Logging     LoggingConfig      `mapstructure:"logging"`
	Database    DatabaseConfig     `mapstructure:"database"`
}

// FilesystemConfig describes one filesystem to watch
type FilesystemConfig struct {
	Device     string `mapstructure:"device"`
	Mountpoint string `mapstructure:"mountpoint"`
	Type       string `mapstructure:"type"`
}

// ScanConfig contains capacity scan settings
type ScanConfig struct {
	Interval     string `mapstructure:"interval"`
	ProbeTimeout string `mapstructure:"probe_timeout"`
}

// RetentionConfig contains snapshot retention settings
type RetentionConfig struct {
	MaxAge        string `mapstructure:"max_age"`
	PruneInterval string `mapstructure:"prune_interval"`
}

// HTTPConfig contains HTTP server configuration
type HTTPConfig struct {
	BindAddr      string `mapstructure:"bind_addr"`
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
	ReadTimeout   string `mapstructure:"read_timeout"`
	WriteTimeout  string `mapstructure:"write_timeout"`
	IdleTimeout   string `mapstructure:"idle_timeout"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads configuration from the specified file path
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	// Set defaults
	viper.SetDefault("scan.interval", "5m")
	viper.SetDefault("scan.probe_timeout", "30s")
	viper.SetDefault("retention.max_age", "720h")
	viper.SetDefault("retention.prune_interval", "1h")
	viper.SetDefault("http.bind_addr", "0.0.0.0:8080")
	viper.SetDefault("http.admin_username", "")
	viper.SetDefault("http.admin_password", "")
	viper.SetDefault("http.read_timeout", "30s")
	viper.SetDefault("http.write_timeout", "30s")
	viper.SetDefault("http.idle_timeout", "60s")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("database.path", "fscap.db")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Filesystems) == 0 {
		return fmt.Errorf("at least one filesystem must be configured")
	}
	for i, fs := range c.Filesystems {
		if fs.Mountpoint == "" {
			return fmt.Errorf("filesystems[%d]: mountpoint is required", i)
		}
		kind, err := domain.ParseKind(fs.Type)
		if err != nil {
			return fmt.Errorf("filesystems[%d]: %w", i, err)
		}
		if kind.HasDiagnosticTool() && fs.Device == "" {
			return fmt.Errorf("filesystems[%d]: device is required for type %s", i, kind)
		}
	}

	// Validate intervals
	if _, err := time.ParseDuration(c.Scan.Interval); err != nil {
		return fmt.Errorf("invalid scan.interval: %w", err)
	}
	if _, err := time.ParseDuration(c.Scan.ProbeTimeout); err != nil {
		return fmt.Errorf("invalid scan.probe_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.Retention.MaxAge); err != nil {
		return fmt.Errorf("invalid retention.max_age: %w", err)
	}
	if _, err := time.ParseDuration(c.Retention.PruneInterval); err != nil {
		return fmt.Errorf("invalid retention.prune_interval: %w", err)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	// Validate logging config
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
		// Valid formats
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

// GetInterval returns the scan interval as time.Duration
func (c *ScanConfig) GetInterval() time.Duration {
	d, _ := time.ParseDuration(c.Interval)
	if d == 0 {
		return 5 * time.Minute
	}
	return d
}

// GetProbeTimeout returns the per-probe timeout as time.Duration
func (c *ScanConfig) GetProbeTimeout() time.Duration {
	d, _ := time.ParseDuration(c.ProbeTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetMaxAge returns the snapshot retention age as time.Duration
func (c *RetentionConfig) GetMaxAge() time.Duration {
	d, _ := time.ParseDuration(c.MaxAge)
	if d == 0 {
		return 720 * time.Hour
	}
	return d
}

// GetPruneInterval returns the prune interval as time.Duration
func (c *RetentionConfig) GetPruneInterval() time.Duration {
	d, _ := time.ParseDuration(c.PruneInterval)
	if d == 0 {
		return time.Hour
	}
	return d
}

// GetReadTimeout returns the read timeout as time.Duration
func (c *HTTPConfig) GetReadTimeout() time.Duration {
	d, _ := time.ParseDuration(c.ReadTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetWriteTimeout returns the write timeout as time.Duration
func (c *HTTPConfig) GetWriteTimeout() time.Duration {
	d, _ := time.ParseDuration(c.WriteTimeout)
	if d == 0 {
		return 30 * time.Second
	}
	return d
}

// GetIdleTimeout returns the idle timeout as time.Duration
func (c *HTTPConfig) GetIdleTimeout() time.Duration {
	d, _ := time.ParseDuration(c.IdleTimeout)
	if d == 0 {
		return 60 * time.Second
	}
	return d
}
