package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	SourceXMLCalendar = "xmlcalendar"
	SourceFile        = "file"
	SourceComposite   = "composite"
)

// Config represents application configuration
type Config struct {
	SettingsFile string         `mapstructure:"settings_file"`
	Progress     ProgressConfig `mapstructure:"progress"`
	Holidays     HolidaysConfig `mapstructure:"holidays"`
	Watch        WatchConfig    `mapstructure:"watch"`
	Log          LogConfig      `mapstructure:"log"`
}

// ProgressConfig represents progress classification thresholds
type ProgressConfig struct {
	OnTrackTolerance string `mapstructure:"on_track_tolerance"`
}

// HolidaysConfig represents where public holidays are imported from
type HolidaysConfig struct {
	Source   string `mapstructure:"source"` // "xmlcalendar", "file" or "composite"
	URL      string `mapstructure:"url"`    // must contain {year}
	File     string `mapstructure:"file"`
	CacheTTL string `mapstructure:"cache_ttl"`
}

// WatchConfig represents watch mode configuration
type WatchConfig struct {
	HoursFile      string `mapstructure:"hours_file"`
	CheckInterval  string `mapstructure:"check_interval"`
	SystemTray     bool   `mapstructure:"system_tray"`     // Show system tray icon (Windows only)
	ImportHolidays bool   `mapstructure:"import_holidays"` // Merge holidays.source into settings on every check
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("settings_file", "$HOME/.hours-pulse/settings.json")
	v.SetDefault("progress.on_track_tolerance", "30m")
	v.SetDefault("holidays.source", SourceXMLCalendar)
	v.SetDefault("holidays.url", "https://xmlcalendar.ru/data/ru/{year}/calendar.json")
	v.SetDefault("holidays.file", "holidays.txt")
	v.SetDefault("holidays.cache_ttl", "24h")
	v.SetDefault("watch.hours_file", "$HOME/.hours-pulse/hours.txt")
	v.SetDefault("watch.check_interval", "5m")
	v.SetDefault("watch.system_tray", false)
	v.SetDefault("watch.import_holidays", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file. Without an explicit path a missing
// config file is not an error and defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.hours-pulse")
		v.AddConfigPath("/etc/hours-pulse")
	}

	// Read environment variables, e.g. HOURS_PULSE_LOG_LEVEL
	v.SetEnvPrefix("hours_pulse")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.SettingsFile == "" {
		return fmt.Errorf("settings_file is required")
	}

	if c.Progress.OnTrackTolerance != "" {
		d, err := time.ParseDuration(c.Progress.OnTrackTolerance)
		if err != nil {
			return fmt.Errorf("progress.on_track_tolerance: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("progress.on_track_tolerance must not be negative")
		}
	}

	switch c.Holidays.Source {
	case SourceXMLCalendar:
		if !strings.Contains(c.Holidays.URL, "{year}") {
			return fmt.Errorf("holidays.url must contain {year}")
		}
	case SourceFile:
		if c.Holidays.File == "" {
			return fmt.Errorf("holidays.file is required for file source")
		}
	case SourceComposite:
		if !strings.Contains(c.Holidays.URL, "{year}") {
			return fmt.Errorf("holidays.url must contain {year}")
		}
		if c.Holidays.File == "" {
			return fmt.Errorf("holidays.file is required for composite source")
		}
	default:
		return fmt.Errorf("holidays.source must be '%s', '%s' or '%s', got '%s'",
			SourceXMLCalendar, SourceFile, SourceComposite, c.Holidays.Source)
	}

	if c.Watch.CheckInterval != "" {
		d, err := time.ParseDuration(c.Watch.CheckInterval)
		if err != nil {
			return fmt.Errorf("watch.check_interval: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("watch.check_interval must be positive")
		}
	}

	return nil
}

// GetOnTrackTolerance returns the on-track band. Default: 30m
func (c *ProgressConfig) GetOnTrackTolerance() time.Duration {
	if c.OnTrackTolerance == "" {
		return 30 * time.Minute
	}
	duration, err := time.ParseDuration(c.OnTrackTolerance)
	if err != nil || duration < 0 {
		return 30 * time.Minute
	}
	return duration
}

// GetCacheTTL returns cache TTL duration
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// GetCheckInterval returns watch check interval duration
func (c *WatchConfig) GetCheckInterval() time.Duration {
	if c.CheckInterval == "" {
		return 5 * time.Minute
	}
	duration, err := time.ParseDuration(c.CheckInterval)
	if err != nil || duration <= 0 {
		return 5 * time.Minute
	}
	return duration
}

// ExpandEnvVars expands environment variables in config paths
func (c *Config) ExpandEnvVars() {
	c.SettingsFile = expandPath(c.SettingsFile)
	c.Holidays.File = expandPath(c.Holidays.File)
	c.Watch.HoursFile = expandPath(c.Watch.HoursFile)
	c.Log.File = expandPath(c.Log.File)
}

func expandPath(p string) string {
	if p == "" {
		return p
	}
	return filepath.Clean(os.ExpandEnv(p))
}
