// Package config provides configuration management for pomo.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/xvierd/pomo/internal/domain"
)

// Config holds all configuration for the pomo application.
type Config struct {
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// TimerConfig holds pomodoro timer settings.
type TimerConfig struct {
	WorkDuration       Duration `mapstructure:"work_duration"`
	ShortBreak         Duration `mapstructure:"short_break"`
	LongBreak          Duration `mapstructure:"long_break"`
	SessionsBeforeLong int      `mapstructure:"sessions_before_long"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds theme customization settings.
type ThemeConfig struct {
	ColorWork   string `mapstructure:"color_work"`
	ColorBreak  string `mapstructure:"color_break"`
	ColorPaused string `mapstructure:"color_paused"`
	ColorTitle  string `mapstructure:"color_title"`
	ColorTask   string `mapstructure:"color_task"`
	ColorHelp   string `mapstructure:"color_help"`
	IconApp     string `mapstructure:"icon_app"`
	IconTask    string `mapstructure:"icon_task"`
	IconStats   string `mapstructure:"icon_stats"`
	IconGit     string `mapstructure:"icon_git"`
	IconPaused  string `mapstructure:"icon_paused"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorWork:   "#E74C3C",
		ColorBreak:  "#4ECDC4",
		ColorPaused: "#6B7280",
		ColorTitle:  "#6B7280",
		ColorTask:   "#A0AEC0",
		ColorHelp:   "#95A5A6",
		IconApp:     "🍅",
		IconTask:    "📋",
		IconStats:   "📊",
		IconGit:     "🌿",
		IconPaused:  "⏸",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timer: TimerConfig{
			WorkDuration:       Duration(25 * time.Minute),
			ShortBreak:         Duration(5 * time.Minute),
			LongBreak:          Duration(15 * time.Minute),
			SessionsBeforeLong: 4,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Storage: StorageConfig{
			DataDir: "~/.pomodoro",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "~/.pomodoro"
	}
	if strings.HasPrefix(cfg.Storage.DataDir, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = expandHome(cfg.Storage.DataDir, homeDir)
	}

	return &cfg, nil
}

// expandHome resolves a leading ~ in path against the home directory.
func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("timer.work_duration", cfg.Timer.WorkDuration.String())
	viper.Set("timer.short_break", cfg.Timer.ShortBreak.String())
	viper.Set("timer.long_break", cfg.Timer.LongBreak.String())
	viper.Set("timer.sessions_before_long", cfg.Timer.SessionsBeforeLong)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("notifications.sound", cfg.Notifications.Sound)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.color_work", cfg.Theme.ColorWork)
	viper.Set("theme.color_break", cfg.Theme.ColorBreak)
	viper.Set("theme.color_paused", cfg.Theme.ColorPaused)
	viper.Set("theme.color_title", cfg.Theme.ColorTitle)
	viper.Set("theme.color_task", cfg.Theme.ColorTask)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)
	viper.Set("theme.icon_app", cfg.Theme.IconApp)
	viper.Set("theme.icon_task", cfg.Theme.IconTask)
	viper.Set("theme.icon_stats", cfg.Theme.IconStats)
	viper.Set("theme.icon_git", cfg.Theme.IconGit)
	viper.Set("theme.icon_paused", cfg.Theme.IconPaused)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomodoro", "config.toml"), nil
}

// GetTasksPath returns the path to the tasks file.
func GetTasksPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "tasks.json")
}

// GetStatsPath returns the path to the statistics file.
func GetStatsPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "stats.json")
}

// GetHistoryDBPath returns the path to the session history database.
func GetHistoryDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "history.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("timer.work_duration", "25m0s")
	viper.SetDefault("timer.short_break", "5m0s")
	viper.SetDefault("timer.long_break", "15m0s")
	viper.SetDefault("timer.sessions_before_long", 4)
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("notifications.sound", true)
	viper.SetDefault("storage.data_dir", "~/.pomodoro")

	defaults := DefaultThemeConfig()
	viper.SetDefault("theme.color_work", defaults.ColorWork)
	viper.SetDefault("theme.color_break", defaults.ColorBreak)
	viper.SetDefault("theme.color_paused", defaults.ColorPaused)
	viper.SetDefault("theme.color_title", defaults.ColorTitle)
	viper.SetDefault("theme.color_task", defaults.ColorTask)
	viper.SetDefault("theme.color_help", defaults.ColorHelp)
	viper.SetDefault("theme.icon_app", defaults.IconApp)
	viper.SetDefault("theme.icon_task", defaults.IconTask)
	viper.SetDefault("theme.icon_stats", defaults.IconStats)
	viper.SetDefault("theme.icon_git", defaults.IconGit)
	viper.SetDefault("theme.icon_paused", defaults.IconPaused)
}

// Durations converts the timer settings to engine durations, falling
// back to the standard values for anything unset or non-positive.
func (c *Config) Durations() domain.Durations {
	d := domain.DefaultDurations()
	if v := time.Duration(c.Timer.WorkDuration); v > 0 {
		d.Work = v
	}
	if v := time.Duration(c.Timer.ShortBreak); v > 0 {
		d.ShortBreak = v
	}
	if v := time.Duration(c.Timer.LongBreak); v > 0 {
		d.LongBreak = v
	}
	if c.Timer.SessionsBeforeLong > 0 {
		d.SessionsBeforeLong = c.Timer.SessionsBeforeLong
	}
	return d
}
