package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Alerts   AlertsConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path           string
	MigrationsPath string
	LogPath        string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme    string
	Zoom     string
	Operator string
}

// AlertsConfig tunes derived alert flags.
type AlertsConfig struct {
	LateAfterMinutes int
}

// Load reads configuration from file and env. Env var overrides use prefix COCKPIT_.
func Load() (Config, error) {
	v := viper.New()

	dataDir := filepath.Join(os.Getenv("HOME"), ".local", "share", "cockpit")

	// default values
	v.SetDefault("database.path", filepath.Join(dataDir, "cockpit.db"))
	v.SetDefault("database.migrations_path", "internal/database/migrations")
	v.SetDefault("database.log_path", filepath.Join(dataDir, "cockpit.log"))
	v.SetDefault("ui.theme", "DARK")
	v.SetDefault("ui.zoom", "NORMAL")
	v.SetDefault("ui.operator", "admin")
	v.SetDefault("alerts.late_after_minutes", 45)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("COCKPIT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "cockpit"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("COCKPIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Alerts.LateAfterMinutes <= 0 {
		c.Alerts.LateAfterMinutes = 45
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. The TUI uses it to persist theme/zoom choices.
func Save(cfg Config) error {
	path := os.Getenv("COCKPIT_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "cockpit", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations_path", cfg.Database.MigrationsPath)
	v.Set("database.log_path", cfg.Database.LogPath)
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("ui.zoom", cfg.UI.Zoom)
	v.Set("ui.operator", cfg.UI.Operator)
	v.Set("alerts.late_after_minutes", cfg.Alerts.LateAfterMinutes)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
