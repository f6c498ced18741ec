// Package config loads application configuration from the XDG config
// directory and the environment.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Source SourceConfig
	UI     UIConfig
	Store  StoreConfig
	Log    LogConfig
}

// SourceConfig holds default transform selections.
type SourceConfig struct {
	Platform string
	Variant  string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Accent     string
	ShowKeyIDs bool `mapstructure:"show_key_ids"`
}

// StoreConfig holds recents-database settings.
type StoreConfig struct {
	Path string
}

// LogConfig holds log-file settings. The TUI owns the terminal, so logs
// always go to a file.
type LogConfig struct {
	Path string
}

// Load reads configuration from file and env. Env var overrides use
// prefix KBPREVIEW_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("source.platform", "macos")
	v.SetDefault("source.variant", "")
	v.SetDefault("ui.accent", "#89b4fa")
	v.SetDefault("ui.show_key_ids", false)
	v.SetDefault("store.path", filepath.Join(xdg.DataHome, "kbpreview", "recents.db"))
	v.SetDefault("log.path", filepath.Join(xdg.StateHome, "kbpreview", "kbpreview.log"))

	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, "kbpreview"))
	v.SetConfigName("config")

	v.SetEnvPrefix("KBPREVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
