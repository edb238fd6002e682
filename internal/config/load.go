package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: VIKVIEW_VIEWPORT_ZOOM sets
// viewport.zoom.
const EnvPrefix = "VIKVIEW"

// Load builds the config with priority defaults < file < environment <
// flags. f may be nil.
func Load(f *Flags) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetConfigType("yaml")
	if f != nil && f.ConfigPath != "" {
		v.SetConfigFile(f.ConfigPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", f.ConfigPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("loading config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if f != nil {
		f.apply(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("viewport.width", d.Viewport.Width)
	v.SetDefault("viewport.height", d.Viewport.Height)
	v.SetDefault("viewport.draw_mode", d.Viewport.DrawMode)
	v.SetDefault("viewport.zoom", d.Viewport.Zoom)
	v.SetDefault("viewport.center_lat", d.Viewport.CenterLat)
	v.SetDefault("viewport.center_lon", d.Viewport.CenterLon)
	v.SetDefault("viewport.google_zoom_one_mpp", d.Viewport.GoogleZoomOneMPP)
	v.SetDefault("download.seed_url", d.Download.SeedURL)
	v.SetDefault("download.timeout", d.Download.Timeout)
	v.SetDefault("download.metrics", d.Download.Metrics)
	v.SetDefault("routing.default", d.Routing.Default)
	v.SetDefault("routing.engines", d.Routing.Engines)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.log_file", d.Logging.LogFile)
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "vikview")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vikview")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "vikview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "vikview")
	}
}
