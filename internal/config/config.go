// Package config loads the settings of the vikview command.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tzneal/vikcoord/viewport"
)

// Config holds all settings.
type Config struct {
	Viewport ViewportConfig `yaml:"viewport" mapstructure:"viewport"`
	Download DownloadConfig `yaml:"download" mapstructure:"download"`
	Routing  RoutingConfig  `yaml:"routing" mapstructure:"routing"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// ViewportConfig is the initial view.
type ViewportConfig struct {
	Width            int     `yaml:"width" mapstructure:"width"`
	Height           int     `yaml:"height" mapstructure:"height"`
	DrawMode         string  `yaml:"draw_mode" mapstructure:"draw_mode"`
	Zoom             float64 `yaml:"zoom" mapstructure:"zoom"`
	CenterLat        float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon        float64 `yaml:"center_lon" mapstructure:"center_lon"`
	GoogleZoomOneMPP float64 `yaml:"google_zoom_one_mpp" mapstructure:"google_zoom_one_mpp"`
}

// DownloadConfig tunes the HTTP downloader.
type DownloadConfig struct {
	SeedURL string        `yaml:"seed_url" mapstructure:"seed_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Metrics bool          `yaml:"metrics" mapstructure:"metrics"`
}

// RoutingConfig lists the routing services.
type RoutingConfig struct {
	Default string         `yaml:"default" mapstructure:"default"`
	Engines []EngineConfig `yaml:"engines" mapstructure:"engines"`
}

// EngineConfig describes one routing service. Kind is "osrm" or "web".
type EngineConfig struct {
	ID             string `yaml:"id" mapstructure:"id"`
	Label          string `yaml:"label" mapstructure:"label"`
	Kind           string `yaml:"kind" mapstructure:"kind"`
	URL            string `yaml:"url" mapstructure:"url"`
	Profile        string `yaml:"profile,omitempty" mapstructure:"profile"`
	Format         string `yaml:"format,omitempty" mapstructure:"format"`
	StartFmt       string `yaml:"start_fmt,omitempty" mapstructure:"start_fmt"`
	StopFmt        string `yaml:"stop_fmt,omitempty" mapstructure:"stop_fmt"`
	Referer        string `yaml:"referer,omitempty" mapstructure:"referer"`
	FollowLocation int    `yaml:"follow_location,omitempty" mapstructure:"follow_location"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" mapstructure:"level"`
	LogFile string `yaml:"log_file" mapstructure:"log_file"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:            800,
			Height:           600,
			DrawMode:         viewport.DrawModeUTM.String(),
			Zoom:             4,
			CenterLat:        0,
			CenterLon:        0,
			GoogleZoomOneMPP: viewport.DefaultGoogleZoomOneMPP,
		},
		Download: DownloadConfig{
			SeedURL: "http://maps.google.com/",
			Timeout: 60 * time.Second,
		},
		Routing: RoutingConfig{
			Default: "osrm",
			Engines: []EngineConfig{{
				ID:      "osrm",
				Label:   "OSRM demo server",
				Kind:    "osrm",
				URL:     "https://router.project-osrm.org",
				Profile: "driving",
			}},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Sprintf("viewport size must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height))
	}
	if _, err := viewport.ParseDrawMode(c.Viewport.DrawMode); err != nil {
		errs = append(errs, "viewport.draw_mode: "+err.Error())
	}
	if c.Viewport.Zoom < viewport.MinZoom || c.Viewport.Zoom > viewport.MaxZoom {
		errs = append(errs, fmt.Sprintf("viewport.zoom must be within %g-%g, got %g", viewport.MinZoom, viewport.MaxZoom, c.Viewport.Zoom))
	}
	if c.Viewport.CenterLat < -90 || c.Viewport.CenterLat > 90 {
		errs = append(errs, fmt.Sprintf("viewport.center_lat must be within -90-90, got %g", c.Viewport.CenterLat))
	}
	if c.Viewport.GoogleZoomOneMPP <= 0 {
		errs = append(errs, "viewport.google_zoom_one_mpp must be positive")
	}
	if c.Download.Timeout < 0 {
		errs = append(errs, "download.timeout must not be negative")
	}

	ids := make(map[string]bool)
	for i, e := range c.Routing.Engines {
		switch {
		case e.ID == "":
			errs = append(errs, fmt.Sprintf("routing.engines[%d].id is required", i))
		case ids[e.ID]:
			errs = append(errs, fmt.Sprintf("routing.engines[%d].id %q is duplicated", i, e.ID))
		}
		ids[e.ID] = true
		switch e.Kind {
		case "osrm":
		case "web":
			if e.URL == "" || e.StartFmt == "" || e.StopFmt == "" {
				errs = append(errs, fmt.Sprintf("routing.engines[%d] needs url, start_fmt and stop_fmt", i))
			}
		default:
			errs = append(errs, fmt.Sprintf("routing.engines[%d].kind must be osrm or web, got %q", i, e.Kind))
		}
	}
	if c.Routing.Default != "" && !ids[c.Routing.Default] {
		errs = append(errs, fmt.Sprintf("routing.default %q is not a configured engine", c.Routing.Default))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
