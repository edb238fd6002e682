package config

import "flag"

// Flags are the command line overrides. Only flags given on the command
// line are applied.
type Flags struct {
	ConfigPath string

	fs       *flag.FlagSet
	debug    bool
	mode     string
	zoom     float64
	width    int
	height   int
	lat, lon float64
	engine   string
	metrics  bool
}

// RegisterFlags defines the config flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.mode, "mode", "", "Draw mode: utm, expedia, google, kh or mercator")
	fs.Float64Var(&f.zoom, "zoom", 0, "Map units per pixel")
	fs.IntVar(&f.width, "width", 0, "Viewport width in pixels")
	fs.IntVar(&f.height, "height", 0, "Viewport height in pixels")
	fs.Float64Var(&f.lat, "lat", 0, "Center latitude")
	fs.Float64Var(&f.lon, "lon", 0, "Center longitude")
	fs.StringVar(&f.engine, "engine", "", "Routing engine id")
	fs.BoolVar(&f.metrics, "metrics", false, "Print download metrics on exit")
	return f
}

func (f *Flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "debug":
			if f.debug {
				cfg.Logging.Level = "debug"
			}
		case "mode":
			cfg.Viewport.DrawMode = f.mode
		case "zoom":
			cfg.Viewport.Zoom = f.zoom
		case "width":
			cfg.Viewport.Width = f.width
		case "height":
			cfg.Viewport.Height = f.height
		case "lat":
			cfg.Viewport.CenterLat = f.lat
		case "lon":
			cfg.Viewport.CenterLon = f.lon
		case "engine":
			cfg.Routing.Default = f.engine
		case "metrics":
			cfg.Download.Metrics = f.metrics
		}
	})
}
