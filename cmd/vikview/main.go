// Command vikview projects coordinates through a map viewport and queries
// routing services from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/tzneal/vikcoord"
	"github.com/tzneal/vikcoord/download"
	"github.com/tzneal/vikcoord/internal/config"
	"github.com/tzneal/vikcoord/internal/logger"
	"github.com/tzneal/vikcoord/routing"
	"github.com/tzneal/vikcoord/viewport"
)

const usage = `usage: vikview [flags] <command> [args]

commands:
  project LAT LON              pixel of a position
  unproject X Y                position under a pixel
  zones                        UTM zones and bounds of the view
  convert LAT LON              UTM coordinate of a position
  route LAT1 LON1 LAT2 LON2    route between two positions as GeoJSON

flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "vikview:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("vikview", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	log := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, os.Stderr)
	defer logger.Sync()

	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}
	cmd, rest := fs.Arg(0), fs.Args()[1:]

	vp, err := newViewport(cfg, log)
	if err != nil {
		return err
	}

	switch cmd {
	case "project":
		ll, err := parseLatLon(rest)
		if err != nil {
			return err
		}
		pos := vp.CoordToScreen(vikcoord.CoordFromLatLon(vp.CoordMode(), ll))
		if !pos.Valid() {
			fmt.Fprintf(out, "%s: %s\n", ll, pos.Placement)
			return nil
		}
		fmt.Fprintf(out, "%d %d %s\n", pos.X, pos.Y, pos.Placement)
	case "unproject":
		if len(rest) != 2 {
			return errors.New("unproject needs X Y")
		}
		x, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("bad x: %w", err)
		}
		y, err := strconv.Atoi(rest[1])
		if err != nil {
			return fmt.Errorf("bad y: %w", err)
		}
		c := vp.ScreenToCoord(x, y)
		fmt.Fprintf(out, "%s\n%s\n", c, c.ToLatLon())
	case "zones":
		printZones(out, vp)
	case "convert":
		ll, err := parseLatLon(rest)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, vikcoord.LatLonToUTM(ll))
	case "route":
		return route(cfg, log, rest, out)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func newViewport(cfg *config.Config, log *zap.Logger) (*viewport.Viewport, error) {
	mode, err := viewport.ParseDrawMode(cfg.Viewport.DrawMode)
	if err != nil {
		return nil, err
	}
	vc := cfg.Viewport
	vp := viewport.New(vc.Width, vc.Height,
		viewport.WithLogger(log.Named("viewport")),
		viewport.WithGoogleZoomOneMPP(vc.GoogleZoomOneMPP),
		viewport.WithDrawMode(mode))
	vp.SetZoom(vc.Zoom)
	vp.SetCenterLatLon(vikcoord.LatLon{Lat: vc.CenterLat, Lon: vc.CenterLon})
	log.Debug("viewport ready",
		zap.Stringer("mode", mode),
		zap.Stringer("center", vp.Center().ToLatLon()),
		zap.Float64("mpp", vp.XMPP()))
	return vp, nil
}

func printZones(out io.Writer, vp *viewport.Viewport) {
	b := vp.Bounds()
	fmt.Fprintf(out, "bounds %.6f,%.6f %.6f,%.6f\n", b.Min.Lat(), b.Min.Lon(), b.Max.Lat(), b.Max.Lon())
	if vp.CoordMode() != vikcoord.ModeUTM {
		return
	}
	left, right := vp.LeftmostZone(), vp.RightmostZone()
	fmt.Fprintf(out, "zones %d-%d one-zone=%v width=%.3f\n", left, right, vp.IsOneZone(), vp.UTMZoneWidth())
	for z := left; z <= right; z++ {
		ul, br, _ := vp.CornersForZone(z)
		fmt.Fprintf(out, "zone %d ul %s br %s\n", z, ul, br)
	}
}

func parseLatLon(args []string) (vikcoord.LatLon, error) {
	if len(args) < 2 {
		return vikcoord.LatLon{}, errors.New("need LAT LON")
	}
	lat, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return vikcoord.LatLon{}, fmt.Errorf("bad latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return vikcoord.LatLon{}, fmt.Errorf("bad longitude: %w", err)
	}
	ll := vikcoord.LatLon{Lat: lat, Lon: lon}
	if !ll.Valid() {
		return ll, fmt.Errorf("position %s out of range", ll)
	}
	return ll, nil
}

func route(cfg *config.Config, log *zap.Logger, args []string, out io.Writer) error {
	if len(args) != 4 {
		return errors.New("route needs LAT1 LON1 LAT2 LON2")
	}
	start, err := parseLatLon(args[:2])
	if err != nil {
		return err
	}
	end, err := parseLatLon(args[2:])
	if err != nil {
		return err
	}

	reg, err := buildRegistry(cfg.Routing)
	if err != nil {
		return err
	}
	engine, err := reg.Default()
	if err != nil {
		return err
	}

	opts := []download.Option{
		download.WithLogger(log.Named("download")),
		download.WithSeedURL(cfg.Download.SeedURL),
		download.WithTimeout(cfg.Download.Timeout),
	}
	var promReg *prometheus.Registry
	if cfg.Download.Metrics {
		promReg = prometheus.NewRegistry()
		opts = append(opts, download.WithMetrics(download.NewMetrics(promReg)))
	}
	d := download.New(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("finding route", zap.String("engine", engine.ID()),
		zap.Stringer("start", start), zap.Stringer("end", end))
	line, err := routing.Find(ctx, engine, d, start, end)
	if promReg != nil {
		printMetrics(out, promReg)
	}
	if err != nil {
		return err
	}

	data, err := geojson.NewGeometry(line).MarshalJSON()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n", data)
	return nil
}

func buildRegistry(rc config.RoutingConfig) (*routing.Registry, error) {
	reg := routing.NewRegistry()
	for _, ec := range rc.Engines {
		var e routing.Engine
		switch ec.Kind {
		case "osrm":
			e = routing.NewOSRMEngine(ec.ID, ec.Label, ec.URL, ec.Profile)
		case "web":
			format := ec.Format
			if format == "" {
				format = routing.FormatGeoJSON
			}
			e = &routing.WebEngine{
				Base:           routing.Base{EngineID: ec.ID, EngineLabel: ec.Label, EngineFmt: format},
				URLBase:        ec.URL,
				StartFmt:       ec.StartFmt,
				StopFmt:        ec.StopFmt,
				Referer:        ec.Referer,
				FollowLocation: ec.FollowLocation,
			}
		default:
			return nil, fmt.Errorf("engine %q: unknown kind %q", ec.ID, ec.Kind)
		}
		if err := reg.Register(e); err != nil {
			return nil, err
		}
	}
	if rc.Default != "" {
		if err := reg.SetDefault(rc.Default); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func printMetrics(out io.Writer, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(out, "# %s%s %g\n", mf.GetName(), labels(m.GetLabel()), m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(out, "# %s count=%d sum=%g\n", mf.GetName(), h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}
}

func labels[L interface {
	GetName() string
	GetValue() string
}](ls []L) string {
	s := ""
	for _, l := range ls {
		s += fmt.Sprintf("{%s=%q}", l.GetName(), l.GetValue())
	}
	return s
}
