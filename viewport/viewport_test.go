package viewport_test

import (
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tzneal/vikcoord"
	"github.com/tzneal/vikcoord/viewport"
)

func sameLatLon(a, b vikcoord.LatLon, tol float64) bool {
	return math.Abs(a.Lat-b.Lat) <= tol && math.Abs(a.Lon-b.Lon) <= tol
}

func TestNewDefaults(t *testing.T) {
	v := viewport.New(800, 600)
	if v.DrawMode() != viewport.DrawModeUTM || v.CoordMode() != vikcoord.ModeUTM {
		t.Fatalf("expected UTM mode, got %s/%s", v.DrawMode(), v.CoordMode())
	}
	if v.XMPP() != 4 || v.YMPP() != 4 || v.Zoom() != 4 {
		t.Fatalf("expected 4 mpp, got %f %f", v.XMPP(), v.YMPP())
	}
	if v.UTMZoneWidth() <= 0 {
		t.Fatalf("expected the zone cache to be filled, got %f", v.UTMZoneWidth())
	}
	// the default center sits on the zone 30/31 boundary at the equator
	ll := v.Center().ToLatLon()
	if !sameLatLon(ll, vikcoord.LatLon{Lat: 0, Lon: 0}, 1e-4) {
		t.Fatalf("expected the center near 0,0, got %s", ll)
	}
}

func TestDrawModeNames(t *testing.T) {
	for _, m := range []viewport.DrawMode{
		viewport.DrawModeUTM, viewport.DrawModeExpedia, viewport.DrawModeGoogle,
		viewport.DrawModeKH, viewport.DrawModeMercator,
	} {
		got, err := viewport.ParseDrawMode(m.String())
		if err != nil || got != m {
			t.Fatalf("expected %s, got %s (%v)", m, got, err)
		}
	}
	if m, err := viewport.ParseDrawMode("Google"); err != nil || m != viewport.DrawModeGoogle {
		t.Fatalf("expected case insensitive parse, got %s (%v)", m, err)
	}
	if _, err := viewport.ParseDrawMode("lambert"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
}

func TestScreenCenterScenario(t *testing.T) {
	v := viewport.New(800, 600)
	v.SetCenterUTM(vikcoord.UTMCoord{Zone: 31, Letter: 'N', Easting: 166021, Northing: 0})
	v.SetZoom(4)

	want := vikcoord.UTMToLatLon(vikcoord.UTMCoord{Zone: 31, Letter: 'N', Easting: 166021, Northing: 0})
	got := v.ScreenToCoord(400, 300)
	if got.Mode != vikcoord.ModeUTM {
		t.Fatalf("expected a UTM coordinate, got %s", got.Mode)
	}
	if !sameLatLon(got.ToLatLon(), want, 1e-6) {
		t.Fatalf("expected %s, got %s (%s)", want, got.ToLatLon(), got)
	}
	// the zone check moved the center into zone 30; the center pixel still
	// reports it unchanged
	if got.UTM != v.Center().UTM {
		t.Fatalf("expected %s, got %s", v.Center().UTM, got.UTM)
	}
}

func TestSetZoomClamp(t *testing.T) {
	v := viewport.New(800, 600)
	for _, bad := range []float64{0, viewport.MinZoom / 2, viewport.MaxZoom * 2, -1} {
		v.SetZoom(bad)
		if v.XMPP() != 4 || v.YMPP() != 4 {
			t.Fatalf("expected %f to be ignored, got %f %f", bad, v.XMPP(), v.YMPP())
		}
	}
	for _, good := range []float64{viewport.MinZoom, 1, 100, viewport.MaxZoom} {
		v.SetZoom(good)
		if v.XMPP() != good || v.YMPP() != good {
			t.Fatalf("expected %f, got %f %f", good, v.XMPP(), v.YMPP())
		}
	}
}

func TestZoomBounds(t *testing.T) {
	v := viewport.New(800, 600, viewport.WithDrawMode(viewport.DrawModeKH))
	for i := 0; i < 40; i++ {
		v.ZoomIn()
		if v.XMPP() < viewport.MinZoom || v.YMPP() < viewport.MinZoom {
			t.Fatalf("zoomed in past the minimum: %f", v.XMPP())
		}
	}
	if v.XMPP() != viewport.MinZoom {
		t.Fatalf("expected to stop at %f, got %f", viewport.MinZoom, v.XMPP())
	}
	for i := 0; i < 40; i++ {
		v.ZoomOut()
		if v.XMPP() > viewport.MaxZoom || v.YMPP() > viewport.MaxZoom {
			t.Fatalf("zoomed out past the maximum: %f", v.XMPP())
		}
	}
	if v.XMPP() != viewport.MaxZoom {
		t.Fatalf("expected to stop at %f, got %f", viewport.MaxZoom, v.XMPP())
	}
}

func TestSetAxisScale(t *testing.T) {
	v := viewport.New(800, 600)
	v.SetXMPP(8)
	v.SetYMPP(2)
	v.SetYMPP(viewport.MaxZoom * 4)
	if v.XMPP() != 8 || v.YMPP() != 2 {
		t.Fatalf("expected 8/2, got %f/%f", v.XMPP(), v.YMPP())
	}
	if v.Zoom() != 0 {
		t.Fatalf("expected no common zoom, got %f", v.Zoom())
	}
}

func TestGoogleZoomInDoublesFactors(t *testing.T) {
	v := viewport.New(800, 600, viewport.WithDrawMode(viewport.DrawModeGoogle))
	v.SetCenterLatLon(vikcoord.LatLon{Lat: 48.85, Lon: 2.35})
	v.SetZoom(64)
	fx, fy := v.GoogleFactors()
	if fx <= 0 || fy <= 0 {
		t.Fatalf("expected factors to be computed, got %f %f", fx, fy)
	}
	for i := 0; i < 2; i++ {
		v.ZoomIn()
		nx, ny := v.GoogleFactors()
		if nx != fx*2 || ny != fy*2 {
			t.Fatalf("zoom in %d: expected %f %f, got %f %f", i, fx*2, fy*2, nx, ny)
		}
		fx, fy = nx, ny
	}
}

func TestGoogleZoomOneMPP(t *testing.T) {
	a := viewport.New(800, 600, viewport.WithDrawMode(viewport.DrawModeGoogle))
	b := viewport.New(800, 600, viewport.WithDrawMode(viewport.DrawModeGoogle),
		viewport.WithGoogleZoomOneMPP(4))
	ax, ay := a.GoogleFactors()
	bx, by := b.GoogleFactors()
	if bx != ax*2 || by != ay*2 {
		t.Fatalf("expected doubled factors, got %f %f vs %f %f", bx, by, ax, ay)
	}
}

func TestScreenRoundTrip(t *testing.T) {
	centers := []vikcoord.LatLon{
		{Lat: 45, Lon: 9},
		{Lat: -33.9, Lon: 18.4},
		{Lat: 60.2, Lon: 24.9},
		{Lat: 0.5, Lon: -78.5},
	}
	modes := []struct {
		mode viewport.DrawMode
		mpp  float64
	}{
		{viewport.DrawModeUTM, 4},
		{viewport.DrawModeExpedia, 2},
		{viewport.DrawModeGoogle, 64},
		{viewport.DrawModeKH, 16},
		{viewport.DrawModeMercator, 16},
	}
	for _, m := range modes {
		t.Run(m.mode.String(), func(t *testing.T) {
			for _, c := range centers {
				v := viewport.New(800, 600, viewport.WithDrawMode(m.mode))
				v.SetCenterLatLon(c)
				v.SetZoom(m.mpp)
				for x := 0; x < 800; x += 37 {
					for y := 0; y < 600; y += 29 {
						pos := v.CoordToScreen(v.ScreenToCoord(x, y))
						if !pos.Valid() {
							t.Fatalf("center %s: expected (%d,%d) to project, got %v", c, x, y, pos.Placement)
						}
						if abs(pos.X-x) > 1 || abs(pos.Y-y) > 1 {
							t.Fatalf("center %s: expected (%d,%d), got (%d,%d)", c, x, y, pos.X, pos.Y)
						}
					}
				}
			}
		})
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func TestCoordToScreenPlacement(t *testing.T) {
	v := viewport.New(800, 600, viewport.WithDrawMode(viewport.DrawModeKH))
	v.SetCenterLatLon(vikcoord.LatLon{Lat: 45, Lon: 9})
	pos := v.CoordToScreen(v.Center())
	if pos.X != 400 || pos.Y != 300 || pos.Placement != viewport.Visible {
		t.Fatalf("expected the center at (400,300), got %+v", pos)
	}
	pos = v.CoordToScreen(vikcoord.NewLatLonCoord(vikcoord.LatLon{Lat: 45, Lon: 20}))
	if pos.Placement != viewport.Outside || !pos.Valid() {
		t.Fatalf("expected an off screen pixel, got %+v", pos)
	}
}

func TestCoordToScreenConvertsMode(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	v := viewport.New(800, 600, viewport.WithDrawMode(viewport.DrawModeMercator),
		viewport.WithLogger(zap.New(core)))
	ll := vikcoord.LatLon{Lat: 45, Lon: 9}
	v.SetCenterLatLon(ll)
	if logs.Len() != 0 {
		t.Fatalf("expected no warnings before the mismatch, got %d", logs.Len())
	}

	pos := v.CoordToScreen(vikcoord.CoordFromLatLon(vikcoord.ModeUTM, ll))
	if abs(pos.X-400) > 1 || abs(pos.Y-300) > 1 {
		t.Fatalf("expected a UTM coordinate to be converted, got %+v", pos)
	}

	entries := logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if entries[0].Level != zap.WarnLevel {
		t.Errorf("expected a warn entry, got %s", entries[0].Level)
	}
	fields := entries[0].ContextMap()
	if fields["coord_mode"] != "utm" || fields["viewport_mode"] != "latlon" {
		t.Errorf("unexpected fields %v", fields)
	}

	v.CoordToScreen(vikcoord.NewLatLonCoord(ll))
	if logs.Len() != 0 {
		t.Errorf("expected no warning for a matching coordinate, got %d", logs.Len())
	}
}

func TestSetDrawModeConvertsCenter(t *testing.T) {
	v := viewport.New(800, 600)
	ll := vikcoord.LatLon{Lat: 51.5, Lon: -0.12}
	v.SetCenterLatLon(ll)
	if v.Center().Mode != vikcoord.ModeUTM {
		t.Fatalf("expected a UTM center, got %s", v.Center().Mode)
	}
	v.SetDrawMode(viewport.DrawModeExpedia)
	if v.Center().Mode != vikcoord.ModeLatLon {
		t.Fatalf("expected a lat/lon center, got %s", v.Center().Mode)
	}
	if !sameLatLon(v.Center().LatLon, ll, 1e-8) {
		t.Fatalf("expected %s, got %s", ll, v.Center().LatLon)
	}
	if v.UTMZoneWidth() != 0 || v.IsOneZone() || v.LeftmostZone() != 0 {
		t.Fatalf("expected no zone state outside UTM mode")
	}
	v.SetDrawMode(viewport.DrawModeUTM)
	if v.Center().UTM.Zone != 30 || v.UTMZoneWidth() <= 0 {
		t.Fatalf("expected zone 30 with a zone width, got %s %f", v.Center().UTM, v.UTMZoneWidth())
	}
}

func TestSetCenterScreen(t *testing.T) {
	for _, mode := range []viewport.DrawMode{viewport.DrawModeUTM, viewport.DrawModeGoogle, viewport.DrawModeExpedia} {
		v := viewport.New(800, 600, viewport.WithDrawMode(mode))
		v.SetCenterLatLon(vikcoord.LatLon{Lat: 45, Lon: 9})
		v.SetZoom(8)
		target := v.ScreenToCoord(500, 200).ToLatLon()
		v.SetCenterScreen(500, 200)
		if !sameLatLon(v.Center().ToLatLon(), target, 1e-6) {
			t.Fatalf("%s: expected %s, got %s", mode, target, v.Center().ToLatLon())
		}
	}
}

func TestBounds(t *testing.T) {
	v := viewport.New(800, 600, viewport.WithDrawMode(viewport.DrawModeKH))
	v.SetCenterLatLon(vikcoord.LatLon{Lat: 45, Lon: 9})
	v.SetZoom(256)
	b := v.Bounds()
	if !b.Contains([2]float64{9, 45}) {
		t.Fatalf("expected the bounds %v to contain the center", b)
	}
	if b.Left() >= 9 || b.Right() <= 9 || b.Bottom() >= 45 || b.Top() <= 45 {
		t.Fatalf("expected the center inside %v", b)
	}
}
