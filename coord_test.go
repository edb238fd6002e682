package vikcoord_test

import (
	"math"
	"testing"

	"github.com/tzneal/vikcoord"
)

func TestCoordConvert(t *testing.T) {
	ll := vikcoord.LatLon{Lat: 48.8583, Lon: 2.2945}
	c := vikcoord.NewLatLonCoord(ll)

	u := c.Convert(vikcoord.ModeUTM)
	if u.Mode != vikcoord.ModeUTM {
		t.Fatalf("expected utm mode, got %s", u.Mode)
	}
	if u.UTM.Zone != 31 || u.UTM.Letter != 'U' {
		t.Errorf("expected 31U, got %d%c", u.UTM.Zone, u.UTM.Letter)
	}

	back := u.Convert(vikcoord.ModeLatLon)
	if math.Abs(back.LatLon.Lat-ll.Lat) > 1e-9 || math.Abs(back.LatLon.Lon-ll.Lon) > 1e-9 {
		t.Errorf("expected %s, got %s", ll, back.LatLon)
	}

	if same := c.Convert(vikcoord.ModeLatLon); same != c {
		t.Errorf("converting to the same mode should be a no-op, got %v", same)
	}
}

func TestCoordFromHelpers(t *testing.T) {
	ll := vikcoord.LatLon{Lat: -33.8568, Lon: 151.2153}
	if c := vikcoord.CoordFromLatLon(vikcoord.ModeLatLon, ll); c.LatLon != ll {
		t.Errorf("expected %s, got %s", ll, c)
	}
	c := vikcoord.CoordFromLatLon(vikcoord.ModeUTM, ll)
	if c.Mode != vikcoord.ModeUTM || c.UTM.Zone != 56 {
		t.Fatalf("expected zone 56 utm coord, got %s", c)
	}
	if got := vikcoord.CoordFromUTM(vikcoord.ModeUTM, c.UTM); got != c {
		t.Errorf("expected %s, got %s", c, got)
	}
	got := vikcoord.CoordFromUTM(vikcoord.ModeLatLon, c.UTM)
	if math.Abs(got.LatLon.Lat-ll.Lat) > 1e-9 || math.Abs(got.LatLon.Lon-ll.Lon) > 1e-9 {
		t.Errorf("expected %s, got %s", ll, got)
	}
}

func TestMercatorLatitude(t *testing.T) {
	if got := vikcoord.MercLat(0); math.Abs(got) > 1e-12 {
		t.Errorf("expected 0, got %f", got)
	}
	for lat := -85.0; lat <= 85; lat += 2.5 {
		if got := vikcoord.DemercLat(vikcoord.MercLat(lat)); math.Abs(got-lat) > 1e-9 {
			t.Fatalf("round trip of %f gave %f", lat, got)
		}
	}
	if vikcoord.MercLat(60) <= 60 {
		t.Error("mercator ordinate should stretch high latitudes")
	}
}

func TestLatLonValid(t *testing.T) {
	if !(vikcoord.LatLon{Lat: 90, Lon: 720}).Valid() {
		t.Error("expected pole to be valid")
	}
	if (vikcoord.LatLon{Lat: 90.5}).Valid() {
		t.Error("expected latitude above 90 to be invalid")
	}
	if (vikcoord.LatLon{Lat: math.NaN()}).Valid() {
		t.Error("expected NaN to be invalid")
	}
}
