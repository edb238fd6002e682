package vikcoord

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const (
	deg2Rad = math.Pi / 180.0
	rad2Deg = 180.0 / math.Pi
)

// LatLon is a geodetic position in decimal degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// LatLonFromS2 converts an s2.LatLng to decimal degrees.
func LatLonFromS2(ll s2.LatLng) LatLon {
	return LatLon{Lat: ll.Lat.Degrees(), Lon: ll.Lng.Degrees()}
}

// LatLng returns the position as an s2.LatLng.
func (ll LatLon) LatLng() s2.LatLng {
	return s2.LatLng{Lat: s1.Angle(ll.Lat * deg2Rad), Lng: s1.Angle(ll.Lon * deg2Rad)}
}

// Valid reports whether the latitude lies in [-90, 90] and both values are finite.
func (ll LatLon) Valid() bool {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lon) || math.IsInf(ll.Lon, 0) {
		return false
	}
	return ll.Lat >= -90 && ll.Lat <= 90
}

func (ll LatLon) String() string {
	return fmt.Sprintf("%.6f,%.6f", ll.Lat, ll.Lon)
}

// MercLat maps a latitude in degrees onto the Mercator ordinate, also in degrees.
func MercLat(lat float64) float64 {
	return rad2Deg * math.Log(math.Tan(0.25*math.Pi+0.5*deg2Rad*lat))
}

// DemercLat is the inverse of MercLat.
func DemercLat(y float64) float64 {
	return rad2Deg * math.Atan(math.Sinh(deg2Rad*y))
}
