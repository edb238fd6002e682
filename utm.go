package vikcoord

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// Hemisphere represents the hemisphere, north or south
type Hemisphere byte

// Hemisphere constants
const (
	HemisphereInvalid Hemisphere = iota
	HemisphereNorth
	HemisphereSouth
)

func (h Hemisphere) String() string {
	switch h {
	case HemisphereNorth:
		return "N"
	case HemisphereSouth:
		return "S"
	}
	return "?"
}

// EastingOffset is the false easting of every UTM zone.
const EastingOffset = 500000.0

const southFalseNorthing = 10000000.0

const (
	utmMinLat      = -80.5
	utmMaxLat      = 84.5
	utmMinEasting  = 100000.0
	utmMaxEasting  = 900000.0
	utmMinNorthing = 0.0
	utmMaxNorthing = 10000000.0
	utmScale       = 0.9996
)

// latitude bands from 80S northwards, 8 degrees each (X spans 12)
const bandLetters = "CDEFGHJKLMNPQRSTUVWX"

// UTMCoord is a UTM coordinate. Letter is the latitude band letter; letters
// from 'N' upwards are in the northern hemisphere.
type UTMCoord struct {
	Zone     int
	Letter   byte
	Easting  float64
	Northing float64
}

// Hemisphere derives the hemisphere from the band letter.
func (c UTMCoord) Hemisphere() Hemisphere {
	switch {
	case c.Letter >= 'N' && c.Letter <= 'Z':
		return HemisphereNorth
	case c.Letter >= 'A' && c.Letter < 'N':
		return HemisphereSouth
	}
	return HemisphereInvalid
}

func (c UTMCoord) String() string {
	return fmt.Sprintf("%d%c %.3f %.3f", c.Zone, c.Letter, c.Easting, c.Northing)
}

// UTM is a UTM coordinate converter
type UTM struct {
	semiMajorAxis float64
	flattening    float64
	utmOverride   int
	zones         [61]*TransverseMercator
}

// NewUTM constructs a new UTM converter for the WGS84 ellipsoid
func NewUTM() (*UTM, error) {
	return NewUTM2(6378137.0, 1/298.257223563, 0)
}

// NewUTM2 receives the ellipsoid parameters and UTM zone override parameter
// as inputs. override is the UTM override zone, 0 indicates no override.
func NewUTM2(semiMajorAxis, flattening float64, override int) (*UTM, error) {
	if semiMajorAxis <= 0 {
		return nil, errors.New("semi-major axis must be greater than zero")
	}
	if flattening <= 0 {
		return nil, errors.New("flattening must be greater than zero")
	}
	if invF := 1 / flattening; invF < 250 || invF > 350 {
		return nil, errors.New("inverse flattening must be between 250 and 350")
	}
	if override < 0 || override > 60 {
		return nil, errors.New("zone override out of range")
	}

	u := &UTM{
		semiMajorAxis: semiMajorAxis,
		flattening:    flattening,
		utmOverride:   override,
	}
	for zone := 1; zone <= 60; zone++ {
		var err error
		u.zones[zone], err = NewTransverseMercator(semiMajorAxis, flattening,
			centralMeridian(zone), EastingOffset, 0, utmScale)
		if err != nil {
			return nil, err
		}
	}
	return u, nil
}

// centralMeridian of a zone in radians.
func centralMeridian(zone int) float64 {
	return float64(6*zone-183) * deg2Rad
}

// ZoneBoundary returns the western boundary longitude of a zone in degrees.
func ZoneBoundary(zone int) float64 {
	return float64((zone-1)*6 - 180)
}

// normalizeZone folds any integer onto 1..60 so zones computed by offsetting
// across the antimeridian still resolve.
func normalizeZone(zone int) int {
	z := (zone - 1) % 60
	if z < 0 {
		z += 60
	}
	return z + 1
}

// zoneFor returns the UTM zone of a position, including the southern Norway
// and Svalbard exceptions. A NaN longitude falls in zone 1.
func zoneFor(lat, lon float64) int {
	if math.IsNaN(lon) {
		return 1
	}
	zone := int(math.Floor((lon+180)/6+1.0e-10)) + 1
	if zone > 60 || zone < 1 {
		zone = 1
	}
	switch {
	case lat >= 56 && lat < 64 && lon >= 3 && lon < 12:
		zone = 32
	case lat >= 72 && lon >= 0 && lon < 9:
		zone = 31
	case lat >= 72 && lon >= 9 && lon < 21:
		zone = 33
	case lat >= 72 && lon >= 21 && lon < 33:
		zone = 35
	case lat >= 72 && lon >= 33 && lon < 42:
		zone = 37
	}
	return zone
}

func bandLetter(lat float64) byte {
	if !(lat >= -80) {
		return 'C'
	}
	if lat >= 72 {
		return 'X'
	}
	return bandLetters[int((lat+80)/8)]
}

// normalizeLon folds degrees into [-180, 180).
func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// FromLatLon converts without range checks. Latitude is clamped to [-90, 90];
// longitude may be any value. Non-finite input does not panic but yields
// NaN easting and northing.
func (u *UTM) FromLatLon(ll LatLon) UTMCoord {
	lat := math.Max(-90, math.Min(90, ll.Lat))
	lon := normalizeLon(ll.Lon)
	zone := zoneFor(lat, lon)
	if u.utmOverride != 0 {
		zone = u.utmOverride
	}
	return u.project(lat, lon, zone)
}

func (u *UTM) project(lat, lon float64, zone int) UTMCoord {
	tm := u.zones[zone]
	easting, northing := tm.forward(lat*deg2Rad, wrapPi(lon*deg2Rad-tm.originLo))
	if lat < 0 {
		northing += southFalseNorthing
	}
	return UTMCoord{
		Zone:     zone,
		Letter:   bandLetter(lat),
		Easting:  easting,
		Northing: northing,
	}
}

// ToLatLon converts without range checks. Zones outside 1..60 wrap around
// the globe; northings outside the hemisphere are extrapolated.
func (u *UTM) ToLatLon(c UTMCoord) LatLon {
	northing := c.Northing
	if c.Hemisphere() == HemisphereSouth {
		northing -= southFalseNorthing
	}
	lat, lon := u.zones[normalizeZone(c.Zone)].inverse(c.Easting, northing)
	return LatLon{Lat: lat * rad2Deg, Lon: lon * rad2Deg}
}

// ConvertFromGeodetic converts geodetic (latitude and longitude) coordinates
// to UTM projection coordinates according to the current ellipsoid and UTM
// zone override parameters.
func (u *UTM) ConvertFromGeodetic(geodeticCoordinates s2.LatLng, utmZoneOverride int) (UTMCoord, error) {
	lat := geodeticCoordinates.Lat.Degrees()
	lon := geodeticCoordinates.Lng.Degrees()
	if !(lat >= utmMinLat && lat < utmMaxLat) {
		return UTMCoord{}, errors.New("latitude out of range")
	}
	if !(lon >= -180 && lon <= 360) {
		return UTMCoord{}, errors.New("longitude out of range")
	}
	if lat > -1.0e-9*rad2Deg && lat < 0 {
		lat = 0
	}
	lon = normalizeLon(lon)
	zone := zoneFor(lat, lon)

	// allow UTM zone override up to +/- one zone of the calculated zone
	override := utmZoneOverride
	if override == 0 {
		override = u.utmOverride
	}
	if override != 0 {
		switch {
		case zone == 1 && override == 60, zone == 60 && override == 1:
			zone = override
		case zone-1 <= override && override <= zone+1:
			zone = override
		default:
			return UTMCoord{}, errors.New("zone out of range")
		}
	}

	c := u.project(lat, lon, zone)
	if c.Easting < utmMinEasting || c.Easting > utmMaxEasting {
		return UTMCoord{}, errors.New("easting out of range")
	}
	if c.Northing < utmMinNorthing || c.Northing > utmMaxNorthing {
		return UTMCoord{}, errors.New("northing out of range")
	}
	return c, nil
}

// ConvertToGeodetic converts UTM projection coordinates to geodetic
// (latitude and longitude) coordinates, according to the current ellipsoid
// parameters.
func (u *UTM) ConvertToGeodetic(c UTMCoord) (s2.LatLng, error) {
	if c.Zone < 1 || c.Zone > 60 {
		return s2.LatLng{}, errors.New("zone out of range")
	}
	if c.Hemisphere() == HemisphereInvalid {
		return s2.LatLng{}, errors.New("hemisphere out of range")
	}
	if c.Easting < utmMinEasting || c.Easting > utmMaxEasting {
		return s2.LatLng{}, errors.New("easting out of range")
	}
	if c.Northing < utmMinNorthing || c.Northing > utmMaxNorthing {
		return s2.LatLng{}, errors.New("northing out of range")
	}

	ll := u.ToLatLon(c)
	if ll.Lat < utmMinLat || ll.Lat >= utmMaxLat {
		return s2.LatLng{}, errors.New("latitude out of range")
	}
	return ll.LatLng(), nil
}

// LatLonToUTM converts with the default WGS84 converter and never fails.
func LatLonToUTM(ll LatLon) UTMCoord {
	return DefaultUTMConverter.FromLatLon(ll)
}

// UTMToLatLon converts with the default WGS84 converter and never fails.
func UTMToLatLon(c UTMCoord) LatLon {
	return DefaultUTMConverter.ToLatLon(c)
}
