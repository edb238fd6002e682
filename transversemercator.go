package vikcoord

import (
	"errors"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// nTerms is the order of the Krueger series kept in n.
const nTerms = 4

// MapCoords is a projected easting/northing pair in meters.
type MapCoords struct {
	Easting  float64
	Northing float64
}

// TransverseMercator provides conversions between geodetic coordinates and
// Transverse Mercator projection coordinates on one central meridian.
type TransverseMercator struct {
	semiMajorAxis float64
	flattening    float64

	eps      float64 // eccentricity
	k0R4     float64 // scale factor * meridional isoperimetric radius
	k0R4inv  float64
	aCoeff   [nTerms]float64 // conformal sphere -> plane
	bCoeff   [nTerms]float64 // plane -> conformal sphere
	originLo float64         // central meridian, radians

	falseEasting  float64
	falseNorthing float64
	scaleFactor   float64
}

// NewTransverseMercator constructs a converter for the given ellipsoid and
// projection parameters. centralMeridian is in radians.
func NewTransverseMercator(semiMajorAxis, flattening, centralMeridian,
	falseEasting, falseNorthing, scaleFactor float64) (*TransverseMercator, error) {
	if semiMajorAxis <= 0 {
		return nil, errors.New("semi-major axis must be greater than zero")
	}
	if flattening <= 0 || 1/flattening < 150 {
		return nil, errors.New("inverse ellipsoid flattening out of range")
	}
	if centralMeridian < -math.Pi || centralMeridian > 2*math.Pi {
		return nil, errors.New("central meridian out of range")
	}
	if scaleFactor < 0.1 || scaleFactor > 10 {
		return nil, errors.New("scale factor out of range")
	}
	if centralMeridian > math.Pi {
		centralMeridian -= 2 * math.Pi
	}

	t := &TransverseMercator{
		semiMajorAxis: semiMajorAxis,
		flattening:    flattening,
		eps:           math.Sqrt(2*flattening - flattening*flattening),
		originLo:      centralMeridian,
		falseEasting:  falseEasting,
		falseNorthing: falseNorthing,
		scaleFactor:   scaleFactor,
	}

	// Helmert's n and the Krueger coefficients to fourth order.
	n := flattening / (2 - flattening)
	n2 := n * n
	n3 := n2 * n
	n4 := n3 * n

	t.aCoeff[0] = n/2 - 2*n2/3 + 5*n3/16 + 41*n4/180
	t.aCoeff[1] = 13*n2/48 - 3*n3/5 + 557*n4/1440
	t.aCoeff[2] = 61*n3/240 - 103*n4/140
	t.aCoeff[3] = 49561 * n4 / 161280

	t.bCoeff[0] = n/2 - 2*n2/3 + 37*n3/96 - n4/360
	t.bCoeff[1] = n2/48 + n3/15 - 437*n4/1440
	t.bCoeff[2] = 17*n3/480 - 37*n4/840
	t.bCoeff[3] = 4397 * n4 / 161280

	r4oa := (1 + n2/4 + n4/64) / (1 + n)
	t.k0R4 = r4oa * scaleFactor * semiMajorAxis
	t.k0R4inv = 1 / t.k0R4
	return t, nil
}

// CentralMeridian returns the central meridian in radians.
func (t *TransverseMercator) CentralMeridian() float64 {
	return t.originLo
}

// ConvertFromGeodetic projects a geodetic position. Positions more than 70
// degrees of longitude from the central meridian are rejected.
func (t *TransverseMercator) ConvertFromGeodetic(ll s2.LatLng) (MapCoords, error) {
	lat := ll.Lat.Radians()
	if !(lat >= -math.Pi/2 && lat <= math.Pi/2) {
		return MapCoords{}, errors.New("latitude out of range")
	}
	lng := ll.Lng.Radians()
	if !(lng >= -math.Pi && lng <= 2*math.Pi) {
		return MapCoords{}, errors.New("longitude out of range")
	}
	lambda := wrapPi(lng - t.originLo)
	if math.Abs(lambda) > 70*deg2Rad && math.Pi/2-math.Abs(lat) > 70*deg2Rad {
		return MapCoords{}, errors.New("longitude out of range")
	}
	e, n := t.forward(lat, lambda)
	return MapCoords{Easting: e, Northing: n}, nil
}

// ConvertToGeodetic inverts a projected position.
func (t *TransverseMercator) ConvertToGeodetic(mc MapCoords) (s2.LatLng, error) {
	if math.Abs(mc.Easting-t.falseEasting) > 20000000 {
		return s2.LatLng{}, errors.New("easting out of range")
	}
	if math.Abs(mc.Northing-t.falseNorthing) > 10000000 {
		return s2.LatLng{}, errors.New("northing out of range")
	}
	lat, lon := t.inverse(mc.Easting, mc.Northing)
	return s2.LatLng{Lat: s1.Angle(lat), Lng: s1.Angle(lon)}, nil
}

// forward takes latitude and longitude offset from the central meridian,
// both in radians, and returns easting and northing with false offsets applied.
func (t *TransverseMercator) forward(lat, lambda float64) (easting, northing float64) {
	sinPhi, cosPhi := math.Sincos(lat)
	sinLam, cosLam := math.Sincos(lambda)

	// geodetic -> conformal latitude
	p := math.Exp(t.eps * math.Atanh(t.eps*sinPhi))
	part1 := (1 + sinPhi) / p
	part2 := (1 - sinPhi) * p
	denom := part1 + part2
	cosChi := 2 * cosPhi / denom
	sinChi := (part1 - part2) / denom

	// spherical transverse Mercator
	u := math.Atanh(cosChi * sinLam)
	v := math.Atan2(sinChi, cosChi*cosLam)

	xStar, yStar := u, v
	for k := nTerms - 1; k >= 0; k-- {
		twoK := 2 * float64(k+1)
		xStar += t.aCoeff[k] * math.Sinh(twoK*u) * math.Cos(twoK*v)
		yStar += t.aCoeff[k] * math.Cosh(twoK*u) * math.Sin(twoK*v)
	}

	easting = t.k0R4*xStar + t.falseEasting
	northing = t.k0R4*yStar + t.falseNorthing
	return easting, northing
}

// inverse returns latitude and longitude in radians.
func (t *TransverseMercator) inverse(easting, northing float64) (lat, lon float64) {
	xStar := t.k0R4inv * (easting - t.falseEasting)
	yStar := t.k0R4inv * (northing - t.falseNorthing)

	u, v := xStar, yStar
	for k := nTerms - 1; k >= 0; k-- {
		twoK := 2 * float64(k+1)
		u -= t.bCoeff[k] * math.Sinh(twoK*xStar) * math.Cos(twoK*yStar)
		v -= t.bCoeff[k] * math.Cosh(twoK*xStar) * math.Sin(twoK*yStar)
	}

	coshU := math.Cosh(u)
	sinhU := math.Sinh(u)
	sinV, cosV := math.Sincos(v)

	var lambda float64
	if math.Abs(cosV) > 1e-12 || math.Abs(sinhU) > 1e-12 {
		lambda = math.Atan2(sinhU, cosV)
	}
	lat = geodeticLat(sinV/coshU, t.eps)
	lon = wrapPi(t.originLo + lambda)
	return lat, lon
}

// geodeticLat recovers geodetic latitude from the sine of the conformal
// latitude by fixed-point iteration.
func geodeticLat(sinChi, e float64) float64 {
	sOld := 1.0e99
	s := sinChi
	onePlus := 1 + sinChi
	oneMinus := 1 - sinChi
	for i := 0; i < 30; i++ {
		p := math.Exp(e * math.Atanh(e*s))
		pSq := p * p
		s = (onePlus*pSq - oneMinus) / (onePlus*pSq + oneMinus)
		if math.Abs(s-sOld) < 1.0e-12 {
			break
		}
		sOld = s
	}
	return math.Asin(s)
}

// wrapPi folds an angle in radians into (-Pi, Pi]. NaN and infinities
// come back as NaN.
func wrapPi(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
