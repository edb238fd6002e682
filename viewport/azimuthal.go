package viewport

import "math"

// azimuthal holds the reference point and scale of the Expedia style
// local tangent plane projection.
type azimuthal struct {
	radii          *RadiusTable
	refLon, refLat float64
	scaleX, scaleY float64 // projected meters per pixel
	halfW, halfH   int
}

// forward maps lon/lat to a pixel offset. Both the radius and the parallel
// scale come from the reference latitude. The result is false when the pixel
// falls outside the map.
func (a azimuthal) forward(lon, lat float64) (x, y float64, ok bool) {
	ra := a.radii.At(a.refLat)
	dLon := a.refLon - lon

	x = ra * math.Cos(a.refLat*deg2Rad) * dLon
	y = ra * (a.refLat - lat)
	dif := ra * rad2Deg * (1 - math.Cos(deg2Rad*dLon))
	y += dif / 1.85
	x /= a.scaleX
	y /= a.scaleY
	x = float64(a.halfW) - x
	y += float64(a.halfH)

	ok = x >= 0 && x < float64(2*a.halfW) && y >= 0 && y < float64(2*a.halfH)
	return x, y, ok
}

// reverse maps a pixel offset back to lon/lat with a single curvature
// correction step.
func (a azimuthal) reverse(x, y int) (lon, lat float64) {
	ra := a.radii.At(a.refLat)
	px := float64(a.halfW-x) * a.scaleX
	py := float64(-a.halfH+y) * a.scaleY

	lat = a.refLat - py/ra
	lon = a.refLon - px/(ra*math.Cos(lat*deg2Rad))

	dif := lat * (1 - math.Cos(math.Abs(lon-a.refLon)*deg2Rad))
	lat -= dif / 1.5
	lon = a.refLon - px/(ra*math.Cos(lat*deg2Rad))
	return lon, lat
}
