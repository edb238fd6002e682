package viewport

import (
	"math"

	"go.uber.org/zap"

	"github.com/tzneal/vikcoord"
)

// Placement says how a projected coordinate relates to the view.
type Placement int

// Placements
const (
	// Visible means the pixel lies inside the view.
	Visible Placement = iota
	// Outside means the pixel is meaningful but beyond the view edges.
	Outside
	// WrongZone means the coordinate is in another UTM zone of a view that
	// spans a single zone. X and Y carry no meaning.
	WrongZone
)

func (p Placement) String() string {
	switch p {
	case Visible:
		return "visible"
	case Outside:
		return "outside"
	case WrongZone:
		return "wrong zone"
	}
	return "unknown"
}

// ScreenPos is the result of projecting a coordinate onto the view.
type ScreenPos struct {
	X, Y      int
	Placement Placement
}

// Valid reports whether X and Y hold a pixel position.
func (p ScreenPos) Valid() bool {
	return p.Placement != WrongZone
}

// scale of the KH and Mercator projections, map degrees per pixel per mpp
const khDegreesPerPixel = 180.0 / 65536 / 256

func (v *Viewport) azimuthal() azimuthal {
	return azimuthal{
		radii:  v.radii,
		refLon: v.center.LatLon.Lon,
		refLat: v.center.LatLon.Lat,
		scaleX: v.xmpp * AltiToMPP,
		scaleY: v.ympp * AltiToMPP,
		halfW:  v.width / 2,
		halfH:  v.height / 2,
	}
}

// googleRezoom recomputes the Google projection factors for the current
// scale.
func (v *Viewport) googleRezoom() {
	v.googleCalcX = v.googleZoomOneMPP * 65536.0 * 0.7716245833877 / v.xmpp
	v.googleCalcY = v.googleZoomOneMPP * 65536.0 / v.ympp
	v.googleRevX = 1 / v.googleCalcX
	v.googleRevY = 1 / v.googleCalcY
}

// ScreenToCoord returns the coordinate under pixel (x, y), in the active
// coordinate mode.
func (v *Viewport) ScreenToCoord(x, y int) vikcoord.Coord {
	halfW, halfH := v.width/2, v.height/2

	if v.coordMode == vikcoord.ModeUTM {
		center := v.center.UTM
		utm := vikcoord.UTMCoord{Zone: center.Zone, Letter: center.Letter}
		utm.Easting = float64(x-halfW)*v.xmpp + center.Easting

		// the point may fall a whole number of zones away from the center
		zoneDelta := 0
		if v.utmZoneWidth > 0 {
			zoneDelta = int(math.Floor((utm.Easting-vikcoord.EastingOffset)/v.utmZoneWidth + 0.5))
		}
		utm.Zone += zoneDelta
		utm.Easting -= float64(zoneDelta) * v.utmZoneWidth
		utm.Northing = float64(halfH-y)*v.ympp + center.Northing
		return vikcoord.NewUTMCoord(utm)
	}

	center := v.center.LatLon
	var ll vikcoord.LatLon
	switch v.drawMode {
	case DrawModeExpedia:
		ll.Lon, ll.Lat = v.azimuthal().reverse(x, y)
	case DrawModeGoogle:
		ll.Lon = float64(x-halfW)*v.googleRevX + center.Lon
		ll.Lat = float64(halfH-y)*v.googleRevY + center.Lat
	case DrawModeKH:
		ll.Lon = center.Lon + khDegreesPerPixel*v.xmpp*float64(x-halfW)
		ll.Lat = center.Lat + khDegreesPerPixel*v.ympp*float64(halfH-y)
	case DrawModeMercator:
		ll.Lon = center.Lon + khDegreesPerPixel*v.xmpp*float64(x-halfW)
		ll.Lat = vikcoord.DemercLat(vikcoord.MercLat(center.Lat) + khDegreesPerPixel*v.ympp*float64(halfH-y))
	}
	return vikcoord.NewLatLonCoord(ll)
}

// CoordToScreen projects a coordinate onto the view. A coordinate in the
// wrong representation is converted first; callers should not rely on that.
func (v *Viewport) CoordToScreen(c vikcoord.Coord) ScreenPos {
	if c.Mode != v.coordMode {
		v.log.Warn("converting coordinate to the viewport mode",
			zap.Stringer("coord_mode", c.Mode),
			zap.Stringer("viewport_mode", v.coordMode))
		c = c.Convert(v.coordMode)
	}

	halfW, halfH := float64(v.width/2), float64(v.height/2)
	var x, y float64

	if v.coordMode == vikcoord.ModeUTM {
		center := v.center.UTM
		utm := c.UTM
		if center.Zone != utm.Zone && v.oneUTMZone {
			return ScreenPos{Placement: WrongZone}
		}
		x = (utm.Easting-center.Easting)/v.xmpp + halfW -
			float64(center.Zone-utm.Zone)*v.utmZoneWidth/v.xmpp
		y = halfH - (utm.Northing-center.Northing)/v.ympp
		return v.place(x, y)
	}

	center := v.center.LatLon
	ll := c.LatLon
	switch v.drawMode {
	case DrawModeExpedia:
		x, y, _ = v.azimuthal().forward(ll.Lon, ll.Lat)
	case DrawModeGoogle:
		x = v.googleCalcX*(ll.Lon-center.Lon) + halfW
		y = v.googleCalcY*(center.Lat-ll.Lat) + halfH
	case DrawModeKH:
		x = halfW + (ll.Lon-center.Lon)/(khDegreesPerPixel*v.xmpp)
		y = halfH + (center.Lat-ll.Lat)/(khDegreesPerPixel*v.ympp)
	case DrawModeMercator:
		x = halfW + (ll.Lon-center.Lon)/(khDegreesPerPixel*v.xmpp)
		y = halfH + (vikcoord.MercLat(center.Lat)-vikcoord.MercLat(ll.Lat))/(khDegreesPerPixel*v.ympp)
	}
	return v.place(x, y)
}

func (v *Viewport) place(x, y float64) ScreenPos {
	p := ScreenPos{X: int(x), Y: int(y), Placement: Visible}
	if x < 0 || x >= float64(v.width) || y < 0 || y >= float64(v.height) {
		p.Placement = Outside
	}
	return p
}
