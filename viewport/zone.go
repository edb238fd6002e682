package viewport

import (
	"math"

	"github.com/tzneal/vikcoord"
)

// computeUTMZoneWidth measures one zone at the latitude of the bottom edge
// of the view: twice the distance from the central meridian to the zone's
// western boundary.
func (v *Viewport) computeUTMZoneWidth() float64 {
	if v.coordMode != vikcoord.ModeUTM {
		return 0
	}
	utm := v.center.UTM
	utm.Northing -= float64(v.height) * v.ympp / 2
	ll := vikcoord.UTMToLatLon(utm)

	ll.Lon = vikcoord.ZoneBoundary(utm.Zone)
	utm = vikcoord.LatLonToUTM(ll)
	return math.Abs(utm.Easting-vikcoord.EastingOffset) * 2
}

// utmZoneCheck moves a center that has drifted over a zone boundary into
// the zone it now lies in, then refreshes the zone width and one-zone flag.
// It must run after every change of center, scale or size in UTM mode.
func (v *Viewport) utmZoneCheck() {
	if v.coordMode != vikcoord.ModeUTM {
		return
	}
	utm := vikcoord.LatLonToUTM(vikcoord.UTMToLatLon(v.center.UTM))
	if utm.Zone != v.center.UTM.Zone {
		v.center = vikcoord.NewUTMCoord(utm)
	}

	v.utmZoneWidth = v.computeUTMZoneWidth()
	v.oneUTMZone = v.RightmostZone() == v.LeftmostZone()
}

// LeftmostZone returns the UTM zone at the left edge of the view, or 0
// outside UTM mode.
func (v *Viewport) LeftmostZone() int {
	if v.coordMode != vikcoord.ModeUTM {
		return 0
	}
	return v.ScreenToCoord(0, 0).UTM.Zone
}

// RightmostZone returns the UTM zone at the right edge of the view, or 0
// outside UTM mode.
func (v *Viewport) RightmostZone() int {
	if v.coordMode != vikcoord.ModeUTM {
		return 0
	}
	return v.ScreenToCoord(v.width, 0).UTM.Zone
}

// IsOneZone reports whether the whole view lies in a single UTM zone.
func (v *Viewport) IsOneZone() bool {
	return v.coordMode == vikcoord.ModeUTM && v.oneUTMZone
}

// CenterForZone expresses the current center relative to another zone by
// shifting its easting a whole number of zone widths. The view state is not
// changed. ok is false outside UTM mode.
func (v *Viewport) CenterForZone(zone int) (center vikcoord.UTMCoord, ok bool) {
	if v.coordMode != vikcoord.ModeUTM {
		return vikcoord.UTMCoord{}, false
	}
	center = v.center.UTM
	center.Easting -= float64(zone-center.Zone) * v.utmZoneWidth
	center.Zone = zone
	return center, true
}

// CornersForZone returns the upper-left and bottom-right corners of the view
// as it would be drawn in the given zone. ok is false outside UTM mode.
func (v *Viewport) CornersForZone(zone int) (ul, br vikcoord.UTMCoord, ok bool) {
	center, ok := v.CenterForZone(zone)
	if !ok {
		return vikcoord.UTMCoord{}, vikcoord.UTMCoord{}, false
	}
	halfH := v.ympp * float64(v.height) / 2
	halfW := v.xmpp * float64(v.width) / 2

	ul, br = center, center
	ul.Northing += halfH
	ul.Easting -= halfW
	br.Northing -= halfH
	br.Easting += halfW
	return ul, br, true
}
