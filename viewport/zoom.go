package viewport

import (
	"github.com/tzneal/vikcoord"
)

func validMPP(mpp float64) bool {
	return mpp >= MinZoom && mpp <= MaxZoom
}

// refresh brings the derived caches in line with the current center and
// scale.
func (v *Viewport) refresh() {
	switch v.drawMode {
	case DrawModeUTM:
		v.utmZoneCheck()
	case DrawModeGoogle:
		v.googleRezoom()
	}
}

// SetZoom sets both axes to mpp. Values outside [MinZoom, MaxZoom] are
// ignored.
func (v *Viewport) SetZoom(mpp float64) {
	if !validMPP(mpp) {
		return
	}
	v.xmpp, v.ympp = mpp, mpp
	v.refresh()
}

// ZoomIn halves the scale of both axes unless that would pass MinZoom.
func (v *Viewport) ZoomIn() {
	if v.xmpp >= MinZoom*2 && v.ympp >= MinZoom*2 {
		v.xmpp /= 2
		v.ympp /= 2
		v.refresh()
	}
}

// ZoomOut doubles the scale of both axes unless that would pass MaxZoom.
func (v *Viewport) ZoomOut() {
	if v.xmpp <= MaxZoom/2 && v.ympp <= MaxZoom/2 {
		v.xmpp *= 2
		v.ympp *= 2
		v.refresh()
	}
}

// SetXMPP sets the horizontal scale alone. Values out of range are ignored.
func (v *Viewport) SetXMPP(mpp float64) {
	if !validMPP(mpp) {
		return
	}
	v.xmpp = mpp
	v.refresh()
}

// SetYMPP sets the vertical scale alone. Values out of range are ignored.
func (v *Viewport) SetYMPP(mpp float64) {
	if !validMPP(mpp) {
		return
	}
	v.ympp = mpp
	v.refresh()
}

// SetCenterLatLon moves the center to ll.
func (v *Viewport) SetCenterLatLon(ll vikcoord.LatLon) {
	v.center = vikcoord.CoordFromLatLon(v.coordMode, ll)
	v.utmZoneCheck()
}

// SetCenterUTM moves the center to u.
func (v *Viewport) SetCenterUTM(u vikcoord.UTMCoord) {
	v.center = vikcoord.CoordFromUTM(v.coordMode, u)
	v.utmZoneCheck()
}

// SetCenterCoord moves the center to c, converting it to the active
// representation.
func (v *Viewport) SetCenterCoord(c vikcoord.Coord) {
	v.center = c.Convert(v.coordMode)
	v.utmZoneCheck()
}

// SetCenterScreen moves the center to the coordinate under pixel (x, y).
func (v *Viewport) SetCenterScreen(x, y int) {
	if v.coordMode == vikcoord.ModeUTM {
		utm := v.center.UTM
		utm.Easting += v.xmpp * float64(x-v.width/2)
		utm.Northing += v.ympp * float64(v.height/2-y)
		v.center = vikcoord.NewUTMCoord(utm)
		v.utmZoneCheck()
		return
	}
	v.SetCenterCoord(v.ScreenToCoord(x, y))
}

// SetDrawMode switches the screen projection. The center is converted to
// the representation the new mode works in.
func (v *Viewport) SetDrawMode(m DrawMode) {
	v.drawMode = m
	v.coordMode = m.CoordMode()
	v.center = v.center.Convert(v.coordMode)
	if m != DrawModeUTM {
		v.utmZoneWidth = 0
		v.oneUTMZone = false
	}
	v.refresh()
}

// SetSize resizes the view to width x height pixels.
func (v *Viewport) SetSize(width, height int) {
	v.width, v.height = width, height
	v.refresh()
}
