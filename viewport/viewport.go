// Package viewport maps geographic coordinates onto the pixels of a map view
// and back, under several screen projections, and keeps the view state
// (center, scale, projection) consistent as it is panned and zoomed.
package viewport

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tzneal/vikcoord"
)

// DrawMode selects the screen projection.
type DrawMode int

// Draw modes
const (
	DrawModeUTM DrawMode = iota
	DrawModeExpedia
	DrawModeGoogle
	DrawModeKH
	DrawModeMercator
)

var drawModeNames = [...]string{"utm", "expedia", "google", "kh", "mercator"}

func (m DrawMode) String() string {
	if m >= 0 && int(m) < len(drawModeNames) {
		return drawModeNames[m]
	}
	return fmt.Sprintf("DrawMode(%d)", int(m))
}

// ParseDrawMode accepts the names returned by DrawMode.String, in any case.
func ParseDrawMode(s string) (DrawMode, error) {
	for i, name := range drawModeNames {
		if strings.EqualFold(s, name) {
			return DrawMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown draw mode %q", s)
}

// CoordMode returns the coordinate representation a draw mode works in.
func (m DrawMode) CoordMode() vikcoord.Mode {
	if m == DrawModeUTM {
		return vikcoord.ModeUTM
	}
	return vikcoord.ModeLatLon
}

const (
	// MinZoom and MaxZoom bound the map units per pixel on either axis.
	MinZoom = 1.0 / 32
	MaxZoom = 32768.0

	// AltiToMPP converts the zoom scale to meters per pixel for the
	// Expedia projection.
	AltiToMPP = 1.4017295

	// DefaultGoogleZoomOneMPP is the meters per pixel of the Google tile
	// layer at zoom level one.
	DefaultGoogleZoomOneMPP = 2.0

	defaultMPP = 4.0
)

// Viewport is the view state of one map view. It is not safe for concurrent
// use.
type Viewport struct {
	width, height int
	center        vikcoord.Coord
	coordMode     vikcoord.Mode
	drawMode      DrawMode
	xmpp, ympp    float64

	utmZoneWidth float64
	oneUTMZone   bool

	// conversion factors for the Google projection, refreshed on zoom
	googleZoomOneMPP float64
	googleCalcX      float64
	googleCalcY      float64
	googleRevX       float64
	googleRevY       float64

	radii *RadiusTable
	log   *zap.Logger
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(v *Viewport) {
		if l != nil {
			v.log = l
		}
	}
}

// WithRadiusTable shares an Earth radius table between viewports.
func WithRadiusTable(t *RadiusTable) Option {
	return func(v *Viewport) {
		if t != nil {
			v.radii = t
		}
	}
}

// WithGoogleZoomOneMPP overrides the tile layer's meters per pixel at zoom one.
func WithGoogleZoomOneMPP(mpp float64) Option {
	return func(v *Viewport) {
		if mpp > 0 {
			v.googleZoomOneMPP = mpp
		}
	}
}

// WithDrawMode starts the viewport in the given draw mode.
func WithDrawMode(m DrawMode) Option {
	return func(v *Viewport) {
		v.drawMode = m
	}
}

// New returns a width x height pixel viewport in UTM mode at 4 meters per
// pixel, centred on the equator at the western edge of zone 31.
func New(width, height int, opts ...Option) *Viewport {
	v := &Viewport{
		width:     width,
		height:    height,
		coordMode: vikcoord.ModeUTM,
		drawMode:  DrawModeUTM,
		xmpp:      defaultMPP,
		ympp:      defaultMPP,
		center: vikcoord.NewUTMCoord(vikcoord.UTMCoord{
			Zone:     31,
			Letter:   'N',
			Easting:  166021,
			Northing: 0,
		}),
		googleZoomOneMPP: DefaultGoogleZoomOneMPP,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.radii == nil {
		v.radii = NewRadiusTable()
	}
	if v.log == nil {
		v.log = zap.NewNop()
	}

	mode := v.drawMode
	v.drawMode = DrawModeUTM
	v.SetDrawMode(mode)
	return v
}

// Width returns the viewport width in pixels.
func (v *Viewport) Width() int { return v.width }

// Height returns the viewport height in pixels.
func (v *Viewport) Height() int { return v.height }

// Center returns the center in the active coordinate mode.
func (v *Viewport) Center() vikcoord.Coord { return v.center }

// CoordMode returns the active coordinate representation.
func (v *Viewport) CoordMode() vikcoord.Mode { return v.coordMode }

// DrawMode returns the active screen projection.
func (v *Viewport) DrawMode() DrawMode { return v.drawMode }

// XMPP returns the horizontal map units per pixel.
func (v *Viewport) XMPP() float64 { return v.xmpp }

// YMPP returns the vertical map units per pixel.
func (v *Viewport) YMPP() float64 { return v.ympp }

// Zoom returns the common scale of both axes, or 0 if they differ.
func (v *Viewport) Zoom() float64 {
	if v.xmpp == v.ympp {
		return v.xmpp
	}
	return 0
}

// UTMZoneWidth returns the projected width in meters of one UTM zone at the
// latitude of the bottom of the view. It is 0 outside UTM mode.
func (v *Viewport) UTMZoneWidth() float64 { return v.utmZoneWidth }

// GoogleFactors returns the forward lon and lat multipliers of the Google
// projection as of the last zoom change in Google mode.
func (v *Viewport) GoogleFactors() (x, y float64) {
	return v.googleCalcX, v.googleCalcY
}
