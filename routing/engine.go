// Package routing asks web routing services for a route between two points.
// Each service is an Engine that knows how to build its request URL; Find
// downloads and decodes the answer.
package routing

import (
	"errors"
	"strconv"

	"github.com/tzneal/vikcoord"
	"github.com/tzneal/vikcoord/download"
)

var (
	// ErrUnknownEngine is returned when a registry has no engine by that id.
	ErrUnknownEngine = errors.New("unknown routing engine")
	// ErrUnsupportedFormat is returned when an engine's answer format cannot
	// be decoded.
	ErrUnsupportedFormat = errors.New("unsupported route format")
	// ErrNoRoute is returned when the service answered without a route.
	ErrNoRoute = errors.New("no route found")
)

// Answer formats understood by Find.
const (
	FormatGeoJSON = "geojson"
	FormatOSRM    = "osrm"
)

// Engine is one routing service.
type Engine interface {
	// ID is a short unique name used in configuration.
	ID() string
	// Label is the human readable name.
	Label() string
	// Format names the encoding of the service's answer.
	Format() string
	// URLForCoords returns the request URL for a route from start to end.
	URLForCoords(start, end vikcoord.LatLon) string
	// DownloadOptions returns the options to fetch the URL with, or nil.
	DownloadOptions() *download.Options
}

// Base holds the fields every engine shares. Embed it to get ID, Label,
// Format and the default DownloadOptions.
type Base struct {
	EngineID    string
	EngineLabel string
	EngineFmt   string
}

// ID implements Engine.
func (b Base) ID() string { return b.EngineID }

// Label implements Engine.
func (b Base) Label() string { return b.EngineLabel }

// Format implements Engine.
func (b Base) Format() string { return b.EngineFmt }

// DownloadOptions implements Engine with no special options.
func (b Base) DownloadOptions() *download.Options { return nil }

// formatDegrees prints a coordinate with a '.' separator whatever the
// locale, using as few digits as round trip.
func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
