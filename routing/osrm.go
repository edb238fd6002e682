package routing

import (
	"net/url"
	"strings"

	"github.com/tzneal/vikcoord"
)

// DefaultOSRMURL is the public OSRM demo server.
const DefaultOSRMURL = "https://router.project-osrm.org"

// OSRMEngine talks to the route service of an OSRM server and asks for the
// full geometry as GeoJSON.
type OSRMEngine struct {
	Base

	URL     string
	Profile string
}

// NewOSRMEngine returns an engine for the server at serverURL, or the public
// demo server when it is empty. profile defaults to "driving".
func NewOSRMEngine(id, label, serverURL, profile string) *OSRMEngine {
	if serverURL == "" {
		serverURL = DefaultOSRMURL
	}
	if profile == "" {
		profile = "driving"
	}
	return &OSRMEngine{
		Base:    Base{EngineID: id, EngineLabel: label, EngineFmt: FormatOSRM},
		URL:     strings.TrimSuffix(serverURL, "/"),
		Profile: profile,
	}
}

// URLForCoords implements Engine. OSRM takes lon,lat pairs.
func (e *OSRMEngine) URLForCoords(start, end vikcoord.LatLon) string {
	q := url.Values{}
	q.Set("overview", "full")
	q.Set("geometries", "geojson")
	return e.URL + "/route/v1/" + url.PathEscape(e.Profile) + "/" +
		formatDegrees(start.Lon) + "," + formatDegrees(start.Lat) + ";" +
		formatDegrees(end.Lon) + "," + formatDegrees(end.Lat) +
		"?" + q.Encode()
}
