package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/tzneal/vikcoord"
	"github.com/tzneal/vikcoord/download"
)

// Find asks e for a route from start to end and returns it as a line of
// lon/lat points.
func Find(ctx context.Context, e Engine, d *download.Downloader, start, end vikcoord.LatLon) (orb.LineString, error) {
	uri := e.URLForCoords(start, end)
	var buf bytes.Buffer
	if _, err := d.DownloadURI(ctx, uri, &buf, e.DownloadOptions()); err != nil {
		return nil, fmt.Errorf("routing with %s: %w", e.ID(), err)
	}
	return Decode(e.Format(), buf.Bytes())
}

// Decode parses a routing answer in the named format.
func Decode(format string, data []byte) (orb.LineString, error) {
	switch format {
	case FormatGeoJSON:
		return decodeGeoJSON(data)
	case FormatOSRM:
		return decodeOSRM(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// decodeGeoJSON accepts a feature collection, a single feature or a bare
// geometry, and joins every line it finds.
func decodeGeoJSON(data []byte) (orb.LineString, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}

	var geoms []orb.Geometry
	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parsing geojson: %w", err)
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("parsing geojson: %w", err)
		}
		geoms = append(geoms, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("parsing geojson: %w", err)
		}
		geoms = append(geoms, g.Geometry())
	}
	return joinLines(geoms)
}

type osrmResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64          `json:"distance"`
		Geometry geojson.Geometry `json:"geometry"`
	} `json:"routes"`
}

func decodeOSRM(data []byte) (orb.LineString, error) {
	var resp osrmResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing osrm answer: %w", err)
	}
	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNoRoute, resp.Code, resp.Message)
	}
	return joinLines([]orb.Geometry{resp.Routes[0].Geometry.Geometry()})
}

func joinLines(geoms []orb.Geometry) (orb.LineString, error) {
	var line orb.LineString
	for _, g := range geoms {
		switch g := g.(type) {
		case orb.LineString:
			line = append(line, g...)
		case orb.MultiLineString:
			for _, ls := range g {
				line = append(line, ls...)
			}
		}
	}
	if len(line) == 0 {
		return nil, ErrNoRoute
	}
	return line, nil
}
