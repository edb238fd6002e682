package routing

import (
	"fmt"

	"github.com/tzneal/vikcoord"
	"github.com/tzneal/vikcoord/download"
)

// WebEngine is a service whose URL is a base followed by a start and a stop
// fragment. Each fragment is a printf format given the latitude then the
// longitude as strings, for example "&start=%s,%s".
type WebEngine struct {
	Base

	URLBase  string
	StartFmt string
	StopFmt  string

	// Referer and FollowLocation are passed to the downloader.
	Referer        string
	FollowLocation int
}

// URLForCoords implements Engine.
func (e *WebEngine) URLForCoords(start, end vikcoord.LatLon) string {
	return e.URLBase +
		fmt.Sprintf(e.StartFmt, formatDegrees(start.Lat), formatDegrees(start.Lon)) +
		fmt.Sprintf(e.StopFmt, formatDegrees(end.Lat), formatDegrees(end.Lon))
}

// DownloadOptions implements Engine.
func (e *WebEngine) DownloadOptions() *download.Options {
	if e.Referer == "" && e.FollowLocation == 0 {
		return nil
	}
	return &download.Options{Referer: e.Referer, FollowLocation: e.FollowLocation}
}
