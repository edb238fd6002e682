package viewport_test

import (
	"fmt"

	"github.com/tzneal/vikcoord"
	"github.com/tzneal/vikcoord/viewport"
)

func ExampleViewport_CoordToScreen() {
	v := viewport.New(800, 600, viewport.WithDrawMode(viewport.DrawModeKH))
	v.SetCenterLatLon(vikcoord.LatLon{Lat: 45, Lon: 9})
	v.SetZoom(256)

	pos := v.CoordToScreen(vikcoord.NewLatLonCoord(vikcoord.LatLon{Lat: 45.5, Lon: 9.5}))
	fmt.Println(pos.X, pos.Y, pos.Placement)
	// Output: 582 117 visible
}
