package viewport

import (
	"github.com/paulmach/orb"
)

// Bounds returns the lat/lon box spanned by the four corners of the view.
// In UTM mode near a pole or across several zones the box is approximate.
func (v *Viewport) Bounds() orb.Bound {
	corners := [4][2]int{
		{0, 0},
		{v.width, 0},
		{0, v.height},
		{v.width, v.height},
	}
	var b orb.Bound
	for i, px := range corners {
		ll := v.ScreenToCoord(px[0], px[1]).ToLatLon()
		p := orb.Point{ll.Lon, ll.Lat}
		if i == 0 {
			b = p.Bound()
			continue
		}
		b = b.Extend(p)
	}
	return b
}
