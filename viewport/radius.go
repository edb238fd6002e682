package viewport

import (
	"math"
	"sync"
)

const (
	deg2Rad = math.Pi / 180.0
	rad2Deg = 180.0 / math.Pi
)

// RadiusTable holds the meridional radius of curvature of the Earth for each
// integer degree of latitude in [-90, 90], pre-multiplied by the
// degrees-to-radians factor so it applies directly to degree differences.
// The table is built on first use and can be shared between viewports.
type RadiusTable struct {
	once  sync.Once
	radii [181]float64
}

// NewRadiusTable returns an unbuilt table.
func NewRadiusTable() *RadiusTable {
	return &RadiusTable{}
}

func (t *RadiusTable) build() {
	for lat := -90; lat <= 90; lat++ {
		t.radii[lat+90] = meridionalRadius(float64(lat)) * deg2Rad
	}
}

// At returns the table entry for the integer degree at or below lat.
func (t *RadiusTable) At(lat float64) float64 {
	t.once.Do(t.build)
	i := int(math.Floor(lat)) + 90
	if i < 0 {
		i = 0
	} else if i > 180 {
		i = 180
	}
	return t.radii[i]
}

// meridionalRadius returns R = a(1-e^2) / (1-e^2 sin^2(lat))^1.5 in meters.
func meridionalRadius(lat float64) float64 {
	const a = 6378137.0
	const e2 = 0.081082 * 0.081082
	sc := math.Sin(lat * deg2Rad)
	return a * (1 - e2) / math.Pow(1-e2*sc*sc, 1.5)
}
