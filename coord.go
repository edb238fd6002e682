package vikcoord

import "fmt"

// Mode selects which representation a Coord carries.
type Mode int

// Coordinate modes
const (
	ModeUTM Mode = iota
	ModeLatLon
)

func (m Mode) String() string {
	switch m {
	case ModeUTM:
		return "utm"
	case ModeLatLon:
		return "latlon"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Coord is a geographic position held in exactly one representation.
// Only the field matching Mode is meaningful.
type Coord struct {
	Mode   Mode
	UTM    UTMCoord
	LatLon LatLon
}

// NewLatLonCoord wraps a lat/lon position.
func NewLatLonCoord(ll LatLon) Coord {
	return Coord{Mode: ModeLatLon, LatLon: ll}
}

// NewUTMCoord wraps a UTM position.
func NewUTMCoord(u UTMCoord) Coord {
	return Coord{Mode: ModeUTM, UTM: u}
}

// CoordFromLatLon builds a Coord in the given mode from a lat/lon position.
func CoordFromLatLon(mode Mode, ll LatLon) Coord {
	if mode == ModeUTM {
		return NewUTMCoord(LatLonToUTM(ll))
	}
	return NewLatLonCoord(ll)
}

// CoordFromUTM builds a Coord in the given mode from a UTM position.
func CoordFromUTM(mode Mode, u UTMCoord) Coord {
	if mode == ModeLatLon {
		return NewLatLonCoord(UTMToLatLon(u))
	}
	return NewUTMCoord(u)
}

// ToLatLon returns the position as lat/lon, converting if needed.
func (c Coord) ToLatLon() LatLon {
	if c.Mode == ModeUTM {
		return UTMToLatLon(c.UTM)
	}
	return c.LatLon
}

// ToUTM returns the position as UTM, converting if needed.
func (c Coord) ToUTM() UTMCoord {
	if c.Mode == ModeLatLon {
		return LatLonToUTM(c.LatLon)
	}
	return c.UTM
}

// Convert returns the same position in the requested representation.
func (c Coord) Convert(mode Mode) Coord {
	if c.Mode == mode {
		return c
	}
	if mode == ModeUTM {
		return NewUTMCoord(c.ToUTM())
	}
	return NewLatLonCoord(c.ToLatLon())
}

func (c Coord) String() string {
	if c.Mode == ModeUTM {
		return c.UTM.String()
	}
	return c.LatLon.String()
}
