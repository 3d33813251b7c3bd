package lunar

import (
	"fmt"
	"math"
	"time"
)

// Components is a broken-down civil instant: the tuple exchanged with a
// RiseSetSolver.
type Components struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// ComponentsOf decomposes t in its own location.
func ComponentsOf(t time.Time) Components {
	y, m, d := t.Date()
	h, min, s := t.Clock()
	return Components{Year: y, Month: int(m), Day: d, Hour: h, Minute: min, Second: s}
}

// UTC recomposes the tuple as an instant, reading the fields as UTC.
// Out-of-range fields are normalized the way time.Date does.
func (c Components) UTC() time.Time {
	return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, c.Second, 0, time.UTC)
}

// IsZero reports whether every field is zero. Solvers return the zero tuple
// for an event that does not happen.
func (c Components) IsZero() bool {
	return c == Components{}
}

func (c Components) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second)
}

// Coordinate is an observer position in decimal degrees, east longitude
// positive.
type Coordinate struct {
	Latitude  float64 `json:"latitude" msgpack:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" msgpack:"longitude" yaml:"longitude"`
}

// Radians returns latitude and longitude converted to radians.
func (c Coordinate) Radians() (lat, lon float64) {
	return c.Latitude * math.Pi / 180, c.Longitude * math.Pi / 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}
