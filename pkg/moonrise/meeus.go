package moonrise

import (
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/lunarday/pkg/lunar"
	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/rise"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

// DefaultDeltaT is TT-UT in seconds for the current decade
const DefaultDeltaT = 69.2

// Meeus resolves moon rise and set by interpolating the moon's apparent
// position over three days (Meeus, Astronomical Algorithms, ch. 15 and 47).
//
// The calendar date of the query is taken as a UT day; rise and set are the
// events within that UT day.
type Meeus struct {
	// DeltaT overrides DefaultDeltaT when non-zero
	DeltaT float64
}

// MoonRiseSet implements lunar.RiseSetSolver
func (m Meeus) MoonRiseSet(at lunar.Components, latitude, longitude float64) (lunar.Components, lunar.Components, error) {
	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return lunar.Components{}, lunar.Components{}, fmt.Errorf("invalid observer %v,%v", latitude, longitude)
	}

	ΔT := m.DeltaT
	if ΔT == 0 {
		ΔT = DefaultDeltaT
	}

	day := utcDay(at)
	jd0 := julian.TimeToJD(day)

	// Positions at 0h dynamical time on D-1, D and D+1
	α3 := make([]unit.RA, 3)
	δ3 := make([]unit.Angle, 3)
	var h0 unit.Angle
	for i := range α3 {
		jde := jd0 + float64(i-1) + unit.Time(ΔT).Day()
		λ, β, Δ := moonposition.Position(jde)
		sε, cε := nutation.MeanObliquity(jde).Sincos()
		α3[i], δ3[i] = coord.EclToEq(λ, β, sε, cε)
		if i == 1 {
			h0 = rise.Stdh0Lunar(moonposition.Parallax(Δ))
		}
	}

	// Meeus measures longitude positive west
	p := globe.Coord{
		Lat: unit.Angle(latitude),
		Lon: unit.Angle(-longitude),
	}

	tRise, _, tSet, err := rise.Times(p, unit.Time(ΔT), h0, sidereal.Apparent0UT(jd0), α3, δ3)
	if err != nil {
		return lunar.Components{}, lunar.Components{}, fmt.Errorf("%w on %s: %v", ErrCircumpolar, day.Format(time.DateOnly), err)
	}

	return utcComponents(secondsInto(day, tRise)), utcComponents(secondsInto(day, tSet)), nil
}

// secondsInto places a time of day on day, truncated to whole seconds
func secondsInto(day time.Time, t unit.Time) time.Time {
	offset := time.Duration(t.Mod1().Sec() * float64(time.Second))
	return day.Add(offset).Truncate(time.Second)
}
