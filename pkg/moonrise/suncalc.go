package moonrise

import (
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/lunarday/pkg/lunar"
	"github.com/sixdouglas/suncalc"
)

// SunCalc resolves moon rise and set by sampling the moon's altitude hour by
// hour through the UT day, the way the suncalc library does.
//
// A day without one of the events returns the zero tuple for it.
type SunCalc struct{}

// MoonRiseSet implements lunar.RiseSetSolver
func (SunCalc) MoonRiseSet(at lunar.Components, latitude, longitude float64) (lunar.Components, lunar.Components, error) {
	if math.IsNaN(latitude) || math.IsNaN(longitude) {
		return lunar.Components{}, lunar.Components{}, fmt.Errorf("invalid observer %v,%v", latitude, longitude)
	}

	day := utcDay(at)
	times := suncalc.GetMoonTimes(day, latitude*180/math.Pi, longitude*180/math.Pi, true)

	switch {
	case times.AlwaysUp:
		return lunar.Components{}, lunar.Components{}, fmt.Errorf("%w on %s: always above horizon", ErrCircumpolar, day.Format(time.DateOnly))
	case times.AlwaysDown:
		return lunar.Components{}, lunar.Components{}, fmt.Errorf("%w on %s: always below horizon", ErrCircumpolar, day.Format(time.DateOnly))
	}

	return utcComponents(times.Rise), utcComponents(times.Set), nil
}
