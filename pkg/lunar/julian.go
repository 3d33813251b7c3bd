package lunar

import (
	"math"
	"time"
)

// gregorianReformJD is the last Julian Day before the 1582 calendar reform.
// Day numbers past it receive the Gregorian century correction.
const gregorianReformJD = 2299160

// JulianDay converts a civil calendar date to a Julian Day number.
//
// January and February are counted as months 13 and 14 of the previous year.
// The result is continuous and increases with the calendar date, except for a
// single jump at the 1582 reform boundary.
func JulianDay(year, month, day int) float64 {
	y := float64(year)
	m := float64(month)

	yy := y - math.Floor((12-m)/10)
	mm := m + 9
	if mm >= 12 {
		mm -= 12
	}

	k1 := math.Floor(365.25 * (yy + 4712))
	k2 := math.Floor(30.6*mm + 0.5)
	k3 := math.Floor(math.Floor(yy/100+49)*0.75) - 38

	jd := k1 + k2 + float64(day) + 59
	if jd > gregorianReformJD {
		jd -= k3
	}
	return jd
}

// JulianDayOf returns the Julian Day of t's calendar date in t's own location.
// The time of day is ignored.
func JulianDayOf(t time.Time) float64 {
	y, m, d := t.Date()
	return JulianDay(y, int(m), d)
}

// Normalize returns the fractional part of x mapped into [0, 1).
func Normalize(x float64) float64 {
	v := x - math.Floor(x)
	if v < 0 {
		v++
	}
	// x - floor(x) rounds up to exactly 1 for tiny negative x
	if v >= 1 {
		v = 0
	}
	return v
}
