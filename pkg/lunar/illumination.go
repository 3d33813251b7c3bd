package lunar

import (
	"math"
	"time"
)

// Illumination describes how much of the moon's disk is lit at an instant.
type Illumination struct {
	// Fraction is the illuminated fraction of the disk, 0 at new and 1 at full
	Fraction float64 `json:"fraction"`
	// Elongation is the Sun to Moon ecliptic angle in degrees, [0, 360)
	Elongation float64 `json:"elongation"`
	Waxing     bool    `json:"waxing"`
}

// IlluminationAt computes the lit fraction from the ecliptic longitudes of
// the Sun and Moon at t. Unlike the phase classifiers it uses the instant,
// not the calendar date, and is good to about 1% of the disk.
func IlluminationAt(t time.Time) Illumination {
	T := julianCenturies(unixJulianDay(t))
	e := wrapDegrees(moonTrueLongitude(T) - sunTrueLongitude(T))

	return Illumination{
		Fraction:   (1 - math.Cos(e*math.Pi/180)) / 2,
		Elongation: e,
		Waxing:     e < 180,
	}
}

// unixJulianDay is the Julian Day of an instant, with its fraction of day
func unixJulianDay(t time.Time) float64 {
	return 2440587.5 + float64(t.Unix())/86400
}

// julianCenturies counts Julian centuries from J2000.0
func julianCenturies(jd float64) float64 {
	return (jd - 2451545) / 36525
}

func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func sunTrueLongitude(T float64) float64 {
	mean := 280.46646 + 36000.76983*T + 0.0003032*T*T
	m := wrapDegrees(357.52911+35999.05029*T-0.0001537*T*T) * math.Pi / 180

	center := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(m) +
		(0.019993-0.000101*T)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)

	return wrapDegrees(mean + center)
}

// moonTrueLongitude keeps the five largest periodic terms (Meeus table 47.A)
func moonTrueLongitude(T float64) float64 {
	T2, T3, T4 := T*T, T*T*T, T*T*T*T

	mean := 218.3164477 + 481267.88123421*T - 0.0015786*T2 + T3/538841 - T4/65194000
	d := wrapDegrees(297.8501921+445267.1114034*T-0.0018819*T2+T3/545868-T4/113065000) * math.Pi / 180
	mp := wrapDegrees(134.9633964+477198.8675055*T+0.0087414*T2+T3/69699-T4/14712000) * math.Pi / 180

	return wrapDegrees(mean +
		6.289*math.Sin(mp) +
		1.274*math.Sin(2*d-mp) +
		0.658*math.Sin(2*d) +
		0.214*math.Sin(2*mp) +
		0.110*math.Sin(d))
}
