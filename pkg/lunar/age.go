package lunar

import "time"

const (
	// SynodicMonth is the mean length of the lunar cycle in days
	SynodicMonth = 29.530588853

	// NewMoonEpochJD is the reference new moon all ages are counted from
	NewMoonEpochJD = 2451550.1

	// classificationAgeScale turns a phase fraction into the age used for
	// phase and trajectory classification.
	classificationAgeScale = 29.53

	// segmentAgeScale turns a phase fraction into the age used for lunar-day
	// segmentation. It is not classificationAgeScale and must not be unified
	// with it: segment boundaries depend on this value.
	segmentAgeScale = 29.0
)

// PhaseFraction returns the position within the synodic cycle for the given
// Julian Day: 0 at new moon, approaching 1 just before the next one.
func PhaseFraction(jd float64) float64 {
	return Normalize((jd - NewMoonEpochJD) / SynodicMonth)
}

// Age returns the moon age in days used to classify phase and trajectory.
func Age(jd float64) float64 {
	return PhaseFraction(jd) * classificationAgeScale
}

// SegmentAge returns the moon age in days used to split a calendar day into
// lunar days.
func SegmentAge(jd float64) float64 {
	return PhaseFraction(jd) * segmentAgeScale
}

// AgeOf returns the classification age for t's calendar date.
func AgeOf(t time.Time) float64 {
	return Age(JulianDayOf(t))
}
