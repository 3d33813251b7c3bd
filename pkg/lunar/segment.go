package lunar

import "time"

const (
	// lunarDayModulus is the number of lunar-day indices in a cycle
	lunarDayModulus = 30

	// ageSnapThreshold is how close, in days, an age must be to the next
	// whole day to be counted as that day.
	ageSnapThreshold = 0.2
)

// DaySegment is the part of a calendar day that falls within one lunar day.
// Rise is the event that opens the segment and Set the event that closes it.
type DaySegment struct {
	Age    int        `json:"age"`
	Zodiac ZodiacSign `json:"zodiacSign"`
	Rise   Event      `json:"rise"`
	Set    Event      `json:"set"`
}

// StartOfDay returns local midnight of t's calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last second of t's calendar date. ok is false when
// the result does not fall after the start of the day.
func EndOfDay(t time.Time) (end time.Time, ok bool) {
	start := StartOfDay(t)
	y, m, d := start.Date()
	end = time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Second)
	return end, end.After(start)
}

// snapAge rounds age up to the next whole day when it is within
// ageSnapThreshold of it, then truncates.
func snapAge(age float64) int {
	next := int(age) + 1
	if float64(next)-age < ageSnapThreshold {
		return next
	}
	return int(age)
}

// dayAges lists the lunar-day indices touched by the calendar day starting
// at start.
func dayAges(start time.Time) []int {
	from := snapAge(SegmentAge(JulianDayOf(start)))
	to := snapAge(SegmentAge(JulianDayOf(start.Add(24 * time.Hour))))
	if from == to {
		return []int{from}
	}
	return ModularRange(from, to, lunarDayModulus)
}

// ModularRange lists the cyclic run of indices from one value to another,
// inclusive, wrapping back to 1 when the modulus is reached. Zero stands for
// modulus-1 at either end. ModularRange(28, 2, 30) is [28 29 1 2].
func ModularRange(from, to, modulus int) []int {
	if modulus <= 0 {
		return []int{from}
	}

	f, t := from, to
	if f == 0 {
		f = modulus - 1
	}
	if t == 0 {
		t = modulus - 1
	}
	if f == t {
		return []int{from}
	}

	out := []int{f}
	for next := f; next != t; {
		next++
		if next >= modulus {
			next = 1
		}
		out = append(out, next)
		if len(out) > modulus {
			// t lies outside [1, modulus-1] and can never be reached
			return nil
		}
	}
	return out
}

// buildSegments lays out the segments for the given lunar-day indices.
// rise is the day's moon rise and set its moon set. Counts other than one to
// three produce no segments.
func buildSegments(ages []int, startSign, endSign ZodiacSign, rise, set Event) []DaySegment {
	switch len(ages) {
	case 1:
		return []DaySegment{
			{Age: ages[0], Zodiac: startSign},
		}
	case 2:
		return []DaySegment{
			{Age: ages[0], Zodiac: startSign, Set: rise},
			{Age: ages[1], Zodiac: endSign, Rise: rise},
		}
	case 3:
		middle := endSign
		if startSign == endSign {
			middle = startSign
		}
		return []DaySegment{
			{Age: ages[0], Zodiac: startSign, Set: rise},
			{Age: ages[1], Zodiac: middle, Rise: rise, Set: set},
			{Age: ages[2], Zodiac: endSign, Rise: set},
		}
	default:
		return []DaySegment{}
	}
}
