package lunar

import (
	"fmt"
	"math"
	"time"
)

// ZodiacSign is one of the twelve conventional zodiac signs.
type ZodiacSign int

const (
	Aries ZodiacSign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var zodiacNames = [...]string{
	Aries:       "aries",
	Taurus:      "taurus",
	Gemini:      "gemini",
	Cancer:      "cancer",
	Leo:         "leo",
	Virgo:       "virgo",
	Libra:       "libra",
	Scorpio:     "scorpio",
	Sagittarius: "sagittarius",
	Capricorn:   "capricorn",
	Aquarius:    "aquarius",
	Pisces:      "pisces",
}

const (
	anomalisticEpochJD = 2451562.2
	anomalisticMonth   = 27.55454988
	siderealEpochJD    = 2451555.8
	siderealMonth      = 27.321582241
)

// zodiacBounds are upper longitude limits in degrees. The windows are not
// 30° wide: aries and cancer each own two of them and taurus owns none.
var zodiacBounds = []bound[ZodiacSign]{
	{33.18, Aries},
	{51.16, Cancer},
	{93.44, Gemini},
	{119.48, Cancer},
	{135.30, Leo},
	{173.34, Virgo},
	{224.17, Libra},
	{242.57, Scorpio},
	{271.26, Sagittarius},
	{302.49, Capricorn},
	{311.72, Aquarius},
	{348.58, Pisces},
}

// MoonLongitude estimates the moon's ecliptic longitude in degrees from the
// sidereal position plus the three largest periodic terms. The result is not
// wrapped and may slightly exceed 360.
func MoonLongitude(jd float64) float64 {
	ip := PhaseFraction(jd) * 2 * math.Pi
	dp := 2 * math.Pi * Normalize((jd-anomalisticEpochJD)/anomalisticMonth)
	rp := Normalize((jd - siderealEpochJD) / siderealMonth)

	return 360*rp +
		6.3*math.Sin(dp) +
		1.3*math.Sin(2*ip-dp) +
		0.7*math.Sin(2*ip)
}

// ClassifyZodiac maps an ecliptic longitude in degrees to a sign.
func ClassifyZodiac(longitude float64) ZodiacSign {
	return classify(longitude, zodiacBounds, Aries)
}

// ZodiacOf returns the moon's sign for t's calendar date.
func ZodiacOf(t time.Time) ZodiacSign {
	return ClassifyZodiac(MoonLongitude(JulianDayOf(t)))
}

func (z ZodiacSign) String() string {
	if z < 0 || int(z) >= len(zodiacNames) {
		return fmt.Sprintf("ZodiacSign(%d)", int(z))
	}
	return zodiacNames[z]
}

// MarshalText implements encoding.TextMarshaler
func (z ZodiacSign) MarshalText() ([]byte, error) {
	if z < 0 || int(z) >= len(zodiacNames) {
		return nil, fmt.Errorf("invalid zodiac sign %d", int(z))
	}
	return []byte(zodiacNames[z]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (z *ZodiacSign) UnmarshalText(text []byte) error {
	v, err := parseLabel(string(text), zodiacNames[:])
	if err != nil {
		return fmt.Errorf("unknown zodiac sign: %w", err)
	}
	*z = ZodiacSign(v)
	return nil
}
