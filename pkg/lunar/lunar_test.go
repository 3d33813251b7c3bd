package lunar

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"
)

func TestJulianDay(t *testing.T) {
	tests := []struct {
		name              string
		year, month, day  int
		expectedJulianDay float64
	}{
		{"J2000 epoch", 2000, 1, 1, 2451545},
		{"reference new moon date", 2000, 1, 6, 2451550},
		{"leap day 2000", 2000, 2, 29, 2451604},
		{"day after leap day", 2000, 3, 1, 2451605},
		{"new moon Jan 2023", 2023, 1, 21, 2459966},
		{"mid January 2024", 2024, 1, 15, 2460325},
		{"last day before reform", 1582, 10, 4, 2299160},
		{"first Gregorian day", 1582, 10, 15, 2299161},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jd := JulianDay(tt.year, tt.month, tt.day)
			if jd != tt.expectedJulianDay {
				t.Errorf("JulianDay(%d, %d, %d) = %.1f, expected %.1f", tt.year, tt.month, tt.day, jd, tt.expectedJulianDay)
			}
		})
	}
}

func TestJulianDayMonotonic(t *testing.T) {
	ranges := []struct {
		name     string
		from, to time.Time
	}{
		{
			name: "before reform",
			from: time.Date(1400, 1, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(1582, 10, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "after reform",
			from: time.Date(1582, 10, 15, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2200, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, r := range ranges {
		t.Run(r.name, func(t *testing.T) {
			prev := math.Inf(-1)
			for d := r.from; !d.After(r.to); d = d.AddDate(0, 0, 1) {
				jd := JulianDayOf(d)
				if jd < prev {
					t.Fatalf("%s: Julian Day decreased from %.1f to %.1f", d.Format(time.DateOnly), prev, jd)
				}
				prev = jd
			}
		})
	}
}

func TestJulianDayOfIgnoresClock(t *testing.T) {
	morning := time.Date(2024, 1, 15, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC)
	if JulianDayOf(morning) != JulianDayOf(night) {
		t.Errorf("JulianDayOf differs within one calendar day: %.1f vs %.1f", JulianDayOf(morning), JulianDayOf(night))
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       float64
		expected float64
	}{
		{0, 0},
		{0.25, 0.25},
		{2.5, 0.5},
		{3, 0},
		{-3, 0},
		{-0.25, 0.75},
		{-7.5, 0.5},
	}

	for _, tt := range tests {
		got := Normalize(tt.in)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Normalize(%v) = %v, expected %v", tt.in, got, tt.expected)
		}
	}

	for _, x := range []float64{-1e-20, -1e-300, 1e-20, -123456.789, 987654.321, math.Nextafter(1, 0), -math.Nextafter(1, 0)} {
		got := Normalize(x)
		if got < 0 || got >= 1 {
			t.Errorf("Normalize(%v) = %v, expected value in [0, 1)", x, got)
		}
	}
}

func TestAge(t *testing.T) {
	if got := Age(NewMoonEpochJD); got != 0 {
		t.Errorf("Age at reference new moon = %v, expected 0", got)
	}

	jd := JulianDay(2024, 1, 15)
	if got := Age(jd); math.Abs(got-4.315025) > 1e-5 {
		t.Errorf("Age(%.1f) = %.6f, expected ~4.315025", jd, got)
	}
	if got := SegmentAge(jd); math.Abs(got-4.237579) > 1e-5 {
		t.Errorf("SegmentAge(%.1f) = %.6f, expected ~4.237579", jd, got)
	}

	for jd := 2451000.0; jd < 2452000; jd += 0.37 {
		age := Age(jd)
		if age < 0 || age >= 29.53 {
			t.Fatalf("Age(%.2f) = %.4f out of range [0, 29.53)", jd, age)
		}
		seg := SegmentAge(jd)
		if seg < 0 || seg >= 29 {
			t.Fatalf("SegmentAge(%.2f) = %.4f out of range [0, 29)", jd, seg)
		}
		if seg > age {
			t.Fatalf("SegmentAge(%.2f) = %.4f exceeds Age %.4f", jd, seg, age)
		}
	}
}

func TestSynodicMonth(t *testing.T) {
	expected := 29.530588853
	if math.Abs(SynodicMonth-expected) > 0.000001 {
		t.Errorf("SynodicMonth = %.9f, expected %.9f", SynodicMonth, expected)
	}
}

func TestClassifyPhase(t *testing.T) {
	tests := []struct {
		age      float64
		expected Phase
	}{
		{0, PhaseNew},
		{1.84565, PhaseNew},
		{1.84566, PhaseWaxingCrescent},
		{5.53698, PhaseWaxingCrescent},
		{5.53699, PhaseFirstQuarter},
		{9.22831, PhaseWaxingGibbous},
		{12.91963, PhaseFull},
		{16.61095, PhaseFull},
		{16.61096, PhaseWaningGibbous},
		{20.30228, PhaseLastQuarter},
		{23.99361, PhaseWaningCrescent},
		{27.68492, PhaseWaningCrescent},
		{27.68493, PhaseNew},
		{29.52, PhaseNew},
	}

	for _, tt := range tests {
		if got := ClassifyPhase(tt.age); got != tt.expected {
			t.Errorf("ClassifyPhase(%v) = %s, expected %s", tt.age, got, tt.expected)
		}
	}
}

func TestPhasePartition(t *testing.T) {
	// Walking the cycle must visit every phase once, in order, then wrap to new
	expected := []Phase{
		PhaseNew, PhaseWaxingCrescent, PhaseFirstQuarter, PhaseWaxingGibbous,
		PhaseFull, PhaseWaningGibbous, PhaseLastQuarter, PhaseWaningCrescent, PhaseNew,
	}

	var seen []Phase
	for i := 0; i < 29530; i++ {
		p := ClassifyPhase(float64(i) / 1000)
		if len(seen) == 0 || seen[len(seen)-1] != p {
			seen = append(seen, p)
		}
	}

	if len(seen) != len(expected) {
		t.Fatalf("phase sequence = %v, expected %v", seen, expected)
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("phase %d = %s, expected %s", i, seen[i], expected[i])
		}
	}
}

func TestPhaseOf(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected Phase
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), PhaseWaningCrescent},
		{"mid January 2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), PhaseWaxingCrescent},
		{"late January 2024", time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC), PhaseFull},
		{"start of January 2024", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), PhaseWaningGibbous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PhaseOf(tt.date); got != tt.expected {
				t.Errorf("PhaseOf(%s) = %s, expected %s", tt.date.Format(time.DateOnly), got, tt.expected)
			}
		})
	}
}

func TestClassifyTrajectory(t *testing.T) {
	var breakpoints []float64
	prev := ClassifyTrajectory(0)
	for i := 1; i < 2953000; i++ {
		age := float64(i) / 100000
		tr := ClassifyTrajectory(age)
		if tr != prev {
			breakpoints = append(breakpoints, age)
			prev = tr
		}
	}

	expected := []float64{16.61096, 27.68493}
	if len(breakpoints) != len(expected) {
		t.Fatalf("breakpoints = %v, expected %v", breakpoints, expected)
	}
	for i := range expected {
		if math.Abs(breakpoints[i]-expected[i]) > 1e-9 {
			t.Errorf("breakpoint %d = %v, expected %v", i, breakpoints[i], expected[i])
		}
	}

	if got := ClassifyTrajectory(10); got != Ascendent {
		t.Errorf("ClassifyTrajectory(10) = %s, expected ascendent", got)
	}
	if got := ClassifyTrajectory(20); got != Descendent {
		t.Errorf("ClassifyTrajectory(20) = %s, expected descendent", got)
	}
	if got := ClassifyTrajectory(28); got != Ascendent {
		t.Errorf("ClassifyTrajectory(28) = %s, expected ascendent", got)
	}
}

func TestClassifyZodiac(t *testing.T) {
	tests := []struct {
		longitude float64
		expected  ZodiacSign
	}{
		{0, Aries},
		{33.17, Aries},
		{33.18, Cancer},
		{51.16, Gemini},
		{93.44, Cancer},
		{119.48, Leo},
		{135.30, Virgo},
		{173.34, Libra},
		{224.17, Scorpio},
		{242.57, Sagittarius},
		{271.26, Capricorn},
		{302.49, Aquarius},
		{311.72, Pisces},
		{348.57, Pisces},
		{348.58, Aries},
		{365, Aries},
	}

	for _, tt := range tests {
		if got := ClassifyZodiac(tt.longitude); got != tt.expected {
			t.Errorf("ClassifyZodiac(%v) = %s, expected %s", tt.longitude, got, tt.expected)
		}
	}
}

func TestZodiacWindows(t *testing.T) {
	// Count the disjoint longitude windows each sign owns
	windows := make(map[ZodiacSign]int)
	prev := ZodiacSign(-1)
	for i := 0; i < 36500; i++ {
		z := ClassifyZodiac(float64(i) / 100)
		if z != prev {
			windows[z]++
			prev = z
		}
	}

	if windows[Taurus] != 0 {
		t.Errorf("taurus owns %d windows, expected none", windows[Taurus])
	}
	if windows[Aries] != 2 {
		t.Errorf("aries owns %d windows, expected 2", windows[Aries])
	}
	if windows[Cancer] != 2 {
		t.Errorf("cancer owns %d windows, expected 2", windows[Cancer])
	}
	for _, z := range []ZodiacSign{Gemini, Leo, Virgo, Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces} {
		if windows[z] != 1 {
			t.Errorf("%s owns %d windows, expected 1", z, windows[z])
		}
	}
}

func TestMoonLongitude(t *testing.T) {
	jd := JulianDay(2024, 1, 15)
	if got := MoonLongitude(jd); math.Abs(got-349.064235) > 1e-5 {
		t.Errorf("MoonLongitude(%.1f) = %.6f, expected ~349.064235", jd, got)
	}

	// The estimate is not wrapped into [0, 360)
	jd = JulianDay(2024, 1, 16)
	if got := MoonLongitude(jd); got < 360 {
		t.Errorf("MoonLongitude(%.1f) = %.4f, expected a value past 360", jd, got)
	}
}

func TestZodiacOf(t *testing.T) {
	tests := []struct {
		day      int
		expected ZodiacSign
	}{
		{2, Virgo},
		{5, Libra},
		{7, Scorpio},
		{8, Sagittarius},
		{10, Capricorn},
		{12, Aquarius},
		{14, Pisces},
		{16, Aries},
		{17, Aries},
		{19, Cancer},
		{21, Gemini},
		{23, Cancer},
		{26, Leo},
	}

	for _, tt := range tests {
		date := time.Date(2024, 1, tt.day, 12, 0, 0, 0, time.UTC)
		if got := ZodiacOf(date); got != tt.expected {
			t.Errorf("ZodiacOf(%s) = %s, expected %s", date.Format(time.DateOnly), got, tt.expected)
		}
	}
}

func TestEnumText(t *testing.T) {
	b, err := json.Marshal(struct {
		Phase      Phase      `json:"phase"`
		Trajectory Trajectory `json:"trajectory"`
		Zodiac     ZodiacSign `json:"zodiac"`
	}{PhaseWaxingGibbous, Descendent, Sagittarius})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	expected := `{"phase":"waxingGibbous","trajectory":"descendent","zodiac":"sagittarius"}`
	if string(b) != expected {
		t.Errorf("Marshal = %s, expected %s", b, expected)
	}

	var z ZodiacSign
	if err := z.UnmarshalText([]byte("capricorn")); err != nil || z != Capricorn {
		t.Errorf("UnmarshalText(capricorn) = %s, %v", z, err)
	}
	var p Phase
	if err := p.UnmarshalText([]byte("gibbous")); err == nil {
		t.Error("UnmarshalText(gibbous) succeeded, expected an error")
	}
	if s := Phase(42).String(); s != "Phase(42)" {
		t.Errorf("Phase(42).String() = %q", s)
	}
}

func TestComponents(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Skipf("time zone database unavailable: %v", err)
	}

	at := time.Date(2024, 7, 4, 21, 15, 30, 0, la)
	c := ComponentsOf(at)
	expected := Components{Year: 2024, Month: 7, Day: 4, Hour: 21, Minute: 15, Second: 30}
	if c != expected {
		t.Errorf("ComponentsOf = %+v, expected %+v", c, expected)
	}

	// Recomposition reads the fields as UTC, not as the original zone
	utc := c.UTC()
	if !utc.Equal(time.Date(2024, 7, 4, 21, 15, 30, 0, time.UTC)) {
		t.Errorf("UTC() = %s", utc)
	}
	if utc.Location() != time.UTC {
		t.Errorf("UTC() location = %s, expected UTC", utc.Location())
	}

	if !(Components{}).IsZero() || c.IsZero() {
		t.Error("IsZero misreports")
	}
}

func TestCoordinateRadians(t *testing.T) {
	lat, lon := Coordinate{Latitude: 90, Longitude: -180}.Radians()
	if math.Abs(lat-math.Pi/2) > 1e-12 || math.Abs(lon+math.Pi) > 1e-12 {
		t.Errorf("Radians() = %v, %v", lat, lon)
	}
}

func TestEventJSON(t *testing.T) {
	at := time.Date(2024, 1, 25, 13, 5, 0, 0, time.UTC)
	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{"none", Event{}, `{"state":"none"}`},
		{"resolved", resolvedEvent(at), `{"state":"resolved","time":"2024-01-25T13:05:00Z"}`},
		{"unresolved", unresolvedEvent(errors.New("circumpolar")), `{"state":"unresolved","error":"circumpolar"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.event)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(b) != tt.expected {
				t.Errorf("Marshal = %s, expected %s", b, tt.expected)
			}
		})
	}
}

func TestIlluminationAt(t *testing.T) {
	tests := []struct {
		name           string
		at             time.Time
		minFraction    float64
		maxFraction    float64
		expectedWaxing bool
	}{
		{"new moon 2024-01-11", time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC), 0, 0.01, false},
		{"first quarter 2024-01-18", time.Date(2024, 1, 18, 4, 0, 0, 0, time.UTC), 0.45, 0.55, true},
		{"hours before full 2024-01-25", time.Date(2024, 1, 25, 10, 0, 0, 0, time.UTC), 0.99, 1, true},
		{"last quarter 2024-02-02", time.Date(2024, 2, 2, 12, 0, 0, 0, time.UTC), 0.45, 0.6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IlluminationAt(tt.at)
			if got.Fraction < tt.minFraction || got.Fraction > tt.maxFraction {
				t.Errorf("fraction = %.4f, expected within [%.2f, %.2f]", got.Fraction, tt.minFraction, tt.maxFraction)
			}
			if got.Waxing != tt.expectedWaxing {
				t.Errorf("waxing = %v at elongation %.2f", got.Waxing, got.Elongation)
			}
			if got.Elongation < 0 || got.Elongation >= 360 {
				t.Errorf("elongation %.2f outside [0, 360)", got.Elongation)
			}
		})
	}
}
