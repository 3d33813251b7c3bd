package lunar

import (
	"fmt"
	"time"
)

// Phase is one of the eight named divisions of the synodic cycle.
type Phase int

const (
	PhaseNew Phase = iota
	PhaseWaxingCrescent
	PhaseFirstQuarter
	PhaseWaxingGibbous
	PhaseFull
	PhaseWaningGibbous
	PhaseLastQuarter
	PhaseWaningCrescent
)

var phaseNames = [...]string{
	PhaseNew:            "new",
	PhaseWaxingCrescent: "waxingCrescent",
	PhaseFirstQuarter:   "firstQuarter",
	PhaseWaxingGibbous:  "waxingGibbous",
	PhaseFull:           "full",
	PhaseWaningGibbous:  "waningGibbous",
	PhaseLastQuarter:    "lastQuarter",
	PhaseWaningCrescent: "waningCrescent",
}

// bound is an exclusive upper limit and the value assigned below it.
type bound[T any] struct {
	limit float64
	value T
}

// phaseBounds are checked in order; ages past the last limit wrap to new.
var phaseBounds = []bound[Phase]{
	{1.84566, PhaseNew},
	{5.53699, PhaseWaxingCrescent},
	{9.22831, PhaseFirstQuarter},
	{12.91963, PhaseWaxingGibbous},
	{16.61096, PhaseFull},
	{20.30228, PhaseWaningGibbous},
	{23.99361, PhaseLastQuarter},
	{27.68493, PhaseWaningCrescent},
}

// ClassifyPhase maps a classification age (see Age) to its phase.
func ClassifyPhase(age float64) Phase {
	return classify(age, phaseBounds, PhaseNew)
}

// PhaseOf returns the phase for t's calendar date.
func PhaseOf(t time.Time) Phase {
	return ClassifyPhase(AgeOf(t))
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(phaseNames) {
		return nil, fmt.Errorf("invalid phase %d", int(p))
	}
	return []byte(phaseNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Phase) UnmarshalText(text []byte) error {
	v, err := parseLabel(string(text), phaseNames[:])
	if err != nil {
		return fmt.Errorf("unknown phase: %w", err)
	}
	*p = Phase(v)
	return nil
}

func classify[T any](x float64, bounds []bound[T], wrap T) T {
	for _, b := range bounds {
		if x < b.limit {
			return b.value
		}
	}
	return wrap
}

func parseLabel(s string, names []string) (int, error) {
	for i, name := range names {
		if name == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%q", s)
}
