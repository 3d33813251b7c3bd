// Package lunar classifies the moon for a calendar date and splits the date
// into lunar days.
//
// Phase, trajectory and zodiac sign come from mean-element arithmetic on the
// Julian Day of the date: a synodic-month age for phase and trajectory, and a
// sidereal longitude with three periodic corrections for the sign. Lunar days
// are found by comparing the moon age at the start of the day with the age a
// day later; where they differ, the day is cut at the moon rise and set
// reported by a RiseSetSolver.
package lunar

import (
	"time"

	"go.uber.org/zap"
)

// Snapshot is everything known about the moon for one calendar day at one
// place.
type Snapshot struct {
	Date         time.Time    `json:"date"`
	Location     Coordinate   `json:"location"`
	Trajectory   Trajectory   `json:"trajectory"`
	Phase        Phase        `json:"phase"`
	Illumination Illumination `json:"illumination"`
	Segments     []DaySegment `json:"segments"`
}

// Engine computes snapshots. It holds no per-call state, so one Engine can
// serve concurrent callers as long as its solver can.
type Engine struct {
	solver RiseSetSolver
	logger *zap.SugaredLogger
	now    func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for debug output
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock replaces time.Now as the fallback for an uncomputable day end
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates an Engine that resolves rise and set with solver.
// A nil solver leaves every rise and set at EventNone.
func NewEngine(solver RiseSetSolver, opts ...Option) *Engine {
	e := &Engine{
		solver: solver,
		logger: zap.NewNop().Sugar(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Info computes the snapshot for date's calendar day, in date's location, as
// seen from loc.
func (e *Engine) Info(date time.Time, loc Coordinate) Snapshot {
	return Snapshot{
		Date:         date,
		Location:     loc,
		Trajectory:   TrajectoryOf(date),
		Phase:        PhaseOf(date),
		Illumination: IlluminationAt(date),
		Segments:     e.Segments(date, loc),
	}
}

// Range computes snapshots for days consecutive calendar days starting with
// from's day. Each snapshot's Date is local midnight of its day.
func (e *Engine) Range(from time.Time, days int, loc Coordinate) []Snapshot {
	if days <= 0 {
		return nil
	}

	start := StartOfDay(from)
	out := make([]Snapshot, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, e.Info(start.AddDate(0, 0, i), loc))
	}
	return out
}

// Segments splits date's calendar day into lunar-day segments.
func (e *Engine) Segments(date time.Time, loc Coordinate) []DaySegment {
	start := StartOfDay(date)
	end, ok := EndOfDay(date)
	if !ok {
		end = e.now()
		e.logger.Debugw("end of day not computable, using current time", "date", date, "fallback", end)
	}

	ages := dayAges(start)
	startSign := ZodiacOf(start)
	endSign := ZodiacOf(end)

	var rise, set Event
	if len(ages) > 1 {
		rise = resolveEvent(e.solver, moonRise, start, loc)
		set = resolveEvent(e.solver, moonSet, end, loc)
		for _, ev := range []Event{rise, set} {
			if ev.State == EventUnresolved {
				e.logger.Debugw("moon event unresolved", "date", start.Format(time.DateOnly), "location", loc.String(), "error", ev.Err)
			}
		}
	}

	segments := buildSegments(ages, startSign, endSign, rise, set)
	if len(segments) == 0 {
		e.logger.Debugw("degenerate lunar day count", "date", start.Format(time.DateOnly), "ages", ages)
	}
	return segments
}
