package lunar

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNoEvent is reported when a solver answers without the requested event.
var ErrNoEvent = errors.New("no moon rise/set event")

// RiseSetSolver resolves the moon's rise and set for the day containing at.
//
// at holds local civil components; latitude and longitude are in radians,
// east positive. rise and set are returned as UTC components. An error means
// neither value could be computed.
type RiseSetSolver interface {
	MoonRiseSet(at Components, latitude, longitude float64) (rise, set Components, err error)
}

// EventState records how a rise or set boundary was obtained.
type EventState int

const (
	// EventNone means no event bounds the segment on this side, either because
	// the calendar day edge does or because no solver was consulted.
	EventNone EventState = iota
	// EventResolved means Time holds the instant from the solver.
	EventResolved
	// EventUnresolved means the solver was consulted and failed; Err says why.
	EventUnresolved
)

var eventStateNames = [...]string{
	EventNone:       "none",
	EventResolved:   "resolved",
	EventUnresolved: "unresolved",
}

func (s EventState) String() string {
	if s < 0 || int(s) >= len(eventStateNames) {
		return fmt.Sprintf("EventState(%d)", int(s))
	}
	return eventStateNames[s]
}

// MarshalText implements encoding.TextMarshaler
func (s EventState) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(eventStateNames) {
		return nil, fmt.Errorf("invalid event state %d", int(s))
	}
	return []byte(eventStateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *EventState) UnmarshalText(text []byte) error {
	v, err := parseLabel(string(text), eventStateNames[:])
	if err != nil {
		return fmt.Errorf("unknown event state: %w", err)
	}
	*s = EventState(v)
	return nil
}

// Event is an optional rise or set instant.
type Event struct {
	Time  time.Time
	State EventState
	Err   error
}

// Resolved reports whether Time is meaningful.
func (e Event) Resolved() bool {
	return e.State == EventResolved
}

func (e Event) String() string {
	switch e.State {
	case EventResolved:
		return e.Time.Format(time.RFC3339)
	case EventUnresolved:
		if e.Err != nil {
			return "unresolved: " + e.Err.Error()
		}
		return "unresolved"
	default:
		return "-"
	}
}

type eventJSON struct {
	State EventState `json:"state"`
	Time  *time.Time `json:"time,omitempty"`
	Error string     `json:"error,omitempty"`
}

// MarshalJSON renders the event with its time only when resolved.
func (e Event) MarshalJSON() ([]byte, error) {
	out := eventJSON{State: e.State}
	if e.State == EventResolved {
		t := e.Time
		out.Time = &t
	}
	if e.Err != nil {
		out.Error = e.Err.Error()
	}
	return json.Marshal(out)
}

func resolvedEvent(t time.Time) Event {
	return Event{Time: t, State: EventResolved}
}

func unresolvedEvent(err error) Event {
	return Event{State: EventUnresolved, Err: err}
}

type eventKind int

const (
	moonRise eventKind = iota
	moonSet
)

func (k eventKind) String() string {
	if k == moonRise {
		return "rise"
	}
	return "set"
}

// resolveEvent asks solver for the moon event of the day containing at.
// Failures are folded into the returned Event.
func resolveEvent(solver RiseSetSolver, kind eventKind, at time.Time, loc Coordinate) Event {
	if solver == nil {
		return Event{}
	}

	lat, lon := loc.Radians()
	rise, set, err := solver.MoonRiseSet(ComponentsOf(at), lat, lon)
	if err != nil {
		return unresolvedEvent(fmt.Errorf("moon %s at %s for %s: %w", kind, at.Format(time.RFC3339), loc, err))
	}

	c := rise
	if kind == moonSet {
		c = set
	}
	if c.IsZero() {
		return unresolvedEvent(fmt.Errorf("moon %s at %s for %s: %w", kind, at.Format(time.RFC3339), loc, ErrNoEvent))
	}
	return resolvedEvent(c.UTC())
}
