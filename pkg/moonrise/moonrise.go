// Package moonrise provides lunar.RiseSetSolver implementations.
package moonrise

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chrissnell/lunarday/pkg/lunar"
)

const (
	NameMeeus   = "meeus"
	NameSunCalc = "suncalc"
)

var (
	// ErrCircumpolar is reported when the moon stays above or below the
	// horizon for the whole day.
	ErrCircumpolar = errors.New("moon does not cross the horizon")

	// ErrUnknownSolver is returned by New for an unregistered name
	ErrUnknownSolver = errors.New("unknown rise/set solver")
)

var solvers = map[string]func() lunar.RiseSetSolver{
	NameMeeus:   func() lunar.RiseSetSolver { return Meeus{} },
	NameSunCalc: func() lunar.RiseSetSolver { return SunCalc{} },
}

// New returns the solver registered under name. An empty name selects meeus.
func New(name string) (lunar.RiseSetSolver, error) {
	if name == "" {
		name = NameMeeus
	}
	f, ok := solvers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownSolver, name, Names())
	}
	return f(), nil
}

// Names lists the registered solver names in sorted order
func Names() []string {
	names := make([]string, 0, len(solvers))
	for name := range solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// utcDay is 0h UT of the calendar date carried by at
func utcDay(at lunar.Components) time.Time {
	return time.Date(at.Year, time.Month(at.Month), at.Day, 0, 0, 0, 0, time.UTC)
}

func utcComponents(t time.Time) lunar.Components {
	if t.IsZero() {
		return lunar.Components{}
	}
	return lunar.ComponentsOf(t.UTC())
}
