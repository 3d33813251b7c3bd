package lunar

import (
	"fmt"
	"time"
)

// Trajectory tells whether the moon is growing toward full or shrinking
// toward new.
type Trajectory int

const (
	Ascendent Trajectory = iota
	Descendent
)

var trajectoryNames = [...]string{
	Ascendent:  "ascendent",
	Descendent: "descendent",
}

var trajectoryBounds = []bound[Trajectory]{
	{16.61096, Ascendent},
	{27.68493, Descendent},
}

// ClassifyTrajectory maps a classification age (see Age) to its trajectory.
func ClassifyTrajectory(age float64) Trajectory {
	return classify(age, trajectoryBounds, Ascendent)
}

// TrajectoryOf returns the trajectory for t's calendar date.
func TrajectoryOf(t time.Time) Trajectory {
	return ClassifyTrajectory(AgeOf(t))
}

func (tr Trajectory) String() string {
	if tr < 0 || int(tr) >= len(trajectoryNames) {
		return fmt.Sprintf("Trajectory(%d)", int(tr))
	}
	return trajectoryNames[tr]
}

// MarshalText implements encoding.TextMarshaler
func (tr Trajectory) MarshalText() ([]byte, error) {
	if tr < 0 || int(tr) >= len(trajectoryNames) {
		return nil, fmt.Errorf("invalid trajectory %d", int(tr))
	}
	return []byte(trajectoryNames[tr]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (tr *Trajectory) UnmarshalText(text []byte) error {
	v, err := parseLabel(string(text), trajectoryNames[:])
	if err != nil {
		return fmt.Errorf("unknown trajectory: %w", err)
	}
	*tr = Trajectory(v)
	return nil
}
