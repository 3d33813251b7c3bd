package restserver

// ObserverResponse describes a configured observer
type ObserverResponse struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// SnapshotResponse is the wire form of a lunar.Snapshot
type SnapshotResponse struct {
	Observer     string            `json:"observer,omitempty"`
	Date         string            `json:"date"`
	Timezone     string            `json:"timezone"`
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	Phase        string            `json:"phase"`
	Trajectory   string            `json:"trajectory"`
	Illumination float64           `json:"illumination"`
	Elongation   float64           `json:"elongation"`
	Waxing       bool              `json:"waxing"`
	Segments     []SegmentResponse `json:"segments"`
}

// SegmentResponse is the wire form of a lunar.DaySegment
type SegmentResponse struct {
	Age        int           `json:"age"`
	ZodiacSign string        `json:"zodiacSign"`
	Rise       EventResponse `json:"rise"`
	Set        EventResponse `json:"set"`
}

// EventResponse is the wire form of a lunar.Event. Timestamp is in Unix
// milliseconds and only present when State is "resolved".
type EventResponse struct {
	State     string `json:"state"`
	Timestamp int64  `json:"ts,omitempty"`
	Time      string `json:"time,omitempty"`
	Error     string `json:"error,omitempty"`
}

// RangeResponse holds consecutive daily snapshots
type RangeResponse struct {
	Observer string             `json:"observer"`
	Days     []SnapshotResponse `json:"days"`
}
