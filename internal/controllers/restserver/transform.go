package restserver

import (
	"math"
	"time"

	"github.com/chrissnell/lunarday/pkg/lunar"
)

// transformSnapshot converts an engine snapshot to its wire form
func transformSnapshot(observer string, s lunar.Snapshot) SnapshotResponse {
	segments := make([]SegmentResponse, 0, len(s.Segments))
	for _, seg := range s.Segments {
		segments = append(segments, SegmentResponse{
			Age:        seg.Age,
			ZodiacSign: seg.Zodiac.String(),
			Rise:       transformEvent(seg.Rise),
			Set:        transformEvent(seg.Set),
		})
	}

	return SnapshotResponse{
		Observer:     observer,
		Date:         s.Date.Format(time.DateOnly),
		Timezone:     s.Date.Location().String(),
		Latitude:     s.Location.Latitude,
		Longitude:    s.Location.Longitude,
		Phase:        s.Phase.String(),
		Trajectory:   s.Trajectory.String(),
		Illumination: math.Round(s.Illumination.Fraction*1000) / 1000,
		Elongation:   math.Round(s.Illumination.Elongation*100) / 100,
		Waxing:       s.Illumination.Waxing,
		Segments:     segments,
	}
}

func transformEvent(e lunar.Event) EventResponse {
	out := EventResponse{State: e.State.String()}
	if e.Resolved() {
		out.Timestamp = e.Time.UnixMilli()
		out.Time = e.Time.Format(time.RFC3339)
	}
	if e.Err != nil {
		out.Error = e.Err.Error()
	}
	return out
}
