package activity

import (
	"sort"
	"time"

	"github.com/eemil100/tcx-converter/internal/gpx"
	"github.com/eemil100/tcx-converter/internal/health"
)

// Point is a track point enriched with the heart-rate sample matched to it,
// if one landed within tolerance.
type Point struct {
	gpx.Point
	HeartRate *float64
}

// MergeHeartRate annotates each track point with the latest heart-rate
// sample at or before the point's time (nearest-preceding), provided the
// absolute gap is strictly below tolerance. Only samples inside the workout
// window (inclusive) participate.
//
// Both sequences are sorted here rather than assumed sorted; the cursor
// silently misattributes samples otherwise. One forward pass, O(n+m) after
// sorting.
func MergeHeartRate(points []gpx.Point, samples []health.HeartRateSample, w health.Workout, tolerance time.Duration) []Point {
	filtered := make([]health.HeartRateSample, 0, len(samples))
	for _, s := range samples {
		if w.Contains(s.Time) {
			filtered = append(filtered, s)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Time.Before(filtered[j].Time) })

	ordered := make([]gpx.Point, len(points))
	copy(ordered, points)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Time.Before(ordered[j].Time) })

	merged := make([]Point, 0, len(ordered))
	idx := 0
	for _, pt := range ordered {
		for idx+1 < len(filtered) && !filtered[idx+1].Time.After(pt.Time) {
			idx++
		}
		out := Point{Point: pt}
		if idx < len(filtered) && withinTolerance(filtered[idx].Time, pt.Time, tolerance) {
			bpm := filtered[idx].BPM
			out.HeartRate = &bpm
		}
		merged = append(merged, out)
	}
	return merged
}

func withinTolerance(a, b time.Time, tolerance time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d < tolerance
}
