// Package activity aligns a GPS track with the workout session it belongs
// to and merges heart-rate samples onto the track by timestamp.
package activity

import (
	"time"

	"github.com/eemil100/tcx-converter/internal/health"
)

// Match returns the workout session whose window contains start, inclusive
// on both ends. Absence of a match is not an error at this layer.
//
// When several sessions contain start, the narrowest window wins, with the
// earlier start breaking remaining ties. Both keys are properties of the
// session itself, so the result does not depend on archive file order.
func Match(workouts []health.Workout, start time.Time) (health.Workout, bool) {
	var (
		best  health.Workout
		found bool
	)
	for _, w := range workouts {
		if !w.Contains(start) {
			continue
		}
		if !found || narrower(w, best) {
			best = w
			found = true
		}
	}
	return best, found
}

func narrower(a, b health.Workout) bool {
	if a.Duration() != b.Duration() {
		return a.Duration() < b.Duration()
	}
	return a.Start.Before(b.Start)
}
